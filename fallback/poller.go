package fallback

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/creativemill/taskops/fault"
	"github.com/creativemill/taskops/provider"
	"github.com/creativemill/taskops/resilience"
)

// PollerConfig configures a Poller.
type PollerConfig struct {
	// Interval is the fixed sleep between observations. The interval
	// stays constant: generation latencies are predictable and a
	// growing interval only delays detection.
	// Default: 5 seconds
	Interval time.Duration

	// Budget is the wall-clock limit for the whole polling phase.
	// Default: 10 minutes
	Budget time.Duration
}

// Poller drives a submitted task to a terminal outcome by observing
// it at a fixed interval under a wall-clock budget.
type Poller struct {
	cfg PollerConfig

	// group deduplicates concurrent observations of the same task.
	group singleflight.Group
}

// NewPoller creates a Poller, applying defaults.
func NewPoller(cfg PollerConfig) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.Budget <= 0 {
		cfg.Budget = 10 * time.Minute
	}
	return &Poller{cfg: cfg}
}

// Wait polls until the task reaches a terminal state or the budget
// runs out. taskKey identifies the task for deduplication and error
// labels; poll performs one (already guarded) observation.
//
// Outcomes: the provider's success returns the final PollResult; the
// provider's explicit failure returns a fault.Terminal error carrying
// the provider-given reason; an exhausted budget returns a
// *resilience.TimeoutError.
func (p *Poller) Wait(ctx context.Context, taskKey string, poll func(ctx context.Context) (provider.PollResult, error)) (provider.PollResult, error) {
	deadline := time.Now().Add(p.cfg.Budget)

	for {
		pr, err := p.pollOnce(ctx, taskKey, poll)
		if err != nil {
			return pr, err
		}

		switch pr.State {
		case provider.StateSucceeded:
			return pr, nil
		case provider.StateFailed:
			reason := pr.FailureReason
			if reason == "" {
				reason = "provider reported failure without a reason (raw status " + pr.RawStatus + ")"
			}
			return pr, fault.Newf(fault.Terminal, taskKey, "%s", reason)
		case provider.StateInProgress:
			// Keep polling.
		}

		if time.Now().After(deadline) {
			return pr, &resilience.TimeoutError{Label: taskKey, Timeout: p.cfg.Budget}
		}

		select {
		case <-ctx.Done():
			return pr, ctx.Err()
		case <-time.After(p.cfg.Interval):
		}
	}
}

// pollOnce shares one in-flight observation among concurrent waiters
// on the same task.
func (p *Poller) pollOnce(ctx context.Context, taskKey string, poll func(ctx context.Context) (provider.PollResult, error)) (provider.PollResult, error) {
	v, err, _ := p.group.Do(taskKey, func() (any, error) {
		return poll(ctx)
	})
	pr, ok := v.(provider.PollResult)
	if !ok && err == nil {
		err = errors.New("fallback: poll returned no result")
	}
	return pr, err
}
