package resilience

import (
	"context"
	"math/rand/v2"
	"time"
)

// jitterMax is the upper bound on the random delay added between
// attempts to prevent thundering herds.
const jitterMax = 250 * time.Millisecond

// RetryPolicy configures bounded retries with exponential backoff.
type RetryPolicy struct {
	// Retries is the number of retries after the first attempt, so an
	// operation runs at most 1+Retries times. Negative disables
	// retries entirely.
	// Default: 2
	Retries int

	// BaseDelay is the delay before the first retry; it doubles each
	// attempt.
	// Default: 500ms
	BaseDelay time.Duration

	// MaxDelay caps the backoff before jitter is added.
	// Default: 30s
	MaxDelay time.Duration

	// OnRetry is called before each retry attempt sleeps.
	OnRetry func(attempt int, err error, delay time.Duration)
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.Retries < 0 {
		p.Retries = 0
	} else if p.Retries == 0 {
		p.Retries = 2
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = 500 * time.Millisecond
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 30 * time.Second
	}
	return p
}

// WithRetries runs op up to 1+policy.Retries times, sleeping
// min(MaxDelay, BaseDelay*2^(attempt-1)) plus up to 250ms of jitter
// between attempts.
//
// retryable is consulted on every failure before the loop continues: an
// error it rejects is returned immediately, even on the first attempt.
// When the attempt budget is exhausted the error from the last attempt
// is returned, not the first. A nil retryable retries every error.
func WithRetries(ctx context.Context, policy RetryPolicy, retryable func(error) bool, op func(context.Context) error) error {
	policy = policy.withDefaults()
	attempts := policy.Retries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if retryable != nil && !retryable(err) {
			return err
		}
		if attempt >= attempts {
			break
		}

		delay := backoffDelay(policy, attempt)
		if policy.OnRetry != nil {
			policy.OnRetry(attempt, err, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

func backoffDelay(policy RetryPolicy, attempt int) time.Duration {
	delay := policy.BaseDelay << (attempt - 1)
	if delay > policy.MaxDelay || delay <= 0 {
		delay = policy.MaxDelay
	}
	// #nosec G404 -- jitter is non-cryptographic timing variance.
	return delay + time.Duration(rand.Int64N(int64(jitterMax)))
}
