package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/creativemill/taskops/fault"
)

// GuardConfig configures a Guard.
type GuardConfig struct {
	// Key identifies the dependency for breaker accounting,
	// e.g. "assemblyai:ad-transcripts". Required.
	Key string

	// Registry supplies the breaker for Key. A private registry is
	// created when nil, which is only useful for tests.
	Registry *Registry

	// Timeout bounds each individual attempt.
	// Default: 30 seconds
	Timeout time.Duration

	// Retry governs retries across attempts.
	Retry RetryPolicy

	// Retryable decides which errors are worth another attempt with
	// the same dependency. Defaults to timeouts plus fault.Transient.
	Retryable func(error) bool
}

// Guard wraps one logical remote dependency with the full protection
// stack: breaker check, then retries around a timed call, then a
// single success or failure recorded back on the breaker.
//
// Every remote call should pass through exactly one Guard; stacking
// guards double-counts failures and opens breakers misleadingly.
type Guard struct {
	cfg     GuardConfig
	breaker *Breaker
}

// NewGuard creates a Guard, applying defaults.
func NewGuard(cfg GuardConfig) *Guard {
	if cfg.Registry == nil {
		cfg.Registry = NewRegistry(BreakerConfig{})
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retryable == nil {
		cfg.Retryable = DefaultRetryable
	}

	return &Guard{
		cfg:     cfg,
		breaker: cfg.Registry.Breaker(cfg.Key),
	}
}

// DefaultRetryable retries timeouts and transient provider failures.
func DefaultRetryable(err error) bool {
	return errors.Is(err, ErrTimeout) || fault.Retryable(err)
}

// Key returns the dependency key this guard protects.
func (g *Guard) Key() string {
	return g.cfg.Key
}

// Do runs op through the guard.
//
// If the breaker is open the call fails fast with a *BreakerOpenError
// and op is never invoked; rejections are not recorded against the
// breaker. Configuration errors pass through without breaker
// accounting: a missing credential fails every call instantly and
// would open the breaker for reasons that have nothing to do with the
// dependency's health.
func (g *Guard) Do(ctx context.Context, op func(context.Context) error) error {
	if err := g.breaker.Allow(); err != nil {
		return err
	}

	err := WithRetries(ctx, g.cfg.Retry, g.cfg.Retryable, func(ctx context.Context) error {
		return WithTimeout(ctx, g.cfg.Timeout, g.cfg.Key, op)
	})

	switch {
	case err == nil:
		g.breaker.RecordSuccess()
	case fault.IsConfig(err):
	case errors.Is(err, ErrBreakerOpen):
	case errors.Is(err, context.Canceled):
		// The caller gave up; that says nothing about the dependency.
	default:
		g.breaker.RecordFailure()
	}
	return err
}
