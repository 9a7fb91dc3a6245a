package resilience

import (
	"sync"
	"time"
)

// State represents the observable circuit breaker state.
type State int

const (
	// StateClosed means calls pass through and failures are counted.
	StateClosed State = iota
	// StateOpen means calls are rejected until the cooldown elapses.
	StateOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// BreakerConfig configures circuit breakers created by a Registry.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens
	// the breaker.
	// Default: 5
	FailureThreshold int

	// Cooldown is how long an open breaker rejects calls before the
	// next call is allowed through as a probe.
	// Default: 30 seconds
	Cooldown time.Duration

	// OnStateChange is called when a breaker opens or closes.
	OnStateChange func(key string, from, to State)
}

// Breaker is a per-dependency circuit breaker.
//
// The half-open state is implicit: the first call checked at or after
// the cooldown deadline is allowed through as a probe with the failure
// count reset to zero. The probe's outcome alone decides what happens
// next: success keeps the breaker closed, failure reopens it with a
// fresh cooldown regardless of the threshold. The reset is lazy;
// nothing happens until the next check.
type Breaker struct {
	key string
	cfg BreakerConfig

	mu          sync.Mutex
	failures    int
	openedUntil time.Time
	probing     bool
}

func newBreaker(key string, cfg BreakerConfig) *Breaker {
	return &Breaker{key: key, cfg: cfg}
}

// Key returns the dependency key this breaker guards.
func (b *Breaker) Key() string {
	return b.key
}

// Allow checks whether a call may proceed. It returns a
// *BreakerOpenError while the breaker is open, nil otherwise.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.openedUntil.IsZero() {
		return nil
	}

	now := time.Now()
	if now.Before(b.openedUntil) {
		return &BreakerOpenError{Key: b.key, Until: b.openedUntil}
	}

	// Cooldown elapsed: let this check through as a probe with a clean
	// slate. The caller's next RecordSuccess/RecordFailure is the probe
	// result.
	b.openedUntil = time.Time{}
	b.failures = 0
	b.probing = true
	b.notify(StateOpen, StateClosed)
	return nil
}

// RecordSuccess resets the consecutive failure count and, after a
// probe, keeps the breaker closed.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	b.probing = false
}

// RecordFailure increments the consecutive failure count and opens the
// breaker when the threshold is reached. A failure recorded during a
// probe window reopens immediately: the dependency already proved
// unhealthy once, so the probe does not get a full threshold budget.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	if b.probing {
		b.probing = false
		b.openedUntil = time.Now().Add(b.cfg.Cooldown)
		b.notify(StateClosed, StateOpen)
		return
	}
	if b.failures >= b.cfg.FailureThreshold && b.openedUntil.IsZero() {
		b.openedUntil = time.Now().Add(b.cfg.Cooldown)
		b.notify(StateClosed, StateOpen)
	}
}

// State returns the current observable state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.openedUntil.IsZero() && time.Now().Before(b.openedUntil) {
		return StateOpen
	}
	return StateClosed
}

// Status is a point-in-time snapshot of a breaker.
type Status struct {
	Key         string
	State       State
	Failures    int
	OpenedUntil time.Time
}

// Status returns a snapshot of the breaker's counters.
func (b *Breaker) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := StateClosed
	if !b.openedUntil.IsZero() && time.Now().Before(b.openedUntil) {
		state = StateOpen
	}
	return Status{
		Key:         b.key,
		State:       state,
		Failures:    b.failures,
		OpenedUntil: b.openedUntil,
	}
}

// notify must be called with b.mu held.
func (b *Breaker) notify(from, to State) {
	if b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(b.key, from, to)
	}
}
