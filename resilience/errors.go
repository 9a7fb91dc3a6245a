package resilience

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for resilience operations.
var (
	// ErrBreakerOpen is returned when a circuit breaker rejects a call.
	ErrBreakerOpen = errors.New("resilience: circuit breaker is open")

	// ErrTimeout is returned when an operation exceeds its deadline.
	ErrTimeout = errors.New("resilience: operation timed out")
)

// BreakerOpenError reports a call shed by an open breaker. The
// underlying function was never invoked.
type BreakerOpenError struct {
	// Key is the dependency the breaker guards.
	Key string
	// Until is when the breaker's cooldown elapses.
	Until time.Time
}

func (e *BreakerOpenError) Error() string {
	return fmt.Sprintf("resilience: circuit breaker open for %q until %s", e.Key, e.Until.Format(time.RFC3339))
}

// Is makes errors.Is(err, ErrBreakerOpen) match.
func (e *BreakerOpenError) Is(target error) bool {
	return target == ErrBreakerOpen
}

// TimeoutError reports that the guard stopped waiting on an operation.
// The operation itself may still be running: without a transport-level
// cancellation hook the guard only abandons the wait.
type TimeoutError struct {
	// Label identifies the timed operation.
	Label string
	// Timeout is the deadline that was exceeded.
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("resilience: %s timed out after %s", e.Label, e.Timeout)
}

// Is makes errors.Is(err, ErrTimeout) match.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}
