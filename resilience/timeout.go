package resilience

import (
	"context"
	"time"
)

// WithTimeout races op against a deadline of d. Whichever settles
// first determines the outcome; the timer never fires on the
// non-timeout path.
//
// The deadline is offered to op through its context, so transports
// that honor cancellation abort the in-flight request. For those that
// do not, the guard only gives up waiting: the operation keeps running
// in the background after a *TimeoutError is reported.
func WithTimeout(ctx context.Context, d time.Duration, label string, op func(context.Context) error) error {
	if d <= 0 {
		d = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- op(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return &TimeoutError{Label: label, Timeout: d}
		}
		return ctx.Err()
	}
}
