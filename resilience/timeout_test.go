package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithTimeout_CompletesInTime(t *testing.T) {
	err := WithTimeout(context.Background(), 100*time.Millisecond, "fast-op",
		func(ctx context.Context) error {
			return nil
		})

	if err != nil {
		t.Errorf("WithTimeout() = %v, want nil", err)
	}
}

func TestWithTimeout_PropagatesError(t *testing.T) {
	testErr := errors.New("op failed")
	err := WithTimeout(context.Background(), 100*time.Millisecond, "failing-op",
		func(ctx context.Context) error {
			return testErr
		})

	if err != testErr {
		t.Errorf("WithTimeout() = %v, want %v", err, testErr)
	}
}

func TestWithTimeout_DeadlineExceeded(t *testing.T) {
	err := WithTimeout(context.Background(), 20*time.Millisecond, "slow-op",
		func(ctx context.Context) error {
			time.Sleep(200 * time.Millisecond)
			return nil
		})

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("WithTimeout() = %v, want ErrTimeout", err)
	}

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatal("error is not *TimeoutError")
	}
	if te.Label != "slow-op" {
		t.Errorf("TimeoutError.Label = %q, want %q", te.Label, "slow-op")
	}
	if te.Timeout != 20*time.Millisecond {
		t.Errorf("TimeoutError.Timeout = %v, want 20ms", te.Timeout)
	}
}

func TestWithTimeout_NoTimeoutErrorWhenFast(t *testing.T) {
	// An operation settling strictly before the deadline must never
	// be reported as a timeout.
	for i := 0; i < 20; i++ {
		err := WithTimeout(context.Background(), 50*time.Millisecond, "quick",
			func(ctx context.Context) error {
				time.Sleep(time.Millisecond)
				return nil
			})
		if errors.Is(err, ErrTimeout) {
			t.Fatalf("iteration %d: got spurious timeout", i)
		}
	}
}

func TestWithTimeout_OffersCancellationToOp(t *testing.T) {
	observed := make(chan error, 1)
	_ = WithTimeout(context.Background(), 20*time.Millisecond, "cooperative",
		func(ctx context.Context) error {
			<-ctx.Done()
			observed <- ctx.Err()
			return ctx.Err()
		})

	select {
	case err := <-observed:
		if err != context.DeadlineExceeded {
			t.Errorf("op observed %v, want DeadlineExceeded", err)
		}
	case <-time.After(time.Second):
		t.Fatal("op never observed cancellation")
	}
}

func TestWithTimeout_ParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := WithTimeout(ctx, time.Minute, "parent-canceled",
		func(ctx context.Context) error {
			<-ctx.Done()
			time.Sleep(50 * time.Millisecond)
			return ctx.Err()
		})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("WithTimeout() = %v, want context.Canceled", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("parent cancellation must not be reported as a timeout")
	}
}
