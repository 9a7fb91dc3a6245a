package fanout

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// WorkItem is one independent unit in a batch. Done is derived by the
// caller from the item's persisted state (for example "has a non-empty
// transcript"); the batch layers only read it.
type WorkItem[T any] struct {
	ID      string
	Payload T
	Done    bool
}

// Policy decides how a batch with failed items resolves.
type Policy int

const (
	// AggregateAndFail fails the batch with a *BatchError when any
	// item failed, after every item has settled.
	AggregateAndFail Policy = iota
	// BestEffort resolves the batch successfully and leaves failures
	// in the outcome for the caller to inspect.
	BestEffort
)

// Config configures one batch run.
type Config struct {
	// Concurrency is the maximum number of in-flight workers.
	// Default: 4
	Concurrency int

	// Policy selects the partial-failure behavior.
	// Default: AggregateAndFail
	Policy Policy
}

// ItemFailure records one failed item.
type ItemFailure struct {
	ItemID string
	Err    error
}

// Outcome summarizes a settled batch.
type Outcome struct {
	Total     int
	Processed int
	Succeeded int
	Failures  []ItemFailure
}

// Run invokes worker for every item with at most cfg.Concurrency
// workers in flight. As soon as one worker finishes the next queued
// item starts. Completion order is unspecified.
//
// A worker's error (or panic) is recorded against its item and does
// not affect siblings. Once the parent context is canceled no new
// workers start; unstarted items are recorded as failures with the
// context's error.
func Run[T any](ctx context.Context, items []WorkItem[T], cfg Config, worker func(ctx context.Context, item WorkItem[T]) error) (Outcome, error) {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}

	out := Outcome{Total: len(items)}
	sem := semaphore.NewWeighted(int64(cfg.Concurrency))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, item := range items {
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			out.Failures = append(out.Failures, ItemFailure{ItemID: item.ID, Err: err})
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func(item WorkItem[T]) {
			defer wg.Done()
			defer sem.Release(1)

			err := invoke(ctx, worker, item)

			mu.Lock()
			out.Processed++
			if err != nil {
				out.Failures = append(out.Failures, ItemFailure{ItemID: item.ID, Err: err})
			} else {
				out.Succeeded++
			}
			mu.Unlock()
		}(item)
	}
	wg.Wait()

	if len(out.Failures) > 0 && cfg.Policy == AggregateAndFail {
		return out, &BatchError{Outcome: out}
	}
	return out, nil
}

// invoke shields the batch from a panicking worker.
func invoke[T any](ctx context.Context, worker func(ctx context.Context, item WorkItem[T]) error, item WorkItem[T]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fanout: worker panicked on item %q: %v", item.ID, r)
		}
	}()
	return worker(ctx, item)
}
