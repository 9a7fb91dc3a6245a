package resume

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/creativemill/taskops/fanout"
	"github.com/creativemill/taskops/fault"
)

// Outcome is the persisted result of processing one item.
type Outcome struct {
	// Done is the completion marker. Only set on success; a failed
	// item stays reprocessable.
	Done bool
	// Output is the produced artifact (a transcript, a quality gate,
	// a rendered video URL).
	Output []byte
	// Err holds the failure message when the item failed.
	Err string
	// UpdatedAt is when the outcome was written.
	UpdatedAt time.Time
}

// Store persists per-item outcomes.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use;
//     fan-out persists items as they complete.
//   - Load returns (zero, false, nil) for an unknown item.
type Store interface {
	Load(ctx context.Context, itemID string) (Outcome, bool, error)
	Save(ctx context.Context, itemID string, out Outcome) error
}

// ProcessorConfig configures a Processor.
type ProcessorConfig struct {
	// Store persists outcomes. Required.
	Store Store

	// Force reprocesses items even when their completion marker is
	// already set.
	Force bool
}

// Processor wraps item workers with skip-if-done and save-immediately
// semantics.
type Processor[T any] struct {
	cfg     ProcessorConfig
	skipped atomic.Int64
}

// NewProcessor creates a Processor.
func NewProcessor[T any](cfg ProcessorConfig) *Processor[T] {
	return &Processor[T]{cfg: cfg}
}

// Skipped returns how many items were skipped as already done.
func (p *Processor[T]) Skipped() int {
	return int(p.skipped.Load())
}

// Wrap returns a fan-out worker that runs work for items without a
// completion marker and persists each item's outcome before
// returning. Persistence is per item, never batched.
func (p *Processor[T]) Wrap(work func(ctx context.Context, item fanout.WorkItem[T]) ([]byte, error)) func(ctx context.Context, item fanout.WorkItem[T]) error {
	return func(ctx context.Context, item fanout.WorkItem[T]) error {
		done, err := p.alreadyDone(ctx, item)
		if err != nil {
			return err
		}
		if done && !p.cfg.Force {
			p.skipped.Add(1)
			return nil
		}

		output, workErr := work(ctx, item)

		out := Outcome{UpdatedAt: time.Now()}
		if workErr != nil {
			out.Err = workErr.Error()
		} else {
			out.Done = true
			out.Output = output
		}
		if saveErr := p.cfg.Store.Save(ctx, item.ID, out); saveErr != nil {
			return fault.New(fault.Item, item.ID, fmt.Errorf("persisting outcome: %w", saveErr))
		}

		if workErr != nil {
			return fault.New(fault.Item, item.ID, workErr)
		}
		return nil
	}
}

// alreadyDone consults the durable marker. The caller-derived flag on
// the item counts too, since it was itself read from persisted state.
func (p *Processor[T]) alreadyDone(ctx context.Context, item fanout.WorkItem[T]) (bool, error) {
	if item.Done {
		return true, nil
	}
	stored, ok, err := p.cfg.Store.Load(ctx, item.ID)
	if err != nil {
		return false, fault.New(fault.Item, item.ID, fmt.Errorf("loading marker: %w", err))
	}
	return ok && stored.Done, nil
}
