package provider

import (
	"context"

	"github.com/creativemill/taskops/fault"
)

// TaskState is the canonical state of a remote task.
type TaskState int

const (
	// StateInProgress means the provider is still working.
	StateInProgress TaskState = iota
	// StateSucceeded means the task completed and output is available.
	StateSucceeded
	// StateFailed means the provider explicitly reported failure.
	StateFailed
)

// String returns the string representation of the state.
func (s TaskState) String() string {
	switch s {
	case StateInProgress:
		return "in-progress"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Input is one submission payload, already shaped for the provider.
type Input struct {
	// Model is the provider's model or actor identifier.
	Model string
	// Payload is the request body.
	Payload map[string]any
}

// PollResult is one observation of a remote task.
type PollResult struct {
	// State is the canonical state, normalized via the adapter's
	// StatusMap.
	State TaskState
	// RawStatus is the provider's original status string, kept for
	// diagnostics.
	RawStatus string
	// Output holds the task result when State is StateSucceeded.
	Output map[string]any
	// FailureReason is the provider-given reason when State is
	// StateFailed, verbatim where available.
	FailureReason string
}

// BatchItem is one record fetched from a provider dataset.
type BatchItem struct {
	ID     string
	Fields map[string]any
}

// Adapter is a remote provider integration. Implementations own the
// wire format; callers own resilience, so adapter methods perform a
// single attempt with no internal retries.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: methods must honor cancellation by aborting the
//     in-flight network call, not merely abandoning the wait.
//   - Errors: returned errors should be fault-classified.
type Adapter interface {
	// Name identifies the provider, e.g. "assemblyai".
	Name() string

	// Submit starts a remote task and returns its provider task id.
	Submit(ctx context.Context, in Input) (string, error)

	// Poll observes a remote task's state.
	Poll(ctx context.Context, taskID string) (PollResult, error)

	// FetchBatch retrieves the items of a provider dataset.
	FetchBatch(ctx context.Context, datasetID string) ([]BatchItem, error)
}

// StatusMap maps one provider's raw status strings to canonical
// states. The map must be exhaustive: adapters fail loudly on a
// status they have no entry for.
type StatusMap map[string]TaskState

// Normalize translates a raw provider status. An unmapped status
// returns a fault.Config error naming the provider and the status, so
// a provider rolling out a new state surfaces as a mapping gap instead
// of being misread as a task failure.
func (m StatusMap) Normalize(providerName, raw string) (TaskState, error) {
	state, ok := m[raw]
	if !ok {
		return StateFailed, fault.Newf(fault.Config, providerName,
			"status %q has no mapping; add it to the provider's status table", raw)
	}
	return state, nil
}
