package job

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/creativemill/taskops/fanout"
)

// Status is a job record's lifecycle state.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Record is one unit of asynchronous work.
type Record struct {
	ID     uuid.UUID `json:"id"`
	Status Status    `json:"status"`

	// Payload is the job's input, opaque to the state machine.
	Payload json.RawMessage `json:"payload,omitempty"`

	// ResultSummary is a single-line human-readable outcome, set on
	// COMPLETED.
	ResultSummary string `json:"resultSummary,omitempty"`

	// Error is a single-line failure summary, set on FAILED.
	Error string `json:"error,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewRecord creates a PENDING record with a fresh identifier.
func NewRecord(payload json.RawMessage) *Record {
	now := time.Now()
	return &Record{
		ID:        uuid.New(),
		Status:    StatusPending,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// transitions lists the allowed status changes. A job always passes
// through RUNNING: there is no PENDING -> FAILED shortcut, so every
// failure is attributable to an actual run.
var transitions = map[Status][]Status{
	StatusPending: {StatusRunning},
	StatusRunning: {StatusCompleted, StatusFailed},
}

// Transition moves the record to a new status, or returns a
// *TransitionError if the state machine does not allow the change.
func (r *Record) Transition(to Status) error {
	for _, allowed := range transitions[r.Status] {
		if to == allowed {
			r.Status = to
			r.UpdatedAt = time.Now()
			return nil
		}
	}
	return &TransitionError{From: r.Status, To: to}
}

// Terminal reports whether the record has reached a final status.
func (r *Record) Terminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}

// SummarizeOutcome renders a fan-out outcome as a single line suitable
// for a record's ResultSummary. Partial success reads differently from
// total failure.
func SummarizeOutcome(out fanout.Outcome) string {
	failed := len(out.Failures)
	switch {
	case failed == 0:
		return fmt.Sprintf("%d/%d assets processed", out.Succeeded, out.Total)
	case out.Succeeded == 0:
		return fmt.Sprintf("all %d assets failed (first: %s)", out.Total, out.Failures[0].Err)
	default:
		return fmt.Sprintf("%d/%d assets processed; %d failed", out.Succeeded, out.Total, failed)
	}
}
