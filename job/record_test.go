package job

import (
	"errors"
	"testing"

	"github.com/creativemill/taskops/fanout"
)

func TestTransition_HappyPaths(t *testing.T) {
	tests := []struct {
		name string
		path []Status
	}{
		{"completed", []Status{StatusRunning, StatusCompleted}},
		{"failed", []Status{StatusRunning, StatusFailed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecord(nil)
			for _, to := range tt.path {
				if err := rec.Transition(to); err != nil {
					t.Fatalf("Transition(%s) = %v", to, err)
				}
			}
			if !rec.Terminal() {
				t.Error("record should be terminal")
			}
		})
	}
}

func TestTransition_Rejected(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
	}{
		{"pending to completed", StatusPending, StatusCompleted},
		{"pending to failed", StatusPending, StatusFailed},
		{"completed to running", StatusCompleted, StatusRunning},
		{"failed to running", StatusFailed, StatusRunning},
		{"running to pending", StatusRunning, StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecord(nil)
			rec.Status = tt.from

			err := rec.Transition(tt.to)
			if err == nil {
				t.Fatalf("Transition(%s -> %s) = nil, want error", tt.from, tt.to)
			}
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("error = %v, want ErrInvalidTransition", err)
			}
			var terr *TransitionError
			if !errors.As(err, &terr) || terr.From != tt.from || terr.To != tt.to {
				t.Errorf("TransitionError = %+v", terr)
			}
			if rec.Status != tt.from {
				t.Errorf("status changed to %s on rejected transition", rec.Status)
			}
		})
	}
}

func TestSummarizeOutcome(t *testing.T) {
	tests := []struct {
		name string
		out  fanout.Outcome
		want string
	}{
		{
			"all succeeded",
			fanout.Outcome{Total: 10, Processed: 10, Succeeded: 10},
			"10/10 assets processed",
		},
		{
			"partial",
			fanout.Outcome{Total: 10, Processed: 10, Succeeded: 8, Failures: []fanout.ItemFailure{
				{ItemID: "item-3", Err: errors.New("boom")},
				{ItemID: "item-9", Err: errors.New("boom")},
			}},
			"8/10 assets processed; 2 failed",
		},
		{
			"total failure",
			fanout.Outcome{Total: 3, Processed: 3, Failures: []fanout.ItemFailure{
				{ItemID: "item-1", Err: errors.New("credential rejected")},
				{ItemID: "item-2", Err: errors.New("credential rejected")},
				{ItemID: "item-3", Err: errors.New("credential rejected")},
			}},
			"all 3 assets failed (first: credential rejected)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SummarizeOutcome(tt.out); got != tt.want {
				t.Errorf("SummarizeOutcome() = %q, want %q", got, tt.want)
			}
		})
	}
}
