package health

import (
	"context"
	"errors"
	"testing"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusHealthy, "healthy"},
		{StatusDegraded, "degraded"},
		{StatusUnhealthy, "unhealthy"},
		{Status(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestResultConstructors(t *testing.T) {
	h := Healthy("ok")
	if h.Status != StatusHealthy || h.Message != "ok" || h.Timestamp.IsZero() {
		t.Errorf("Healthy() = %+v", h)
	}

	d := Degraded("slow")
	if d.Status != StatusDegraded {
		t.Errorf("Degraded() = %+v", d)
	}

	checkErr := errors.New("boom")
	u := Unhealthy("down", checkErr)
	if u.Status != StatusUnhealthy || !errors.Is(u.Error, checkErr) {
		t.Errorf("Unhealthy() = %+v", u)
	}
}

func TestWithDetails(t *testing.T) {
	r := Healthy("ok").WithDetails(map[string]any{"count": 3})
	if r.Details["count"] != 3 {
		t.Errorf("Details = %v", r.Details)
	}
}

func TestCheckerFunc(t *testing.T) {
	c := NewCheckerFunc("store", func(ctx context.Context) Result {
		return Healthy("reachable")
	})

	if c.Name() != "store" {
		t.Errorf("Name() = %q", c.Name())
	}
	if res := c.Check(context.Background()); res.Status != StatusHealthy {
		t.Errorf("Check() = %+v", res)
	}
}
