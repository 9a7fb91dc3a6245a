package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

func healthyChecker(name string) Checker {
	return NewCheckerFunc(name, func(ctx context.Context) Result {
		return Healthy("ok")
	})
}

func TestAggregator_CheckAll(t *testing.T) {
	agg := NewAggregator()
	agg.Register("a", healthyChecker("a"))
	agg.Register("b", NewCheckerFunc("b", func(ctx context.Context) Result {
		return Degraded("slow")
	}))

	results := agg.CheckAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results["a"].Status != StatusHealthy || results["b"].Status != StatusDegraded {
		t.Errorf("results = %v", results)
	}
	if agg.OverallStatus(results) != StatusDegraded {
		t.Errorf("OverallStatus() = %v, want degraded", agg.OverallStatus(results))
	}
}

func TestAggregator_OverallStatus(t *testing.T) {
	agg := NewAggregator()

	tests := []struct {
		name    string
		results map[string]Result
		want    Status
	}{
		{"empty", map[string]Result{}, StatusHealthy},
		{"all healthy", map[string]Result{"a": {Status: StatusHealthy}}, StatusHealthy},
		{"one degraded", map[string]Result{"a": {Status: StatusHealthy}, "b": {Status: StatusDegraded}}, StatusDegraded},
		{"unhealthy wins", map[string]Result{"a": {Status: StatusDegraded}, "b": {Status: StatusUnhealthy}}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := agg.OverallStatus(tt.results); got != tt.want {
				t.Errorf("OverallStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregator_CheckByName(t *testing.T) {
	agg := NewAggregator()
	agg.Register("store", healthyChecker("store"))

	res, err := agg.Check(context.Background(), "store")
	if err != nil {
		t.Fatalf("Check() = %v", err)
	}
	if res.Status != StatusHealthy {
		t.Errorf("Check() = %+v", res)
	}

	if _, err := agg.Check(context.Background(), "missing"); !errors.Is(err, ErrCheckerNotFound) {
		t.Errorf("Check(missing) = %v, want ErrCheckerNotFound", err)
	}
}

func TestAggregator_Timeout(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{Timeout: 10 * time.Millisecond})
	agg.Register("stuck", NewCheckerFunc("stuck", func(ctx context.Context) Result {
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond)
		return Healthy("too late")
	}))

	results := agg.CheckAll(context.Background())
	if results["stuck"].Status != StatusUnhealthy {
		t.Errorf("stuck checker = %+v, want unhealthy on timeout", results["stuck"])
	}
	if !errors.Is(results["stuck"].Error, ErrCheckTimeout) {
		t.Errorf("error = %v, want ErrCheckTimeout", results["stuck"].Error)
	}
}

func TestAggregator_RegistrationOrder(t *testing.T) {
	agg := NewAggregator()
	agg.Register("c", healthyChecker("c"))
	agg.Register("a", healthyChecker("a"))
	agg.Register("b", healthyChecker("b"))
	agg.Unregister("a")

	names := agg.CheckerNames()
	if len(names) != 2 || names[0] != "c" || names[1] != "b" {
		t.Errorf("CheckerNames() = %v, want [c b]", names)
	}
}
