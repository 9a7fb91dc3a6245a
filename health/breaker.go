package health

import (
	"context"
	"fmt"
	"strings"

	"github.com/creativemill/taskops/resilience"
)

// BreakerChecker reports the state of a circuit breaker registry. Open
// breakers degrade the pipeline: calls to those providers are being
// shed, but the fallback chain may still complete work elsewhere.
type BreakerChecker struct {
	registry *resilience.Registry
}

// NewBreakerChecker creates a checker over the given registry.
func NewBreakerChecker(registry *resilience.Registry) *BreakerChecker {
	return &BreakerChecker{registry: registry}
}

// Name returns the name of this checker.
func (c *BreakerChecker) Name() string {
	return "breakers"
}

// Check reports Degraded when any breaker is open, listing the open
// keys, and Healthy otherwise.
func (c *BreakerChecker) Check(ctx context.Context) Result {
	statuses := c.registry.Snapshot()

	var open []string
	details := make(map[string]any, len(statuses))
	for _, st := range statuses {
		details[st.Key] = map[string]any{
			"state":    st.State.String(),
			"failures": st.Failures,
		}
		if st.State == resilience.StateOpen {
			open = append(open, st.Key)
		}
	}

	if len(open) > 0 {
		msg := fmt.Sprintf("%d breaker(s) open: %s", len(open), strings.Join(open, ", "))
		return Degraded(msg).WithDetails(details)
	}
	return Healthy(fmt.Sprintf("%d breaker(s) closed", len(statuses))).WithDetails(details)
}

var _ Checker = (*BreakerChecker)(nil)
