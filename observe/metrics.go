package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/creativemill/taskops/fault"
)

// Metrics records execution metrics for guarded calls and batch runs.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCall records one guarded call with duration and outcome.
	// Failures are attributed by breaker key and error class.
	RecordCall(ctx context.Context, key string, duration time.Duration, err error)

	// RecordBreakerTransition records a circuit breaker state change.
	RecordBreakerTransition(ctx context.Context, key, from, to string)

	// RecordRetry records one retry attempt against a breaker key.
	RecordRetry(ctx context.Context, key string, attempt int)

	// RecordBatch records a settled fan-out batch.
	RecordBatch(ctx context.Context, total, succeeded, failed int)

	// RecordPoll records one poll cycle for an in-flight task.
	RecordPoll(ctx context.Context, key string)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	callCount    metric.Int64Counter
	callDuration metric.Float64Histogram
	breakerTrans metric.Int64Counter
	retryCount   metric.Int64Counter
	batchItems   metric.Int64Counter
	pollCount    metric.Int64Counter
}

// newMetrics creates a new Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	callCount, err := meter.Int64Counter(
		"task.call.total",
		metric.WithDescription("Total number of guarded provider calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	callDuration, err := meter.Float64Histogram(
		"task.call.duration_ms",
		metric.WithDescription("Guarded provider call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	breakerTrans, err := meter.Int64Counter(
		"task.breaker.transitions",
		metric.WithDescription("Circuit breaker state transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	retryCount, err := meter.Int64Counter(
		"task.retry.attempts",
		metric.WithDescription("Retry attempts after a failed call"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	batchItems, err := meter.Int64Counter(
		"task.batch.items",
		metric.WithDescription("Fan-out batch items by result"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, err
	}

	pollCount, err := meter.Int64Counter(
		"task.poll.cycles",
		metric.WithDescription("Poll cycles for in-flight provider tasks"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		callCount:    callCount,
		callDuration: callDuration,
		breakerTrans: breakerTrans,
		retryCount:   retryCount,
		batchItems:   batchItems,
		pollCount:    pollCount,
	}, nil
}

// RecordCall records metrics for one guarded call.
func (m *metricsImpl) RecordCall(ctx context.Context, key string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("task.key", key),
		attribute.String("task.outcome", outcome(err)),
	}
	if err != nil {
		attrs = append(attrs, attribute.String("task.error_class", fault.ClassOf(err).String()))
	}

	opt := metric.WithAttributes(attrs...)
	m.callCount.Add(ctx, 1, opt)
	m.callDuration.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordBreakerTransition records a breaker state change.
func (m *metricsImpl) RecordBreakerTransition(ctx context.Context, key, from, to string) {
	m.breakerTrans.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task.key", key),
		attribute.String("breaker.from", from),
		attribute.String("breaker.to", to),
	))
}

// RecordRetry records one retry attempt.
func (m *metricsImpl) RecordRetry(ctx context.Context, key string, attempt int) {
	m.retryCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task.key", key),
		attribute.Int("retry.attempt", attempt),
	))
}

// RecordBatch records a settled batch, split by item result.
func (m *metricsImpl) RecordBatch(ctx context.Context, total, succeeded, failed int) {
	m.batchItems.Add(ctx, int64(succeeded), metric.WithAttributes(
		attribute.String("item.result", "succeeded"),
	))
	m.batchItems.Add(ctx, int64(failed), metric.WithAttributes(
		attribute.String("item.result", "failed"),
	))
	skipped := total - succeeded - failed
	if skipped > 0 {
		m.batchItems.Add(ctx, int64(skipped), metric.WithAttributes(
			attribute.String("item.result", "skipped"),
		))
	}
}

// RecordPoll records one poll cycle.
func (m *metricsImpl) RecordPoll(ctx context.Context, key string) {
	m.pollCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task.key", key),
	))
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordCall(ctx context.Context, key string, duration time.Duration, err error) {
}
func (m *noopMetrics) RecordBreakerTransition(ctx context.Context, key, from, to string) {}
func (m *noopMetrics) RecordRetry(ctx context.Context, key string, attempt int)          {}
func (m *noopMetrics) RecordBatch(ctx context.Context, total, succeeded, failed int)     {}
func (m *noopMetrics) RecordPoll(ctx context.Context, key string)                        {}

// NopMetrics returns a Metrics that discards everything.
func NopMetrics() Metrics {
	return &noopMetrics{}
}
