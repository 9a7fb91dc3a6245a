package observe

import (
	"context"
	"time"
)

// CallFunc is the signature of a guarded provider call.
type CallFunc func(ctx context.Context) error

// Instrument wraps guarded calls with tracing, metrics, and logging.
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe CallFunc.
//   - Context: Propagates context through tracing spans.
//   - Errors: Errors from the wrapped call are recorded and propagated unchanged.
type Instrument struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewInstrument creates an Instrument from the given telemetry components.
func NewInstrument(tracer Tracer, metrics Metrics, logger Logger) *Instrument {
	return &Instrument{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps a guarded call with tracing, metrics, and logging.
func (in *Instrument) Wrap(meta CallMeta, fn CallFunc) CallFunc {
	return func(ctx context.Context) error {
		ctx, span := in.tracer.StartSpan(ctx, meta)
		start := time.Now()

		err := fn(ctx)

		duration := time.Since(start)
		in.tracer.EndSpan(span, err)
		in.metrics.RecordCall(ctx, meta.Key, duration, err)

		callLogger := in.logger.With(
			Field{Key: "task_key", Value: meta.Key},
			Field{Key: "task_op", Value: meta.Op},
		)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			callLogger.Error(ctx, "provider call failed", fields...)
		} else {
			callLogger.Debug(ctx, "provider call completed", fields...)
		}

		return err
	}
}

// InstrumentFromObserver creates an Instrument from an Observer.
func InstrumentFromObserver(obs Observer) (*Instrument, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewInstrument(newTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
