package observe

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recordingMetrics struct {
	mu    sync.Mutex
	calls []recordedCall
}

type recordedCall struct {
	key string
	err error
}

func (r *recordingMetrics) RecordCall(ctx context.Context, key string, duration time.Duration, err error) {
	r.mu.Lock()
	r.calls = append(r.calls, recordedCall{key: key, err: err})
	r.mu.Unlock()
}

func (r *recordingMetrics) RecordBreakerTransition(ctx context.Context, key, from, to string) {}
func (r *recordingMetrics) RecordRetry(ctx context.Context, key string, attempt int)          {}
func (r *recordingMetrics) RecordBatch(ctx context.Context, total, succeeded, failed int)     {}
func (r *recordingMetrics) RecordPoll(ctx context.Context, key string)                        {}

func TestInstrument_WrapRecordsOutcome(t *testing.T) {
	metrics := &recordingMetrics{}
	var buf bytes.Buffer
	in := NewInstrument(newNoopTracer(), metrics, NewLoggerWithWriter("debug", &buf))

	meta := CallMeta{Key: "kling:v1.6", Op: "submit"}

	if err := in.Wrap(meta, func(ctx context.Context) error { return nil })(context.Background()); err != nil {
		t.Fatalf("wrapped call = %v", err)
	}

	callErr := errors.New("502 upstream")
	err := in.Wrap(meta, func(ctx context.Context) error { return callErr })(context.Background())
	if !errors.Is(err, callErr) {
		t.Fatalf("wrapped call = %v, want error propagated unchanged", err)
	}

	if len(metrics.calls) != 2 {
		t.Fatalf("recorded calls = %d, want 2", len(metrics.calls))
	}
	if metrics.calls[0].key != "kling:v1.6" || metrics.calls[0].err != nil {
		t.Errorf("first call = %+v", metrics.calls[0])
	}
	if metrics.calls[1].err == nil {
		t.Error("failure was recorded as success")
	}

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("log entries = %d, want 2", len(entries))
	}
	if entries[1]["level"] != "error" || entries[1]["task_key"] != "kling:v1.6" {
		t.Errorf("failure entry = %v", entries[1])
	}
}

func TestInstrumentFromObserver(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "taskops"})
	if err != nil {
		t.Fatalf("NewObserver() = %v", err)
	}
	defer obs.Shutdown(context.Background())

	in, err := InstrumentFromObserver(obs)
	if err != nil {
		t.Fatalf("InstrumentFromObserver() = %v", err)
	}
	if err := in.Wrap(CallMeta{Key: "k"}, func(ctx context.Context) error { return nil })(context.Background()); err != nil {
		t.Errorf("wrapped call = %v", err)
	}

	if _, err := InstrumentFromObserver(nil); !errors.Is(err, ErrNilObserver) {
		t.Errorf("InstrumentFromObserver(nil) = %v, want ErrNilObserver", err)
	}
}

func TestCallMetaSpanName(t *testing.T) {
	tests := []struct {
		meta CallMeta
		want string
	}{
		{CallMeta{Key: "kling:v1.6", Op: "submit"}, "task.exec.kling:v1.6.submit"},
		{CallMeta{Key: "runway:gen3"}, "task.exec.runway:gen3"},
	}
	for _, tt := range tests {
		if got := tt.meta.SpanName(); got != tt.want {
			t.Errorf("SpanName() = %q, want %q", got, tt.want)
		}
	}
}
