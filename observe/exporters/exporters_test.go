package exporters

import (
	"context"
	"testing"
)

func TestNewTracingExporter(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"stdout", false},
		{"none", false},
		{"", false},
		{"zipkin", true},
	}

	for _, tt := range tests {
		t.Run("exporter="+tt.name, func(t *testing.T) {
			exp, err := NewTracingExporter(context.Background(), tt.name)
			if tt.wantErr {
				if err == nil {
					t.Error("want error for unknown exporter")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTracingExporter(%q) = %v", tt.name, err)
			}
			if exp == nil {
				t.Error("exporter is nil")
			}
		})
	}
}

func TestNewTracingExporter_OTLPRequiresEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")

	if _, err := NewTracingExporter(context.Background(), "otlp"); err == nil {
		t.Error("want error when no OTLP endpoint is configured")
	}
}

func TestNewMetricsReader(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"stdout", false},
		{"prometheus", false},
		{"none", false},
		{"", false},
		{"statsd", true},
	}

	for _, tt := range tests {
		t.Run("exporter="+tt.name, func(t *testing.T) {
			reader, err := NewMetricsReader(context.Background(), tt.name)
			if tt.wantErr {
				if err == nil {
					t.Error("want error for unknown exporter")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewMetricsReader(%q) = %v", tt.name, err)
			}
			if reader == nil {
				t.Error("reader is nil")
			}
		})
	}
}

func TestNewMetricsReader_OTLPRequiresEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")

	if _, err := NewMetricsReader(context.Background(), "otlp"); err == nil {
		t.Error("want error when no OTLP endpoint is configured")
	}
}
