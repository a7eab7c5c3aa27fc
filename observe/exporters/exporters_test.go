package exporters

import (
	"bytes"
	"context"
	"errors"
	"testing"

	promclient "github.com/prometheus/client_golang/prometheus"
)

func TestExporter_InvalidName(t *testing.T) {
	_, err := NewTracingExporter(context.Background(), "invalid")
	if !errors.Is(err, ErrUnknownExporter) {
		t.Fatalf("expected ErrUnknownExporter, got: %v", err)
	}

	_, err = NewMetricsReader(context.Background(), "badvalue")
	if !errors.Is(err, ErrUnknownExporter) {
		t.Fatalf("expected ErrUnknownExporter, got: %v", err)
	}
}

func TestExporter_StdoutTracing(t *testing.T) {
	var buf bytes.Buffer
	exp, err := NewTracingExporter(context.Background(), "stdout", WithWriter(&buf))
	if err != nil {
		t.Fatalf("failed to create stdout tracing exporter: %v", err)
	}
	if exp == nil {
		t.Fatal("expected non-nil exporter")
	}
}

func TestExporter_StdoutMetrics(t *testing.T) {
	reader, err := NewMetricsReader(context.Background(), "stdout", WithWriter(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("failed to create stdout metrics reader: %v", err)
	}
	if reader == nil {
		t.Fatal("expected non-nil reader")
	}
}

func TestExporter_EndpointRequired(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_JAEGER_ENDPOINT", "")

	tests := []struct {
		name string
		make func() error
	}{
		{"otlp traces", func() error {
			_, err := NewTracingExporter(context.Background(), "otlp")
			return err
		}},
		{"jaeger traces", func() error {
			_, err := NewTracingExporter(context.Background(), "jaeger")
			return err
		}},
		{"otlp metrics", func() error {
			_, err := NewMetricsReader(context.Background(), "otlp")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.make(); !errors.Is(err, ErrEndpointNotConfigured) {
				t.Errorf("expected ErrEndpointNotConfigured, got: %v", err)
			}
		})
	}
}

func TestExporter_OtlpWithEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4317")

	exp, err := NewTracingExporter(context.Background(), "otlp")
	if err != nil {
		t.Fatalf("failed to create OTLP exporter with endpoint: %v", err)
	}
	if exp == nil {
		t.Fatal("expected non-nil exporter")
	}
}

func TestExporter_PrometheusRepeatable(t *testing.T) {
	for i := 0; i < 2; i++ {
		reader, err := NewMetricsReader(context.Background(), "prometheus")
		if err != nil {
			t.Fatalf("attempt %d: failed to create Prometheus reader: %v", i, err)
		}
		if reader == nil {
			t.Fatalf("attempt %d: expected non-nil reader", i)
		}
	}
}

func TestExporter_PrometheusCustomRegisterer(t *testing.T) {
	reg := promclient.NewRegistry()
	reader, err := NewMetricsReader(context.Background(), "prometheus", WithRegisterer(reg))
	if err != nil {
		t.Fatalf("failed to create Prometheus reader: %v", err)
	}
	if reader == nil {
		t.Fatal("expected non-nil reader")
	}
}

func TestExporter_None(t *testing.T) {
	if _, err := NewTracingExporter(context.Background(), "none"); err != nil {
		t.Fatalf("failed to create none exporter: %v", err)
	}
	if _, err := NewMetricsReader(context.Background(), ""); err != nil {
		t.Fatalf("failed to create none metrics reader: %v", err)
	}
}
