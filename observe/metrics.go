package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records specification run metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordRun records an executed specification with duration and failure.
	RecordRun(ctx context.Context, meta SpecMeta, duration time.Duration, err error)

	// RecordSkip records a specification that did not run.
	RecordSkip(ctx context.Context, meta SpecMeta, reason string)
}

type metricsImpl struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	skipCount    metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewMetrics creates Metrics backed by the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		"spec.run.total",
		metric.WithDescription("Total number of specification runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"spec.run.errors",
		metric.WithDescription("Total number of failed specification runs"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	skipCount, err := meter.Int64Counter(
		"spec.run.skipped",
		metric.WithDescription("Total number of skipped specification runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"spec.run.duration_ms",
		metric.WithDescription("Specification run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		totalCount:   totalCount,
		errorCount:   errorCount,
		skipCount:    skipCount,
		durationHist: durationHist,
	}, nil
}

// RecordRun records metrics for an executed specification.
func (m *metricsImpl) RecordRun(ctx context.Context, meta SpecMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(meta.attributes()...)

	m.totalCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration)/float64(time.Millisecond), opt)
}

// RecordSkip records a skipped specification.
func (m *metricsImpl) RecordSkip(ctx context.Context, meta SpecMeta, reason string) {
	attrs := append(meta.attributes(), attribute.String("spec.skip_reason", reason))
	m.skipCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}

type noopMetrics struct{}

// NopMetrics returns Metrics that record nothing.
func NopMetrics() Metrics {
	return noopMetrics{}
}

func (noopMetrics) RecordRun(context.Context, SpecMeta, time.Duration, error) {}
func (noopMetrics) RecordSkip(context.Context, SpecMeta, string)              {}
