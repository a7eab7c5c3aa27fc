package observe

import (
	"context"
	"time"
)

// StepFunc is a unit of specification work.
type StepFunc func(ctx context.Context) error

// Middleware wraps specification runs with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: Wrap returns a StepFunc that is safe for concurrent use.
//   - Context: the span context is propagated to the wrapped step.
//   - Errors: errors from the wrapped step are recorded and returned unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware. Nil components are replaced by no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = NopTracer()
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps fn with a span, run metrics and a completion log line.
func (m *Middleware) Wrap(meta SpecMeta, fn StepFunc) StepFunc {
	return func(ctx context.Context) error {
		ctx, span := m.tracer.StartSpan(ctx, meta)

		start := time.Now()
		err := fn(ctx)
		duration := time.Since(start)

		m.tracer.EndSpan(span, err)
		m.metrics.RecordRun(ctx, meta, duration, err)

		fields := []Field{
			{Key: "duration_ms", Value: float64(duration) / float64(time.Millisecond)},
		}
		logger := m.logger.WithSpec(meta)
		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			logger.Error(ctx, "specification failed", fields...)
		} else {
			logger.Info(ctx, "specification observed", fields...)
		}

		return err
	}
}

// Skipped records a specification that was not run.
func (m *Middleware) Skipped(ctx context.Context, meta SpecMeta, reason string) {
	m.metrics.RecordSkip(ctx, meta, reason)
	m.logger.WithSpec(meta).Warn(ctx, "specification skipped", Field{Key: "reason", Value: reason})
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
