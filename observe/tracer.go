package observe

import (
	"context"
	"path"
	"reflect"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// SpecMeta describes a specification for telemetry purposes.
type SpecMeta struct {
	ID       string   // Fully qualified ID (package.name or just name)
	Package  string   // Short package name (may be empty)
	Name     string   // Specification name (required)
	Tolerant bool     // Whether the specification type tolerates errors
	Tags     []string // Free-form tags (optional)
}

// MetaOf derives SpecMeta from the dynamic type of v.
func MetaOf(v any) SpecMeta {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return SpecMeta{Name: "<nil>"}
	}

	name := t.Name()
	if name == "" {
		name = t.String()
	}
	var pkg string
	if t.PkgPath() != "" {
		pkg = path.Base(t.PkgPath())
	}
	return SpecMeta{Package: pkg, Name: name}
}

// Validate reports whether the metadata is usable.
func (m SpecMeta) Validate() error {
	if m.Name == "" {
		return ErrMissingSpecName
	}
	return nil
}

// SpanName returns the deterministic span name for this specification.
// Format: spec.observe.<package>.<name> or spec.observe.<name>
func (m SpecMeta) SpanName() string {
	if m.Package != "" {
		return "spec.observe." + m.Package + "." + m.Name
	}
	return "spec.observe." + m.Name
}

// SpecID returns the fully qualified specification identifier.
func (m SpecMeta) SpecID() string {
	if m.ID != "" {
		return m.ID
	}
	if m.Package != "" {
		return m.Package + "." + m.Name
	}
	return m.Name
}

func (m SpecMeta) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("spec.id", m.SpecID()),
		attribute.String("spec.name", m.Name),
	}
	if m.Package != "" {
		attrs = append(attrs, attribute.String("spec.package", m.Package))
	}
	return attrs
}

// Tracer wraps OpenTelemetry tracing with specification span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a specification run.
	StartSpan(ctx context.Context, meta SpecMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with specification metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta SpecMeta) (context.Context, trace.Span) {
	attrs := append(meta.attributes(),
		attribute.Bool("spec.tolerant", meta.Tolerant),
		attribute.Bool("spec.error", false), // updated in EndSpan
	)
	if len(meta.Tags) > 0 {
		attrs = append(attrs, attribute.StringSlice("spec.tags", meta.Tags))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("spec.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

// NopTracer returns a Tracer that records nothing.
func NopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta SpecMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
