package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer(meterName)

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartScanSpan starts a span covering every template read from a source.
	StartScanSpan(ctx context.Context, source, dialect string) (context.Context, trace.Span)

	// StartTemplateSpan starts a span for one template. It should be a child
	// of the scan span.
	StartTemplateSpan(ctx context.Context, index int) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct {
	// tracer overrides the package-level tracer when set.
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// NewSpanManagerFromProvider returns a SpanManager that starts spans on tp
// instead of the global tracer provider.
func NewSpanManagerFromProvider(tp trace.TracerProvider) SpanManager {
	return &otelSpanManager{tracer: tp.Tracer(meterName)}
}

func (m *otelSpanManager) tracerOrDefault() trace.Tracer {
	if m.tracer != nil {
		return m.tracer
	}
	return tracer
}

// StartScanSpan starts a span for a batch of templates.
func (m *otelSpanManager) StartScanSpan(ctx context.Context, source, dialect string) (context.Context, trace.Span) {
	return m.tracerOrDefault().Start(ctx, "msgtemplate.scan",
		trace.WithAttributes(
			attribute.String("template.source", source),
			attribute.String("template.dialect", dialect),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartTemplateSpan starts a span for a single template.
func (m *otelSpanManager) StartTemplateSpan(ctx context.Context, index int) (context.Context, trace.Span) {
	return m.tracerOrDefault().Start(ctx, "msgtemplate.template",
		trace.WithAttributes(
			attribute.Int("template.index", index),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
