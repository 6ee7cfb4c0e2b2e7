package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/config"
	"github.com/randalmurphal/msgtemplate/pkg/msgtemplate/observability"
)

// telemetry owns the SDK providers installed for -metrics and -tracing.
// Spans are written to w as they end; metrics are collected by flush.
type telemetry struct {
	w       io.Writer
	reader  *sdkmetric.ManualReader
	meters  *sdkmetric.MeterProvider
	tracers *sdktrace.TracerProvider

	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

func newTelemetry(w io.Writer, s config.Settings) (*telemetry, error) {
	t := &telemetry{
		w:       w,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}

	if s.Metrics {
		t.reader = sdkmetric.NewManualReader()
		t.meters = sdkmetric.NewMeterProvider(sdkmetric.WithReader(t.reader))
		m, err := observability.NewMetricsRecorderFromProvider(t.meters)
		if err != nil {
			_ = t.meters.Shutdown(context.Background())
			return nil, fmt.Errorf("init metrics: %w", err)
		}
		t.metrics = m
	}

	if s.Tracing {
		t.tracers = sdktrace.NewTracerProvider(sdktrace.WithSyncer(&spanWriter{w: w}))
		t.spans = observability.NewSpanManagerFromProvider(t.tracers)
	}
	return t, nil
}

// flush writes the collected metrics and shuts both providers down.
func (t *telemetry) flush(ctx context.Context) error {
	var errs []error
	if t.tracers != nil {
		errs = append(errs, t.tracers.Shutdown(ctx))
	}
	if t.meters != nil {
		var rm metricdata.ResourceMetrics
		if err := t.reader.Collect(ctx, &rm); err != nil {
			errs = append(errs, fmt.Errorf("collect metrics: %w", err))
		} else {
			writeMetrics(t.w, &rm)
		}
		errs = append(errs, t.meters.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// writeMetrics prints one line per data point.
func writeMetrics(w io.Writer, rm *metricdata.ResourceMetrics) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					fmt.Fprintf(w, "metric name=%s%s value=%d\n", m.Name, formatAttrs(dp.Attributes.ToSlice()), dp.Value)
				}
			case metricdata.Histogram[int64]:
				for _, dp := range data.DataPoints {
					fmt.Fprintf(w, "metric name=%s%s count=%d sum=%d\n", m.Name, formatAttrs(dp.Attributes.ToSlice()), dp.Count, dp.Sum)
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					fmt.Fprintf(w, "metric name=%s%s count=%d sum=%.3f\n", m.Name, formatAttrs(dp.Attributes.ToSlice()), dp.Count, dp.Sum)
				}
			}
		}
	}
}

// spanWriter is a span exporter that prints each finished span as a line.
type spanWriter struct {
	w io.Writer
}

// Compile-time interface check.
var _ sdktrace.SpanExporter = (*spanWriter)(nil)

func (e *spanWriter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		_, err := fmt.Fprintf(e.w, "span name=%s status=%s duration=%s%s\n",
			s.Name(),
			s.Status().Code,
			s.EndTime().Sub(s.StartTime()).Round(time.Microsecond),
			formatAttrs(s.Attributes()),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *spanWriter) Shutdown(context.Context) error { return nil }

func formatAttrs(attrs []attribute.KeyValue) string {
	var b strings.Builder
	for _, kv := range attrs {
		fmt.Fprintf(&b, " %s=%s", kv.Key, kv.Value.Emit())
	}
	return b.String()
}
