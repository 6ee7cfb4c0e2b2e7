package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records msgtemplate metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordParse records a completed parse with its node and property counts.
	RecordParse(ctx context.Context, dialect string, nodes, properties int, duration time.Duration)

	// RecordCacheLookup records a parse-cache lookup.
	RecordCacheLookup(ctx context.Context, hit bool)

	// RecordRender records a render with the number of unresolved properties.
	RecordRender(ctx context.Context, missing int, err error)

	// RecordCatalogSave records a catalog write for a source.
	RecordCatalogSave(ctx context.Context, source string, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	parses        metric.Int64Counter
	parseNodes    metric.Int64Histogram
	parseLatency  metric.Float64Histogram
	cacheLookups  metric.Int64Counter
	renders       metric.Int64Counter
	renderMissing metric.Int64Counter
	renderErrors  metric.Int64Counter
	catalogSaves  metric.Int64Counter
	catalogErrors metric.Int64Counter
}

// meterName is the instrumentation scope for meters and tracers.
const meterName = "msgtemplate"

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics(otel.Meter(meterName))
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates the msgtemplate instruments on meter.
func newOtelMetrics(meter metric.Meter) (*otelMetrics, error) {
	m := &otelMetrics{}
	var err error

	if m.parses, err = meter.Int64Counter("msgtemplate.parse.count",
		metric.WithDescription("Number of templates parsed"),
	); err != nil {
		return nil, err
	}

	if m.parseNodes, err = meter.Int64Histogram("msgtemplate.parse.nodes",
		metric.WithDescription("Nodes produced per parsed template"),
	); err != nil {
		return nil, err
	}

	if m.parseLatency, err = meter.Float64Histogram("msgtemplate.parse.latency_ms",
		metric.WithDescription("Parse latency in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}

	if m.cacheLookups, err = meter.Int64Counter("msgtemplate.cache.lookups",
		metric.WithDescription("Number of parse cache lookups"),
	); err != nil {
		return nil, err
	}

	if m.renders, err = meter.Int64Counter("msgtemplate.render.count",
		metric.WithDescription("Number of template renders"),
	); err != nil {
		return nil, err
	}

	if m.renderMissing, err = meter.Int64Counter("msgtemplate.render.missing",
		metric.WithDescription("Properties without a bound value at render time"),
	); err != nil {
		return nil, err
	}

	if m.renderErrors, err = meter.Int64Counter("msgtemplate.render.errors",
		metric.WithDescription("Number of failed renders"),
	); err != nil {
		return nil, err
	}

	if m.catalogSaves, err = meter.Int64Counter("msgtemplate.catalog.saves",
		metric.WithDescription("Number of catalog entries written"),
	); err != nil {
		return nil, err
	}

	if m.catalogErrors, err = meter.Int64Counter("msgtemplate.catalog.errors",
		metric.WithDescription("Number of failed catalog writes"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// NewMetricsRecorderFromProvider returns a MetricsRecorder whose instruments
// are created on mp instead of the global meter provider.
func NewMetricsRecorderFromProvider(mp metric.MeterProvider) (MetricsRecorder, error) {
	m, err := newOtelMetrics(mp.Meter(meterName))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RecordParse records a parse.
func (m *otelMetrics) RecordParse(ctx context.Context, dialect string, nodes, properties int, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("dialect", dialect))
	m.parses.Add(ctx, 1, attrs)
	m.parseNodes.Record(ctx, int64(nodes), attrs)
	m.parseLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

// RecordCacheLookup records a cache lookup.
func (m *otelMetrics) RecordCacheLookup(ctx context.Context, hit bool) {
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.Bool("hit", hit)))
}

// RecordRender records a render.
func (m *otelMetrics) RecordRender(ctx context.Context, missing int, err error) {
	m.renders.Add(ctx, 1)
	if missing > 0 {
		m.renderMissing.Add(ctx, int64(missing))
	}
	if err != nil {
		m.renderErrors.Add(ctx, 1)
	}
}

// RecordCatalogSave records a catalog write.
func (m *otelMetrics) RecordCatalogSave(ctx context.Context, source string, err error) {
	attrs := metric.WithAttributes(attribute.String("source", source))
	if err != nil {
		m.catalogErrors.Add(ctx, 1, attrs)
		return
	}
	m.catalogSaves.Add(ctx, 1, attrs)
}
