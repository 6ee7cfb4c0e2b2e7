package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest installs a test meter provider and returns its reader.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}

	return reader, cleanup
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return &rm
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumInt64 totals every data point of an int64 counter.
func sumInt64(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()
	require.NotNil(t, m)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "Expected Sum type")
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestNewMetricsRecorder(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop, "Expected real metrics recorder, got noop")
}

func TestNewMetricsRecorderFromProvider(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	recorder, err := NewMetricsRecorderFromProvider(provider)
	require.NoError(t, err)

	recorder.RecordParse(context.Background(), "permissive", 2, 1, time.Millisecond)

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(1), sumInt64(t, findMetric(rm, "msgtemplate.parse.count")))
	require.Len(t, rm.ScopeMetrics, 1)
	assert.Equal(t, "msgtemplate", rm.ScopeMetrics[0].Scope.Name)
}

func TestRecordParse(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics(otel.Meter(meterName))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordParse(ctx, "permissive", 3, 1, 2*time.Millisecond)
	m.RecordParse(ctx, "strict", 1, 0, time.Millisecond)

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(2), sumInt64(t, findMetric(rm, "msgtemplate.parse.count")))

	nodes := findMetric(rm, "msgtemplate.parse.nodes")
	require.NotNil(t, nodes)
	hist, ok := nodes.Data.(metricdata.Histogram[int64])
	require.True(t, ok, "Expected Histogram type")
	assert.Len(t, hist.DataPoints, 2)

	require.NotNil(t, findMetric(rm, "msgtemplate.parse.latency_ms"))
}

func TestRecordCacheLookup(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics(otel.Meter(meterName))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordCacheLookup(ctx, true)
	m.RecordCacheLookup(ctx, true)
	m.RecordCacheLookup(ctx, false)

	rm := collectMetrics(t, reader)
	metric := findMetric(rm, "msgtemplate.cache.lookups")
	require.NotNil(t, metric)

	sum, ok := metric.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	hits := int64(-1)
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value("hit"); ok && v.AsBool() {
			hits = dp.Value
		}
	}
	assert.Equal(t, int64(2), hits)
}

func TestRecordRender(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics(otel.Meter(meterName))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordRender(ctx, 0, nil)
	m.RecordRender(ctx, 2, errors.New("undefined property"))

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(2), sumInt64(t, findMetric(rm, "msgtemplate.render.count")))
	assert.Equal(t, int64(2), sumInt64(t, findMetric(rm, "msgtemplate.render.missing")))
	assert.Equal(t, int64(1), sumInt64(t, findMetric(rm, "msgtemplate.render.errors")))
}

func TestRecordCatalogSave(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics(otel.Meter(meterName))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordCatalogSave(ctx, "main.go", nil)
	m.RecordCatalogSave(ctx, "main.go", errors.New("closed"))

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(1), sumInt64(t, findMetric(rm, "msgtemplate.catalog.saves")))
	assert.Equal(t, int64(1), sumInt64(t, findMetric(rm, "msgtemplate.catalog.errors")))
}
