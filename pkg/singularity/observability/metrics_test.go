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

// setupMetricsTest creates a test meter provider and returns a function to collect metrics.
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

// collectMetrics collects all metrics from the reader.
func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)
	return &rm
}

// findMetric finds a metric by name in the collected data.
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

func TestNewMetricsRecorder(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop, "Expected real metrics recorder, got noop")
}

func TestRecordCreate(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("records create count", func(t *testing.T) {
		m.RecordCreate(ctx, "main.Horizon", 50*time.Microsecond, nil)

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "singularity.creates")
		require.NotNil(t, metric)

		sum, ok := metric.Data.(metricdata.Sum[int64])
		require.True(t, ok, "Expected Sum type")
		require.NotEmpty(t, sum.DataPoints)

		found := false
		for _, dp := range sum.DataPoints {
			for _, attr := range dp.Attributes.ToSlice() {
				if attr.Key == "type" && attr.Value.AsString() == "main.Horizon" {
					found = true
					assert.GreaterOrEqual(t, dp.Value, int64(1))
				}
			}
		}
		assert.True(t, found, "Expected to find datapoint for type=main.Horizon")
	})

	t.Run("records latency", func(t *testing.T) {
		m.RecordCreate(ctx, "main.Horizon", 100*time.Microsecond, nil)

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "singularity.op.latency_ms")
		require.NotNil(t, metric)

		hist, ok := metric.Data.(metricdata.Histogram[float64])
		require.True(t, ok, "Expected Histogram type")
		require.NotEmpty(t, hist.DataPoints)
	})

	t.Run("increments live gauge on success only", func(t *testing.T) {
		m.RecordCreate(ctx, "gauge.Success", 10*time.Microsecond, nil)
		m.RecordCreate(ctx, "gauge.Failure", 10*time.Microsecond, errors.New("already created"))

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "singularity.instances.live")
		require.NotNil(t, metric)

		sum, ok := metric.Data.(metricdata.Sum[int64])
		require.True(t, ok)

		for _, dp := range sum.DataPoints {
			for _, attr := range dp.Attributes.ToSlice() {
				if attr.Key != "type" {
					continue
				}
				switch attr.Value.AsString() {
				case "gauge.Success":
					assert.Equal(t, int64(1), dp.Value)
				case "gauge.Failure":
					assert.Equal(t, int64(0), dp.Value)
				}
			}
		}
	})
}

func TestRecordDestroy(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("records destroy count", func(t *testing.T) {
		m.RecordDestroy(ctx, "main.Horizon", 30*time.Microsecond, nil)

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "singularity.destroys")
		require.NotNil(t, metric)

		sum, ok := metric.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		require.NotEmpty(t, sum.DataPoints)
	})

	t.Run("balances live gauge against create", func(t *testing.T) {
		m.RecordCreate(ctx, "gauge.Balanced", 10*time.Microsecond, nil)
		m.RecordDestroy(ctx, "gauge.Balanced", 10*time.Microsecond, nil)

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "singularity.instances.live")
		require.NotNil(t, metric)

		sum, ok := metric.Data.(metricdata.Sum[int64])
		require.True(t, ok)

		for _, dp := range sum.DataPoints {
			for _, attr := range dp.Attributes.ToSlice() {
				if attr.Key == "type" && attr.Value.AsString() == "gauge.Balanced" {
					assert.Equal(t, int64(0), dp.Value)
				}
			}
		}
	})
}

func TestRecordViolation(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordViolation(ctx, "destroy", "main.Horizon")

	rm := collectMetrics(t, reader)
	metric := findMetric(rm, "singularity.violations")
	require.NotNil(t, metric)

	sum, ok := metric.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.NotEmpty(t, sum.DataPoints)

	found := false
	for _, dp := range sum.DataPoints {
		var op, typeName string
		for _, attr := range dp.Attributes.ToSlice() {
			switch attr.Key {
			case "op":
				op = attr.Value.AsString()
			case "type":
				typeName = attr.Value.AsString()
			}
		}
		if op == "destroy" && typeName == "main.Horizon" {
			found = true
			assert.Equal(t, int64(1), dp.Value)
		}
	}
	assert.True(t, found, "Expected violation datapoint with op and type attributes")
}
