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

// MetricsRecorder records singularity lifetime metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCreate records a create attempt with its duration and error status.
	RecordCreate(ctx context.Context, typeName string, duration time.Duration, err error)

	// RecordDestroy records a destroy attempt with its duration and error status.
	RecordDestroy(ctx context.Context, typeName string, duration time.Duration, err error)

	// RecordViolation records a lifetime violation for the given operation.
	RecordViolation(ctx context.Context, op, typeName string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	creates    metric.Int64Counter
	destroys   metric.Int64Counter
	violations metric.Int64Counter
	live       metric.Int64UpDownCounter
	opLatency  metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("singularity")

	creates, err := meter.Int64Counter("singularity.creates",
		metric.WithDescription("Number of create attempts"),
	)
	if err != nil {
		return nil, err
	}

	destroys, err := meter.Int64Counter("singularity.destroys",
		metric.WithDescription("Number of destroy attempts"),
	)
	if err != nil {
		return nil, err
	}

	violations, err := meter.Int64Counter("singularity.violations",
		metric.WithDescription("Number of lifetime violations"),
	)
	if err != nil {
		return nil, err
	}

	live, err := meter.Int64UpDownCounter("singularity.instances.live",
		metric.WithDescription("Number of live managed instances"),
	)
	if err != nil {
		return nil, err
	}

	opLatency, err := meter.Float64Histogram("singularity.op.latency_ms",
		metric.WithDescription("Create/destroy latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		creates:    creates,
		destroys:   destroys,
		violations: violations,
		live:       live,
		opLatency:  opLatency,
	}, nil
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

// RecordCreate records a create attempt.
func (m *otelMetrics) RecordCreate(ctx context.Context, typeName string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("type", typeName),
		attribute.String("op", "create"),
	}

	m.creates.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.opLatency.Record(ctx, float64(duration.Microseconds())/1000.0, metric.WithAttributes(attrs...))

	if err == nil {
		m.live.Add(ctx, 1, metric.WithAttributes(attribute.String("type", typeName)))
	}
}

// RecordDestroy records a destroy attempt.
func (m *otelMetrics) RecordDestroy(ctx context.Context, typeName string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("type", typeName),
		attribute.String("op", "destroy"),
	}

	m.destroys.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.opLatency.Record(ctx, float64(duration.Microseconds())/1000.0, metric.WithAttributes(attrs...))

	if err == nil {
		m.live.Add(ctx, -1, metric.WithAttributes(attribute.String("type", typeName)))
	}
}

// RecordViolation records a lifetime violation.
func (m *otelMetrics) RecordViolation(ctx context.Context, op, typeName string) {
	m.violations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("type", typeName),
	))
}
