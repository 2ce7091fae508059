package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("singularity")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestStartCreateSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	ctx := context.Background()
	newCtx, span := m.StartCreateSpan(ctx, "main.Horizon")
	require.NotNil(t, span)
	assert.NotEqual(t, ctx, newCtx)

	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "singularity.create", spans[0].Name)

	var typeName string
	for _, attr := range spans[0].Attributes {
		if attr.Key == "payload.type" {
			typeName = attr.Value.AsString()
		}
	}
	assert.Equal(t, "main.Horizon", typeName)
}

func TestStartDestroySpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	_, span := m.StartDestroySpan(context.Background(), "main.Horizon")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "singularity.destroy", spans[0].Name)
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	t.Run("records error status", func(t *testing.T) {
		exporter.Reset()

		_, span := m.StartDestroySpan(context.Background(), "main.Horizon")
		m.EndSpanWithError(span, errors.New("no live instance to destroy"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		require.NotEmpty(t, spans[0].Events)
		assert.Equal(t, "exception", spans[0].Events[0].Name)
	})

	t.Run("sets ok status on success", func(t *testing.T) {
		exporter.Reset()

		_, span := m.StartCreateSpan(context.Background(), "main.Horizon")
		m.EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("tolerates nil span", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.EndSpanWithError(nil, errors.New("x"))
		})
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	ctx, span := m.StartCreateSpan(context.Background(), "main.Horizon")
	m.AddSpanEvent(ctx, "factory.invoked", attribute.String("instance_id", "abc"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.NotEmpty(t, spans[0].Events)
	assert.Equal(t, "factory.invoked", spans[0].Events[0].Name)
}

func TestAddSpanEventWithoutSpan(t *testing.T) {
	_, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()
	assert.NotPanics(t, func() {
		m.AddSpanEvent(context.Background(), "orphan.event")
	})
}
