// Package observability provides production-grade observability features
// for singularity: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// LogCreate logs a successful instance creation.
func LogCreate(logger *slog.Logger, typeName, instanceID string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("instance created",
		slog.String("type", typeName),
		slog.String("instance_id", instanceID),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogDestroy logs a successful instance destruction.
func LogDestroy(logger *slog.Logger, typeName, instanceID string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("instance destroyed",
		slog.String("type", typeName),
		slog.String("instance_id", instanceID),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogViolation logs a lifetime violation (double create, double destroy,
// or policy mismatch).
func LogViolation(logger *slog.Logger, op, typeName string, err error) {
	if logger == nil {
		return
	}
	logger.Error("lifetime violation",
		slog.String("op", op),
		slog.String("type", typeName),
		slog.String("error", err.Error()),
	)
}

// LogFactoryError logs a factory failure during create (non-violating;
// the registry state is untouched).
func LogFactoryError(logger *slog.Logger, typeName string, err error) {
	if logger == nil {
		return
	}
	logger.Error("factory failed",
		slog.String("type", typeName),
		slog.String("error", err.Error()),
	)
}

// LogCloseError logs a payload Close failure during destroy. The destroy
// transition still completes.
func LogCloseError(logger *slog.Logger, typeName, instanceID string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("payload close failed",
		slog.String("type", typeName),
		slog.String("instance_id", instanceID),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000.0
	}
}
