package singularity

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/boost-vault/Singularity/pkg/singularity/config"
	"github.com/boost-vault/Singularity/pkg/singularity/observability"
	"github.com/boost-vault/Singularity/pkg/singularity/policy"
)

// Configure applies process-wide settings and returns the manager options
// they imply. The error mode is installed globally; the returned options
// carry the policy, logger, metrics, and tracing choices to hand to New.
//
// Example:
//
//	cfg, err := config.FromFile("singularity.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	settings, err := cfg.Settings()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts, err := singularity.Configure(settings)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mgr := singularity.New[Horizon](opts...)
func Configure(s config.Settings) ([]Option, error) {
	switch s.ErrorMode {
	case "", "recover":
		SetErrorMode(ModeRecover)
	case "fatal":
		SetErrorMode(ModeFatal)
	default:
		return nil, fmt.Errorf("singularity: unknown error_mode %q", s.ErrorMode)
	}

	var opts []Option

	switch s.Policy {
	case "", string(policy.KindSingleThreaded):
		opts = append(opts, WithPolicy(policy.SingleThreaded()))
	case string(policy.KindMultiThreaded):
		opts = append(opts, WithPolicy(policy.MultiThreaded()))
	default:
		return nil, fmt.Errorf("singularity: unknown policy %q", s.Policy)
	}

	level, err := parseLogLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))))

	if s.Metrics {
		opts = append(opts, WithMetrics(observability.NewMetricsRecorder()))
	}
	if s.Tracing {
		opts = append(opts, WithTracing(observability.NewSpanManager()))
	}

	return opts, nil
}

// parseLogLevel maps a settings string onto a slog.Level.
func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("singularity: unknown log_level %q", s)
	}
}
