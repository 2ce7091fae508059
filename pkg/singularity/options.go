package singularity

import (
	"log/slog"

	"github.com/boost-vault/Singularity/pkg/singularity/observability"
	"github.com/boost-vault/Singularity/pkg/singularity/policy"
	"github.com/boost-vault/Singularity/pkg/singularity/registry"
)

// managerConfig holds configuration for a Manager.
type managerConfig struct {
	policy   policy.Locking
	registry *registry.Registry
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
}

// defaultManagerConfig returns the default manager configuration:
// single-threaded policy, the shared process-wide registry, no logging,
// no-op metrics and tracing.
func defaultManagerConfig() managerConfig {
	return managerConfig{
		policy:   policy.SingleThreaded(),
		registry: registry.Default(),
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
	}
}

// Option configures a Manager.
type Option func(*managerConfig)

// WithPolicy selects the locking policy guarding create/destroy.
// Default: policy.SingleThreaded().
//
// The policy's Kind is part of the instance slot key; create and destroy
// must use managers with the same Kind for a given payload type.
func WithPolicy(p policy.Locking) Option {
	return func(c *managerConfig) {
		if p != nil {
			c.policy = p
		}
	}
}

// WithRegistry points the manager at a private registry instead of the
// shared process-wide one. Mainly useful for tests that need isolated
// lifetime state.
func WithRegistry(r *registry.Registry) Option {
	return func(c *managerConfig) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithLogger enables structured logging of create/destroy transitions
// and violations. Default: no logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *managerConfig) {
		c.logger = l
	}
}

// WithMetrics sets the metrics recorder. Default: no-op.
//
// Example:
//
//	mgr := singularity.New[Horizon](
//	    singularity.WithMetrics(observability.NewMetricsRecorder()),
//	)
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *managerConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracing sets the span manager. Default: no-op.
func WithTracing(s observability.SpanManager) Option {
	return func(c *managerConfig) {
		if s != nil {
			c.spans = s
		}
	}
}
