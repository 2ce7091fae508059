/*
Package singularity guarantees at most one live instance per payload type,
with explicit, caller-controlled creation and destruction.

# Overview

singularity is a lifetime-management primitive, not an object system or a
service locator. Unlike the classic singleton it exposes no global access
and requires no default constructor: the caller constructs the single
instance through a factory, receives a reference, passes that reference
to dependents like any other value, and later destroys it explicitly.
The lifetime of the instance is exactly the lifetime of its singularity.

Creating twice, destroying twice, or destroying under a different locking
policy than the matching create are programming errors and are reported
as distinct errors (or fatal assertions, depending on the configured
error mode).

# Basic Usage

	type Horizon struct {
	    Counter int
	}

	mgr := singularity.New[Horizon]()

	h, err := mgr.Create(ctx, singularity.Bind1(func(n int) *Horizon {
	    return &Horizon{Counter: n}
	}, 3))
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(h.Counter) // 3

	// ... pass h to dependents ...

	if err := mgr.Destroy(ctx); err != nil {
	    log.Fatal(err)
	}

# Locking Policies

The create/destroy transitions are guarded by a locking policy, selected
per manager. The default SingleThreaded policy is free and provides no
cross-goroutine protection; MultiThreaded serializes all create/destroy
calls for a payload type behind one process-wide mutex:

	mgr := singularity.New[Horizon](
	    singularity.WithPolicy(policy.MultiThreaded()),
	)

Create and destroy must agree on the policy. A destroy issued under a
different policy than the matching create fails with
ErrThreadingMismatch rather than tearing down the instance.

The policy guards only the registry transitions. The instance's own
fields are not protected after Create returns; callers needing that add
their own synchronization.

# Destruction

Destroy invalidates every previously returned reference; nothing revokes
them, so callers must not retain a reference past the Destroy call. If
the payload implements io.Closer, Close runs during Destroy.

# Observability

Structured logging uses log/slog; metrics and tracing use OpenTelemetry
and are opt-in with no-op defaults. See the observability subpackage and
the WithLogger, WithMetrics, and WithTracing options.
*/
package singularity
