package singularity

import (
	"context"
	"errors"
	"io"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/boost-vault/Singularity/pkg/singularity/observability"
	"github.com/boost-vault/Singularity/pkg/singularity/registry"
)

// Manager sequences the lifetime of the single T instance: acquire the
// policy guard, validate the current registry state, mutate it, release
// the guard. All work is synchronous on the calling goroutine; the only
// blocking behavior is guard acquisition under a mutex-backed policy.
//
// Managers are cheap values. Two managers for the same payload type with
// the same policy kind operate on the same process-wide state (unless one
// was given a private registry); create through one, destroy through the
// other.
type Manager[T any] struct {
	cfg managerConfig
}

// New creates a manager for payload type T.
// Defaults: single-threaded policy, shared process-wide registry, no
// logging, no-op metrics and tracing.
func New[T any](opts ...Option) *Manager[T] {
	cfg := defaultManagerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Manager[T]{cfg: cfg}
}

// payloadType returns the reflect.Type key for T.
func (m *Manager[T]) payloadType() reflect.Type {
	return registry.TypeOf[T]()
}

// slotKey returns the (type, policy) key for this manager's instances.
func (m *Manager[T]) slotKey() registry.Key {
	return registry.Key{Type: m.payloadType(), Policy: m.cfg.policy.Kind()}
}

// Created reports whether a live instance of T currently exists under any
// policy. The answer is advisory: without holding the policy guard it may
// be stale by the time the caller acts on it.
func (m *Manager[T]) Created() bool {
	return m.cfg.registry.Created(m.payloadType())
}

// Create constructs the single instance of T via the supplied factory and
// returns a reference to it. The registry remains the owner; the
// reference becomes invalid after Destroy and must not be retained
// past it.
//
// Fails with ErrAlreadyCreated if an instance of T is already live,
// regardless of which policy or constructor signature created it. A
// factory error is returned as a FactoryError and leaves the registry
// untouched.
//
// ctx is used for tracing and metrics only; guard acquisition does not
// honor cancellation.
func (m *Manager[T]) Create(ctx context.Context, factory Factory[T]) (*T, error) {
	if factory == nil {
		panic("singularity: nil factory")
	}

	ty := m.payloadType()
	done := observability.TimedOperation()
	ctx, span := m.cfg.spans.StartCreateSpan(ctx, ty.String())

	instance, id, err := m.create(ty, factory)

	elapsed := done()
	m.cfg.spans.EndSpanWithError(span, err)
	m.cfg.metrics.RecordCreate(ctx, ty.String(), time.Duration(elapsed*float64(time.Millisecond)), err)

	switch {
	case err == nil:
		observability.LogCreate(m.cfg.logger, ty.String(), id.String(), elapsed)
		return instance, nil
	case errors.Is(err, ErrAlreadyCreated):
		observability.LogViolation(m.cfg.logger, "create", ty.String(), err)
		m.cfg.metrics.RecordViolation(ctx, "create", ty.String())
		return nil, fail(m.cfg.logger, err)
	default:
		observability.LogFactoryError(m.cfg.logger, ty.String(), err)
		return nil, err
	}
}

// create runs the guarded section of Create.
func (m *Manager[T]) create(ty reflect.Type, factory Factory[T]) (*T, uuid.UUID, error) {
	m.cfg.policy.Acquire(ty)
	defer m.cfg.policy.Release(ty)

	if m.cfg.registry.Created(ty) {
		return nil, uuid.Nil, &LifetimeError{Type: ty, Op: "create", Err: ErrAlreadyCreated}
	}

	instance, err := factory()
	if err != nil {
		return nil, uuid.Nil, &FactoryError{Type: ty, Err: err}
	}
	if instance == nil {
		return nil, uuid.Nil, &FactoryError{Type: ty, Err: errors.New("factory returned nil instance")}
	}

	id := uuid.New()
	m.cfg.registry.SetSlot(m.slotKey(), registry.Slot{
		Instance:  instance,
		ID:        id,
		CreatedAt: time.Now(),
	})
	m.cfg.registry.SetCreated(ty, true)
	return instance, id, nil
}

// Destroy tears down the single instance of T, invalidating every
// reference previously returned by Create.
//
// Fails with ErrAlreadyDestroyed if no instance of T is live, and with
// ErrThreadingMismatch if an instance is live but was created under a
// different locking policy than this manager's — in that case the
// instance stays intact and a destroy under the matching policy still
// succeeds.
//
// If the payload implements io.Closer, Close runs before the slot is
// cleared; a Close error is logged and does not block the transition.
func (m *Manager[T]) Destroy(ctx context.Context) error {
	ty := m.payloadType()
	done := observability.TimedOperation()
	ctx, span := m.cfg.spans.StartDestroySpan(ctx, ty.String())

	id, err := m.destroy(ty)

	elapsed := done()
	m.cfg.spans.EndSpanWithError(span, err)
	m.cfg.metrics.RecordDestroy(ctx, ty.String(), time.Duration(elapsed*float64(time.Millisecond)), err)

	if err != nil {
		observability.LogViolation(m.cfg.logger, "destroy", ty.String(), err)
		m.cfg.metrics.RecordViolation(ctx, "destroy", ty.String())
		return fail(m.cfg.logger, err)
	}

	observability.LogDestroy(m.cfg.logger, ty.String(), id.String(), elapsed)
	return nil
}

// destroy runs the guarded section of Destroy.
func (m *Manager[T]) destroy(ty reflect.Type) (uuid.UUID, error) {
	m.cfg.policy.Acquire(ty)
	defer m.cfg.policy.Release(ty)

	if !m.cfg.registry.Created(ty) {
		return uuid.Nil, &LifetimeError{Type: ty, Op: "destroy", Err: ErrAlreadyDestroyed}
	}

	key := m.slotKey()
	slot, ok := m.cfg.registry.Slot(key)
	if !ok {
		// Flag set but this policy's slot is empty: the instance was
		// created under a different policy.
		return uuid.Nil, &LifetimeError{Type: ty, Op: "destroy", Err: ErrThreadingMismatch}
	}

	if closer, ok := slot.Instance.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			observability.LogCloseError(m.cfg.logger, ty.String(), slot.ID.String(), err)
		}
	}

	m.cfg.registry.ClearSlot(key)
	m.cfg.registry.SetCreated(ty, false)
	return slot.ID, nil
}
