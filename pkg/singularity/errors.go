package singularity

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for lifetime violations. Exactly three kinds exist; all
// are detected inside the guarded section and surfaced immediately in the
// configured error mode. None are retried and none leave a partial state
// transition behind.
var (
	// ErrAlreadyCreated indicates Create was called while an instance of
	// the payload type is already live (under any policy).
	ErrAlreadyCreated = errors.New("instance already created")

	// ErrAlreadyDestroyed indicates Destroy was called while no instance
	// of the payload type is live.
	ErrAlreadyDestroyed = errors.New("no live instance to destroy")

	// ErrThreadingMismatch indicates Destroy was called under a different
	// locking policy than the matching Create. This is a policy parameter
	// inconsistency across the create/destroy pair, not a transient
	// condition.
	ErrThreadingMismatch = errors.New("destroy policy does not match create policy")
)

// LifetimeError wraps a lifetime violation with the payload type and the
// operation that detected it.
type LifetimeError struct {
	// Type is the payload type the operation was issued for.
	Type reflect.Type
	// Op is the operation that failed ("create" or "destroy").
	Op string
	// Err is one of the sentinel errors above.
	Err error
}

// Error implements the error interface.
func (e *LifetimeError) Error() string {
	return fmt.Sprintf("singularity: %s %s: %v", e.Op, e.Type, e.Err)
}

// Unwrap returns the underlying sentinel for errors.Is support.
func (e *LifetimeError) Unwrap() error {
	return e.Err
}

// FactoryError wraps a failure of the caller-supplied factory during
// Create. The registry state is untouched when a factory fails.
type FactoryError struct {
	// Type is the payload type being constructed.
	Type reflect.Type
	// Err is the error the factory returned.
	Err error
}

// Error implements the error interface.
func (e *FactoryError) Error() string {
	return fmt.Sprintf("singularity: construct %s: %v", e.Type, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *FactoryError) Unwrap() error {
	return e.Err
}
