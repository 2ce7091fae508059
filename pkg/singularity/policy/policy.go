// Package policy provides the locking strategies that guard singularity
// create/destroy transitions.
//
// A policy is a strategy object, not a base class: any value implementing
// Locking participates in lifetime management. Two policies are built in:
//
//   - SingleThreaded: no-op guard for callers that guarantee
//     non-concurrent use.
//   - MultiThreaded: a process-wide mutex per payload type.
//
// The policy's Kind is part of the registry slot key, so destroying an
// instance with a different policy than the one it was created under is
// detectable (and reported as a threading mismatch).
package policy

import (
	"reflect"
	"sync"
)

// Kind identifies a locking policy. It is part of the instance slot key:
// create and destroy must agree on the Kind for a given payload type.
type Kind string

// Built-in policy kinds.
const (
	KindSingleThreaded Kind = "single_threaded"
	KindMultiThreaded  Kind = "multi_threaded"
)

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// Locking is the mutual-exclusion strategy around one create or destroy
// call. Acquire may block; it never spawns a goroutine. Implementations
// must pair every Acquire with exactly one Release for the same type.
//
// Custom policies are allowed. A custom policy must return a Kind distinct
// from the built-in ones; the Kind is the policy's identity for mismatch
// detection, not the Go type of the implementation.
type Locking interface {
	// Kind returns the policy's identity.
	Kind() Kind

	// Acquire takes the guard for payload type t.
	Acquire(t reflect.Type)

	// Release returns the guard for payload type t.
	Release(t reflect.Type)
}

// singleThreaded is the no-op policy.
type singleThreaded struct{}

// SingleThreaded returns the no-op locking policy. Acquire and Release are
// free and provide no cross-goroutine protection; concurrent create/destroy
// calls under this policy race, and avoiding that is the caller's job.
func SingleThreaded() Locking { return singleThreaded{} }

func (singleThreaded) Kind() Kind { return KindSingleThreaded }

func (singleThreaded) Acquire(_ reflect.Type) {}

func (singleThreaded) Release(_ reflect.Type) {}

// locks is the process-wide lock table for the multi-threaded policy.
// There is exactly one mutex per payload type, shared by every
// MultiThreaded value and every constructor signature. Policy identity,
// not call signature, is the synchronization key.
var locks = struct {
	mu    sync.Mutex
	perTy map[reflect.Type]*sync.Mutex
}{perTy: make(map[reflect.Type]*sync.Mutex)}

// lockFor returns the shared mutex for t, creating it on first use.
func lockFor(t reflect.Type) *sync.Mutex {
	locks.mu.Lock()
	defer locks.mu.Unlock()
	m, ok := locks.perTy[t]
	if !ok {
		m = &sync.Mutex{}
		locks.perTy[t] = m
	}
	return m
}

// multiThreaded serializes create/destroy per payload type.
type multiThreaded struct{}

// MultiThreaded returns the mutex-backed locking policy. Acquire blocks the
// calling goroutine until the per-type lock is held; there is no timeout
// and no cancellation hook.
func MultiThreaded() Locking { return multiThreaded{} }

func (multiThreaded) Kind() Kind { return KindMultiThreaded }

func (multiThreaded) Acquire(t reflect.Type) { lockFor(t).Lock() }

func (multiThreaded) Release(t reflect.Type) { lockFor(t).Unlock() }
