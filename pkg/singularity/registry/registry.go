package registry

import (
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Slot is one occupied instance slot. Instance holds the owning reference
// to the payload (a *T stored as any); ID and CreatedAt are diagnostic
// metadata surfaced in logs and spans.
type Slot struct {
	Instance  any
	ID        uuid.UUID
	CreatedAt time.Time
}

// Registry is the storage for created flags and instance slots.
//
// The internal mutex protects map structure only. It does not make a
// create or destroy transition atomic — several registry calls make up one
// transition, and holding the guarded section together is the locking
// policy's responsibility. The mutex is here because the maps are shared
// across all payload types, so unrelated types touched from different
// goroutines must not corrupt each other's storage.
type Registry struct {
	mu      sync.RWMutex
	created map[reflect.Type]bool
	slots   map[Key]Slot
}

// New creates an empty registry. Most callers want Default; a private
// registry is useful for tests that need isolated state.
func New() *Registry {
	return &Registry{
		created: make(map[reflect.Type]bool),
		slots:   make(map[Key]Slot),
	}
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry. All managers share it unless
// explicitly given another one.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// Created reports the created flag for payload type t.
func (r *Registry) Created(t reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.created[t]
}

// SetCreated sets the created flag for payload type t.
func (r *Registry) SetCreated(t reflect.Type, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if created {
		r.created[t] = true
	} else {
		delete(r.created, t)
	}
}

// Slot returns the slot for k and whether it is occupied.
func (r *Registry) Slot(k Key) (Slot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.slots[k]
	return s, ok
}

// SetSlot stores s under k, replacing any previous occupant.
func (r *Registry) SetSlot(k Key, s Slot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slots[k] = s
}

// ClearSlot empties the slot for k.
func (r *Registry) ClearSlot(k Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slots, k)
}

// Len returns the number of occupied slots.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.slots)
}

// Reset clears all flags and slots. Intended for tests; it bypasses the
// locking policies entirely, so it must not run concurrently with
// create/destroy calls.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.created)
	clear(r.slots)
}
