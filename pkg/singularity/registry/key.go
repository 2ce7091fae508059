package registry

import (
	"reflect"

	"github.com/boost-vault/Singularity/pkg/singularity/policy"
)

// Key identifies one instance slot: the payload type plus the locking
// policy it was created under.
type Key struct {
	Type   reflect.Type
	Policy policy.Kind
}

// IsZero reports whether the key is incomplete.
func (k Key) IsZero() bool { return k.Type == nil || k.Policy == "" }

// String returns a human-readable "type/policy" representation.
func (k Key) String() string {
	if k.Type == nil {
		return "<nil>/" + k.Policy.String()
	}
	return k.Type.String() + "/" + k.Policy.String()
}

// TypeOf returns the reflect.Type for payload type T without allocating
// a T value.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// KeyFor builds the slot key for payload type T under the given policy.
func KeyFor[T any](kind policy.Kind) Key {
	return Key{Type: TypeOf[T](), Policy: kind}
}
