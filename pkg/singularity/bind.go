package singularity

// Factory constructs the payload instance inside the guarded section of a
// Create call. It must return a non-nil instance or an error. The manager
// invokes the factory at most once per Create; a failure leaves the
// registry untouched.
type Factory[T any] func() (*T, error)

// MaxConstructorArity is the upper bound on positional constructor
// arguments covered by the Bind family. Raising it means extending the
// family with further binders.
const MaxConstructorArity = 8

// The Bind family adapts plain constructors of fixed arity into
// factories. Each binder captures its arguments once and forwards them
// unmodified to the constructor when Create runs, so every call site is
// checked against an exact positional signature at compile time. Value
// arguments are forwarded by value, pointer arguments by identity.
//
// Constructors that can fail should skip Bind and hand Create a Factory
// directly.

// Bind0 adapts a zero-argument constructor.
func Bind0[T any](ctor func() *T) Factory[T] {
	return func() (*T, error) { return ctor(), nil }
}

// Bind1 adapts a one-argument constructor, capturing a0.
func Bind1[T, A0 any](ctor func(A0) *T, a0 A0) Factory[T] {
	return func() (*T, error) { return ctor(a0), nil }
}

// Bind2 adapts a two-argument constructor.
func Bind2[T, A0, A1 any](ctor func(A0, A1) *T, a0 A0, a1 A1) Factory[T] {
	return func() (*T, error) { return ctor(a0, a1), nil }
}

// Bind3 adapts a three-argument constructor.
func Bind3[T, A0, A1, A2 any](ctor func(A0, A1, A2) *T, a0 A0, a1 A1, a2 A2) Factory[T] {
	return func() (*T, error) { return ctor(a0, a1, a2), nil }
}

// Bind4 adapts a four-argument constructor.
func Bind4[T, A0, A1, A2, A3 any](ctor func(A0, A1, A2, A3) *T, a0 A0, a1 A1, a2 A2, a3 A3) Factory[T] {
	return func() (*T, error) { return ctor(a0, a1, a2, a3), nil }
}

// Bind5 adapts a five-argument constructor.
func Bind5[T, A0, A1, A2, A3, A4 any](ctor func(A0, A1, A2, A3, A4) *T, a0 A0, a1 A1, a2 A2, a3 A3, a4 A4) Factory[T] {
	return func() (*T, error) { return ctor(a0, a1, a2, a3, a4), nil }
}

// Bind6 adapts a six-argument constructor.
func Bind6[T, A0, A1, A2, A3, A4, A5 any](ctor func(A0, A1, A2, A3, A4, A5) *T, a0 A0, a1 A1, a2 A2, a3 A3, a4 A4, a5 A5) Factory[T] {
	return func() (*T, error) { return ctor(a0, a1, a2, a3, a4, a5), nil }
}

// Bind7 adapts a seven-argument constructor.
func Bind7[T, A0, A1, A2, A3, A4, A5, A6 any](ctor func(A0, A1, A2, A3, A4, A5, A6) *T, a0 A0, a1 A1, a2 A2, a3 A3, a4 A4, a5 A5, a6 A6) Factory[T] {
	return func() (*T, error) { return ctor(a0, a1, a2, a3, a4, a5, a6), nil }
}

// Bind8 adapts an eight-argument constructor.
func Bind8[T, A0, A1, A2, A3, A4, A5, A6, A7 any](ctor func(A0, A1, A2, A3, A4, A5, A6, A7) *T, a0 A0, a1 A1, a2 A2, a3 A3, a4 A4, a5 A5, a6 A6, a7 A7) Factory[T] {
	return func() (*T, error) { return ctor(a0, a1, a2, a3, a4, a5, a6, a7), nil }
}
