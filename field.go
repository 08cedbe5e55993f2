package rlnc

import "io"

// Field is the uniform arithmetic surface every backend (GF256, PrimeField)
// exposes. The encoder and decoder are written entirely against this
// interface so that the elimination, packing, and packet logic is shared
// across backends; only the arithmetic primitives, SafeCapacity, and byte
// encoding differ between them.
type Field interface {
	// Zero returns the additive identity of this field.
	Zero() Field
	// One returns the multiplicative identity of this field.
	One() Field
	// Add returns f + other.
	Add(other Field) Field
	// Sub returns f - other (the additive inverse of other, added to f).
	Sub(other Field) Field
	// Mul returns f * other.
	Mul(other Field) Field
	// Inv returns the multiplicative inverse of f, or an error if f is
	// zero (the zero element has no inverse).
	Inv() (Field, error)
	// IsZero reports whether f is the additive identity.
	IsZero() bool
	// Equal reports whether f and other represent the same field element.
	Equal(other Field) bool
	// FromBytes decodes a little-endian byte slice into a field element of
	// the same concrete type as f, zero-extending short input. It does not
	// mutate f; f is only used to select the concrete backend. Each backend
	// defines its own upper bound on len(b) and its own behavior past that
	// bound (GF256 reads only b[0] and ignores any further bytes; PrimeField
	// rejects input longer than SafeCapacity() so the result is always a
	// canonical, already-reduced scalar) — callers that need a
	// backend-independent bound should stay within SafeCapacity() bytes.
	FromBytes(b []byte) (Field, error)
	// Bytes returns the canonical little-endian encoding of f, truncated
	// to SafeCapacity() bytes.
	Bytes() []byte
	// SafeCapacity returns the number of little-endian bytes of arbitrary
	// content that can be embedded into one element of this field and
	// recovered losslessly.
	SafeCapacity() int
	// Random samples a uniformly distributed element of this field,
	// reading entropy from rng. The caller supplies the source; this
	// package never reads from crypto/rand or math/rand itself.
	Random(rng io.Reader) (Field, error)
}
