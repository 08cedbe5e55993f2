package rlnc

import (
	"fmt"
	"io"

	"filippo.io/edwards25519"
)

// primeFieldSafeCapacity is the number of little-endian bytes of arbitrary
// content that can be embedded in one PrimeField element and recovered
// losslessly. The field's order l = 2^252 + 27742317777372353535851937790883648493
// is strictly greater than 2^248, so any 31-byte value (zero-extended to 32
// bytes) is automatically a canonical, already-reduced scalar: encoding can
// never silently wrap modulo l the way embedding 32 raw bytes could.
const primeFieldSafeCapacity = 31

// PrimeField is a field element of the Ed25519 scalar field (order l, a
// ~253-bit prime), backed by filippo.io/edwards25519's constant-time Scalar
// arithmetic. It is the "large prime field" backend spec.md calls for: the
// field a caller would use if it later wants to commit to chunks with a
// Pedersen commitment scheme over the same curve group. This package never
// imports the curve-group or commitment machinery itself, only the scalar
// field.
type PrimeField struct {
	s *edwards25519.Scalar
}

// NewPrimeField wraps an *edwards25519.Scalar as a PrimeField element. s
// must not be nil.
func NewPrimeField(s *edwards25519.Scalar) PrimeField {
	return PrimeField{s: s}
}

func primeFieldZero() *edwards25519.Scalar {
	return edwards25519.NewScalar()
}

func primeFieldOne() *edwards25519.Scalar {
	var buf [32]byte
	buf[0] = 1
	s, err := edwards25519.NewScalar().SetCanonicalBytes(buf[:])
	if err != nil {
		// buf encodes the integer 1, which is always canonical.
		panic("rlnc: unreachable: encoding of 1 rejected as non-canonical: " + err.Error())
	}
	return s
}

func (f PrimeField) Zero() Field {
	return PrimeField{s: primeFieldZero()}
}

func (f PrimeField) One() Field {
	return PrimeField{s: primeFieldOne()}
}

func (f PrimeField) Add(other Field) Field {
	o := other.(PrimeField)
	return PrimeField{s: edwards25519.NewScalar().Add(f.s, o.s)}
}

func (f PrimeField) Sub(other Field) Field {
	o := other.(PrimeField)
	return PrimeField{s: edwards25519.NewScalar().Subtract(f.s, o.s)}
}

func (f PrimeField) Mul(other Field) Field {
	o := other.(PrimeField)
	return PrimeField{s: edwards25519.NewScalar().Multiply(f.s, o.s)}
}

func (f PrimeField) Inv() (Field, error) {
	if f.IsZero() {
		return nil, fmt.Errorf("rlnc: PrimeField inverse of zero is undefined")
	}
	return PrimeField{s: edwards25519.NewScalar().Invert(f.s)}, nil
}

func (f PrimeField) IsZero() bool {
	return f.s.Equal(primeFieldZero()) == 1
}

func (f PrimeField) Equal(other Field) bool {
	o, ok := other.(PrimeField)
	return ok && f.s.Equal(o.s) == 1
}

func (f PrimeField) FromBytes(b []byte) (Field, error) {
	if len(b) > primeFieldSafeCapacity {
		return nil, fmt.Errorf("rlnc: PrimeField.FromBytes: input length %d exceeds safe capacity %d", len(b), primeFieldSafeCapacity)
	}
	var buf [32]byte
	copy(buf[:], b)
	s, err := edwards25519.NewScalar().SetCanonicalBytes(buf[:])
	if err != nil {
		return nil, fmt.Errorf("rlnc: PrimeField.FromBytes: %w", err)
	}
	return PrimeField{s: s}, nil
}

func (f PrimeField) Bytes() []byte {
	return f.s.Bytes()[:primeFieldSafeCapacity]
}

func (f PrimeField) SafeCapacity() int {
	return primeFieldSafeCapacity
}

func (f PrimeField) Random(rng io.Reader) (Field, error) {
	// spec.md §4.4: sample SafeCapacity random bytes and byte-decode,
	// the same one-call-one-symbol shape as GF256.Random, rather than
	// drawing wide entropy and reducing it.
	var b [primeFieldSafeCapacity]byte
	if _, err := io.ReadFull(rng, b[:]); err != nil {
		return nil, err
	}
	return f.FromBytes(b[:])
}
