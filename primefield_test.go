package rlnc

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func genPrimeField(t *rapid.T, label string) PrimeField {
	raw := rapid.SliceOfN(rapid.Byte(), primeFieldSafeCapacity, primeFieldSafeCapacity).Draw(t, label)
	f, err := PrimeField{}.FromBytes(raw)
	if err != nil {
		t.Fatalf("FromBytes on a %d-byte slice must never fail: %v", primeFieldSafeCapacity, err)
	}
	return f.(PrimeField)
}

func TestPrimeField_FieldLaws(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genPrimeField(t, "a")
		b := genPrimeField(t, "b")
		c := genPrimeField(t, "c")

		assert.True(t, a.Add(b).Add(c).Equal(a.Add(b.Add(c))), "addition associativity")
		assert.True(t, a.Add(b).Equal(b.Add(a)), "addition commutativity")
		assert.True(t, a.Add(a.Zero()).Equal(a), "zero is additive identity")
		assert.True(t, a.Sub(a).IsZero(), "x - x == 0")

		assert.True(t, a.Mul(b).Mul(c).Equal(a.Mul(b.Mul(c))), "multiplication associativity")
		assert.True(t, a.Mul(b).Equal(b.Mul(a)), "multiplication commutativity")
		assert.True(t, a.Mul(a.One()).Equal(a), "one is multiplicative identity")
		assert.True(t, a.Mul(a.Zero()).IsZero(), "x * 0 == 0")

		assert.True(t, a.Mul(b.Add(c)).Equal(a.Mul(b).Add(a.Mul(c))), "distributivity")

		if !a.IsZero() {
			inv, err := a.Inv()
			assert.NoError(t, err)
			assert.True(t, a.Mul(inv).Equal(a.One()), "x * x^-1 == 1")
		}
	})
}

func TestPrimeField_InverseOfZeroIsUndefined(t *testing.T) {
	_, err := PrimeField{}.Zero().Inv()
	assert.Error(t, err)
}

func TestPrimeField_SafeCapacityIs31(t *testing.T) {
	assert.Equal(t, 31, PrimeField{}.SafeCapacity())
}

func TestPrimeField_BytesRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, primeFieldSafeCapacity).Draw(t, "n")
		b := rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, "b")

		f, err := PrimeField{}.FromBytes(b)
		require.NoError(t, err)

		want := make([]byte, primeFieldSafeCapacity)
		copy(want, b)
		assert.True(t, bytes.Equal(want, f.Bytes()), "round trip through FromBytes/Bytes must preserve zero-extended content")
	})
}

func TestPrimeField_RandomUsesCallerEntropy(t *testing.T) {
	f1, err := PrimeField{}.Random(rand.Reader)
	require.NoError(t, err)
	f2, err := PrimeField{}.Random(rand.Reader)
	require.NoError(t, err)

	// Two independent draws from a real entropy source should essentially
	// never collide; this is a sanity check, not a statistical proof.
	assert.False(t, f1.Equal(f2))
}

func TestPrimeField_FromBytesRejectsOversizedInput(t *testing.T) {
	_, err := PrimeField{}.FromBytes(make([]byte, primeFieldSafeCapacity+1))
	assert.Error(t, err)
}
