package rlnc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacket_LeadingCoefficient(t *testing.T) {
	p := &Packet{CodingVector: []Field{NewGF256(0), NewGF256(0), NewGF256(5), NewGF256(1)}}
	assert.Equal(t, 2, p.leadingCoefficient())

	allZero := &Packet{CodingVector: []Field{NewGF256(0), NewGF256(0)}}
	assert.Equal(t, -1, allZero.leadingCoefficient())
}

func TestPacket_Normalize(t *testing.T) {
	p := &Packet{
		CodingVector: []Field{NewGF256(0), NewGF256(3)},
		Data:         []Field{NewGF256(9)},
	}
	require.NoError(t, p.normalize())
	assert.True(t, p.CodingVector[1].Equal(NewGF256(1)), "leading coefficient must become one")

	// 9 / 3 in GF(2^8): verify by reconstructing 3 * result == 9.
	assert.True(t, NewGF256(3).Mul(p.Data[0]).Equal(NewGF256(9)))
}

func TestPacket_NormalizeOnZeroRowIsNoOp(t *testing.T) {
	p := &Packet{CodingVector: []Field{NewGF256(0), NewGF256(0)}, Data: []Field{NewGF256(0)}}
	require.NoError(t, p.normalize())
	assert.True(t, p.CodingVector[0].IsZero())
}

func TestPacket_SubtractRow(t *testing.T) {
	dst := &Packet{
		CodingVector: []Field{NewGF256(5), NewGF256(7)},
		Data:         []Field{NewGF256(1)},
	}
	src := &Packet{
		CodingVector: []Field{NewGF256(5), NewGF256(0)},
		Data:         []Field{NewGF256(2)},
	}
	dst.subtractRow(src, NewGF256(1))

	assert.True(t, dst.CodingVector[0].IsZero(), "column shared with src scaled by factor 1 must cancel")
	assert.True(t, dst.CodingVector[1].Equal(NewGF256(7)))
}

func TestPacket_CloneDoesNotAlias(t *testing.T) {
	p := &Packet{CodingVector: []Field{NewGF256(1)}, Data: []Field{NewGF256(2)}}
	c := p.clone()
	c.CodingVector[0] = NewGF256(9)
	assert.True(t, p.CodingVector[0].Equal(NewGF256(1)), "mutating the clone must not affect the original")
}
