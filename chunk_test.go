package rlnc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestChunk_PackUnpackRoundTrip_GF256(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 64).Draw(t, "n")
		b := rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, "b")

		c, err := packBytes(GF256{}, b)
		require.NoError(t, err)

		got := unpackSymbols(c.symbols, n)
		assert.Equal(t, b, got)
	})
}

func TestChunk_PackUnpackRoundTrip_PrimeField(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 31).Draw(t, "n")
		b := rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, "b")

		c, err := packBytes(PrimeField{}, b)
		require.NoError(t, err)
		assert.Len(t, c.symbols, 1, "31 bytes or fewer should fit in a single symbol")

		got := unpackSymbols(c.symbols, n)
		assert.Equal(t, b, got)
	})
}

func TestPrepareChunks_RejectsEmptyData(t *testing.T) {
	_, _, err := prepareChunks(GF256{}, nil, 3)
	assert.ErrorIs(t, err, &Error{Kind: ErrEmptyData})
}

func TestPrepareChunks_RejectsZeroChunkCount(t *testing.T) {
	_, _, err := prepareChunks(GF256{}, []byte("x"), 0)
	assert.ErrorIs(t, err, &Error{Kind: ErrZeroChunkCount})
}

func TestPrepareChunks_ChunkSizeIsMultipleOfSafeCapacity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 4096).Draw(t, "n")
		chunkCount := rapid.IntRange(1, 16).Draw(t, "chunkCount")
		data := rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, "data")

		_, chunkSize, err := prepareChunks(PrimeField{}, data, chunkCount)
		require.NoError(t, err)
		assert.Zero(t, chunkSize%primeFieldSafeCapacity)
	})
}
