package rlnc

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoder_RejectsEmptyData(t *testing.T) {
	_, err := NewEncoder(GF256{}, nil, 3)
	assert.ErrorIs(t, err, &Error{Kind: ErrEmptyData})
}

func TestEncoder_RejectsZeroChunkCount(t *testing.T) {
	_, err := NewEncoder(GF256{}, []byte("x"), 0)
	assert.ErrorIs(t, err, &Error{Kind: ErrZeroChunkCount})
}

func TestEncoder_EncodeWithVectorRejectsWrongLength(t *testing.T) {
	enc, err := NewEncoder(GF256{}, []byte("hello"), 3)
	require.NoError(t, err)

	_, err = enc.EncodeWithVector([]Field{NewGF256(1), NewGF256(2)})
	assert.ErrorIs(t, err, &Error{Kind: ErrInvalidCodingVectorLength})
}

func TestEncoder_SequentialAndParallelPathsAgree(t *testing.T) {
	// Force dimensions above the parallel thresholds (512KiB total work,
	// 128KiB chunk size, 2+ chunks) so encodeParallel actually runs, and
	// assert it produces bit-identical output to the sequential path.
	payload := make([]byte, 600*1024)
	_, err := rand.Read(payload)
	require.NoError(t, err)

	enc, err := NewEncoder(GF256{}, payload, 4)
	require.NoError(t, err)
	require.True(t, enc.shouldParallelize(), "test fixture must exercise the parallel path")

	codingVector := make([]Field, enc.chunkCount)
	for i := range codingVector {
		v, err := GF256{}.Random(rand.Reader)
		require.NoError(t, err)
		codingVector[i] = v
	}

	sequential := enc.encodeSequential(codingVector)
	parallel := enc.encodeParallel(codingVector)

	require.Equal(t, len(sequential), len(parallel))
	for i := range sequential {
		assert.True(t, sequential[i].Equal(parallel[i]), "sequential and parallel results must be numerically identical at symbol %d", i)
	}
}

func TestEncoder_ZeroCoefficientSkipsItsChunk(t *testing.T) {
	enc, err := NewEncoder(GF256{}, []byte("abcdefgh"), 2)
	require.NoError(t, err)

	// Corrupt the second chunk's symbols; since its coefficient is zero,
	// the encoded data must be the same as for an uncorrupted encoder.
	enc.chunks[1].symbols[0] = NewGF256(0xFF)

	withSecondChunk, err := enc.EncodeWithVector([]Field{NewGF256(1), NewGF256(0)})
	require.NoError(t, err)

	enc2, err := NewEncoder(GF256{}, []byte("abcdefgh"), 2)
	require.NoError(t, err)
	withoutCorruption, err := enc2.EncodeWithVector([]Field{NewGF256(1), NewGF256(0)})
	require.NoError(t, err)

	for i := range withSecondChunk.Data {
		assert.True(t, withSecondChunk.Data[i].Equal(withoutCorruption.Data[i]))
	}
}

func TestEncoder_ChunkSizeAndCount(t *testing.T) {
	enc, err := NewEncoder(GF256{}, []byte("0123456789"), 4)
	require.NoError(t, err)
	assert.Equal(t, 4, enc.ChunkCount())
	assert.Greater(t, enc.ChunkSize(), 0)
}
