package rlnc

import (
	"io"
	"runtime"
	"sync"
)

// Parallel-path thresholds from spec.md §4.4: below these, thread dispatch
// costs exceed the arithmetic savings, so the encoder stays sequential.
const (
	parallelMinTotalWork = 512 * 1024
	parallelMinWorkUnit  = 128 * 1024
	parallelMinChunks    = 2
)

// Encoder pre-materializes a payload into packed field-symbol chunks and
// produces coded packets as field-level linear combinations of those
// chunks. An Encoder is immutable after construction and may be shared
// across goroutines for concurrent packet generation, provided each caller
// supplies its own randomness to Encode.
type Encoder struct {
	field      Field
	chunks     []chunk
	chunkCount int
	chunkSize  int
}

// NewEncoder prepares data for encoding: it splits data (after appending
// the boundary marker and zero-padding) into chunkCount equally sized
// chunks, each packed into field elements of the given field's concrete
// type. data must be non-empty and chunkCount must be at least 1.
func NewEncoder(field Field, data []byte, chunkCount int) (*Encoder, error) {
	chunks, chunkSize, err := prepareChunks(field, data, chunkCount)
	if err != nil {
		return nil, err
	}
	return &Encoder{field: field, chunks: chunks, chunkCount: chunkCount, chunkSize: chunkSize}, nil
}

// ChunkSize returns the size, in bytes, of each of the encoder's chunks.
func (e *Encoder) ChunkSize() int {
	return e.chunkSize
}

// ChunkCount returns the generation size (number of chunks) this encoder
// was constructed with.
func (e *Encoder) ChunkCount() int {
	return e.chunkCount
}

// shouldParallelize reports whether the parallel reduction path is worth
// its dispatch cost for this encoder's fixed dimensions (spec.md §4.4).
func (e *Encoder) shouldParallelize() bool {
	totalWork := e.chunkCount * e.chunkSize
	return totalWork >= parallelMinTotalWork &&
		e.chunkSize >= parallelMinWorkUnit &&
		e.chunkCount >= parallelMinChunks
}

func (e *Encoder) symbolCount() int {
	safe := e.field.SafeCapacity()
	return (e.chunkSize + safe - 1) / safe
}

// EncodeWithVector computes the coded packet for the given coding vector:
// the coefficient-weighted sum of the encoder's chunk symbol vectors.
// Coefficients equal to zero short-circuit (their chunk is skipped
// entirely). codingVector must have length ChunkCount().
func (e *Encoder) EncodeWithVector(codingVector []Field) (*Packet, error) {
	if len(codingVector) != e.chunkCount {
		return nil, errInvalidCodingVectorLength(len(codingVector), e.chunkCount)
	}

	var result []Field
	if e.shouldParallelize() {
		result = e.encodeParallel(codingVector)
	} else {
		result = e.encodeSequential(codingVector)
	}

	cv := make([]Field, len(codingVector))
	copy(cv, codingVector)
	return &Packet{CodingVector: cv, Data: result}, nil
}

// encodeSequential is the reference implementation both the sequential and
// parallel paths must agree with bit-for-bit (finite-field addition is
// associative, so the two paths are numerically identical, never merely
// approximately so).
func (e *Encoder) encodeSequential(codingVector []Field) []Field {
	result := make([]Field, e.symbolCount())
	for i := range result {
		result[i] = e.field.Zero()
	}

	for ci, c := range e.chunks {
		coeff := codingVector[ci]
		if coeff.IsZero() {
			continue
		}
		for i, sym := range c.symbols {
			result[i] = result[i].Add(sym.Mul(coeff))
		}
	}
	return result
}

// encodeParallel partitions the (chunk, coefficient) pairs across
// runtime.GOMAXPROCS(0) workers. Each worker is pure: it reads only its
// slice of chunks and the shared (read-only) coding vector, and writes only
// to its own partial-result slice, so there is no shared mutable state
// between workers. A final sequential reduction sums the partials.
func (e *Encoder) encodeParallel(codingVector []Field) []Field {
	workers := runtime.GOMAXPROCS(0)
	if workers > e.chunkCount {
		workers = e.chunkCount
	}
	if workers < 1 {
		workers = 1
	}

	symbolCount := e.symbolCount()
	partials := make([][]Field, workers)

	var wg sync.WaitGroup
	chunksPerWorker := (e.chunkCount + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunksPerWorker
		end := start + chunksPerWorker
		if start >= e.chunkCount {
			partials[w] = nil
			continue
		}
		if end > e.chunkCount {
			end = e.chunkCount
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			acc := make([]Field, symbolCount)
			for i := range acc {
				acc[i] = e.field.Zero()
			}
			for ci := start; ci < end; ci++ {
				coeff := codingVector[ci]
				if coeff.IsZero() {
					continue
				}
				for i, sym := range e.chunks[ci].symbols {
					acc[i] = acc[i].Add(sym.Mul(coeff))
				}
			}
			partials[w] = acc
		}(w, start, end)
	}
	wg.Wait()

	result := make([]Field, symbolCount)
	for i := range result {
		result[i] = e.field.Zero()
	}
	for _, partial := range partials {
		if partial == nil {
			continue
		}
		for i, v := range partial {
			result[i] = result[i].Add(v)
		}
	}
	return result
}

// Encode draws a random coding vector of length ChunkCount() from rng and
// encodes it. Each coefficient is sampled uniformly via the encoder's field
// Random method: one random byte per coefficient for GF256, SafeCapacity
// (31) random bytes byte-decoded per coefficient for PrimeField.
func (e *Encoder) Encode(rng io.Reader) (*Packet, error) {
	codingVector := make([]Field, e.chunkCount)
	for i := range codingVector {
		v, err := e.field.Random(rng)
		if err != nil {
			return nil, err
		}
		codingVector[i] = v
	}
	return e.EncodeWithVector(codingVector)
}
