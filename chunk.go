package rlnc

// BoundaryMarker is the sentinel byte appended to the payload before
// chunking, used to locate the original end of the payload after
// reconstruction. Any change to this value breaks interoperability between
// encoder and decoder builds; it is not configurable.
const BoundaryMarker byte = 0x81

// chunk is an ordered sequence of field elements representing chunkSize
// packed bytes, owned exclusively by the Encoder that created it.
type chunk struct {
	symbols []Field
}

// packBytes splits b into SafeCapacity()-wide little-endian groups and
// decodes each group into one field element of field's concrete type.
func packBytes(field Field, b []byte) (chunk, error) {
	safe := field.SafeCapacity()
	symbolCount := (len(b) + safe - 1) / safe
	symbols := make([]Field, symbolCount)
	for i := 0; i < symbolCount; i++ {
		start := i * safe
		end := start + safe
		if end > len(b) {
			end = len(b)
		}
		sym, err := field.FromBytes(b[start:end])
		if err != nil {
			return chunk{}, err
		}
		symbols[i] = sym
	}
	return chunk{symbols: symbols}, nil
}

// unpackSymbols is the inverse of packBytes: it takes the low-order
// SafeCapacity bytes of each symbol's canonical encoding and concatenates
// them, then truncates to chunkSize bytes (the last symbol may contribute
// fewer than SafeCapacity meaningful bytes, but prepareChunks always
// produces padded chunks whose size is a multiple of SafeCapacity, so
// truncation here is exact).
func unpackSymbols(symbols []Field, chunkSize int) []byte {
	out := make([]byte, 0, chunkSize)
	for _, sym := range symbols {
		out = append(out, sym.Bytes()...)
	}
	if len(out) > chunkSize {
		out = out[:chunkSize]
	}
	return out
}

// prepareChunks implements spec.md §4.4's construction steps: append the
// boundary marker, round the chunk size up to a multiple of the field's
// safe capacity, zero-pad, and split into chunkCount equally sized chunks.
// It returns the resulting chunks and the chunk size in bytes.
func prepareChunks(field Field, data []byte, chunkCount int) ([]chunk, int, error) {
	if len(data) == 0 {
		return nil, 0, errEmptyData()
	}
	if chunkCount <= 0 {
		return nil, 0, errZeroChunkCount()
	}

	buf := make([]byte, len(data)+1)
	copy(buf, data)
	buf[len(data)] = BoundaryMarker

	safe := field.SafeCapacity()
	chunkSize := (len(buf) + chunkCount - 1) / chunkCount
	chunkSize = ((chunkSize + safe - 1) / safe) * safe

	padded := make([]byte, chunkSize*chunkCount)
	copy(padded, buf)

	chunks := make([]chunk, chunkCount)
	for i := 0; i < chunkCount; i++ {
		c, err := packBytes(field, padded[i*chunkSize:(i+1)*chunkSize])
		if err != nil {
			return nil, 0, err
		}
		chunks[i] = c
	}
	return chunks, chunkSize, nil
}
