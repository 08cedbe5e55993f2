package rlnc

// Decoder performs online Gaussian elimination over an implicit matrix in
// reduced row-echelon form (RREF), absorbing one coded packet at a time. It
// maintains rank incrementally and knows exactly when full rank is reached,
// so it neither stores useless duplicates nor recomputes elimination from
// scratch. A Decoder is exclusive-owned and must not be used concurrently
// from multiple goroutines.
type Decoder struct {
	chunkSize  int
	chunkCount int

	// rows holds the accepted, pairwise-reduced packets in insertion
	// order. pivotRow[c] is the index into rows of the row whose leading
	// coefficient sits at column c, or -1 if column c has no pivot yet.
	rows     []*Packet
	pivotRow []int
	rank     int

	// Cached result of the first successful decode, so that decoding
	// after completion (spec.md §4.7's Complete state) is O(1) instead of
	// re-running extraction.
	complete bool
	decoded  []byte
}

// NewDecoder creates a decoder for the given chunk size (bytes) and chunk
// count (generation size). Both must be at least 1. Unlike the encoder, the
// decoder takes no Field argument: every Packet it absorbs carries its own
// elements' concrete Field type, and elimination, back-substitution, and
// extraction all dispatch through that per-element interface rather than
// needing a field reference of their own.
func NewDecoder(chunkSize, chunkCount int) (*Decoder, error) {
	if chunkSize <= 0 {
		return nil, errZeroChunkSize()
	}
	if chunkCount <= 0 {
		return nil, errZeroPacketCount()
	}

	pivotRow := make([]int, chunkCount)
	for i := range pivotRow {
		pivotRow[i] = -1
	}

	return &Decoder{
		chunkSize:  chunkSize,
		chunkCount: chunkCount,
		rows:       make([]*Packet, 0, chunkCount),
		pivotRow:   pivotRow,
	}, nil
}

// Rank returns the number of linearly independent packets received so far.
func (d *Decoder) Rank() int {
	return d.rank
}

// CanDecode reports whether the decoder has reached full rank and can
// reconstruct the original payload.
func (d *Decoder) CanDecode() bool {
	return d.rank >= d.chunkCount
}

// Decode absorbs one coded packet. It returns (data, true, nil) once the
// decoder reaches full rank — data holds the reconstructed original
// payload — or (nil, false, nil) if the packet was a duplicate, linearly
// dependent, or all-zero, or if it was accepted but the decoder is still
// short of full rank. A non-nil error indicates a coding-vector length
// mismatch or, on the call that reaches full rank, corrupted pivot data
// (missing boundary marker).
//
// Calling Decode again after the decoder has already reached full rank
// re-emits the same reconstructed payload (the decoder caches it) rather
// than returning false; see SPEC_FULL.md §8's resolution of spec.md's
// "behavior after completion" open question.
func (d *Decoder) Decode(packet *Packet) ([]byte, bool, error) {
	if d.complete {
		return d.decoded, true, nil
	}

	if len(packet.CodingVector) != d.chunkCount {
		return nil, false, errInvalidCodingVectorLength(len(packet.CodingVector), d.chunkCount)
	}

	p := packet.clone()
	d.eliminate(p)

	col := p.leadingCoefficient()
	if col < 0 {
		// Zero row after elimination: linearly dependent, discard.
		return nil, false, nil
	}
	if d.pivotRow[col] >= 0 {
		// By construction, after elimination a dependent packet's leading
		// column cannot coincide with an existing pivot; guard anyway.
		return nil, false, nil
	}

	if err := p.normalize(); err != nil {
		return nil, false, err
	}

	d.rows = append(d.rows, p)
	newIdx := len(d.rows) - 1
	d.pivotRow[col] = newIdx
	d.rank++

	d.backSubstitute(newIdx)

	if d.rank < d.chunkCount {
		return nil, false, nil
	}

	decoded, err := d.extract()
	if err != nil {
		return nil, false, err
	}
	d.complete = true
	d.decoded = decoded
	return decoded, true, nil
}

// eliminate reduces packet against every existing pivot row, in ascending
// pivot-column order, so that each pass zeroes one more column of the
// incoming packet and its leading column strictly increases.
func (d *Decoder) eliminate(packet *Packet) {
	for col := 0; col < d.chunkCount; col++ {
		rowIdx := d.pivotRow[col]
		if rowIdx < 0 {
			continue
		}
		coeff := packet.CodingVector[col]
		if coeff.IsZero() {
			continue
		}
		pivotRow := d.rows[rowIdx]
		// Pivot rows are always normalized (leading coefficient one), so
		// this division is just coeff itself; the explicit inverse keeps
		// the formulation correct even if that invariant is relaxed.
		pivotCoeff := pivotRow.CodingVector[col]
		inv, err := pivotCoeff.Inv()
		if err != nil {
			continue
		}
		factor := coeff.Mul(inv)
		packet.subtractRow(pivotRow, factor)
	}
}

// backSubstitute zeroes row newIdx's pivot column out of every
// previously stored row, preserving the RREF invariant (reduced, not merely
// echelon) across the whole row buffer after every insertion.
func (d *Decoder) backSubstitute(newIdx int) {
	newRow := d.rows[newIdx]
	col := newRow.leadingCoefficient()
	if col < 0 {
		return
	}

	for i := 0; i < newIdx; i++ {
		coeff := d.rows[i].CodingVector[col]
		if coeff.IsZero() {
			continue
		}
		d.rows[i].subtractRow(newRow, coeff)
	}
}

// extract reads the original chunks directly from the pivot rows (valid
// once rank == chunkCount, since the matrix is then in full RREF), unpacks
// them to bytes, and trims at the last boundary marker.
func (d *Decoder) extract() ([]byte, error) {
	decoded := make([]byte, 0, d.chunkSize*d.chunkCount)
	for col := 0; col < d.chunkCount; col++ {
		rowIdx := d.pivotRow[col]
		row := d.rows[rowIdx]
		decoded = append(decoded, unpackSymbols(row.Data, d.chunkSize)...)
	}

	for i := len(decoded) - 1; i >= 0; i-- {
		if decoded[i] == BoundaryMarker {
			return decoded[:i], nil
		}
	}
	return nil, errInvalidEncoding()
}

// Extract explicitly requests reconstruction without feeding another
// packet, failing NotEnoughPackets if the decoder has not yet reached full
// rank. Decode already performs this automatically; Extract exists for
// callers that want to distinguish "not enough packets yet" from "feed one
// more packet" without re-submitting a packet.
func (d *Decoder) Extract() ([]byte, error) {
	if d.complete {
		return d.decoded, nil
	}
	if !d.CanDecode() {
		return nil, errNotEnoughPackets(d.rank, d.chunkCount)
	}
	decoded, err := d.extract()
	if err != nil {
		return nil, err
	}
	d.complete = true
	d.decoded = decoded
	return decoded, nil
}
