package rlnc

// Packet is a coded packet: a coding vector of length chunkCount paired
// with a data vector of length symbolCount, the field-level linear
// combination of the original chunks that the coding vector specifies.
// Packets produced by an Encoder share no aliasing with one another.
// Decoder.Decode works on its own deep copy of the Packet it is given, so
// the caller's Packet is left unchanged and may be reused (for example,
// forwarded to another decoder).
type Packet struct {
	CodingVector []Field
	Data         []Field
}

// clone returns a deep copy of p, so the decoder can mutate its own copy
// without aliasing whatever the caller still holds a reference to.
func (p *Packet) clone() *Packet {
	cv := make([]Field, len(p.CodingVector))
	copy(cv, p.CodingVector)
	data := make([]Field, len(p.Data))
	copy(data, p.Data)
	return &Packet{CodingVector: cv, Data: data}
}

// leadingCoefficient returns the index of the smallest column with a
// non-zero coding vector entry, or -1 if the coding vector is entirely
// zero.
func (p *Packet) leadingCoefficient() int {
	for i, c := range p.CodingVector {
		if !c.IsZero() {
			return i
		}
	}
	return -1
}

// normalize scales both vectors so that the leading coefficient becomes
// one, if a leading coefficient exists. It is a no-op on an all-zero
// coding vector.
func (p *Packet) normalize() error {
	col := p.leadingCoefficient()
	if col < 0 {
		return nil
	}
	inv, err := p.CodingVector[col].Inv()
	if err != nil {
		return err
	}
	for i := range p.CodingVector {
		p.CodingVector[i] = p.CodingVector[i].Mul(inv)
	}
	for i := range p.Data {
		p.Data[i] = p.Data[i].Mul(inv)
	}
	return nil
}

// subtractRow computes dst -= factor * src, element-wise over both the
// coding vector and the data vector. dst and src must have matching
// lengths in both vectors.
func (dst *Packet) subtractRow(src *Packet, factor Field) {
	for i := range dst.CodingVector {
		dst.CodingVector[i] = dst.CodingVector[i].Sub(factor.Mul(src.CodingVector[i]))
	}
	for i := range dst.Data {
		dst.Data[i] = dst.Data[i].Sub(factor.Mul(src.Data[i]))
	}
}
