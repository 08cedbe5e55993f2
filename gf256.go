package rlnc

import (
	"fmt"
	"io"
)

// gf256Order is the number of elements in GF(2^8).
const gf256Order = 256

// gf256LogTable is the discrete logarithm of each non-zero element with
// respect to the primitive element alpha=2 under the irreducible polynomial
// x^8 + x^4 + x^3 + x^2 + 1. Index 0 is a sentinel (log of zero is
// undefined) and is never read except after an explicit zero check.
var gf256LogTable = [256]byte{
	0, 0, 1, 25, 2, 50, 26, 198, 3, 223, 51, 238, 27, 104, 199, 75,
	4, 100, 224, 14, 52, 141, 239, 129, 28, 193, 105, 248, 200, 8, 76, 113,
	5, 138, 101, 47, 225, 36, 15, 33, 53, 147, 142, 218, 240, 18, 130, 69,
	29, 181, 194, 125, 106, 39, 249, 185, 201, 154, 9, 120, 77, 228, 114, 166,
	6, 191, 139, 98, 102, 221, 48, 253, 226, 152, 37, 179, 16, 145, 34, 136,
	54, 208, 148, 206, 143, 150, 219, 189, 241, 210, 19, 92, 131, 56, 70, 64,
	30, 66, 182, 163, 195, 72, 126, 110, 107, 58, 40, 84, 250, 133, 186, 61,
	202, 94, 155, 159, 10, 21, 121, 43, 78, 212, 229, 172, 115, 243, 167, 87,
	7, 112, 192, 247, 140, 128, 99, 13, 103, 74, 222, 237, 49, 197, 254, 24,
	227, 165, 153, 119, 38, 184, 180, 124, 17, 68, 146, 217, 35, 32, 137, 46,
	55, 63, 209, 91, 149, 188, 207, 205, 144, 135, 151, 178, 220, 252, 190, 97,
	242, 86, 211, 171, 20, 42, 93, 158, 132, 60, 57, 83, 71, 109, 65, 162,
	31, 45, 67, 216, 183, 123, 164, 118, 196, 23, 73, 236, 127, 12, 111, 246,
	108, 161, 59, 82, 41, 157, 85, 170, 251, 96, 134, 177, 187, 204, 62, 90,
	203, 89, 95, 176, 156, 169, 160, 81, 11, 245, 22, 235, 122, 117, 44, 215,
	79, 174, 213, 233, 230, 231, 173, 232, 116, 214, 244, 234, 168, 80, 88, 175,
}

// gf256ExpTable is the concatenation of two full cycles of alpha^i, so that
// EXP[LOG[a]+LOG[b]] never needs a modular reduction of the exponent sum.
var gf256ExpTable = [510]byte{
	1, 2, 4, 8, 16, 32, 64, 128, 29, 58, 116, 232, 205, 135, 19, 38,
	76, 152, 45, 90, 180, 117, 234, 201, 143, 3, 6, 12, 24, 48, 96, 192,
	157, 39, 78, 156, 37, 74, 148, 53, 106, 212, 181, 119, 238, 193, 159, 35,
	70, 140, 5, 10, 20, 40, 80, 160, 93, 186, 105, 210, 185, 111, 222, 161,
	95, 190, 97, 194, 153, 47, 94, 188, 101, 202, 137, 15, 30, 60, 120, 240,
	253, 231, 211, 187, 107, 214, 177, 127, 254, 225, 223, 163, 91, 182, 113, 226,
	217, 175, 67, 134, 17, 34, 68, 136, 13, 26, 52, 104, 208, 189, 103, 206,
	129, 31, 62, 124, 248, 237, 199, 147, 59, 118, 236, 197, 151, 51, 102, 204,
	133, 23, 46, 92, 184, 109, 218, 169, 79, 158, 33, 66, 132, 21, 42, 84,
	168, 77, 154, 41, 82, 164, 85, 170, 73, 146, 57, 114, 228, 213, 183, 115,
	230, 209, 191, 99, 198, 145, 63, 126, 252, 229, 215, 179, 123, 246, 241, 255,
	227, 219, 171, 75, 150, 49, 98, 196, 149, 55, 110, 220, 165, 87, 174, 65,
	130, 25, 50, 100, 200, 141, 7, 14, 28, 56, 112, 224, 221, 167, 83, 166,
	81, 162, 89, 178, 121, 242, 249, 239, 195, 155, 43, 86, 172, 69, 138, 9,
	18, 36, 72, 144, 61, 122, 244, 245, 247, 243, 251, 235, 203, 139, 11, 22,
	44, 88, 176, 125, 250, 233, 207, 131, 27, 54, 108, 216, 173, 71, 142, 1,
	2, 4, 8, 16, 32, 64, 128, 29, 58, 116, 232, 205, 135, 19, 38, 76,
	152, 45, 90, 180, 117, 234, 201, 143, 3, 6, 12, 24, 48, 96, 192, 157,
	39, 78, 156, 37, 74, 148, 53, 106, 212, 181, 119, 238, 193, 159, 35, 70,
	140, 5, 10, 20, 40, 80, 160, 93, 186, 105, 210, 185, 111, 222, 161, 95,
	190, 97, 194, 153, 47, 94, 188, 101, 202, 137, 15, 30, 60, 120, 240, 253,
	231, 211, 187, 107, 214, 177, 127, 254, 225, 223, 163, 91, 182, 113, 226, 217,
	175, 67, 134, 17, 34, 68, 136, 13, 26, 52, 104, 208, 189, 103, 206, 129,
	31, 62, 124, 248, 237, 199, 147, 59, 118, 236, 197, 151, 51, 102, 204, 133,
	23, 46, 92, 184, 109, 218, 169, 79, 158, 33, 66, 132, 21, 42, 84, 168,
	77, 154, 41, 82, 164, 85, 170, 73, 146, 57, 114, 228, 213, 183, 115, 230,
	209, 191, 99, 198, 145, 63, 126, 252, 229, 215, 179, 123, 246, 241, 255, 227,
	219, 171, 75, 150, 49, 98, 196, 149, 55, 110, 220, 165, 87, 174, 65, 130,
	25, 50, 100, 200, 141, 7, 14, 28, 56, 112, 224, 221, 167, 83, 166, 81,
	162, 89, 178, 121, 242, 249, 239, 195, 155, 43, 86, 172, 69, 138, 9, 18,
	36, 72, 144, 61, 122, 244, 245, 247, 243, 251, 235, 203, 139, 11, 22, 44,
	88, 176, 125, 250, 233, 207, 131, 27, 54, 108, 216, 173, 71, 142,
}

func init() {
	// Derive the tables independently from the primitive element and the
	// irreducible polynomial, and cross-check against the hard-coded
	// tables above. A transcription error in either table would otherwise
	// silently corrupt every coded packet; this turns it into an
	// immediate, loud failure instead.
	const irreducible = 0x1d // x^8 + x^4 + x^3 + x^2 + 1, low 8 bits (bit 8 handled by the overflow check below)

	var derivedExp [510]byte
	var derivedLog [256]byte
	x := byte(1)
	for i := 0; i < 255; i++ {
		derivedExp[i] = x
		derivedLog[x] = byte(i)
		hi := x & 0x80
		x <<= 1
		if hi != 0 {
			x ^= byte(irreducible)
		}
	}
	copy(derivedExp[255:], derivedExp[:255])

	if derivedLog != gf256LogTable {
		panic("rlnc: derived GF(2^8) log table does not match the hard-coded reference table")
	}
	if derivedExp != gf256ExpTable {
		panic("rlnc: derived GF(2^8) exp table does not match the hard-coded reference table")
	}
}

// GF256 is a field element of GF(2^8), represented by a single byte.
// Addition and subtraction are bitwise XOR; multiplication uses the
// precomputed log/exp tables above. The zero value is the field's zero
// element.
type GF256 struct {
	v byte
}

// NewGF256 wraps a raw byte as a GF256 element.
func NewGF256(v byte) GF256 {
	return GF256{v: v}
}

// Byte returns the raw byte representation of f.
func (f GF256) Byte() byte {
	return f.v
}

func (f GF256) Zero() Field {
	return GF256{v: 0}
}

func (f GF256) One() Field {
	return GF256{v: 1}
}

func (f GF256) Add(other Field) Field {
	o := other.(GF256)
	return GF256{v: f.v ^ o.v}
}

func (f GF256) Sub(other Field) Field {
	// Subtraction is XOR in characteristic 2: -x = x.
	o := other.(GF256)
	return GF256{v: f.v ^ o.v}
}

func (f GF256) Mul(other Field) Field {
	o := other.(GF256)
	if f.v == 0 || o.v == 0 {
		return GF256{v: 0}
	}
	l := int(gf256LogTable[f.v])
	r := int(gf256LogTable[o.v])
	return GF256{v: gf256ExpTable[l+r]}
}

func (f GF256) Inv() (Field, error) {
	if f.v == 0 {
		return nil, fmt.Errorf("rlnc: GF(2^8) inverse of zero is undefined")
	}
	return GF256{v: gf256ExpTable[(gf256Order-1)-int(gf256LogTable[f.v])]}, nil
}

func (f GF256) IsZero() bool {
	return f.v == 0
}

func (f GF256) Equal(other Field) bool {
	o, ok := other.(GF256)
	return ok && f.v == o.v
}

func (f GF256) FromBytes(b []byte) (Field, error) {
	if len(b) == 0 {
		return GF256{v: 0}, nil
	}
	return GF256{v: b[0]}, nil
}

func (f GF256) Bytes() []byte {
	return []byte{f.v}
}

func (f GF256) SafeCapacity() int {
	return 1
}

func (f GF256) Random(rng io.Reader) (Field, error) {
	var b [1]byte
	if _, err := io.ReadFull(rng, b[:]); err != nil {
		return nil, err
	}
	return GF256{v: b[0]}, nil
}
