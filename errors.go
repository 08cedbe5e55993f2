package rlnc

import "fmt"

// ErrorKind enumerates the failure modes the core can report. Encoder and
// decoder validation and extraction failures are *Error values wrapping one
// of these kinds, so callers can discriminate with errors.Is against an
// *Error carrying the kind rather than string-matching messages. Field
// arithmetic and byte-decoding failures (for example the inverse of zero,
// or oversized PrimeField input) and read errors from the caller's rng are
// returned as plain errors, not as *Error.
type ErrorKind int

const (
	// ErrEmptyData means the encoder was given a zero-length payload.
	ErrEmptyData ErrorKind = iota
	// ErrZeroChunkCount means a constructor was given a chunk count of 0.
	ErrZeroChunkCount
	// ErrZeroChunkSize means the decoder was constructed with chunk size 0.
	ErrZeroChunkSize
	// ErrZeroPacketCount means the decoder was constructed with a zero
	// generation size.
	ErrZeroPacketCount
	// ErrInvalidCodingVectorLength means a packet's coding vector length
	// didn't match the generation size at either the encoder or decoder.
	ErrInvalidCodingVectorLength
	// ErrInvalidEncoding means no boundary marker was found after
	// full-rank reconstruction, indicating corrupted pivot rows or a
	// chunk_size/chunk_count mismatch between encoder and decoder.
	ErrInvalidEncoding
	// ErrNotEnoughPackets means an explicit extraction was requested
	// before the decoder reached full rank.
	ErrNotEnoughPackets
)

// Error is the concrete error type returned by this package. It carries a
// Kind plus whatever contextual fields are relevant: for length mismatches
// Got/Want are the received and expected lengths; for premature extraction
// Got is the rank reached and Want the rank needed.
type Error struct {
	Kind ErrorKind
	Got  int
	Want int
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrEmptyData:
		return "rlnc: data is empty"
	case ErrZeroChunkCount:
		return "rlnc: chunk count must be greater than 0"
	case ErrZeroChunkSize:
		return "rlnc: chunk size must be greater than 0"
	case ErrZeroPacketCount:
		return "rlnc: required packet count must be greater than 0"
	case ErrInvalidCodingVectorLength:
		return fmt.Sprintf("rlnc: invalid coding vector length: got %d, expected %d", e.Got, e.Want)
	case ErrInvalidEncoding:
		return "rlnc: invalid encoding: no boundary marker found after reconstruction"
	case ErrNotEnoughPackets:
		return fmt.Sprintf("rlnc: not enough linearly independent packets to decode: have %d, need %d", e.Got, e.Want)
	default:
		return "rlnc: unknown error"
	}
}

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, &rlnc.Error{Kind: rlnc.ErrInvalidEncoding}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func errEmptyData() error {
	return &Error{Kind: ErrEmptyData}
}

func errZeroChunkCount() error {
	return &Error{Kind: ErrZeroChunkCount}
}

func errZeroChunkSize() error {
	return &Error{Kind: ErrZeroChunkSize}
}

func errZeroPacketCount() error {
	return &Error{Kind: ErrZeroPacketCount}
}

func errInvalidCodingVectorLength(got, want int) error {
	return &Error{Kind: ErrInvalidCodingVectorLength, Got: got, Want: want}
}

func errInvalidEncoding() error {
	return &Error{Kind: ErrInvalidEncoding}
}

func errNotEnoughPackets(have, need int) error {
	return &Error{Kind: ErrNotEnoughPackets, Got: have, Want: need}
}
