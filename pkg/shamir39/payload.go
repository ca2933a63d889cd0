// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shameless.

package shamir39

import "fmt"

// padBits returns the number of zero bits prepended to a stream of
// byteCount bytes so that its length is a multiple of eleven.
func padBits(byteCount int) int {
	return (wordBits - byteCount*8%wordBits) % wordBits
}

// PayloadWordCount returns the number of payload words produced for a
// fragment of n bytes, including its length prefix and checksum.
func PayloadWordCount(n int) int {
	bits := (n + frameOverhead) * 8
	return (bits + wordBits - 1) / wordBits
}

// encodePayload packs data into 11-bit codes, most significant bit first,
// after left-padding with zero bits. Empty input yields no codes.
func encodePayload(data []byte) []uint16 {
	if len(data) == 0 {
		return nil
	}

	pad := padBits(len(data))
	codes := make([]uint16, 0, (len(data)*8+pad)/wordBits)

	// The padding is a run of leading zeros, so the accumulator starts
	// out holding pad zero bits.
	var acc uint32
	filled := pad
	for _, b := range data {
		acc = acc<<8 | uint32(b)
		filled += 8
		if filled >= wordBits {
			filled -= wordBits
			codes = append(codes, uint16(acc>>filled)&maxWordCode)
			acc &= 1<<filled - 1
		}
	}
	return codes
}

// decodePayload unpacks codes into expected bytes, discarding the leading
// padding bits. The word count alone does not delimit the stream, so the
// caller supplies the byte length.
func decodePayload(codes []uint16, expected int) ([]byte, error) {
	totalBits := len(codes) * wordBits
	expectedBits := expected * 8
	if expected < 0 || totalBits < expectedBits {
		return nil, fmt.Errorf("%w: got %d, expected at least %d", ErrInsufficientBits, totalBits, expectedBits)
	}

	skip := totalBits - expectedBits
	out := make([]byte, 0, expected)

	var acc uint32
	filled := 0
	for _, code := range codes {
		if code > maxWordCode {
			clear(out[:cap(out)])
			return nil, fmt.Errorf("%w: %d (must be 0-%d)", ErrWordCodeRange, code, maxWordCode)
		}
		acc = acc<<wordBits | uint32(code)
		filled += wordBits
		if skip > 0 {
			n := min(skip, filled)
			skip -= n
			filled -= n
			acc &= 1<<filled - 1
		}
		for filled >= 8 {
			filled -= 8
			out = append(out, byte(acc>>filled))
			acc &= 1<<filled - 1
		}
	}
	return out, nil
}
