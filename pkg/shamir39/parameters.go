// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shameless.
//
// go-shameless is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package shamir39

import (
	"fmt"
	"math"
)

// Parameter word layout: [continuation (1)][M bits (5)][O bits (5)]
const (
	continuationBit = 1 << 10
	fieldBits       = 5
	fieldMask       = 1<<fieldBits - 1

	// singleWordLimit is the first value that needs a second parameter word
	singleWordLimit = 1 << fieldBits
)

// ParameterWidth is the number of words in a parameter block.
type ParameterWidth int

const (
	// OneWord blocks carry M and O below 32 with the continuation bit clear
	OneWord ParameterWidth = 1

	// TwoWord blocks carry the high five bits of M and O in a first word
	// with the continuation bit set, and the low five bits in a second word
	TwoWord ParameterWidth = 2
)

// parameterBlock is the encoded (threshold, index) pair. Only the first
// width codes are meaningful.
type parameterBlock struct {
	width ParameterWidth
	codes [2]uint16
}

func (p parameterBlock) words() []uint16 {
	return p.codes[:p.width]
}

// ParameterWidthFor returns the number of parameter words needed for a
// threshold and index.
func ParameterWidthFor(threshold Threshold, index ShareIndex) ParameterWidth {
	if threshold.value < singleWordLimit && index.value < singleWordLimit {
		return OneWord
	}
	return TwoWord
}

func encodeParameters(threshold Threshold, index ShareIndex) parameterBlock {
	m, o := uint16(threshold.value), uint16(index.value)
	if ParameterWidthFor(threshold, index) == OneWord {
		return parameterBlock{
			width: OneWord,
			codes: [2]uint16{packParameterWord(false, m, o)},
		}
	}
	return parameterBlock{
		width: TwoWord,
		codes: [2]uint16{
			packParameterWord(true, m>>fieldBits, o>>fieldBits),
			packParameterWord(false, m, o),
		},
	}
}

// packParameterWord packs the low five bits of m and o behind the
// continuation flag.
func packParameterWord(continuation bool, m, o uint16) uint16 {
	code := (m&fieldMask)<<fieldBits | o&fieldMask
	if continuation {
		code |= continuationBit
	}
	return code
}

func hasContinuation(code uint16) bool {
	return code&continuationBit != 0
}

// widthOf returns the parameter block width announced by its first word.
func widthOf(first uint16) ParameterWidth {
	if hasContinuation(first) {
		return TwoWord
	}
	return OneWord
}

func decodeParameters(codes []uint16) (Threshold, ShareIndex, error) {
	if len(codes) == 0 {
		return Threshold{}, ShareIndex{}, fmt.Errorf("%w: no parameter words provided", ErrMalformedParameters)
	}

	first := codes[0]
	var m, o uint16
	switch widthOf(first) {
	case OneWord:
		m = first >> fieldBits & fieldMask
		o = first & fieldMask
	case TwoWord:
		if len(codes) < 2 {
			return Threshold{}, ShareIndex{}, fmt.Errorf(
				"%w: continuation bit set but only one parameter word provided", ErrMalformedParameters)
		}
		second := codes[1]
		if hasContinuation(second) {
			return Threshold{}, ShareIndex{}, fmt.Errorf(
				"%w: second parameter word has continuation bit set", ErrMalformedParameters)
		}
		m = (first>>fieldBits&fieldMask)<<fieldBits | second>>fieldBits&fieldMask
		o = (first&fieldMask)<<fieldBits | second&fieldMask
	}

	if m > math.MaxUint8 {
		return Threshold{}, ShareIndex{}, fmt.Errorf("%w: threshold value %d exceeds 255", ErrMalformedParameters, m)
	}
	if o > math.MaxUint8 {
		return Threshold{}, ShareIndex{}, fmt.Errorf("%w: share index %d exceeds 255", ErrMalformedParameters, o)
	}

	threshold, err := NewThreshold(uint8(m))
	if err != nil {
		return Threshold{}, ShareIndex{}, err
	}
	index, err := NewShareIndex(uint8(o))
	if err != nil {
		return Threshold{}, ShareIndex{}, err
	}
	return threshold, index, nil
}
