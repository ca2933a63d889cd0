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
	"strings"
)

// VersionWord identifies the shameless share format. It is always the
// first word of an encoded share.
const VersionWord = "shameless"

// longest word in the BIP39 English list
const maxWordLength = 8

// EncodedShare is a share rendered as space-separated words. It holds
// secret-derived bits; call Zeroize once it is no longer needed.
type EncodedShare struct {
	phrase []byte
}

// String returns the share as a single line of words.
func (s *EncodedShare) String() string {
	return string(s.phrase)
}

// Bytes returns the share phrase. The slice aliases the share's storage
// and is cleared by Zeroize.
func (s *EncodedShare) Bytes() []byte {
	return s.phrase
}

// Words returns the individual words of the share.
func (s *EncodedShare) Words() []string {
	return strings.Fields(string(s.phrase))
}

// Len returns the number of words in the share.
func (s *EncodedShare) Len() int {
	return len(s.Words())
}

// Zeroize overwrites the share phrase with zeros.
func (s *EncodedShare) Zeroize() {
	clear(s.phrase)
	s.phrase = nil
}

// DecodedShare holds the components recovered from an encoded share.
type DecodedShare struct {
	Threshold Threshold
	Index     ShareIndex

	// Data is the share fragment. It is owned by the DecodedShare and
	// cleared by Zeroize.
	Data []byte
}

// Zeroize overwrites the fragment with zeros.
func (d *DecodedShare) Zeroize() {
	clear(d.Data)
	d.Data = nil
}

// Encode renders a share fragment, its threshold and its index as
// "shameless <parameter words> <payload words>".
//
// Fragments larger than MaxShareSize bytes are rejected with ErrShareTooLarge.
func Encode(data []byte, threshold Threshold, index ShareIndex) (*EncodedShare, error) {
	if err := threshold.validate(); err != nil {
		return nil, err
	}

	dict, err := loadDictionary()
	if err != nil {
		return nil, err
	}

	frame, err := buildFrame(data)
	if err != nil {
		return nil, err
	}
	defer clear(frame)

	params := encodeParameters(threshold, index)
	payload := encodePayload(frame)
	defer clear(payload)

	// Sized up front so the phrase never reallocates and leaves an
	// uncleared copy behind.
	wordCount := len(params.words()) + len(payload)
	phrase := make([]byte, 0, len(VersionWord)+wordCount*(maxWordLength+1))
	phrase = append(phrase, VersionWord...)

	for _, codes := range [][]uint16{params.words(), payload} {
		for _, code := range codes {
			word, err := dict.word(code)
			if err != nil {
				clear(phrase)
				return nil, err
			}
			phrase = append(phrase, ' ')
			phrase = append(phrase, word...)
		}
	}

	return &EncodedShare{phrase: phrase}, nil
}

// Decode parses an encoded share. Words are split on whitespace and
// matched case-insensitively. The fragment is returned only when the
// version word, the parameter block, the length prefix and the checksum
// are all valid.
func Decode(share string) (*DecodedShare, error) {
	fields := strings.Fields(share)
	if len(fields) == 0 {
		return nil, ErrEmptyShare
	}

	if version := strings.ToLower(fields[0]); version != VersionWord {
		return nil, fmt.Errorf("%w: expected '%s', got '%s'", ErrInvalidVersion, VersionWord, version)
	}

	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: need at least version + parameters", ErrShareTooShort)
	}

	dict, err := loadDictionary()
	if err != nil {
		return nil, err
	}

	first, err := dict.code(fields[1])
	if err != nil {
		return nil, err
	}
	width := int(widthOf(first))
	if len(fields) < 1+width {
		return nil, fmt.Errorf("%w: too short for parameter words", ErrShareTooShort)
	}

	paramCodes, err := dict.codesOf(fields[1 : 1+width])
	if err != nil {
		return nil, err
	}
	threshold, index, err := decodeParameters(paramCodes)
	if err != nil {
		return nil, err
	}

	payloadWords := fields[1+width:]
	if len(payloadWords) == 0 {
		return nil, fmt.Errorf("%w: no share data words found", ErrShareTooShort)
	}

	payload, err := dict.codesOf(payloadWords)
	if err != nil {
		return nil, err
	}
	defer clear(payload)

	// An upper bound on the frame size; unbuildFrame trims the surplus.
	maxBytes := len(payload) * wordBits / 8

	buf, err := decodePayload(payload, maxBytes)
	if err != nil {
		return nil, err
	}
	defer clear(buf)

	data, err := unbuildFrame(buf)
	if err != nil {
		return nil, err
	}

	out := make([]byte, len(data))
	copy(out, data)
	return &DecodedShare{
		Threshold: threshold,
		Index:     index,
		Data:      out,
	}, nil
}
