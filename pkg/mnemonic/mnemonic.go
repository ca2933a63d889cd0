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

// Package mnemonic converts BIP39 phrases to and from their entropy.
package mnemonic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cosmos/go-bip39"

	"github.com/jeremyhahn/go-shameless/pkg/secret"
	"github.com/jeremyhahn/go-shameless/pkg/shamir39"
)

const bitsPerWord = 11

var (
	// ErrInvalidWordCount is returned for phrases that are not 12, 15, 18,
	// 21 or 24 words long
	ErrInvalidWordCount = errors.New("mnemonic: word count must be 12, 15, 18, 21 or 24")

	// ErrInvalidChecksum is returned when the checksum bits do not match
	// the entropy
	ErrInvalidChecksum = errors.New("mnemonic: invalid checksum")

	// ErrInvalidEntropy is returned for entropy that is not 16-32 bytes in
	// steps of 4
	ErrInvalidEntropy = errors.New("mnemonic: entropy must be 16, 20, 24, 28 or 32 bytes")
)

// Normalize lowercases phrase and collapses runs of whitespace to single
// spaces.
func Normalize(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

// ToEntropy decodes a BIP39 phrase into its entropy. The caller must
// Close the returned buffer.
func ToEntropy(phrase string) (*secret.Buffer, error) {
	words := strings.Fields(strings.ToLower(phrase))
	switch len(words) {
	case 12, 15, 18, 21, 24:
	default:
		return nil, fmt.Errorf("%w, got %d", ErrInvalidWordCount, len(words))
	}
	for i, word := range words {
		if _, err := shamir39.Code(word); err != nil {
			return nil, fmt.Errorf("word %d: %w", i+1, err)
		}
	}

	// The library returns entropy||checksum as one big-endian integer
	// padded to entropy+1 bytes.
	packed, err := bip39.MnemonicToByteArray(strings.Join(words, " "))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidChecksum, err)
	}
	defer clear(packed)

	checksumBits := len(words) * bitsPerWord % 32
	entropy := make([]byte, len(packed)-1)
	for i := range entropy {
		entropy[i] = packed[i]<<(8-checksumBits) | packed[i+1]>>checksumBits
	}

	// NewFromBytes zeroes entropy.
	return secret.NewFromBytes(entropy)
}

// FromEntropy encodes entropy as a BIP39 phrase.
func FromEntropy(entropy []byte) (string, error) {
	switch len(entropy) {
	case 16, 20, 24, 28, 32:
	default:
		return "", fmt.Errorf("%w, got %d", ErrInvalidEntropy, len(entropy))
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("mnemonic: encoding entropy: %w", err)
	}
	return phrase, nil
}

// Generate returns a new random phrase backed by bitSize bits of entropy
// (128-256, a multiple of 32).
func Generate(bitSize int) (string, error) {
	entropy, err := bip39.NewEntropy(bitSize)
	if err != nil {
		return "", fmt.Errorf("mnemonic: generating entropy: %w", err)
	}
	defer clear(entropy)
	return FromEntropy(entropy)
}

// GenerateWords returns a new random phrase of words words.
func GenerateWords(words int) (string, error) {
	switch words {
	case 12, 15, 18, 21, 24:
	default:
		return "", fmt.Errorf("%w, got %d", ErrInvalidWordCount, words)
	}
	return Generate(words / 3 * 32)
}

// Validate reports whether phrase is a well-formed BIP39 phrase.
func Validate(phrase string) error {
	entropy, err := ToEntropy(phrase)
	if err != nil {
		return err
	}
	return entropy.Close()
}
