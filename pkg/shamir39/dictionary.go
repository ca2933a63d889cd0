// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shameless.

package shamir39

import (
	"fmt"
	"strings"
	"sync"

	bip39 "github.com/cosmos/go-bip39"
)

const (
	// DictionarySize is the number of words in the BIP39 English word list
	DictionarySize = 2048

	// wordBits is the number of bits carried by a single word
	wordBits = 11

	maxWordCode = DictionarySize - 1
)

// dictionary is the bijection between BIP39 words and 11-bit codes.
// It is never mutated after buildDictionary returns.
type dictionary struct {
	words [DictionarySize]string
	codes map[string]uint16
}

var loadDictionary = sync.OnceValues(buildDictionary)

// buildDictionary indexes the BIP39 English word list by code.
func buildDictionary() (*dictionary, error) {
	if n := len(bip39.EnglishWordList); n != DictionarySize {
		return nil, fmt.Errorf("shamir39: word list has %d words, want %d", n, DictionarySize)
	}
	d := &dictionary{codes: make(map[string]uint16, DictionarySize)}
	for code, word := range bip39.EnglishWordList {
		d.words[code] = word
		d.codes[word] = uint16(code)
	}
	if len(d.codes) != DictionarySize {
		return nil, fmt.Errorf("shamir39: word list has %d unique words, want %d",
			len(d.codes), DictionarySize)
	}
	return d, nil
}

func (d *dictionary) word(code uint16) (string, error) {
	if code > maxWordCode {
		return "", fmt.Errorf("%w: %d (must be 0-%d)", ErrWordCodeRange, code, maxWordCode)
	}
	return d.words[code], nil
}

func (d *dictionary) code(word string) (uint16, error) {
	code, ok := d.codes[strings.ToLower(word)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWord, word)
	}
	return code, nil
}

// codesOf converts words to their codes. The returned slice should be
// cleared by the caller once it is no longer needed.
func (d *dictionary) codesOf(words []string) ([]uint16, error) {
	codes := make([]uint16, len(words))
	for i, w := range words {
		code, err := d.code(w)
		if err != nil {
			clear(codes)
			return nil, err
		}
		codes[i] = code
	}
	return codes, nil
}

// Word returns the dictionary word for an 11-bit code.
func Word(code uint16) (string, error) {
	d, err := loadDictionary()
	if err != nil {
		return "", err
	}
	return d.word(code)
}

// Code returns the 11-bit code of a dictionary word. Lookup is case-insensitive.
func Code(word string) (uint16, error) {
	d, err := loadDictionary()
	if err != nil {
		return 0, err
	}
	return d.code(word)
}

// IsWord reports whether word belongs to the dictionary.
func IsWord(word string) bool {
	_, err := Code(word)
	return err == nil
}
