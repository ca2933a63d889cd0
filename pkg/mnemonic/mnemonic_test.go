// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shameless.

package mnemonic

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-shameless/pkg/shamir39"
)

var vectors = []struct {
	entropy string
	phrase  string
}{
	{
		"00000000000000000000000000000000",
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
	},
	{
		"7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f7f",
		"legal winner thank year wave sausage worth useful legal winner thank yellow",
	},
	{
		"80808080808080808080808080808080",
		"letter advice cage absurd amount doctor acoustic avoid letter advice cage above",
	},
	{
		"ffffffffffffffffffffffffffffffff",
		"zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo wrong",
	},
	{
		"0000000000000000000000000000000000000000000000000000000000000000",
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon " +
			"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art",
	},
}

func TestFromEntropy_Vectors(t *testing.T) {
	for _, v := range vectors {
		entropy, err := hex.DecodeString(v.entropy)
		require.NoError(t, err)

		phrase, err := FromEntropy(entropy)
		require.NoError(t, err)
		assert.Equal(t, v.phrase, phrase)
	}
}

func TestToEntropy_Vectors(t *testing.T) {
	for _, v := range vectors {
		buf, err := ToEntropy(v.phrase)
		require.NoError(t, err)
		assert.Equal(t, v.entropy, hex.EncodeToString(buf.Bytes()))
		require.NoError(t, buf.Close())
	}
}

func TestToEntropy_Normalizes(t *testing.T) {
	phrase := "  LEGAL winner\tthank year wave sausage worth useful legal winner thank\nYellow "
	buf, err := ToEntropy(phrase)
	require.NoError(t, err)
	defer buf.Close()
	assert.True(t, buf.Equal(bytes.Repeat([]byte{0x7f}, 16)))

	assert.Equal(t, vectors[1].phrase, Normalize(phrase))
}

func TestToEntropy_Errors(t *testing.T) {
	tests := []struct {
		name    string
		phrase  string
		wantErr error
	}{
		{"empty", "", ErrInvalidWordCount},
		{"eleven words", strings.Repeat("abandon ", 11), ErrInvalidWordCount},
		{"thirteen words", strings.Repeat("abandon ", 13), ErrInvalidWordCount},
		{"bad checksum", strings.Repeat("abandon ", 12), ErrInvalidChecksum},
		{"bad checksum 24", strings.Repeat("zoo ", 24), ErrInvalidChecksum},
		{"unknown word", strings.Repeat("abandon ", 11) + "shameless", shamir39.ErrUnknownWord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToEntropy(tt.phrase)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Error(t, Validate(tt.phrase))
		})
	}
}

func TestFromEntropy_InvalidLength(t *testing.T) {
	for _, n := range []int{0, 15, 17, 33} {
		_, err := FromEntropy(make([]byte, n))
		assert.ErrorIs(t, err, ErrInvalidEntropy)
	}
}

func TestGenerate_RoundTrip(t *testing.T) {
	for _, bits := range []int{128, 160, 192, 224, 256} {
		phrase, err := Generate(bits)
		require.NoError(t, err)
		assert.Len(t, strings.Fields(phrase), bits/32*3)
		require.NoError(t, Validate(phrase))

		buf, err := ToEntropy(phrase)
		require.NoError(t, err)
		assert.Equal(t, bits/8, buf.Len())

		again, err := FromEntropy(buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, phrase, again)
		require.NoError(t, buf.Close())
	}

	_, err := Generate(100)
	assert.Error(t, err)
}

func TestToEntropy_AllLengths(t *testing.T) {
	for _, size := range []int{16, 20, 24, 28, 32} {
		entropy := make([]byte, size)
		for i := range entropy {
			entropy[i] = byte(0xa5 ^ i*37)
		}
		want := append([]byte(nil), entropy...)

		phrase, err := FromEntropy(entropy)
		require.NoError(t, err)

		buf, err := ToEntropy(phrase)
		require.NoError(t, err, "size=%d", size)
		assert.Equal(t, want, buf.Bytes(), "size=%d", size)
		require.NoError(t, buf.Close())
	}
}

func TestToEntropy_FlippedChecksumWord(t *testing.T) {
	words := strings.Fields(vectors[2].phrase)
	code, err := shamir39.Code(words[len(words)-1])
	require.NoError(t, err)
	words[len(words)-1], err = shamir39.Word(code ^ 1)
	require.NoError(t, err)

	_, err = ToEntropy(strings.Join(words, " "))
	assert.ErrorIs(t, err, ErrInvalidChecksum)
}
