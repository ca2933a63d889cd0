// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shameless.

package shamir39

import (
	"crypto/rand"
	"math/big"
	"strings"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeString(t *testing.T, data []byte, threshold, index uint8) string {
	t.Helper()
	share, err := Encode(data, mustThreshold(t, threshold), mustIndex(t, index))
	require.NoError(t, err)
	return share.String()
}

func TestEncode_KnownShare(t *testing.T) {
	data := []byte{0xAB, 0xCD, 0xEF, 0x12, 0x34}

	share, err := Encode(data, mustThreshold(t, 3), mustIndex(t, 0))
	require.NoError(t, err)

	codes := []uint16{3 << 5, 0, 362, 1947, 1777, 282, 760, 399, 1210}
	want := []string{VersionWord}
	for _, code := range codes {
		word, err := Word(code)
		require.NoError(t, err)
		want = append(want, word)
	}
	assert.Equal(t, strings.Join(want, " "), share.String())
	assert.Equal(t, want, share.Words())
	assert.Equal(t, 10, share.Len())

	decoded, err := Decode(share.String())
	require.NoError(t, err)
	assert.Equal(t, uint8(3), decoded.Threshold.Value())
	assert.Equal(t, uint8(0), decoded.Index.Value())
	assert.Equal(t, data, decoded.Data)
}

func TestEncode_WordCount(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		threshold uint8
		index     uint8
	}{
		{"empty one-word params", 0, 2, 0},
		{"small one-word params", 5, 3, 1},
		{"secret two-word params", 17, 32, 5},
		{"large two-word params", 257, 200, 254},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			threshold := mustThreshold(t, tt.threshold)
			index := mustIndex(t, tt.index)
			share, err := Encode(make([]byte, tt.size), threshold, index)
			require.NoError(t, err)
			want := 1 + int(ParameterWidthFor(threshold, index)) + PayloadWordCount(tt.size)
			assert.Equal(t, want, share.Len())
		})
	}
}

func TestShare_RoundTripSizes(t *testing.T) {
	for n := 0; n <= 600; n++ {
		data := make([]byte, n)
		if n%2 == 1 {
			_, err := rand.Read(data)
			require.NoError(t, err)
		}
		threshold := uint8(2 + n%254)
		index := uint8(n % 255)

		decoded, err := Decode(encodeString(t, data, threshold, index))
		require.NoError(t, err, "n=%d", n)
		require.Equal(t, threshold, decoded.Threshold.Value())
		require.Equal(t, index, decoded.Index.Value())
		require.Equal(t, len(data), len(decoded.Data), "n=%d", n)
		if n > 0 {
			require.Equal(t, data, decoded.Data, "n=%d", n)
		}
	}
}

func TestShare_RoundTripMaxSize(t *testing.T) {
	data := make([]byte, MaxShareSize)
	_, err := rand.Read(data)
	require.NoError(t, err)

	decoded, err := Decode(encodeString(t, data, 255, 254))
	require.NoError(t, err)
	assert.Equal(t, data, decoded.Data)
}

func TestEncode_TooLarge(t *testing.T) {
	_, err := Encode(make([]byte, MaxShareSize+1), mustThreshold(t, 2), mustIndex(t, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShareTooLarge)
}

func TestEncode_ZeroThreshold(t *testing.T) {
	_, err := Encode([]byte{1}, Threshold{}, mustIndex(t, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}

func TestDecode_Normalization(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	phrase := encodeString(t, data, 5, 40)

	variants := map[string]string{
		"upper":      strings.ToUpper(phrase),
		"whitespace": "  " + strings.ReplaceAll(phrase, " ", " \t\n  ") + "\n",
		"mixed":      alternateCase(phrase),
	}
	for name, variant := range variants {
		t.Run(name, func(t *testing.T) {
			decoded, err := Decode(variant)
			require.NoError(t, err)
			assert.Equal(t, data, decoded.Data)
			assert.Equal(t, uint8(5), decoded.Threshold.Value())
			assert.Equal(t, uint8(40), decoded.Index.Value())
		})
	}
}

func alternateCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i%2 == 0 {
			b.WriteString(strings.ToUpper(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestDecode_Errors(t *testing.T) {
	valid := strings.Fields(encodeString(t, []byte{1, 2, 3}, 2, 1))
	twoWord := strings.Fields(encodeString(t, []byte{1, 2, 3}, 40, 1))

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", ErrEmptyShare},
		{"blank", " \t\n ", ErrEmptyShare},
		{"wrong version", "shamir " + strings.Join(valid[1:], " "), ErrInvalidVersion},
		{"version only", "shameless", ErrShareTooShort},
		{"no payload", strings.Join(valid[:2], " "), ErrShareTooShort},
		{"missing second parameter word", strings.Join(twoWord[:2], " "), ErrShareTooShort},
		{"unknown word", strings.Join(append(valid[:3:3], "notaword"), " "), ErrUnknownWord},
		{"unknown parameter word", "shameless notaword abandon", ErrUnknownWord},
		{"payload too short", strings.Join(valid[:3], " "), ErrEncodedDataTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsFormatError(err))
		})
	}
}

func TestDecode_InvalidVersionMessage(t *testing.T) {
	_, err := Decode("Shamir39 abandon abandon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 'shameless', got 'shamir39'")
}

func TestDecode_DetectsCorruption(t *testing.T) {
	data := []byte("correct horse battery staple")
	threshold := mustThreshold(t, 3)
	index := mustIndex(t, 2)
	words := strings.Fields(encodeString(t, data, 3, 2))
	payloadStart := 1 + int(ParameterWidthFor(threshold, index))

	for i := payloadStart; i < len(words); i++ {
		code, err := Code(words[i])
		require.NoError(t, err)
		flipped, err := Word(code ^ 1)
		require.NoError(t, err)

		corrupted := append([]string(nil), words...)
		corrupted[i] = flipped

		_, err = Decode(strings.Join(corrupted, " "))
		require.Error(t, err, "word %d", i)
		assert.True(t, IsIntegrityError(err) || IsFormatError(err), "word %d: %v", i, err)
	}
}

func TestDecode_SwappedPayloadWords(t *testing.T) {
	words := strings.Fields(encodeString(t, []byte{0x10, 0x20, 0x30, 0x40, 0x50}, 2, 0))
	last := len(words) - 1
	words[last], words[last-1] = words[last-1], words[last]

	_, err := Decode(strings.Join(words, " "))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestShare_RoundTripProperty(t *testing.T) {
	property := func(data []byte, threshold, index uint8) bool {
		threshold = MinThreshold + threshold%(255-MinThreshold+1)
		index %= MaxShareIndex + 1
		share, err := Encode(data, Threshold{value: threshold}, ShareIndex{value: index})
		if err != nil {
			return false
		}
		decoded, err := Decode(share.String())
		if err != nil {
			return false
		}
		return decoded.Threshold.Value() == threshold &&
			decoded.Index.Value() == index &&
			string(decoded.Data) == string(data)
	}
	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 500}))
}

func TestDecode_RandomWordsNeverPanic(t *testing.T) {
	for i := 0; i < 500; i++ {
		count, err := rand.Int(rand.Reader, big.NewInt(20))
		require.NoError(t, err)

		words := []string{VersionWord}
		for j := int64(0); j <= count.Int64(); j++ {
			code, err := rand.Int(rand.Reader, big.NewInt(DictionarySize))
			require.NoError(t, err)
			word, err := Word(uint16(code.Int64()))
			require.NoError(t, err)
			words = append(words, word)
		}

		assert.NotPanics(t, func() {
			decoded, err := Decode(strings.Join(words, " "))
			if err == nil {
				assert.GreaterOrEqual(t, decoded.Threshold.Value(), uint8(MinThreshold))
				assert.LessOrEqual(t, decoded.Index.Value(), uint8(MaxShareIndex))
			}
		})
	}
}

func TestEncodedShare_Zeroize(t *testing.T) {
	share, err := Encode([]byte{1, 2, 3}, mustThreshold(t, 2), mustIndex(t, 0))
	require.NoError(t, err)

	phrase := share.Bytes()
	require.NotEmpty(t, phrase)
	share.Zeroize()

	for _, b := range phrase {
		assert.Zero(t, b)
	}
	assert.Empty(t, share.String())
}

func TestDecodedShare_Zeroize(t *testing.T) {
	decoded, err := Decode(encodeString(t, []byte{9, 8, 7}, 2, 0))
	require.NoError(t, err)

	data := decoded.Data
	decoded.Zeroize()
	assert.Equal(t, []byte{0, 0, 0}, data)
	assert.Nil(t, decoded.Data)
}
