// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shameless.

package keysplit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-shameless/pkg/mnemonic"
	"github.com/jeremyhahn/go-shameless/pkg/shamir39"
	"github.com/jeremyhahn/go-shameless/pkg/threshold/shamir"
)

const (
	phrase12 = "legal winner thank year wave sausage worth useful legal winner thank yellow"
	phrase24 = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon " +
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon art"
)

func splitConfig(t *testing.T, threshold, shares int) shamir39.SplitConfig {
	t.Helper()
	cfg, err := shamir39.ParseSplitConfig(threshold, shares)
	require.NoError(t, err)
	return cfg
}

func scheme(t *testing.T, name string) shamir.Scheme {
	t.Helper()
	s, err := shamir.NewScheme(name)
	require.NoError(t, err)
	return s
}

func TestSplitCombine_RoundTrip(t *testing.T) {
	for _, name := range shamir.SchemeNames() {
		for _, phrase := range []string{phrase12, phrase24} {
			t.Run(name, func(t *testing.T) {
				s := scheme(t, name)
				split, err := Split(phrase, splitConfig(t, 3, 5), s)
				require.NoError(t, err)
				require.Len(t, split.Shares, 5)
				assert.Equal(t, 3, split.Threshold)
				assert.Equal(t, 5, split.ShareCount)
				assert.Equal(t, name, split.Scheme)

				for i, share := range split.Shares {
					assert.True(t, strings.HasPrefix(share, shamir39.VersionWord+" "))
					decoded, err := shamir39.Decode(share)
					require.NoError(t, err)
					assert.Equal(t, uint8(3), decoded.Threshold.Value())
					assert.Equal(t, uint8(i), decoded.Index.Value())
				}

				combined, err := Combine([]string{split.Shares[4], split.Shares[0], split.Shares[2]}, s)
				require.NoError(t, err)
				assert.Equal(t, phrase, combined.Mnemonic)
				assert.Equal(t, 3, combined.SharesUsed)
				assert.Equal(t, []int{0, 2, 4}, combined.Indices)
			})
		}
	}
}

func TestSplit_EntropyBytes(t *testing.T) {
	split, err := Split(phrase24, splitConfig(t, 2, 2), scheme(t, shamir.SchemeGF256))
	require.NoError(t, err)
	assert.Equal(t, 32, split.EntropyBytes)
}

func TestSplit_NormalizesInput(t *testing.T) {
	s := scheme(t, shamir.SchemeGF256)
	split, err := Split("  "+strings.ToUpper(phrase12)+"\n", splitConfig(t, 2, 3), s)
	require.NoError(t, err)

	combined, err := Combine(split.Shares[1:], s)
	require.NoError(t, err)
	assert.Equal(t, phrase12, combined.Mnemonic)
}

func TestSplit_InvalidMnemonic(t *testing.T) {
	_, err := Split("not a mnemonic", splitConfig(t, 2, 3), scheme(t, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse input mnemonic")
	assert.ErrorIs(t, err, mnemonic.ErrInvalidWordCount)
}

func TestCombine_AllSubsetsOfThreshold(t *testing.T) {
	s := scheme(t, shamir.SchemeGF256)
	split, err := Split(phrase12, splitConfig(t, 2, 4), s)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			combined, err := Combine([]string{split.Shares[i], split.Shares[j]}, s)
			require.NoError(t, err)
			assert.Equal(t, phrase12, combined.Mnemonic)
		}
	}
}

func TestCombine_Errors(t *testing.T) {
	s := scheme(t, shamir.SchemeGF256)
	three, err := Split(phrase12, splitConfig(t, 3, 5), s)
	require.NoError(t, err)
	two, err := Split(phrase12, splitConfig(t, 2, 3), s)
	require.NoError(t, err)

	t.Run("no shares", func(t *testing.T) {
		_, err := Combine(nil, s)
		assert.ErrorIs(t, err, ErrNoShares)
	})

	t.Run("insufficient", func(t *testing.T) {
		_, err := Combine(three.Shares[:2], s)
		require.ErrorIs(t, err, ErrInsufficientShares)
		assert.Contains(t, err.Error(), "need at least 3, but only 2 provided")
	})

	t.Run("inconsistent threshold", func(t *testing.T) {
		_, err := Combine([]string{three.Shares[0], two.Shares[1], three.Shares[2]}, s)
		require.ErrorIs(t, err, ErrInconsistentThreshold)
		assert.Contains(t, err.Error(), "share #2")
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := Combine([]string{three.Shares[0], three.Shares[1], three.Shares[0]}, s)
		assert.ErrorIs(t, err, ErrDuplicateIndex)
	})

	t.Run("unparseable share", func(t *testing.T) {
		_, err := Combine([]string{three.Shares[0], "shameless zoo"}, s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse share #2")
		assert.True(t, shamir39.IsFormatError(err))
	})

	t.Run("corrupted share", func(t *testing.T) {
		words := strings.Fields(three.Shares[1])
		last := len(words) - 1
		code, err := shamir39.Code(words[last])
		require.NoError(t, err)
		words[last], err = shamir39.Word(code ^ 0x10)
		require.NoError(t, err)

		_, err = Combine([]string{three.Shares[0], strings.Join(words, " "), three.Shares[2]}, s)
		require.Error(t, err)
		assert.True(t, shamir39.IsIntegrityError(err))
	})

	t.Run("wrong scheme", func(t *testing.T) {
		_, err := Combine(three.Shares[:3], scheme(t, shamir.SchemeSSSA))
		assert.Error(t, err)
	})
}
