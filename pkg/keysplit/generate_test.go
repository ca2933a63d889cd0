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

func TestGenerate(t *testing.T) {
	tests := []struct {
		words       int
		wantWords   int
		wantEntropy int
	}{
		{0, 12, 16},
		{12, 12, 16},
		{15, 15, 20},
		{18, 18, 24},
		{21, 21, 28},
		{24, 24, 32},
	}

	for _, tt := range tests {
		result, err := Generate(tt.words)
		require.NoError(t, err)
		assert.Equal(t, tt.wantWords, result.Words)
		assert.Equal(t, tt.wantEntropy, result.EntropyBytes)
		assert.Len(t, strings.Fields(result.Mnemonic), tt.wantWords)
		require.NoError(t, mnemonic.Validate(result.Mnemonic))
	}
}

func TestGenerate_Distinct(t *testing.T) {
	a, err := Generate(24)
	require.NoError(t, err)
	b, err := Generate(24)
	require.NoError(t, err)
	assert.NotEqual(t, a.Mnemonic, b.Mnemonic)
}

func TestGenerate_InvalidWordCount(t *testing.T) {
	for _, words := range []int{-12, 11, 13, 25, 48} {
		_, err := Generate(words)
		require.Error(t, err)
		assert.ErrorIs(t, err, mnemonic.ErrInvalidWordCount)
	}
}

func TestGenerate_SplitsAndCombines(t *testing.T) {
	generated, err := Generate(24)
	require.NoError(t, err)

	cfg, err := shamir39.ParseSplitConfig(2, 3)
	require.NoError(t, err)
	scheme, err := shamir.NewScheme(shamir.SchemeGF256)
	require.NoError(t, err)

	split, err := Split(generated.Mnemonic, cfg, scheme)
	require.NoError(t, err)

	combined, err := Combine(split.Shares[1:], scheme)
	require.NoError(t, err)
	assert.Equal(t, generated.Mnemonic, combined.Mnemonic)
}
