// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shameless.

package shamir39

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThreshold(t *testing.T) {
	for _, v := range []uint8{0, 1} {
		_, err := NewThreshold(v)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidThreshold)
		assert.Contains(t, err.Error(), fmt.Sprintf("(got %d)", v))
	}

	for _, v := range []uint8{2, 3, 31, 32, 255} {
		threshold, err := NewThreshold(v)
		require.NoError(t, err)
		assert.Equal(t, v, threshold.Value())
		assert.Equal(t, int(v), threshold.Int())
		assert.Equal(t, fmt.Sprint(v), threshold.String())
	}
}

func TestNewShareIndex(t *testing.T) {
	for _, v := range []uint8{0, 1, 31, 32, 254} {
		index, err := NewShareIndex(v)
		require.NoError(t, err)
		assert.Equal(t, v, index.Value())
	}

	_, err := NewShareIndex(255)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidShareIndex)
}

func TestNewShareCount(t *testing.T) {
	for _, v := range []uint8{0, 255} {
		_, err := NewShareCount(v)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidShareCount)
	}

	count, err := NewShareCount(254)
	require.NoError(t, err)
	assert.Equal(t, 254, count.Int())
	assert.Equal(t, "254", count.String())
}

func TestNewSplitConfig(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		shares    int
		wantErr   error
	}{
		{"minimal", 2, 2, nil},
		{"typical", 3, 5, nil},
		{"maximum", 254, 254, nil},
		{"threshold one", 1, 5, ErrInvalidThreshold},
		{"threshold above shares", 4, 3, ErrThresholdExceedsShareCount},
		{"single share", 2, 1, ErrThresholdExceedsShareCount},
		{"zero shares", 2, 0, ErrInvalidShareCount},
		{"too many shares", 2, 255, ErrInvalidShareCount},
		{"negative threshold", -1, 5, ErrInvalidThreshold},
		{"threshold overflow", 300, 5, ErrInvalidThreshold},
		{"share overflow", 2, 1000, ErrInvalidShareCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseSplitConfig(tt.threshold, tt.shares)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.threshold, cfg.Threshold().Int())
			assert.Equal(t, tt.shares, cfg.ShareCount().Int())
		})
	}
}

func TestNewSplitConfig_ZeroValues(t *testing.T) {
	_, err := NewSplitConfig(Threshold{}, ShareCount{value: 3})
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = NewSplitConfig(Threshold{value: 2}, ShareCount{})
	assert.ErrorIs(t, err, ErrInvalidShareCount)
}

func TestErrorClassifiers(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", ErrUnknownWord)
	assert.True(t, IsFormatError(wrapped))
	assert.False(t, IsValidationError(wrapped))
	assert.False(t, IsIntegrityError(wrapped))

	assert.True(t, IsValidationError(ErrShareTooLarge))
	assert.True(t, IsIntegrityError(fmt.Errorf("x: %w", ErrChecksumMismatch)))

	other := errors.New("unrelated")
	assert.False(t, IsFormatError(other))
	assert.False(t, IsValidationError(other))
	assert.False(t, IsIntegrityError(other))
	assert.False(t, IsFormatError(nil))
}
