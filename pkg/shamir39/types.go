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

import "fmt"

const (
	// MinThreshold is the smallest threshold that still protects the secret.
	// A threshold of 1 lets any single share recover it.
	MinThreshold = 2

	// MaxShareIndex is the largest valid share index. 255 is reserved by
	// the GF(256) splitting schemes.
	MaxShareIndex = 254

	// MinShareCount is the smallest number of shares that can be requested
	MinShareCount = 1

	// MaxShareCount is the largest number of shares that can be requested
	MaxShareCount = 254
)

// Threshold is the minimum number of shares required to reconstruct a
// secret (2..255). The zero value is invalid; use NewThreshold.
type Threshold struct {
	value uint8
}

// NewThreshold returns a Threshold, or ErrInvalidThreshold if value < 2.
func NewThreshold(value uint8) (Threshold, error) {
	if value < MinThreshold {
		return Threshold{}, fmt.Errorf("%w (got %d)", ErrInvalidThreshold, value)
	}
	return Threshold{value: value}, nil
}

// Value returns the threshold as a byte.
func (t Threshold) Value() uint8 {
	return t.value
}

// Int returns the threshold as an int.
func (t Threshold) Int() int {
	return int(t.value)
}

func (t Threshold) String() string {
	return fmt.Sprintf("%d", t.value)
}

func (t Threshold) validate() error {
	if t.value < MinThreshold {
		return fmt.Errorf("%w (got %d)", ErrInvalidThreshold, t.value)
	}
	return nil
}

// ShareIndex is the ordinal of a share among its siblings (0..254).
type ShareIndex struct {
	value uint8
}

// NewShareIndex returns a ShareIndex, or ErrInvalidShareIndex for 255.
func NewShareIndex(value uint8) (ShareIndex, error) {
	if value > MaxShareIndex {
		return ShareIndex{}, fmt.Errorf("%w (got %d)", ErrInvalidShareIndex, value)
	}
	return ShareIndex{value: value}, nil
}

// Value returns the index as a byte.
func (i ShareIndex) Value() uint8 {
	return i.value
}

func (i ShareIndex) String() string {
	return fmt.Sprintf("%d", i.value)
}

// ShareCount is the total number of shares produced by a split (1..254).
type ShareCount struct {
	value uint8
}

// NewShareCount returns a ShareCount, or ErrInvalidShareCount for 0 and 255.
func NewShareCount(value uint8) (ShareCount, error) {
	if value < MinShareCount || value > MaxShareCount {
		return ShareCount{}, fmt.Errorf("%w (got %d)", ErrInvalidShareCount, value)
	}
	return ShareCount{value: value}, nil
}

// Value returns the count as a byte.
func (c ShareCount) Value() uint8 {
	return c.value
}

// Int returns the count as an int.
func (c ShareCount) Int() int {
	return int(c.value)
}

func (c ShareCount) String() string {
	return fmt.Sprintf("%d", c.value)
}

// SplitConfig is a validated threshold and share count pair. The threshold
// never exceeds the share count.
type SplitConfig struct {
	threshold  Threshold
	shareCount ShareCount
}

// NewSplitConfig returns a SplitConfig, or ErrThresholdExceedsShareCount
// when more shares would be required than exist.
func NewSplitConfig(threshold Threshold, shareCount ShareCount) (SplitConfig, error) {
	if err := threshold.validate(); err != nil {
		return SplitConfig{}, err
	}
	if shareCount.value < MinShareCount {
		return SplitConfig{}, fmt.Errorf("%w (got %d)", ErrInvalidShareCount, shareCount.value)
	}
	if threshold.value > shareCount.value {
		return SplitConfig{}, fmt.Errorf("%w: threshold %d, share count %d",
			ErrThresholdExceedsShareCount, threshold.value, shareCount.value)
	}
	return SplitConfig{threshold: threshold, shareCount: shareCount}, nil
}

// ParseSplitConfig validates raw threshold and share count values.
func ParseSplitConfig(threshold, shareCount int) (SplitConfig, error) {
	if threshold < 0 || threshold > 255 {
		return SplitConfig{}, fmt.Errorf("%w (got %d)", ErrInvalidThreshold, threshold)
	}
	if shareCount < 0 || shareCount > 255 {
		return SplitConfig{}, fmt.Errorf("%w (got %d)", ErrInvalidShareCount, shareCount)
	}
	t, err := NewThreshold(uint8(threshold))
	if err != nil {
		return SplitConfig{}, err
	}
	n, err := NewShareCount(uint8(shareCount))
	if err != nil {
		return SplitConfig{}, err
	}
	return NewSplitConfig(t, n)
}

// Threshold returns the reconstruction threshold.
func (c SplitConfig) Threshold() Threshold {
	return c.threshold
}

// ShareCount returns the number of shares to create.
func (c SplitConfig) ShareCount() ShareCount {
	return c.shareCount
}
