// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shameless.

package shamir

import (
	"fmt"

	"github.com/jeremyhahn/go-shameless/pkg/shamir39"
)

// Share is one fragment of a split secret.
type Share struct {
	// Index is the share ordinal (0 to N-1)
	Index int `json:"index"`

	// Threshold is the minimum number of shares required to reconstruct (M)
	Threshold int `json:"threshold"`

	// Value is the scheme-specific fragment
	Value []byte `json:"value"`
}

// String returns a redacted representation of the share.
func (s *Share) String() string {
	return fmt.Sprintf("Share{Index: %d, Threshold: %d, Size: %d}", s.Index, s.Threshold, len(s.Value))
}

// Validate checks if the share has valid parameters
func (s *Share) Validate() error {
	if s.Index < 0 || s.Index > shamir39.MaxShareIndex {
		return fmt.Errorf("invalid share index: %d (must be 0-%d)", s.Index, shamir39.MaxShareIndex)
	}
	if s.Threshold < shamir39.MinThreshold {
		return fmt.Errorf("invalid threshold: %d (must be >= %d)", s.Threshold, shamir39.MinThreshold)
	}
	if len(s.Value) == 0 {
		return fmt.Errorf("share value is empty")
	}
	return nil
}

// Zeroize overwrites the fragment with zeros.
func (s *Share) Zeroize() {
	clear(s.Value)
	s.Value = nil
}

// ZeroizeAll zeroes every share in shares.
func ZeroizeAll(shares []*Share) {
	for _, share := range shares {
		if share != nil {
			share.Zeroize()
		}
	}
}
