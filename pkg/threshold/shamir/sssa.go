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

package shamir

import (
	"encoding/hex"
	"fmt"

	"github.com/SSSaaS/sssa-golang"

	"github.com/jeremyhahn/go-shameless/pkg/shamir39"
)

// SSSAScheme splits secrets over a 256-bit prime field. The secret is
// hex encoded before splitting, and each fragment is the ASCII form of an
// sssa share.
type SSSAScheme struct{}

// Name returns SchemeSSSA.
func (s *SSSAScheme) Name() string {
	return SchemeSSSA
}

// Split divides secret into cfg.ShareCount() fragments.
func (s *SSSAScheme) Split(secret []byte, cfg shamir39.SplitConfig) ([]*Share, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	threshold := cfg.Threshold().Int()
	secretHex := hex.EncodeToString(secret)
	shareStrings, err := sssa.Create(threshold, cfg.ShareCount().Int(), secretHex)
	if err != nil {
		return nil, fmt.Errorf("failed to split secret: %w", err)
	}

	shares := make([]*Share, len(shareStrings))
	for i, shareStr := range shareStrings {
		shares[i] = &Share{
			Index:     i,
			Threshold: threshold,
			Value:     []byte(shareStr),
		}
	}
	return shares, nil
}

// Combine reconstructs the secret from sssa fragments.
func (s *SSSAScheme) Combine(shares []*Share) ([]byte, error) {
	if err := validateShares(shares); err != nil {
		return nil, err
	}

	shareStrings := make([]string, len(shares))
	for i, share := range shares {
		if !sssa.IsValidShare(string(share.Value)) {
			return nil, fmt.Errorf("%w %d: not an sssa share", ErrInvalidShare, i)
		}
		shareStrings[i] = string(share.Value)
	}

	secretHex, err := sssa.Combine(shareStrings)
	if err != nil {
		return nil, fmt.Errorf("failed to combine shares: %w", err)
	}

	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hex secret: %w", err)
	}
	return secret, nil
}
