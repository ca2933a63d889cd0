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
	"fmt"

	vaultshamir "github.com/hashicorp/vault/shamir"

	"github.com/jeremyhahn/go-shameless/pkg/shamir39"
)

// GF256Scheme splits secrets byte-wise over GF(2^8). Each fragment is the
// secret-length y values followed by a random, unique x coordinate.
type GF256Scheme struct{}

// Name returns SchemeGF256.
func (s *GF256Scheme) Name() string {
	return SchemeGF256
}

// Split divides secret into cfg.ShareCount() fragments.
func (s *GF256Scheme) Split(secret []byte, cfg shamir39.SplitConfig) ([]*Share, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	threshold := cfg.Threshold().Int()
	parts, err := vaultshamir.Split(secret, cfg.ShareCount().Int(), threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to split secret: %w", err)
	}

	shares := make([]*Share, len(parts))
	for i, part := range parts {
		shares[i] = &Share{
			Index:     i,
			Threshold: threshold,
			Value:     part,
		}
	}
	return shares, nil
}

// Combine interpolates the fragments back into the secret.
func (s *GF256Scheme) Combine(shares []*Share) ([]byte, error) {
	if err := validateShares(shares); err != nil {
		return nil, err
	}

	parts := make([][]byte, len(shares))
	for i, share := range shares {
		parts[i] = share.Value
	}

	secret, err := vaultshamir.Combine(parts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to combine shares: %w", ErrInvalidShare, err)
	}
	return secret, nil
}
