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

// Package shamir provides Shamir's Secret Sharing schemes that split a
// secret into N fragments, any M of which reconstruct it.
//
// Two interchangeable schemes are available. The default "gf256" scheme
// works byte-wise over GF(2^8) and produces fragments one byte longer than
// the secret. The "sssa" scheme works over a 256-bit prime field and
// produces longer, text-encoded fragments. Fragments from one scheme
// cannot be combined by the other.
package shamir

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jeremyhahn/go-shameless/pkg/shamir39"
)

const (
	// SchemeGF256 names the byte-wise GF(2^8) scheme
	SchemeGF256 = "gf256"

	// SchemeSSSA names the prime field scheme
	SchemeSSSA = "sssa"

	// DefaultScheme is used when no scheme is configured
	DefaultScheme = SchemeGF256
)

var (
	// ErrUnknownScheme is returned by NewScheme for unregistered names
	ErrUnknownScheme = errors.New("shamir: unknown scheme")

	// ErrNoShares is returned when Combine is called without shares
	ErrNoShares = errors.New("shamir: no shares provided")

	// ErrEmptySecret is returned when Split is called without a secret
	ErrEmptySecret = errors.New("shamir: secret cannot be empty")

	// ErrInvalidShare is returned when a share cannot take part in Combine
	ErrInvalidShare = errors.New("shamir: invalid share")

	// ErrInsufficientShares is returned when fewer shares than the
	// threshold are combined
	ErrInsufficientShares = errors.New("shamir: insufficient shares")
)

// Scheme splits and recombines secrets.
type Scheme interface {
	// Name returns the registered name of the scheme.
	Name() string

	// Split divides secret into cfg.ShareCount() shares with indices
	// 0..N-1, any cfg.Threshold() of which reconstruct it.
	Split(secret []byte, cfg shamir39.SplitConfig) ([]*Share, error)

	// Combine reconstructs a secret from at least threshold shares.
	// Combining too few shares yields a wrong secret rather than an error
	// for some schemes; callers enforce the threshold.
	Combine(shares []*Share) ([]byte, error)
}

var schemes = map[string]func() Scheme{
	SchemeGF256: func() Scheme { return &GF256Scheme{} },
	SchemeSSSA:  func() Scheme { return &SSSAScheme{} },
}

// NewScheme returns the scheme registered under name. An empty name
// selects DefaultScheme.
func NewScheme(name string) (Scheme, error) {
	if name == "" {
		name = DefaultScheme
	}
	factory, ok := schemes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScheme, name, SchemeNames())
	}
	return factory(), nil
}

// SchemeNames returns the registered scheme names in sorted order.
func SchemeNames() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validateShares(shares []*Share) error {
	if len(shares) == 0 {
		return ErrNoShares
	}
	threshold := shares[0].Threshold
	for i, share := range shares {
		if err := share.Validate(); err != nil {
			return fmt.Errorf("%w %d: %w", ErrInvalidShare, i, err)
		}
		if share.Threshold != threshold {
			return fmt.Errorf("%w: share %d has different threshold (%d) than share 0 (%d)",
				ErrInvalidShare, i, share.Threshold, threshold)
		}
	}
	if len(shares) < threshold {
		return fmt.Errorf("%w: need at least %d shares, got %d", ErrInsufficientShares, threshold, len(shares))
	}
	return nil
}
