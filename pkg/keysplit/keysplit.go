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

// Package keysplit splits a BIP39 mnemonic into shameless word shares and
// combines shares back into the mnemonic.
package keysplit

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jeremyhahn/go-shameless/pkg/metrics"
	"github.com/jeremyhahn/go-shameless/pkg/mnemonic"
	"github.com/jeremyhahn/go-shameless/pkg/shamir39"
	"github.com/jeremyhahn/go-shameless/pkg/threshold/shamir"
)

var (
	// ErrNoShares is returned when Combine receives no shares
	ErrNoShares = errors.New("no shares provided")

	// ErrInconsistentThreshold is returned when shares disagree on the threshold
	ErrInconsistentThreshold = errors.New("inconsistent threshold")

	// ErrDuplicateIndex is returned when the same share is supplied twice
	ErrDuplicateIndex = errors.New("duplicate share index")

	// ErrInsufficientShares is returned when fewer shares than the threshold are supplied
	ErrInsufficientShares = errors.New("insufficient shares")
)

// SplitResult is the outcome of Split.
type SplitResult struct {
	Shares       []string `json:"shares"`
	Threshold    int      `json:"threshold"`
	ShareCount   int      `json:"share_count"`
	EntropyBytes int      `json:"entropy_bytes"`
	Scheme       string   `json:"scheme"`
}

// CombineResult is the outcome of Combine.
type CombineResult struct {
	Mnemonic   string `json:"mnemonic"`
	Threshold  int    `json:"threshold"`
	SharesUsed int    `json:"shares_used"`
	Indices    []int  `json:"indices"`
	Scheme     string `json:"scheme"`
}

// Split divides the entropy of phrase with scheme and encodes every
// fragment as a share carrying cfg's threshold and its own index.
func Split(phrase string, cfg shamir39.SplitConfig, scheme shamir.Scheme) (result *SplitResult, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordOperation(metrics.OpSplit, scheme.Name(), err, time.Since(start).Seconds())
	}()

	entropy, err := mnemonic.ToEntropy(phrase)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input mnemonic: %w", err)
	}
	defer entropy.Close()

	fragments, err := scheme.Split(entropy.Bytes(), cfg)
	if err != nil {
		return nil, err
	}
	defer shamir.ZeroizeAll(fragments)

	result = &SplitResult{
		Shares:       make([]string, 0, len(fragments)),
		Threshold:    cfg.Threshold().Int(),
		ShareCount:   cfg.ShareCount().Int(),
		EntropyBytes: entropy.Len(),
		Scheme:       scheme.Name(),
	}
	for _, fragment := range fragments {
		index, err := shamir39.NewShareIndex(uint8(fragment.Index))
		if err != nil {
			return nil, err
		}
		encoded, err := shamir39.Encode(fragment.Value, cfg.Threshold(), index)
		if err != nil {
			return nil, fmt.Errorf("failed to encode share #%d: %w", fragment.Index+1, err)
		}
		metrics.RecordShareWords(encoded.Len())
		result.Shares = append(result.Shares, encoded.String())
		encoded.Zeroize()
	}
	return result, nil
}

// Combine decodes shares, checks that they agree on the threshold and are
// distinct, and reconstructs the mnemonic with scheme.
func Combine(shares []string, scheme shamir.Scheme) (result *CombineResult, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordOperation(metrics.OpCombine, scheme.Name(), err, time.Since(start).Seconds())
	}()

	if len(shares) == 0 {
		return nil, ErrNoShares
	}

	fragments := make([]*shamir.Share, 0, len(shares))
	defer func() { shamir.ZeroizeAll(fragments) }()

	var threshold shamir39.Threshold
	seen := make(map[uint8]int, len(shares))
	for i, share := range shares {
		decoded, err := shamir39.Decode(share)
		if err != nil {
			return nil, fmt.Errorf("failed to parse share #%d: %w", i+1, err)
		}

		if i == 0 {
			threshold = decoded.Threshold
		} else if decoded.Threshold != threshold {
			decoded.Zeroize()
			return nil, fmt.Errorf("share #%d has %w: expected %s, got %s",
				i+1, ErrInconsistentThreshold, threshold, decoded.Threshold)
		}

		index := decoded.Index.Value()
		if first, ok := seen[index]; ok {
			decoded.Zeroize()
			return nil, fmt.Errorf("%w: shares #%d and #%d both have index %d",
				ErrDuplicateIndex, first, i+1, index)
		}
		seen[index] = i + 1

		fragments = append(fragments, &shamir.Share{
			Index:     int(index),
			Threshold: decoded.Threshold.Int(),
			Value:     decoded.Data,
		})
	}

	if len(fragments) < threshold.Int() {
		return nil, fmt.Errorf("%w: need at least %d, but only %d provided",
			ErrInsufficientShares, threshold.Int(), len(fragments))
	}

	secret, err := scheme.Combine(fragments)
	if err != nil {
		return nil, fmt.Errorf("failed to recover secret: %w", err)
	}
	defer clear(secret)

	phrase, err := mnemonic.FromEntropy(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create mnemonic from recovered entropy: %w", err)
	}

	indices := make([]int, 0, len(fragments))
	for _, fragment := range fragments {
		indices = append(indices, fragment.Index)
	}
	slices.Sort(indices)

	return &CombineResult{
		Mnemonic:   phrase,
		Threshold:  threshold.Int(),
		SharesUsed: len(fragments),
		Indices:    indices,
		Scheme:     scheme.Name(),
	}, nil
}
