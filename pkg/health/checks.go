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

package health

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"

	"github.com/jeremyhahn/go-shameless/pkg/shamir39"
	"github.com/jeremyhahn/go-shameless/pkg/threshold/shamir"
)

// DictionaryCheck verifies that the word dictionary loads and maps the
// first and last codes to their known words.
func DictionaryCheck() CheckFunc {
	return func(ctx context.Context) CheckResult {
		result := CheckResult{Name: "dictionary"}

		for code, want := range map[uint16]string{0: "abandon", shamir39.DictionarySize - 1: "zoo"} {
			word, err := shamir39.Word(code)
			if err != nil {
				result.Status = StatusUnhealthy
				result.Error = err.Error()
				return result
			}
			if word != want {
				result.Status = StatusUnhealthy
				result.Error = fmt.Sprintf("code %d maps to %q, expected %q", code, word, want)
				return result
			}
		}

		result.Status = StatusHealthy
		result.Message = fmt.Sprintf("%d words loaded", shamir39.DictionarySize)
		return result
	}
}

// SchemeCheck splits a random secret with scheme, renders every share as
// words and recovers the secret from a threshold of them.
func SchemeCheck(scheme shamir.Scheme) CheckFunc {
	return func(ctx context.Context) CheckResult {
		result := CheckResult{Name: "scheme:" + scheme.Name()}
		if err := selfTest(scheme); err != nil {
			result.Status = StatusUnhealthy
			result.Error = err.Error()
			return result
		}
		result.Status = StatusHealthy
		result.Message = "split and combine round trip succeeded"
		return result
	}
}

func selfTest(scheme shamir.Scheme) error {
	probe := make([]byte, 16)
	if _, err := rand.Read(probe); err != nil {
		return fmt.Errorf("failed to generate probe: %w", err)
	}

	cfg, err := shamir39.ParseSplitConfig(2, 3)
	if err != nil {
		return err
	}

	shares, err := scheme.Split(probe, cfg)
	if err != nil {
		return fmt.Errorf("split failed: %w", err)
	}
	defer shamir.ZeroizeAll(shares)

	decoded := make([]*shamir.Share, 0, cfg.Threshold().Int())
	defer func() { shamir.ZeroizeAll(decoded) }()
	for _, share := range shares[:cfg.Threshold().Int()] {
		index, err := shamir39.NewShareIndex(uint8(share.Index))
		if err != nil {
			return err
		}
		encoded, err := shamir39.Encode(share.Value, cfg.Threshold(), index)
		if err != nil {
			return fmt.Errorf("encode failed: %w", err)
		}
		parsed, err := shamir39.Decode(encoded.String())
		encoded.Zeroize()
		if err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}
		decoded = append(decoded, &shamir.Share{
			Index:     int(parsed.Index.Value()),
			Threshold: parsed.Threshold.Int(),
			Value:     parsed.Data,
		})
	}

	recovered, err := scheme.Combine(decoded)
	if err != nil {
		return fmt.Errorf("combine failed: %w", err)
	}
	defer clear(recovered)

	if !bytes.Equal(probe, recovered) {
		return fmt.Errorf("recovered secret does not match")
	}
	return nil
}
