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

package keysplit

import (
	"fmt"
	"math"
	"time"

	"github.com/jeremyhahn/go-shameless/pkg/metrics"
	"github.com/jeremyhahn/go-shameless/pkg/shamir39"
)

// EncodeShare renders a raw fragment as a word share. threshold and index
// arrive as ints from flags and JSON and are range checked here.
func EncodeShare(data []byte, threshold, index int) (share *shamir39.EncodedShare, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordOperation(metrics.OpEncode, "", err, time.Since(start).Seconds())
		if err == nil {
			metrics.RecordShareWords(share.Len())
		}
	}()

	if threshold < 0 || threshold > math.MaxUint8 {
		return nil, fmt.Errorf("%w (got %d)", shamir39.ErrInvalidThreshold, threshold)
	}
	t, err := shamir39.NewThreshold(uint8(threshold))
	if err != nil {
		return nil, err
	}

	if index < 0 || index > shamir39.MaxShareIndex {
		return nil, fmt.Errorf("%w (got %d)", shamir39.ErrInvalidShareIndex, index)
	}
	i, err := shamir39.NewShareIndex(uint8(index))
	if err != nil {
		return nil, err
	}

	return shamir39.Encode(data, t, i)
}

// DecodeShare parses a word share into its threshold, index and fragment.
func DecodeShare(share string) (decoded *shamir39.DecodedShare, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordOperation(metrics.OpDecode, "", err, time.Since(start).Seconds())
	}()

	return shamir39.Decode(share)
}
