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
	"time"

	"github.com/jeremyhahn/go-shameless/pkg/metrics"
	"github.com/jeremyhahn/go-shameless/pkg/mnemonic"
)

// DefaultGenerateWords is the phrase length used when none is requested.
const DefaultGenerateWords = 12

// GenerateResult is the outcome of Generate.
type GenerateResult struct {
	Mnemonic     string `json:"mnemonic"`
	Words        int    `json:"words"`
	EntropyBytes int    `json:"entropy_bytes"`
}

// Generate returns a new random BIP39 phrase of words words, or
// DefaultGenerateWords when words is zero.
func Generate(words int) (result *GenerateResult, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordOperation(metrics.OpGenerate, "", err, time.Since(start).Seconds())
	}()

	if words == 0 {
		words = DefaultGenerateWords
	}
	phrase, err := mnemonic.GenerateWords(words)
	if err != nil {
		return nil, err
	}
	return &GenerateResult{
		Mnemonic:     phrase,
		Words:        words,
		EntropyBytes: words / 3 * 4,
	}, nil
}
