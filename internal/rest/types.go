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

package rest

import (
	"github.com/jeremyhahn/go-shameless/pkg/health"
)

// HealthResponse represents the response for GET /health.
type HealthResponse struct {
	Status  string   `json:"status"`
	Version string   `json:"version"`
	Schemes []string `json:"schemes"`
}

// HealthCheckResponse represents the response for the probe endpoints.
type HealthCheckResponse struct {
	Status  health.Status        `json:"status"`
	Message string               `json:"message,omitempty"`
	Checks  []health.CheckResult `json:"checks,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// SplitRequest represents a request to split a mnemonic. Zero threshold,
// shares or scheme fall back to the server defaults.
type SplitRequest struct {
	Mnemonic  string `json:"mnemonic"`
	Threshold int    `json:"threshold,omitempty"`
	Shares    int    `json:"shares,omitempty"`
	Scheme    string `json:"scheme,omitempty"`
}

// SplitResponse represents the shares produced by a split.
type SplitResponse struct {
	Shares       []string `json:"shares"`
	Threshold    int      `json:"threshold"`
	ShareCount   int      `json:"share_count"`
	EntropyBytes int      `json:"entropy_bytes"`
	Scheme       string   `json:"scheme"`
}

// CombineRequest represents a request to recover a mnemonic.
type CombineRequest struct {
	Shares []string `json:"shares"`
	Scheme string   `json:"scheme,omitempty"`
}

// CombineResponse represents a recovered mnemonic.
type CombineResponse struct {
	Mnemonic   string `json:"mnemonic"`
	Threshold  int    `json:"threshold"`
	SharesUsed int    `json:"shares_used"`
	Indices    []int  `json:"indices"`
	Scheme     string `json:"scheme"`
}

// EncodeShareRequest represents a request to render a fragment as words.
type EncodeShareRequest struct {
	Threshold int    `json:"threshold"`
	Index     int    `json:"index"`
	Data      string `json:"data"` // hex
}

// EncodeShareResponse represents an encoded share.
type EncodeShareResponse struct {
	Share string `json:"share"`
	Words int    `json:"words"`
}

// DecodeShareRequest represents a request to parse a word share.
type DecodeShareRequest struct {
	Share string `json:"share"`
}

// DecodeShareResponse represents the components of a decoded share.
type DecodeShareResponse struct {
	Threshold int    `json:"threshold"`
	Index     int    `json:"index"`
	Data      string `json:"data"` // hex
	Size      int    `json:"size"`
}

// GenerateMnemonicRequest represents a request for a new random mnemonic.
// Zero words means 12.
type GenerateMnemonicRequest struct {
	Words int `json:"words,omitempty"`
}

// GenerateMnemonicResponse represents a newly generated mnemonic.
type GenerateMnemonicResponse struct {
	Mnemonic     string `json:"mnemonic"`
	Words        int    `json:"words"`
	EntropyBytes int    `json:"entropy_bytes"`
}
