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
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jeremyhahn/go-shameless/pkg/health"
	"github.com/jeremyhahn/go-shameless/pkg/keysplit"
	"github.com/jeremyhahn/go-shameless/pkg/logging"
	"github.com/jeremyhahn/go-shameless/pkg/shamir39"
	"github.com/jeremyhahn/go-shameless/pkg/threshold/shamir"
)

// HealthChecker defines the interface for health checking.
type HealthChecker interface {
	Live(ctx context.Context) health.CheckResult
	Ready(ctx context.Context) []health.CheckResult
	Startup(ctx context.Context) health.CheckResult
}

// SplitDefaults supplies the split parameters a request leaves out.
type SplitDefaults struct {
	Threshold int
	Shares    int
	Scheme    string
}

// HandlerContext holds dependencies for REST handlers.
type HandlerContext struct {
	// Version is the server version reported by /health
	Version string

	// HealthChecker backs the probe endpoints (optional)
	HealthChecker HealthChecker

	defaults     SplitDefaults
	maxBodyBytes int64
	logger       *logging.Logger
}

// NewHandlerContext creates a new handler context.
func NewHandlerContext(version string, defaults SplitDefaults, maxBodyBytes int64, logger *logging.Logger) *HandlerContext {
	return &HandlerContext{
		Version:      version,
		defaults:     defaults,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// SetHealthChecker sets the health checker for the handler context.
func (h *HandlerContext) SetHealthChecker(checker HealthChecker) {
	h.HealthChecker = checker
}

// HealthHandler handles GET /health requests.
func (h *HandlerContext) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, HealthResponse{
		Status:  "healthy",
		Version: h.Version,
		Schemes: shamir.SchemeNames(),
	}, http.StatusOK)
}

// SplitHandler handles POST /api/v1/split requests.
func (h *HandlerContext) SplitHandler(w http.ResponseWriter, r *http.Request) {
	var req SplitRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Mnemonic) == "" {
		writeErrorWithMessage(w, ErrInvalidRequest, "mnemonic is required", http.StatusBadRequest)
		return
	}

	threshold := req.Threshold
	if threshold == 0 {
		threshold = h.defaults.Threshold
	}
	shares := req.Shares
	if shares == 0 {
		shares = h.defaults.Shares
	}
	cfg, err := shamir39.ParseSplitConfig(threshold, shares)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	scheme, err := h.scheme(req.Scheme)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	result, err := keysplit.Split(req.Mnemonic, cfg, scheme)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, SplitResponse{
		Shares:       result.Shares,
		Threshold:    result.Threshold,
		ShareCount:   result.ShareCount,
		EntropyBytes: result.EntropyBytes,
		Scheme:       result.Scheme,
	}, http.StatusOK)
}

// CombineHandler handles POST /api/v1/combine requests.
func (h *HandlerContext) CombineHandler(w http.ResponseWriter, r *http.Request) {
	var req CombineRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	scheme, err := h.scheme(req.Scheme)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	result, err := keysplit.Combine(req.Shares, scheme)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, CombineResponse{
		Mnemonic:   result.Mnemonic,
		Threshold:  result.Threshold,
		SharesUsed: result.SharesUsed,
		Indices:    result.Indices,
		Scheme:     result.Scheme,
	}, http.StatusOK)
}

// EncodeShareHandler handles POST /api/v1/shares/encode requests.
func (h *HandlerContext) EncodeShareHandler(w http.ResponseWriter, r *http.Request) {
	var req EncodeShareRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	data, err := hex.DecodeString(strings.TrimSpace(req.Data))
	if err != nil {
		writeErrorWithMessage(w, ErrInvalidRequest, "data must be hex encoded", http.StatusBadRequest)
		return
	}
	defer clear(data)

	share, err := keysplit.EncodeShare(data, req.Threshold, req.Index)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	defer share.Zeroize()

	writeJSON(w, EncodeShareResponse{
		Share: share.String(),
		Words: share.Len(),
	}, http.StatusOK)
}

// DecodeShareHandler handles POST /api/v1/shares/decode requests.
func (h *HandlerContext) DecodeShareHandler(w http.ResponseWriter, r *http.Request) {
	var req DecodeShareRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	decoded, err := keysplit.DecodeShare(req.Share)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	defer decoded.Zeroize()

	writeJSON(w, DecodeShareResponse{
		Threshold: decoded.Threshold.Int(),
		Index:     int(decoded.Index.Value()),
		Data:      hex.EncodeToString(decoded.Data),
		Size:      len(decoded.Data),
	}, http.StatusOK)
}

// GenerateMnemonicHandler handles POST /api/v1/mnemonic/generate requests.
// An empty object yields a 12-word phrase.
func (h *HandlerContext) GenerateMnemonicHandler(w http.ResponseWriter, r *http.Request) {
	var req GenerateMnemonicRequest
	if err := h.decodeRequest(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	result, err := keysplit.Generate(req.Words)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, GenerateMnemonicResponse{
		Mnemonic:     result.Mnemonic,
		Words:        result.Words,
		EntropyBytes: result.EntropyBytes,
	}, http.StatusOK)
}

func (h *HandlerContext) scheme(name string) (shamir.Scheme, error) {
	if name == "" {
		name = h.defaults.Scheme
	}
	return shamir.NewScheme(name)
}

// decodeRequest reads a single JSON object of at most maxBodyBytes into dst.
func (h *HandlerContext) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxErr.Limit)
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: request body is empty", ErrInvalidRequest)
		default:
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
	}
	if decoder.More() {
		return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidRequest)
	}
	return nil
}
