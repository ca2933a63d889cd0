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
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jeremyhahn/go-shameless/pkg/keysplit"
	"github.com/jeremyhahn/go-shameless/pkg/logging"
	"github.com/jeremyhahn/go-shameless/pkg/mnemonic"
	"github.com/jeremyhahn/go-shameless/pkg/shamir39"
	"github.com/jeremyhahn/go-shameless/pkg/threshold/shamir"
)

// Common errors
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrBodyTooLarge   = errors.New("request body too large")
	ErrInternalError  = errors.New("internal server error")
)

// clientErrors are answered with 400 Bad Request.
var clientErrors = []error{
	ErrInvalidRequest,
	mnemonic.ErrInvalidWordCount,
	mnemonic.ErrInvalidChecksum,
	mnemonic.ErrInvalidEntropy,
	keysplit.ErrNoShares,
	keysplit.ErrInconsistentThreshold,
	keysplit.ErrDuplicateIndex,
	keysplit.ErrInsufficientShares,
	shamir.ErrUnknownScheme,
	shamir.ErrNoShares,
	shamir.ErrEmptySecret,
	shamir.ErrInvalidShare,
	shamir.ErrInsufficientShares,
}

// writeError writes an error response to the client.
func writeError(w http.ResponseWriter, err error, statusCode int) {
	writeErrorWithMessage(w, err, "", statusCode)
}

// writeErrorWithMessage writes an error response with a custom message.
func writeErrorWithMessage(w http.ResponseWriter, err error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Error:   err.Error(),
		Message: message,
		Code:    statusCode,
	}

	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		logging.DefaultLogger().Errorf("Failed to encode error response: %v", encErr)
	}
}

// mapErrorToStatusCode maps errors to HTTP status codes.
func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case shamir39.IsValidationError(err),
		shamir39.IsFormatError(err),
		shamir39.IsIntegrityError(err):
		return http.StatusBadRequest
	}
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// handleError maps err to a status code and writes the error response.
// Server errors are logged and their detail withheld from the client.
func (h *HandlerContext) handleError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := mapErrorToStatusCode(err)
	if statusCode >= http.StatusInternalServerError {
		h.logger.Error(err, "method", r.Method, "path", r.URL.Path)
		writeErrorWithMessage(w, ErrInternalError, "An unexpected error occurred", statusCode)
		return
	}
	writeError(w, err, statusCode)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.DefaultLogger().Errorf("Failed to encode JSON response: %v", err)
	}
}
