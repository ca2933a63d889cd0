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

// Package validation checks operator-supplied paths and sanitizes
// client-controlled strings before they reach the logs.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// MaxSocketPathLength is the portable limit of sockaddr_un.sun_path,
	// less the terminating NUL.
	MaxSocketPathLength = 103

	// maxLogLength bounds a single sanitized log value
	maxLogLength = 1000
)

// ValidateSocketPath validates a Unix socket path from configuration.
// The path must be absolute, free of control characters and short
// enough to bind.
func ValidateSocketPath(path string) error {
	if path == "" {
		return fmt.Errorf("socket path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return fmt.Errorf("socket path contains null byte")
	}

	if len(path) > MaxSocketPathLength {
		return fmt.Errorf("socket path too long (max %d characters)", MaxSocketPathLength)
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("socket path must be absolute: %q", path)
	}

	if hasControl(path) {
		return fmt.Errorf("socket path contains control characters")
	}

	if filepath.Clean(path) != path {
		return fmt.Errorf("socket path is not clean: %q", path)
	}

	return nil
}

// SanitizeForLog sanitizes a string for safe logging (prevents log injection).
func SanitizeForLog(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)

	if len(s) > maxLogLength {
		s = s[:maxLogLength] + "...[truncated]"
	}

	return s
}

func hasControl(s string) bool {
	for _, r := range s {
		if r < 32 || r == 127 {
			return true
		}
	}
	return false
}
