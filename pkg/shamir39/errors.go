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

package shamir39

import "errors"

// Validation errors are returned when a value violates a domain invariant.
var (
	// ErrInvalidThreshold is returned for thresholds below 2
	ErrInvalidThreshold = errors.New("shamir39: threshold must be at least 2")

	// ErrInvalidShareIndex is returned for the reserved share index 255
	ErrInvalidShareIndex = errors.New("shamir39: share index 255 is reserved")

	// ErrInvalidShareCount is returned for share counts of 0 or 255
	ErrInvalidShareCount = errors.New("shamir39: share count must be between 1 and 254")

	// ErrThresholdExceedsShareCount is returned when more shares are required than exist
	ErrThresholdExceedsShareCount = errors.New("shamir39: threshold cannot exceed share count")

	// ErrShareTooLarge is returned when a fragment does not fit the 16-bit length prefix
	ErrShareTooLarge = errors.New("shamir39: share data too large")
)

// Format errors are returned when a word sequence cannot be parsed.
var (
	// ErrEmptyShare is returned for input without any words
	ErrEmptyShare = errors.New("shamir39: empty mnemonic")

	// ErrInvalidVersion is returned when the first word is not the version marker
	ErrInvalidVersion = errors.New("shamir39: invalid version word")

	// ErrShareTooShort is returned when a section of the share is missing
	ErrShareTooShort = errors.New("shamir39: mnemonic too short")

	// ErrUnknownWord is returned for words outside the dictionary
	ErrUnknownWord = errors.New("shamir39: word not found in BIP39 wordlist")

	// ErrWordCodeRange is returned for codes outside 0-2047
	ErrWordCodeRange = errors.New("shamir39: word index out of range")

	// ErrMalformedParameters is returned for bad continuation bit sequencing
	// or parameter values that do not fit a byte
	ErrMalformedParameters = errors.New("shamir39: malformed parameter words")

	// ErrInsufficientBits is returned when the payload words cannot hold the
	// expected number of bytes
	ErrInsufficientBits = errors.New("shamir39: not enough bits")

	// ErrEncodedDataTooShort is returned when the decoded frame cannot hold
	// a length prefix and a checksum
	ErrEncodedDataTooShort = errors.New("shamir39: encoded data too short")

	// ErrLengthMismatch is returned when the length prefix exceeds the decoded frame
	ErrLengthMismatch = errors.New("shamir39: encoded data size mismatch")
)

// ErrChecksumMismatch is returned when the stored CRC-32 does not match the
// fragment. The share parsed correctly but its content was altered.
var ErrChecksumMismatch = errors.New("shamir39: checksum verification failed")

var (
	validationErrors = []error{
		ErrInvalidThreshold,
		ErrInvalidShareIndex,
		ErrInvalidShareCount,
		ErrThresholdExceedsShareCount,
		ErrShareTooLarge,
	}
	formatErrors = []error{
		ErrEmptyShare,
		ErrInvalidVersion,
		ErrShareTooShort,
		ErrUnknownWord,
		ErrWordCodeRange,
		ErrMalformedParameters,
		ErrInsufficientBits,
		ErrEncodedDataTooShort,
		ErrLengthMismatch,
	}
)

// IsValidationError reports whether err was caused by a value violating a
// Threshold, ShareIndex, ShareCount, SplitConfig or size invariant.
func IsValidationError(err error) bool {
	return isAny(err, validationErrors)
}

// IsFormatError reports whether err was caused by a structurally invalid share.
func IsFormatError(err error) bool {
	return isAny(err, formatErrors)
}

// IsIntegrityError reports whether err was caused by a checksum mismatch.
func IsIntegrityError(err error) bool {
	return errors.Is(err, ErrChecksumMismatch)
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
