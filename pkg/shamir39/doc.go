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

// Package shamir39 encodes secret share fragments as sequences of BIP39
// words following the shamir39 format.
//
// An encoded share is a single line of lower-case words:
//
//	shameless <param-word> [<param-word>] <payload-word>...
//
// The first word is the fixed version marker [VersionWord]. The parameter
// section carries the reconstruction threshold (M) and the share index (O)
// in one word when both are below 32, otherwise in two words linked by a
// continuation bit. The payload section carries the framed fragment
//
//	length (uint16, big-endian) || fragment || CRC-32 (uint32, big-endian)
//
// packed eleven bits per word, left-padded with zero bits so the stream
// length is a multiple of eleven.
//
// Example:
//
//	threshold, _ := shamir39.NewThreshold(3)
//	index, _ := shamir39.NewShareIndex(0)
//
//	share, err := shamir39.Encode([]byte{0xde, 0xad, 0xbe, 0xef}, threshold, index)
//	if err != nil {
//	    return err
//	}
//	defer share.Zeroize()
//
//	decoded, err := shamir39.Decode(share.String())
//	if err != nil {
//	    return err
//	}
//	defer decoded.Zeroize()
//
// The codec is synchronous and holds no mutable state. The word list is
// built once on first use and shared read-only by all callers. Buffers that
// carry fragment bits are cleared before they are released, on success and
// on error alike.
//
// The word layout derives from Shamir39 (github.com/iancoleman/shamir39),
// with a length prefix and CRC-32 trailer added around the fragment.
package shamir39
