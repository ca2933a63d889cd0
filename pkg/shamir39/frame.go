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

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
)

const (
	// MaxShareSize is the largest fragment representable by the 16-bit
	// length prefix
	MaxShareSize = math.MaxUint16

	lengthPrefixSize = 2
	checksumSize     = 4
	frameOverhead    = lengthPrefixSize + checksumSize
)

// Checksum returns the CRC-32 (ISO-HDLC, the zip/ethernet polynomial) of data.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// buildFrame returns length || data || checksum. The caller owns the
// returned buffer and must clear it.
func buildFrame(data []byte) ([]byte, error) {
	if len(data) > MaxShareSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrShareTooLarge, len(data), MaxShareSize)
	}

	frame := make([]byte, lengthPrefixSize+len(data)+checksumSize)
	binary.BigEndian.PutUint16(frame, uint16(len(data)))
	copy(frame[lengthPrefixSize:], data)
	binary.BigEndian.PutUint32(frame[lengthPrefixSize+len(data):], Checksum(data))
	return frame, nil
}

// frameLength returns the total frame size announced by buf's length prefix.
func frameLength(buf []byte) int {
	return lengthPrefixSize + int(binary.BigEndian.Uint16(buf)) + checksumSize
}

// unbuildFrame validates a decoded frame and returns the fragment as a
// subslice of buf.
//
// The payload length guessed from the word count can exceed the real frame
// by a byte of padding, so leading zero bytes are dropped until the length
// prefix accounts for the whole buffer. A buffer that is exactly one empty
// frame (six zero bytes) is left alone.
func unbuildFrame(buf []byte) ([]byte, error) {
	for len(buf) > frameOverhead && buf[0] == 0 && frameLength(buf) != len(buf) {
		buf = buf[1:]
	}

	if len(buf) < frameOverhead {
		return nil, fmt.Errorf("%w: need at least %d bytes (length + checksum), got %d",
			ErrEncodedDataTooShort, frameOverhead, len(buf))
	}

	total := frameLength(buf)
	if len(buf) < total {
		return nil, fmt.Errorf("%w: expected at least %d bytes (%d + %d + %d), got %d",
			ErrLengthMismatch, total, lengthPrefixSize, total-frameOverhead, checksumSize, len(buf))
	}

	end := total - checksumSize
	data := buf[lengthPrefixSize:end]
	stored := binary.BigEndian.Uint32(buf[end:total])
	computed := Checksum(data)
	if computed != stored {
		return nil, fmt.Errorf("%w: expected 0x%08x, got 0x%08x", ErrChecksumMismatch, computed, stored)
	}
	return data, nil
}
