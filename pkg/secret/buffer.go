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

// Package secret holds sensitive bytes, such as a mnemonic's entropy or a
// combined secret, outside the Go heap where the platform allows it.
//
// On Linux a Buffer is an anonymous mmap region that is locked into RAM
// when RLIMIT_MEMLOCK permits and excluded from core dumps. Elsewhere it
// is an ordinary heap slice. In both cases Close zeroes the contents.
package secret

import (
	"bytes"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrEmpty is returned when a buffer would hold no data.
var ErrEmpty = errors.New("secret: empty source")

// Buffer holds sensitive data that is zeroed on Close. A Buffer must not
// be copied after creation; any access after Close panics.
type Buffer struct {
	mu     sync.Mutex
	region region
	length int
	closed bool
}

// New allocates a zero-filled buffer of the given size.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret: buffer size must be positive, got %d", size)
	}
	r, err := allocate(size)
	if err != nil {
		return nil, err
	}
	return &Buffer{region: r, length: size}, nil
}

// NewFromBytes copies source into a new buffer and zeroes source.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, ErrEmpty
	}
	b, err := New(len(source))
	if err != nil {
		return nil, err
	}
	copy(b.region.data, source)
	clear(source)
	return b, nil
}

// NewFromReader reads at most limit bytes from r, trims surrounding
// whitespace and stores the result. Intermediate copies are zeroed.
func NewFromReader(r io.Reader, limit int64) (*Buffer, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	defer clear(data)
	if err != nil {
		return nil, fmt.Errorf("secret: read failed: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("secret: input exceeds %d bytes", limit)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}
	return NewFromBytes(trimmed)
}

// Bytes returns the secret. The slice aliases the buffer and must not be
// retained past Close.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mustBeOpen()
	return b.region.data[:b.length]
}

// String returns a heap copy of the secret. Prefer Bytes.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mustBeOpen()
	return string(b.region.data[:b.length])
}

// Len returns the size of the secret.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.length
}

// Locked reports whether the buffer is pinned in physical memory.
func (b *Buffer) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.region.locked
}

// Equal compares the buffer with other in constant time.
func (b *Buffer) Equal(other []byte) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mustBeOpen()
	return subtle.ConstantTimeCompare(b.region.data[:b.length], other) == 1
}

// Close zeroes and releases the buffer. Close is idempotent.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	clear(b.region.data)
	err := b.region.release()
	b.region = region{}
	return err
}

func (b *Buffer) mustBeOpen() {
	if b.closed {
		panic("secret: read from closed buffer")
	}
}
