// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shameless.

//go:build linux

package secret

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type region struct {
	data   []byte
	locked bool
}

// allocate maps anonymous memory outside the Go heap. Failing to mlock is
// tolerated: unprivileged processes often have a tiny RLIMIT_MEMLOCK.
func allocate(size int) (region, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return region{}, fmt.Errorf("secret: mmap failed: %w", err)
	}
	locked := unix.Mlock(data) == nil

	// MADV_DONTDUMP is not supported by every kernel
	_ = unix.Madvise(data, unix.MADV_DONTDUMP)

	return region{data: data, locked: locked}, nil
}

func (r region) release() error {
	if r.data == nil {
		return nil
	}
	if r.locked {
		if err := unix.Munlock(r.data); err != nil {
			_ = unix.Munmap(r.data)
			return fmt.Errorf("secret: munlock failed: %w", err)
		}
	}
	if err := unix.Munmap(r.data); err != nil {
		return fmt.Errorf("secret: munmap failed: %w", err)
	}
	return nil
}
