// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package secret

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/rpmlib/lib/zeroize"
)

// Buffer holds sensitive bytes in mmap memory that is locked against
// swap, excluded from core dumps, and zeroed on Close.
//
// A Buffer must not be copied after creation.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	length int
	closed bool
}

// New maps a zero-filled secret region of size bytes. The caller must
// call Close.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret: buffer size must be positive, got %d", size)
	}

	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap failed: %w", err)
	}

	if err := unix.Mlock(data); err != nil {
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: mlock failed: %w", err)
	}

	if err := unix.Madvise(data, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(data)
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: madvise(MADV_DONTDUMP) failed: %w", err)
	}

	return &Buffer{data: data, length: size}, nil
}

// NewFromBytes copies source into a new Buffer and zeros source, so the
// caller's slice no longer carries the secret.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("secret: cannot create buffer from empty source")
	}

	buffer, err := New(len(source))
	if err != nil {
		zeroize.Bytes(source)
		return nil, err
	}

	copy(buffer.data, source)
	zeroize.Bytes(source)
	return buffer, nil
}

// NewFromReader reads at most limit bytes from reader into a Buffer.
// Reading more than limit bytes is an error. The staging copy on the
// heap is zeroed before return on every path.
func NewFromReader(reader io.Reader, limit int) (*Buffer, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("secret: read limit must be positive, got %d", limit)
	}

	staging := make([]byte, limit+1)
	defer zeroize.Bytes(staging)

	total := 0
	for total < len(staging) {
		count, err := reader.Read(staging[total:])
		total += count
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("secret: reading source: %w", err)
		}
	}

	if total > limit {
		return nil, fmt.Errorf("secret: source exceeds %d byte limit", limit)
	}
	if total == 0 {
		return nil, fmt.Errorf("secret: source is empty")
	}

	return NewFromBytes(staging[:total])
}

// Bytes returns the secret as a slice aliasing the mmap region. Do not
// retain it past Close. Panics if the buffer has been closed.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secret: read from closed buffer")
	}
	return b.data[:b.length]
}

// Len returns the size of the secret in bytes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.length
}

// Close zeros the region, then unlocks and unmaps it. Close is
// idempotent. Unlock and unmap failures are reported but the buffer is
// considered closed regardless; the contents were already zeroed.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.wipe()

	var firstError error
	if err := unix.Munlock(b.data); err != nil {
		firstError = fmt.Errorf("secret: munlock failed: %w", err)
	}
	if err := unix.Munmap(b.data); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: munmap failed: %w", err)
	}

	b.data = nil
	return firstError
}

// wipe zeros the whole mapping. Callers hold b.mu.
func (b *Buffer) wipe() {
	zeroize.Bytes(b.data)
}
