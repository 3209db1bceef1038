// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package zeroize overwrites memory with zeros in a way the compiler
// cannot remove as a dead store.
//
// A plain fill loop over a buffer that is never read again is a
// candidate for dead-store elimination, which is exactly the situation
// when scrubbing a key or passphrase just before the memory is
// released. Every entry point here routes the fill through a path the
// optimizer cannot reason about, so after return every byte of the
// region reads as zero.
//
// The mechanism is chosen per target at build time:
//
//   - On Windows the fill is delegated to RtlZeroMemory in ntdll.dll,
//     called through a lazily resolved DLL procedure. The call crosses
//     into foreign code the Go compiler cannot inspect.
//   - Everywhere else (and on Windows if the procedure cannot be
//     resolved) the fill runs through a package-level function variable
//     and is followed by runtime.KeepAlive on the region, which keeps
//     the memory live past the writes.
//
// [Mechanism] reports which variant the running binary uses.
//
// Entry points:
//
//   - [Bytes] -- zero a byte slice
//   - [Memory] -- zero a raw (pointer, length) region, for memory the Go
//     heap does not own (mmap regions, C allocations)
//   - [Slice] -- zero a slice of any integer type
//   - [All], [Each] -- zero several slices or [Zeroizer] values
//
// None of these can fail and none allocate. Zero-length input is a
// no-op that never dereferences the pointer. The caller must ensure no
// other goroutine reads or writes the region during the call.
//
// Zeroing cannot reach copies the runtime made before the call (stack
// growth, slice reallocation, string conversion). Callers holding
// long-lived secrets should keep them in memory the garbage collector
// never moves; see lib/secret.
//
// Depends on golang.org/x/sys/windows on Windows only.
package zeroize
