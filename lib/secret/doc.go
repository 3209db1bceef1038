// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds sensitive values (signing key identifiers,
// passphrases, private keys) and guarantees they are scrubbed with
// lib/zeroize when released.
//
// Two holders are provided:
//
//   - [Buffer] (Linux) keeps bytes in an anonymous mmap region outside
//     the Go heap, locked into RAM with mlock and excluded from core
//     dumps with MADV_DONTDUMP. The garbage collector never sees the
//     region, so it cannot leave stray copies behind. Close zeros the
//     region, then unlocks and unmaps it.
//   - [Value] wraps any [zeroize.Zeroizer] on the ordinary heap. It
//     exposes the inner value only through [Value.Expose], redacts
//     itself in every fmt, slog, JSON and text path, and zeros the inner
//     value on Close.
//
// Buffer constructors:
//
//   - [New] -- zero-filled buffer of a given size
//   - [NewFromBytes] -- copies into protected memory, zeros the source
//   - [NewFromReader] -- reads up to a limit, zeroing the staging copy
//   - [ReadFromPath] -- reads a file or stdin ("-"), trimming whitespace
//
// After Close any read panics. Close is idempotent on both holders.
package secret
