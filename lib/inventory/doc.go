// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package inventory records and compares installed-package sets.
//
// A [Snapshot] is the package list of one rpm database at one moment,
// sorted by NEVRA. Its [Snapshot.Digest] is a BLAKE3 keyed hash of the
// deterministic CBOR encoding of that sorted list, so two hosts with
// the same packages produce the same digest regardless of database
// order, backend, or when the snapshot was taken.
//
// Snapshots are stored in a small self-describing file format:
//
//	rpminv 1 <compression> <size> <payload digest>\n
//	<compressed CBOR payload>
//
// The header line names the compression (none, lz4, zstd), the
// uncompressed payload size in bytes, and the hex BLAKE3 digest of the
// uncompressed payload. [Read] verifies the digest before decoding and
// returns [ErrDigestMismatch] on any alteration. When compression would
// not shrink the payload it is stored uncompressed and the header says
// so.
//
// [Compare] reports what changed between two snapshots, keyed by
// name.arch so multilib packages are tracked separately.
package inventory
