// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR configuration shared by every
// package that persists rpmlib data.
//
// Two formats are in use, split by audience:
//
//   - JSON and YAML for people and scripts: CLI --format output and
//     the configuration file.
//   - CBOR for bytes that are stored and hashed: inventory snapshots
//     and their digests.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. Same
// logical data always produces identical bytes, which is what lets an
// inventory digest identify a package set.
//
// The decoder rejects duplicate map keys, so two encodings cannot
// decode to the same value and a stored digest cannot be satisfied by
// an edited payload.
//
//	data, err := codec.Marshal(packages)
//	err = codec.Unmarshal(data, &packages)
//
// Types shared with the CLI's JSON and YAML output (rpm.Package) carry
// `json` and `yaml` tags; fxamacker/cbor falls back to the `json` tag
// when a `cbor` tag is absent. Types that are only ever CBOR use `cbor`
// tags. Never put `cbor` and `json` on one field.
package codec
