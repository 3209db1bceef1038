// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package rpm is the Go-side surface of the librpm binding: the types
// every backend shares, plus the manifest of native headers the cgo
// binding is generated from.
//
// Shared types:
//
//   - [Tag] and [TagType] mirror rpmtag.h (rpmTag_e and rpmTagType_e).
//   - [TagData] is the decoded value of one header tag.
//   - [Package] is the installed-package record every backend returns.
//   - [Query] selects packages by tag with exact, glob or regex
//     matching (RPMMIRE_STRCMP, RPMMIRE_GLOB, RPMMIRE_REGEX).
//   - [Source] is implemented by lib/rpm/native (cgo, librpm) and by
//     lib/rpm/rpmdb (pure Go).
//
// [Headers] lists the librpm headers the native binding includes,
// grouped by the shared library that implements them, along with the
// headers deliberately left out. [CheckHeaders] verifies them against
// an include directory so a failed cgo build can be diagnosed before
// it happens.
//
// This package has no cgo and no rpmlib-internal dependencies.
package rpm
