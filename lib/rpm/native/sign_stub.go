// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !(cgo && rpmlib && rpmsign)

package native

import "github.com/bureau-foundation/rpmlib/lib/rpm"

// SignAvailable reports whether the librpmsign binding was compiled in.
func SignAvailable() bool { return false }

// Sign returns rpm.ErrUnavailable: librpmsign is not compiled in. The
// key id, if any, is still zeroed.
func Sign(path string, options SignOptions) error {
	if options.KeyID != nil {
		options.KeyID.Close()
	}
	return rpm.ErrUnavailable
}

// DeleteSignature returns rpm.ErrUnavailable: librpmsign is not
// compiled in.
func DeleteSignature(path string, options SignOptions) error {
	if options.KeyID != nil {
		options.KeyID.Close()
	}
	return rpm.ErrUnavailable
}
