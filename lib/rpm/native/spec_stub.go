// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !(cgo && rpmlib && rpmbuild)

package native

import "github.com/bureau-foundation/rpmlib/lib/rpm"

// BuildAvailable reports whether the librpmbuild binding was compiled in.
func BuildAvailable() bool { return false }

// ParseSpec returns rpm.ErrUnavailable: librpmbuild is not compiled in.
func ParseSpec(path string) (rpm.Package, error) {
	return rpm.Package{}, rpm.ErrUnavailable
}
