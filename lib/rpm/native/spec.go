// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build cgo && rpmlib && rpmbuild

package native

/*
#cgo pkg-config: rpm
#cgo LDFLAGS: -lrpmbuild
#include <stdlib.h>
#include <rpm/rpmbuild.h>
#include <rpm/rpmspec.h>
*/
import "C"

import (
	"fmt"
	"os"
	"strings"
	"unsafe"

	"github.com/bureau-foundation/rpmlib/lib/rpm"
)

// BuildAvailable reports whether the librpmbuild binding was compiled in.
func BuildAvailable() bool { return true }

// ParseSpec parses the spec file at path for any architecture and
// returns the source package it describes.
func ParseSpec(path string) (rpm.Package, error) {
	if _, err := os.Stat(path); err != nil {
		return rpm.Package{}, fmt.Errorf("rpm: parsing spec: %w", err)
	}
	if strings.IndexByte(path, 0) >= 0 {
		return rpm.Package{}, fmt.Errorf("rpm: spec path %q contains a NUL byte", path)
	}

	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	librpm.Lock()
	defer librpm.Unlock()

	if !configured {
		if err := readConfigLocked(""); err != nil {
			return rpm.Package{}, err
		}
	}

	spec := C.rpmSpecParse(cpath, C.rpmSpecFlags(C.RPMSPEC_ANYARCH|C.RPMSPEC_FORCE), nil)
	if spec == nil {
		return rpm.Package{}, fmt.Errorf("rpm: parsing spec %s failed", path)
	}
	defer C.rpmSpecFree(spec)

	header := C.rpmSpecSourceHeader(spec)
	if header == nil {
		return rpm.Package{}, fmt.Errorf("rpm: spec %s has no source header", path)
	}
	return packageFromHeader(header), nil
}
