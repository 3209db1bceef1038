// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build cgo && rpmlib && rpmsign

package native

/*
#cgo pkg-config: rpm
#cgo LDFLAGS: -lrpmsign
#include <stdlib.h>
#include <rpm/rpmsign.h>
*/
import "C"

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unsafe"

	"github.com/bureau-foundation/rpmlib/lib/zeroize"
)

// SignAvailable reports whether the librpmsign binding was compiled in.
func SignAvailable() bool { return true }

// Sign adds an OpenPGP signature to the package file at path, replacing
// any existing one. Signing runs the program configured by the
// %__gpg_sign_cmd macro.
func Sign(path string, options SignOptions) error {
	return withSignArgs(path, options, "signing", func(cpath *C.char, args *C.struct_rpmSignArgs) C.int {
		return C.rpmPkgSign(cpath, args)
	})
}

// DeleteSignature strips every signature from the package file at path.
func DeleteSignature(path string, options SignOptions) error {
	return withSignArgs(path, options, "deleting signature of", func(cpath *C.char, args *C.struct_rpmSignArgs) C.int {
		return C.rpmPkgDelSign(cpath, args)
	})
}

func withSignArgs(path string, options SignOptions, action string, call func(*C.char, *C.struct_rpmSignArgs) C.int) error {
	if options.KeyID != nil {
		defer options.KeyID.Close()
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("rpm: %s package: %w", action, err)
	}
	if strings.IndexByte(path, 0) >= 0 {
		return fmt.Errorf("rpm: package path %q contains a NUL byte", path)
	}

	var args C.struct_rpmSignArgs
	args.hashalgo = C.pgpHashAlgo(options.HashAlgorithm)

	if options.KeyID != nil {
		key := options.KeyID.Expose()
		if len(key) == 0 || bytes.IndexByte(key, 0) >= 0 {
			return fmt.Errorf("rpm: invalid signing key id")
		}
		// Copied by hand so the C allocation can be scrubbed.
		size := uintptr(len(key)) + 1
		ckey := C.malloc(C.size_t(size))
		if ckey == nil {
			return fmt.Errorf("rpm: allocating key id failed")
		}
		region := unsafe.Slice((*byte)(ckey), size)
		copy(region, key)
		region[len(key)] = 0
		defer func() {
			zeroize.Memory(ckey, size)
			C.free(ckey)
		}()
		args.keyid = (*C.char)(ckey)
	}

	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	librpm.Lock()
	defer librpm.Unlock()

	if !configured {
		if err := readConfigLocked(""); err != nil {
			return err
		}
	}
	if call(cpath, &args) != 0 {
		return fmt.Errorf("rpm: %s %s failed", action, path)
	}
	return nil
}
