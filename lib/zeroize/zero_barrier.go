// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package zeroize

import "unsafe"

func zero(ptr unsafe.Pointer, n uintptr) {
	barrierZero(ptr, n)
}

func mechanism() string {
	return "barrier"
}
