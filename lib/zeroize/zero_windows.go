// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package zeroize

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

// RtlZeroMemory is exported by ntdll on amd64 and arm64. On 386 it is
// only a header macro, so resolution fails and the barrier fill is used.
var (
	ntdll             = windows.NewLazySystemDLL("ntdll.dll")
	procRtlZeroMemory = ntdll.NewProc("RtlZeroMemory")
)

func zero(ptr unsafe.Pointer, n uintptr) {
	if procRtlZeroMemory.Find() != nil {
		barrierZero(ptr, n)
		return
	}
	procRtlZeroMemory.Call(uintptr(ptr), n)
	runtime.KeepAlive(ptr)
}

func mechanism() string {
	if procRtlZeroMemory.Find() != nil {
		return "barrier"
	}
	return "kernel"
}
