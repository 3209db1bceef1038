// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package zeroize

import (
	"runtime"
	"unsafe"
)

// Zeroizer is implemented by values that can scrub their own contents.
// After Zeroize returns, the value must hold no trace of the secret it
// carried. Zeroize must be safe to call more than once.
type Zeroizer interface {
	Zeroize()
}

// integer is the set of element types [Slice] accepts.
type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Bytes overwrites every byte of b with zero. A nil or empty slice is a
// no-op.
func Bytes(b []byte) {
	if len(b) == 0 {
		return
	}
	zero(unsafe.Pointer(unsafe.SliceData(b)), uintptr(len(b)))
	runtime.KeepAlive(b)
}

// Memory overwrites n bytes starting at ptr with zero. When n is zero
// ptr is never dereferenced, so any pointer (including nil) is accepted.
//
// The region [ptr, ptr+n) must be writable memory owned by the caller.
// Memory does not and cannot check this.
func Memory(ptr unsafe.Pointer, n uintptr) {
	if n == 0 || ptr == nil {
		return
	}
	zero(ptr, n)
	runtime.KeepAlive(ptr)
}

// Slice overwrites every element of s with zero.
func Slice[T integer](s []T) {
	if len(s) == 0 {
		return
	}
	var element T
	zero(unsafe.Pointer(unsafe.SliceData(s)), uintptr(len(s))*unsafe.Sizeof(element))
	runtime.KeepAlive(s)
}

// All zeros each slice in turn.
func All(buffers ...[]byte) {
	for _, buffer := range buffers {
		Bytes(buffer)
	}
}

// Each calls Zeroize on every non-nil value.
func Each(values ...Zeroizer) {
	for _, value := range values {
		if value != nil {
			value.Zeroize()
		}
	}
}

// Mechanism names the zeroing variant compiled into this binary:
// "kernel" when the operating system routine is used, "barrier" when
// the fill-plus-barrier path is used.
func Mechanism() string {
	return mechanism()
}

// fill is a variable rather than a function so the compiler can neither
// inline it nor prove what it does at the call site.
var fill = func(ptr unsafe.Pointer, n uintptr) {
	region := unsafe.Slice((*byte)(ptr), n)
	for index := range region {
		region[index] = 0
	}
}

// barrierZero is the portable variant: an opaque fill followed by a
// KeepAlive that keeps the region reachable until the fill completes.
func barrierZero(ptr unsafe.Pointer, n uintptr) {
	fill(ptr, n)
	runtime.KeepAlive(ptr)
}
