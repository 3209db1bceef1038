// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/bureau-foundation/rpmlib/lib/zeroize"
)

// ErrNotSerializable is returned by the marshal methods of [Value].
var ErrNotSerializable = errors.New("secret: value is not serializable")

// Bytes is a byte slice that zeros itself. It is the usual inner type
// for [Value].
type Bytes []byte

// Zeroize overwrites the slice contents with zero.
func (b Bytes) Zeroize() {
	zeroize.Bytes(b)
}

// Value wraps a secret of type T. The only way to read the secret is
// [Value.Expose]; every formatting and serialization path yields a
// redacted placeholder instead.
type Value[T zeroize.Zeroizer] struct {
	mu     sync.Mutex
	inner  T
	closed bool
}

// NewValue takes ownership of inner. The caller must not keep other
// references to it.
func NewValue[T zeroize.Zeroizer](inner T) *Value[T] {
	return &Value[T]{inner: inner}
}

// FromString copies text into a [Bytes] value. The string itself is
// immutable and cannot be scrubbed, so prefer building the secret as
// bytes where the source allows it.
func FromString(text string) *Value[Bytes] {
	return NewValue(Bytes(text))
}

// Expose returns the inner secret. Panics after Close.
func (v *Value[T]) Expose() T {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		panic("secret: expose of closed value")
	}
	return v.inner
}

// Closed reports whether Close has been called.
func (v *Value[T]) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

// Close zeroizes the inner value. Idempotent.
func (v *Value[T]) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil
	}
	v.closed = true
	v.inner.Zeroize()
	return nil
}

func (v *Value[T]) redacted() string {
	return "[REDACTED " + reflect.TypeFor[T]().String() + "]"
}

// String implements fmt.Stringer.
func (v *Value[T]) String() string {
	return v.redacted()
}

// GoString implements fmt.GoStringer so %#v is redacted too.
func (v *Value[T]) GoString() string {
	return "secret.Value(" + v.redacted() + ")"
}

// Format implements fmt.Formatter. Every verb prints the placeholder.
func (v *Value[T]) Format(state fmt.State, verb rune) {
	if verb == 'v' && state.Flag('#') {
		fmt.Fprint(state, v.GoString())
		return
	}
	fmt.Fprint(state, v.redacted())
}

// LogValue implements slog.LogValuer.
func (v *Value[T]) LogValue() slog.Value {
	return slog.StringValue(v.redacted())
}

// MarshalJSON always fails.
func (v *Value[T]) MarshalJSON() ([]byte, error) {
	return nil, ErrNotSerializable
}

// MarshalText always fails.
func (v *Value[T]) MarshalText() ([]byte, error) {
	return nil, ErrNotSerializable
}
