// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !(cgo && rpmlib)

package native

import (
	"context"

	"github.com/bureau-foundation/rpmlib/lib/rpm"
)

// Available reports whether the binding was compiled in.
func Available() bool { return false }

// ReadConfig returns rpm.ErrUnavailable: the binding is not compiled in.
func ReadConfig(path string) error { return rpm.ErrUnavailable }

// DefineMacro returns rpm.ErrUnavailable: the binding is not compiled in.
func DefineMacro(definition string, level int) error { return rpm.ErrUnavailable }

// DeleteMacro returns rpm.ErrUnavailable: the binding is not compiled in.
func DeleteMacro(name string) error { return rpm.ErrUnavailable }

// ExpandMacro returns rpm.ErrUnavailable: the binding is not compiled in.
func ExpandMacro(expression string) (string, error) { return "", rpm.ErrUnavailable }

// SetDBPath returns rpm.ErrUnavailable: the binding is not compiled in.
func SetDBPath(path string) error { return rpm.ErrUnavailable }

// DB is a transaction set over an installed-package database. Without
// the rpmlib build tag it cannot be opened.
type DB struct{}

var _ rpm.Source = (*DB)(nil)

// Open returns rpm.ErrUnavailable: the binding is not compiled in.
func Open(options Options) (*DB, error) { return nil, rpm.ErrUnavailable }

func (db *DB) Close() error { return nil }

func (db *DB) Match(ctx context.Context, query rpm.Query) ([]rpm.Package, error) {
	return nil, rpm.ErrUnavailable
}

func (db *DB) Headers(ctx context.Context, query rpm.Query, fn func(*Header) error) error {
	return rpm.ErrUnavailable
}

// Header is a librpm package header.
type Header struct{}

func (h *Header) Get(tag rpm.Tag) (rpm.TagData, error) {
	return rpm.NullData(tag), rpm.ErrUnavailable
}
