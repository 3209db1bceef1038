// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpm

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable is returned when a backend was not compiled in or
	// its native library cannot be used on this host.
	ErrUnavailable = errors.New("rpm: backend unavailable")

	// ErrClosed is returned by operations on a closed Source.
	ErrClosed = errors.New("rpm: source is closed")

	// ErrUnsupportedTag is returned by Match when the backend cannot
	// read the tag a query filters on.
	ErrUnsupportedTag = errors.New("rpm: tag not supported by this backend")
)

// Source is a queryable view of an installed-package database.
type Source interface {
	// Match returns the packages selected by query, in database order.
	// Implementations check ctx between packages.
	Match(ctx context.Context, query Query) ([]Package, error)

	// Close releases the database. Further calls return ErrClosed.
	Close() error
}
