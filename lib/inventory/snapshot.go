// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/bureau-foundation/rpmlib/lib/codec"
	"github.com/bureau-foundation/rpmlib/lib/rpm"
)

// Snapshot is the package list of one database at one moment.
type Snapshot struct {
	// Backend names the reader that produced the list ("native" or
	// "rpmdb").
	Backend string `json:"backend"`

	// Root is the installation root that was read.
	Root string `json:"root"`

	// Taken is when the list was read, in UTC, to the second.
	Taken time.Time `json:"taken"`

	// Packages is sorted by NEVRA.
	Packages []rpm.Package `json:"packages"`
}

// New builds a snapshot from packages, sorting a copy of the list.
func New(backend, root string, taken time.Time, packages []rpm.Package) *Snapshot {
	sorted := slices.Clone(packages)
	sortPackages(sorted)
	return &Snapshot{
		Backend:  backend,
		Root:     root,
		Taken:    taken.UTC().Truncate(time.Second),
		Packages: sorted,
	}
}

// Take reads every package from source and snapshots it.
func Take(ctx context.Context, source rpm.Source, backend, root string, now time.Time) (*Snapshot, error) {
	packages, err := source.Match(ctx, rpm.All())
	if err != nil {
		return nil, fmt.Errorf("inventory: reading packages: %w", err)
	}
	return New(backend, root, now, packages), nil
}

func sortPackages(packages []rpm.Package) {
	slices.SortStableFunc(packages, func(a, b rpm.Package) int {
		return strings.Compare(a.NEVRA(), b.NEVRA())
	})
}

// Digest identifies the package set: the keyed BLAKE3 hash of the
// deterministic CBOR encoding of the sorted package list. Backend,
// root, and time do not contribute.
func (s *Snapshot) Digest() (Digest, error) {
	encoded, err := codec.Marshal(s.Packages)
	if err != nil {
		return Digest{}, fmt.Errorf("inventory: encoding packages: %w", err)
	}
	return keyedHash(packagesDomainKey, encoded), nil
}

// Find returns the packages installed under key (name.arch, or name
// for arch-less records). More than one is returned for install-only
// packages such as kernels.
func (s *Snapshot) Find(key string) []rpm.Package {
	var found []rpm.Package
	for _, pkg := range s.Packages {
		if pkg.Key() == key {
			found = append(found, pkg)
		}
	}
	return found
}
