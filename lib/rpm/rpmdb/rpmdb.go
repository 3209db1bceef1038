// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package rpmdb reads installed-package databases without librpm.
//
// It understands the three on-disk formats rpm has used: BerkeleyDB
// ("Packages"), NDB ("Packages.db"), and SQLite ("rpmdb.sqlite"). The
// whole package list is decoded up front and filtered in Go with the
// same Exact/Glob/Regex semantics as the librpm binding, so the two
// backends are interchangeable behind [rpm.Source]. Array tags such as
// PROVIDENAME match when any element matches. Tags go-rpmdb does not
// decode are refused with [rpm.ErrUnsupportedTag]; see [Supports].
package rpmdb

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	gorpmdb "github.com/knqyf263/go-rpmdb/pkg"

	"github.com/bureau-foundation/rpmlib/lib/rpm"
)

// Candidates lists database locations relative to an installation
// root, newest layout first.
var Candidates = []string{
	"usr/lib/sysimage/rpm/rpmdb.sqlite",
	"var/lib/rpm/rpmdb.sqlite",
	"usr/lib/sysimage/rpm/Packages.db",
	"var/lib/rpm/Packages.db",
	"usr/lib/sysimage/rpm/Packages",
	"var/lib/rpm/Packages",
}

// ErrNotFound is returned by Locate when no database exists under the
// root.
var ErrNotFound = errors.New("rpmdb: no rpm database found")

// lister is the part of *gorpmdb.RpmDB this package uses.
type lister interface {
	ListPackages() ([]*gorpmdb.PackageInfo, error)
	Close() error
}

// DB is an open rpm database file. It implements [rpm.Source].
type DB struct {
	mu     sync.Mutex
	path   string
	db     lister
	logger *slog.Logger
}

var _ rpm.Source = (*DB)(nil)

// Open opens the database file at path. The format is detected from
// the file contents. A nil logger discards.
func Open(path string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("rpmdb: %w", err)
	}
	db, err := gorpmdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rpmdb: opening %s: %w", path, err)
	}
	logger.Debug("rpm database opened", "path", path)
	return &DB{path: path, db: db, logger: logger}, nil
}

// Path returns the database file the DB was opened from.
func (d *DB) Path() string { return d.path }

// Match decodes every package and returns those query selects, in
// database order. Imported signing keys are skipped. A query on a tag
// this reader does not decode fails with [rpm.ErrUnsupportedTag] rather
// than matching nothing.
func (d *DB) Match(ctx context.Context, query rpm.Query) ([]rpm.Package, error) {
	match, err := query.RecordMatcher()
	if err != nil {
		return nil, err
	}
	if query.Mode != rpm.MatchAll && !Supports(query.Tag) {
		return nil, fmt.Errorf("rpmdb: %s: %w", query.Tag, rpm.ErrUnsupportedTag)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil, rpm.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	infos, err := d.db.ListPackages()
	if err != nil {
		return nil, fmt.Errorf("rpmdb: reading %s: %w", d.path, err)
	}

	var packages []rpm.Package
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if info == nil {
			continue
		}
		entry := record{info: info, pkg: convert(info)}
		if entry.pkg.IsPubkey() || !match(entry) {
			continue
		}
		packages = append(packages, entry.pkg)
	}

	d.logger.Debug("rpmdb match", "path", d.path, "query", query.String(), "decoded", len(infos), "packages", len(packages))
	return packages, nil
}

// Close releases the database. Close is idempotent.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	if err != nil {
		return fmt.Errorf("rpmdb: closing %s: %w", d.path, err)
	}
	return nil
}

func convert(info *gorpmdb.PackageInfo) rpm.Package {
	pkg := rpm.Package{
		Name:        info.Name,
		Version:     info.Version,
		Release:     info.Release,
		Arch:        info.Arch,
		Summary:     info.Summary,
		License:     info.License,
		Vendor:      info.Vendor,
		SourceRPM:   info.SourceRpm,
		Size:        int64(info.Size),
		InstallTime: int64(info.InstallTime),
	}
	if info.Epoch != nil {
		epoch := *info.Epoch
		pkg.Epoch = &epoch
	}
	return pkg
}

// decodedTags are the tags go-rpmdb decodes from each header.
var decodedTags = map[rpm.Tag]bool{
	rpm.TagName:            true,
	rpm.TagEpoch:           true,
	rpm.TagVersion:         true,
	rpm.TagRelease:         true,
	rpm.TagArch:            true,
	rpm.TagSummary:         true,
	rpm.TagLicense:         true,
	rpm.TagVendor:          true,
	rpm.TagSourceRPM:       true,
	rpm.TagSize:            true,
	rpm.TagLongSize:        true,
	rpm.TagInstallTime:     true,
	rpm.TagModularityLabel: true,
	rpm.TagProvideName:     true,
	rpm.TagRequireName:     true,
	rpm.TagBaseNames:       true,
	rpm.TagDirNames:        true,
	rpm.TagFileDigests:     true,
	rpm.TagFileSizes:       true,
	rpm.TagFileModes:       true,
}

// Supports reports whether queries on tag can be answered from the
// database. DESCRIPTION, BUILDHOST and the other tags go-rpmdb skips
// are not; the native backend serves those.
func Supports(tag rpm.Tag) bool {
	return decodedTags[tag]
}

// record exposes a decoded header to query matching, including the
// array tags that rpm.Package does not carry.
type record struct {
	info *gorpmdb.PackageInfo
	pkg  rpm.Package
}

func (r record) Values(tag rpm.Tag) ([]string, bool) {
	switch tag {
	case rpm.TagProvideName:
		return present(r.info.Provides)
	case rpm.TagRequireName:
		return present(r.info.Requires)
	case rpm.TagBaseNames:
		return present(r.info.BaseNames)
	case rpm.TagDirNames:
		return present(r.info.DirNames)
	case rpm.TagFileDigests:
		return present(r.info.FileDigests)
	case rpm.TagFileSizes:
		values := make([]string, len(r.info.FileSizes))
		for index, size := range r.info.FileSizes {
			values[index] = strconv.FormatUint(uint64(uint32(size)), 10)
		}
		return present(values)
	case rpm.TagFileModes:
		values := make([]string, len(r.info.FileModes))
		for index, mode := range r.info.FileModes {
			values[index] = strconv.FormatUint(uint64(mode), 10)
		}
		return present(values)
	case rpm.TagModularityLabel:
		if r.info.Modularitylabel == "" {
			return nil, false
		}
		return []string{r.info.Modularitylabel}, true
	default:
		return r.pkg.Values(tag)
	}
}

// present treats an empty array as an absent tag, which is how the
// header stores it.
func present(values []string) ([]string, bool) {
	return values, len(values) > 0
}

// Locate returns the first entry of Candidates that exists as a regular
// file under root.
func Locate(root string) (string, error) {
	for _, candidate := range Candidates {
		path := filepath.Join(root, filepath.FromSlash(candidate))
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("rpmdb: checking %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("%w under %s", ErrNotFound, root)
}

// OpenRoot locates the database under root and opens it.
func OpenRoot(root string, logger *slog.Logger) (*DB, error) {
	path, err := Locate(root)
	if err != nil {
		return nil, err
	}
	return Open(path, logger)
}
