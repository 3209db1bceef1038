// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build cgo && rpmlib

package native

/*
#cgo pkg-config: rpm
#include <stdlib.h>
#include <rpm/rpmlib.h>
#include <rpm/rpmdb.h>
#include <rpm/rpmts.h>
#include <rpm/rpmte.h>
#include <rpm/rpmds.h>
#include <rpm/rpmfi.h>
#include <rpm/rpmtd.h>
#include <rpm/rpmtag.h>
#include <rpm/rpmtypes.h>
#include <rpm/header.h>
#include <rpm/rpmio.h>
#include <rpm/rpmlog.h>
#include <rpm/rpmmacro.h>

// rpmExpand is variadic and cannot be called from Go directly.
static char *rpmlib_expand(const char *expression) {
	return rpmExpand(expression, NULL);
}
*/
import "C"

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"unsafe"

	"github.com/bureau-foundation/rpmlib/lib/rpm"
)

var (
	// librpm serializes every call into the library.
	librpm sync.Mutex

	// configured is set once rpmReadConfigFiles has succeeded.
	configured bool
)

// Available reports whether the binding was compiled in.
func Available() bool { return true }

// ReadConfig loads rpmrc configuration and the macro files it names.
// An empty path reads the default locations. Configuration is global
// to the process.
func ReadConfig(path string) error {
	librpm.Lock()
	defer librpm.Unlock()
	return readConfigLocked(path)
}

func readConfigLocked(path string) error {
	var rc C.int
	if path == "" {
		rc = C.rpmReadConfigFiles(nil, nil)
	} else {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("rpm: reading config: %w", err)
		}
		if strings.IndexByte(path, 0) >= 0 {
			return fmt.Errorf("rpm: config path %q contains a NUL byte", path)
		}
		cpath := C.CString(path)
		defer C.free(unsafe.Pointer(cpath))
		rc = C.rpmReadConfigFiles(cpath, nil)
	}

	if rc != 0 {
		if path == "" {
			return fmt.Errorf("rpm: error reading config from the default location")
		}
		return fmt.Errorf("rpm: error reading config from %s", path)
	}
	configured = true
	return nil
}

// DefineMacro defines a macro in the global context. definition has
// the form "<name>[(opts)] <body>"; level is one of the Level
// constants.
func DefineMacro(definition string, level int) error {
	librpm.Lock()
	defer librpm.Unlock()
	return defineMacroLocked(definition, level)
}

func defineMacroLocked(definition string, level int) error {
	if strings.IndexByte(definition, 0) >= 0 {
		return fmt.Errorf("rpm: macro definition contains a NUL byte")
	}
	cdefinition := C.CString(definition)
	defer C.free(unsafe.Pointer(cdefinition))

	if C.rpmDefineMacro(C.rpmGlobalMacroContext, cdefinition, C.int(level)) != 0 {
		return fmt.Errorf("rpm: invalid macro definition %q", definition)
	}
	return nil
}

// DeleteMacro removes the innermost definition of name from the global
// context. Deleting an undefined macro is not an error.
func DeleteMacro(name string) error {
	if strings.IndexByte(name, 0) >= 0 {
		return fmt.Errorf("rpm: macro name contains a NUL byte")
	}

	librpm.Lock()
	defer librpm.Unlock()

	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	C.delMacro(C.rpmGlobalMacroContext, cname)
	return nil
}

// ExpandMacro expands every macro reference in expression.
func ExpandMacro(expression string) (string, error) {
	if strings.IndexByte(expression, 0) >= 0 {
		return "", fmt.Errorf("rpm: macro expression contains a NUL byte")
	}

	librpm.Lock()
	defer librpm.Unlock()

	cexpression := C.CString(expression)
	defer C.free(unsafe.Pointer(cexpression))
	expanded := C.rpmlib_expand(cexpression)
	if expanded == nil {
		return "", fmt.Errorf("rpm: expanding %q failed", expression)
	}
	defer C.free(unsafe.Pointer(expanded))
	return C.GoString(expanded), nil
}

// SetDBPath points the global _dbpath macro at path.
func SetDBPath(path string) error {
	return DefineMacro(dbPathMacro+" "+path, LevelGlobal)
}

// DB is a transaction set over an installed-package database. It
// implements [rpm.Source].
type DB struct {
	ts     C.rpmts
	root   string
	logger *slog.Logger
}

var _ rpm.Source = (*DB)(nil)

// Open reads configuration if needed and creates a transaction set
// rooted at options.Root. The caller must Close the DB.
func Open(options Options) (*DB, error) {
	logger := options.logger()

	librpm.Lock()
	defer librpm.Unlock()

	if !configured || options.ConfigFile != "" {
		if err := readConfigLocked(options.ConfigFile); err != nil {
			return nil, err
		}
	}
	if options.DBPath != "" {
		if err := defineMacroLocked(dbPathMacro+" "+options.DBPath, LevelGlobal); err != nil {
			return nil, err
		}
	}

	root := options.Root
	if root == "" {
		root = "/"
	}
	if strings.IndexByte(root, 0) >= 0 {
		return nil, fmt.Errorf("rpm: root %q contains a NUL byte", root)
	}

	ts := C.rpmtsCreate()
	if ts == nil {
		return nil, fmt.Errorf("rpm: creating transaction set failed")
	}
	croot := C.CString(root)
	defer C.free(unsafe.Pointer(croot))
	if C.rpmtsSetRootDir(ts, croot) != 0 {
		C.rpmtsFree(ts)
		return nil, fmt.Errorf("rpm: invalid root directory %s", root)
	}

	logger.Debug("librpm transaction set created", "root", root, "dbpath", options.DBPath)
	return &DB{ts: ts, root: root, logger: logger}, nil
}

// Close frees the transaction set, closing the database. Close is
// idempotent.
func (db *DB) Close() error {
	librpm.Lock()
	defer librpm.Unlock()

	if db.ts != nil {
		C.rpmtsFree(db.ts)
		db.ts = nil
	}
	return nil
}

// Match returns the packages selected by query. Exact matches on NAME
// use the name index; every other query walks the package index with a
// librpm pattern filter. Imported signing keys are skipped.
func (db *DB) Match(ctx context.Context, query rpm.Query) ([]rpm.Package, error) {
	var packages []rpm.Package
	err := db.iterate(ctx, query, func(header C.Header) error {
		pkg := packageFromHeader(header)
		if !pkg.IsPubkey() {
			packages = append(packages, pkg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	db.logger.Debug("librpm match", "query", query.String(), "packages", len(packages))
	return packages, nil
}

// Headers calls fn with each header selected by query. The *Header is
// valid only until fn returns. fn runs with the librpm lock held and
// must not call other functions of this package; Header methods are
// safe. Iteration stops at the first error fn returns.
func (db *DB) Headers(ctx context.Context, query rpm.Query, fn func(*Header) error) error {
	return db.iterate(ctx, query, func(raw C.Header) error {
		header := &Header{header: C.headerLink(raw)}
		defer header.release()
		return fn(header)
	})
}

func (db *DB) iterate(ctx context.Context, query rpm.Query, visit func(C.Header) error) error {
	if err := query.Validate(); err != nil {
		return err
	}

	librpm.Lock()
	defer librpm.Unlock()

	if db.ts == nil {
		return rpm.ErrClosed
	}

	iterator, err := db.initIterator(query)
	if err != nil {
		return err
	}
	if iterator == nil {
		return nil
	}
	defer func() {
		C.rpmdbFreeIterator(iterator)
		C.rpmtsClean(db.ts)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		header := C.rpmdbNextIterator(iterator)
		if header == nil {
			return nil
		}
		if err := visit(header); err != nil {
			return err
		}
	}
}

// initIterator returns nil (and no error) when the database has no
// entries for the query.
func (db *DB) initIterator(query rpm.Query) (C.rpmdbMatchIterator, error) {
	if query.Mode == rpm.MatchExact && query.Tag == rpm.TagName && query.Pattern != "" {
		key := C.CString(query.Pattern)
		defer C.free(unsafe.Pointer(key))
		return C.rpmtsInitIterator(db.ts, C.rpmDbiTagVal(C.RPMDBI_NAME), unsafe.Pointer(key), C.size_t(len(query.Pattern))), nil
	}

	iterator := C.rpmtsInitIterator(db.ts, C.rpmDbiTagVal(C.RPMDBI_PACKAGES), nil, 0)
	if iterator == nil || query.Mode == rpm.MatchAll {
		return iterator, nil
	}

	var mode C.rpmMireMode
	switch query.Mode {
	case rpm.MatchExact:
		mode = C.rpmMireMode(C.RPMMIRE_STRCMP)
	case rpm.MatchGlob:
		mode = C.rpmMireMode(C.RPMMIRE_GLOB)
	case rpm.MatchRegex:
		mode = C.rpmMireMode(C.RPMMIRE_REGEX)
	}

	pattern := C.CString(query.Pattern)
	defer C.free(unsafe.Pointer(pattern))
	if C.rpmdbSetIteratorRE(iterator, C.rpmTagVal(query.Tag), mode, pattern) != 0 {
		C.rpmdbFreeIterator(iterator)
		return nil, fmt.Errorf("rpm: librpm rejected %s", query)
	}
	return iterator, nil
}

func packageFromHeader(header C.Header) rpm.Package {
	pkg := rpm.Package{
		Name:        headerString(header, rpm.TagName),
		Version:     headerString(header, rpm.TagVersion),
		Release:     headerString(header, rpm.TagRelease),
		Arch:        headerString(header, rpm.TagArch),
		Summary:     headerString(header, rpm.TagSummary),
		Description: headerString(header, rpm.TagDescription),
		License:     headerString(header, rpm.TagLicense),
		Vendor:      headerString(header, rpm.TagVendor),
		SourceRPM:   headerString(header, rpm.TagSourceRPM),
		InstallTime: int64(C.headerGetNumber(header, C.rpmTagVal(rpm.TagInstallTime))),
	}
	if C.headerIsEntry(header, C.rpmTagVal(rpm.TagEpoch)) != 0 {
		epoch := int(C.headerGetNumber(header, C.rpmTagVal(rpm.TagEpoch)))
		pkg.Epoch = &epoch
	}
	if C.headerIsEntry(header, C.rpmTagVal(rpm.TagLongSize)) != 0 {
		pkg.Size = int64(C.headerGetNumber(header, C.rpmTagVal(rpm.TagLongSize)))
	} else {
		pkg.Size = int64(C.headerGetNumber(header, C.rpmTagVal(rpm.TagSize)))
	}
	return pkg
}

func headerString(header C.Header, tag rpm.Tag) string {
	value := C.headerGetString(header, C.rpmTagVal(tag))
	if value == nil {
		return ""
	}
	return C.GoString(value)
}
