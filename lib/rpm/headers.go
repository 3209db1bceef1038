// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpm

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Library names a shared object in the librpm family.
type Library string

const (
	LibRPM      Library = "rpm"
	LibRPMIO    Library = "rpmio"
	LibRPMBuild Library = "rpmbuild"
	LibRPMSign  Library = "rpmsign"
)

// HeaderFile is one entry of the binding's include manifest.
type HeaderFile struct {
	// Path is relative to the include directory, e.g. "rpm/rpmdb.h".
	Path string `json:"path"`

	// Library is the shared object implementing the declarations.
	Library Library `json:"library"`

	// BuildTag is the extra build tag that pulls the header into the
	// cgo preamble, beyond the base "rpmlib" tag. Empty for the core
	// headers.
	BuildTag string `json:"build_tag,omitempty"`

	// Purpose is a short description of what the header declares.
	Purpose string `json:"purpose"`

	// Excluded is set for headers deliberately left out of the binding,
	// with the reason.
	Excluded string `json:"excluded,omitempty"`
}

// Headers is the include manifest for lib/rpm/native. The cgo preambles
// in that package include exactly the non-excluded entries, grouped by
// build tag; keep the two in step.
var Headers = []HeaderFile{
	{Path: "rpm/rpmlib.h", Library: LibRPM, Purpose: "configuration (rpmReadConfigFiles)"},
	{Path: "rpm/rpmdb.h", Library: LibRPM, Purpose: "database match iterators"},
	{Path: "rpm/rpmts.h", Library: LibRPM, Purpose: "transaction sets"},
	{Path: "rpm/rpmte.h", Library: LibRPM, Purpose: "transaction elements"},
	{Path: "rpm/rpmds.h", Library: LibRPM, Purpose: "dependency sets"},
	{Path: "rpm/rpmfi.h", Library: LibRPM, Purpose: "file information"},
	{Path: "rpm/rpmtd.h", Library: LibRPM, Purpose: "tag data containers"},
	{Path: "rpm/rpmtag.h", Library: LibRPM, Purpose: "tag and tag type enumerations"},
	{Path: "rpm/rpmtypes.h", Library: LibRPM, Purpose: "opaque handle typedefs"},
	{Path: "rpm/header.h", Library: LibRPM, Purpose: "package headers"},
	{Path: "rpm/rpmio.h", Library: LibRPMIO, Purpose: "I/O routines"},
	{Path: "rpm/rpmlog.h", Library: LibRPMIO, Purpose: "logging"},
	{Path: "rpm/rpmmacro.h", Library: LibRPMIO, Purpose: "macro contexts"},
	{Path: "rpm/rpmbuild.h", Library: LibRPMBuild, BuildTag: "rpmbuild", Purpose: "package building"},
	{Path: "rpm/rpmspec.h", Library: LibRPMBuild, BuildTag: "rpmbuild", Purpose: "spec file parsing"},
	{Path: "rpm/rpmsign.h", Library: LibRPMSign, BuildTag: "rpmsign", Purpose: "package signing"},
	{Path: "rpm/rpmcli.h", Library: LibRPM, Purpose: "rpm command-line helpers", Excluded: "popt-based option tables; not needed outside the rpm CLI"},
	{Path: "rpm/rpmpgp.h", Library: LibRPMIO, Purpose: "OpenPGP parsing", Excluded: "internal crypto API that changes between rpm releases"},
}

// Enabled returns the manifest entries compiled in for the given set of
// extra build tags.
func Enabled(buildTags ...string) []HeaderFile {
	active := map[string]bool{"": true}
	for _, tag := range buildTags {
		active[tag] = true
	}

	var enabled []HeaderFile
	for _, header := range Headers {
		if header.Excluded == "" && active[header.BuildTag] {
			enabled = append(enabled, header)
		}
	}
	return enabled
}

// HeaderStatus is the outcome of checking one manifest entry.
type HeaderStatus struct {
	Header  HeaderFile `json:"header"`
	Present bool       `json:"present"`
}

// CheckHeaders stats every non-excluded manifest entry under
// includeDir. Missing headers are reported in the result, not as an
// error; the error is reserved for an unusable includeDir or an
// unexpected stat failure.
func CheckHeaders(includeDir string) ([]HeaderStatus, error) {
	info, err := os.Stat(includeDir)
	if err != nil {
		return nil, fmt.Errorf("rpm: include directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("rpm: include directory %s is not a directory", includeDir)
	}

	var statuses []HeaderStatus
	for _, header := range Headers {
		if header.Excluded != "" {
			continue
		}
		_, err := os.Stat(filepath.Join(includeDir, filepath.FromSlash(header.Path)))
		switch {
		case err == nil:
			statuses = append(statuses, HeaderStatus{Header: header, Present: true})
		case errors.Is(err, fs.ErrNotExist):
			statuses = append(statuses, HeaderStatus{Header: header, Present: false})
		default:
			return nil, fmt.Errorf("rpm: checking %s: %w", header.Path, err)
		}
	}
	return statuses, nil
}

// Missing filters statuses down to the absent headers.
func Missing(statuses []HeaderStatus) []HeaderFile {
	var missing []HeaderFile
	for _, status := range statuses {
		if !status.Present {
			missing = append(missing, status.Header)
		}
	}
	return missing
}
