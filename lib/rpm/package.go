// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpm

import (
	"strconv"
	"strings"
)

// PubkeyName is the name rpm gives imported signing keys. They are
// stored as headers in the database but are not packages.
const PubkeyName = "gpg-pubkey"

// Package is the installed-package record returned by every [Source].
// Field names follow the header tags they are read from.
type Package struct {
	Name        string `json:"name" yaml:"name"`
	Epoch       *int   `json:"epoch,omitempty" yaml:"epoch,omitempty"`
	Version     string `json:"version" yaml:"version"`
	Release     string `json:"release" yaml:"release"`
	Arch        string `json:"arch,omitempty" yaml:"arch,omitempty"`
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	License     string `json:"license,omitempty" yaml:"license,omitempty"`
	Vendor      string `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	SourceRPM   string `json:"source_rpm,omitempty" yaml:"source_rpm,omitempty"`
	Size        int64  `json:"size,omitempty" yaml:"size,omitempty"`
	InstallTime int64  `json:"install_time,omitempty" yaml:"install_time,omitempty"`
}

// EVR formats [epoch:]version-release. A zero or absent epoch is
// omitted, as rpm -q does.
func (p Package) EVR() string {
	var builder strings.Builder
	if p.Epoch != nil && *p.Epoch != 0 {
		builder.WriteString(strconv.Itoa(*p.Epoch))
		builder.WriteByte(':')
	}
	builder.WriteString(p.Version)
	builder.WriteByte('-')
	builder.WriteString(p.Release)
	return builder.String()
}

// NEVRA formats name-[epoch:]version-release.arch. The arch suffix is
// dropped when unknown (source headers).
func (p Package) NEVRA() string {
	nevra := p.Name + "-" + p.EVR()
	if p.Arch != "" {
		nevra += "." + p.Arch
	}
	return nevra
}

// Key identifies a package slot for comparisons: name plus arch, so
// multilib installs (foo.x86_64 and foo.i686) are tracked separately.
func (p Package) Key() string {
	if p.Arch == "" {
		return p.Name
	}
	return p.Name + "." + p.Arch
}

// Field returns the string form of the package attribute stored under
// tag. The second result is false for tags a Package does not carry,
// and for an absent epoch.
func (p Package) Field(tag Tag) (string, bool) {
	switch tag {
	case TagName:
		return p.Name, true
	case TagEpoch:
		if p.Epoch == nil {
			return "", false
		}
		return strconv.Itoa(*p.Epoch), true
	case TagVersion:
		return p.Version, true
	case TagRelease:
		return p.Release, true
	case TagArch:
		return p.Arch, true
	case TagSummary:
		return p.Summary, true
	case TagDescription:
		return p.Description, true
	case TagLicense:
		return p.License, true
	case TagVendor:
		return p.Vendor, true
	case TagSourceRPM:
		return p.SourceRPM, true
	case TagSize, TagLongSize:
		return strconv.FormatInt(p.Size, 10), true
	case TagInstallTime:
		return strconv.FormatInt(p.InstallTime, 10), true
	default:
		return "", false
	}
}

// Values implements [Record] over the scalar fields.
func (p Package) Values(tag Tag) ([]string, bool) {
	value, ok := p.Field(tag)
	if !ok {
		return nil, false
	}
	return []string{value}, true
}

// IsPubkey reports whether the record is an imported signing key rather
// than an installed package.
func (p Package) IsPubkey() bool {
	return p.Name == PubkeyName
}
