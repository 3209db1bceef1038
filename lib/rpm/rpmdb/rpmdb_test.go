// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpmdb

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	gorpmdb "github.com/knqyf263/go-rpmdb/pkg"

	"github.com/bureau-foundation/rpmlib/lib/rpm"
)

type fakeLister struct {
	packages []*gorpmdb.PackageInfo
	err      error
	closed   int
}

func (f *fakeLister) ListPackages() ([]*gorpmdb.PackageInfo, error) {
	return f.packages, f.err
}

func (f *fakeLister) Close() error {
	f.closed++
	return nil
}

func intPointer(value int) *int { return &value }

func fakeDB(lister lister) *DB {
	return &DB{path: "fake", db: lister, logger: slog.New(slog.DiscardHandler)}
}

func samplePackages() []*gorpmdb.PackageInfo {
	return []*gorpmdb.PackageInfo{
		{Name: "rpm-libs", Version: "4.18.2", Release: "1.fc39", Arch: "x86_64", Size: 790000, Vendor: "Fedora Project"},
		{Name: "gpg-pubkey", Version: "18b8e74c", Release: "62f2920f"},
		{Name: "vim-enhanced", Epoch: intPointer(2), Version: "9.1.000", Release: "1.fc39", Arch: "x86_64"},
		nil,
		{Name: "rpm-devel", Version: "4.18.2", Release: "1.fc39", Arch: "x86_64", SourceRpm: "rpm-4.18.2-1.fc39.src.rpm"},
	}
}

func TestMatch(t *testing.T) {
	db := fakeDB(&fakeLister{packages: samplePackages()})

	tests := []struct {
		name  string
		query rpm.Query
		want  []string
	}{
		{"all skips pubkeys", rpm.All(), []string{"rpm-libs", "vim-enhanced", "rpm-devel"}},
		{"exact", rpm.Find(rpm.TagName, "rpm-devel"), []string{"rpm-devel"}},
		{"glob", rpm.Glob(rpm.TagName, "rpm-*"), []string{"rpm-libs", "rpm-devel"}},
		{"regex", rpm.Regex(rpm.TagName, "^vim"), []string{"vim-enhanced"}},
		{"pubkey not matchable", rpm.Find(rpm.TagName, "gpg-pubkey"), nil},
		{"epoch", rpm.Find(rpm.TagEpoch, "2"), []string{"vim-enhanced"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			packages, err := db.Match(context.Background(), test.query)
			if err != nil {
				t.Fatalf("Match: %v", err)
			}
			if len(packages) != len(test.want) {
				t.Fatalf("matched %d packages, want %v", len(packages), test.want)
			}
			for index, pkg := range packages {
				if pkg.Name != test.want[index] {
					t.Errorf("package %d = %s, want %s", index, pkg.Name, test.want[index])
				}
			}
		})
	}
}

func glibcPackage() *gorpmdb.PackageInfo {
	return &gorpmdb.PackageInfo{
		Name:            "glibc",
		Version:         "2.38",
		Release:         "16.fc39",
		Arch:            "x86_64",
		Modularitylabel: "m:1",
		Provides:        []string{"glibc", "libc.so.6()(64bit)", "rtld(GNU_HASH)"},
		Requires:        []string{"basesystem", "glibc-common"},
		BaseNames:       []string{"ld-linux-x86-64.so.2", "libc.so.6"},
		DirNames:        []string{"/usr/lib64/"},
		FileDigests:     []string{"a3f5", "9c01"},
		FileSizes:       []int32{236616, 2392480},
		FileModes:       []uint16{0o100755, 0o100755},
	}
}

func TestMatchArrayTags(t *testing.T) {
	db := fakeDB(&fakeLister{packages: append(samplePackages(), glibcPackage())})

	tests := []struct {
		name  string
		query rpm.Query
		want  []string
	}{
		{"provides exact", rpm.Find(rpm.TagProvideName, "libc.so.6()(64bit)"), []string{"glibc"}},
		{"provides regex", rpm.Regex(rpm.TagProvideName, "GNU_HASH"), []string{"glibc"}},
		{"requires exact", rpm.Find(rpm.TagRequireName, "basesystem"), []string{"glibc"}},
		{"requires no element", rpm.Find(rpm.TagRequireName, "bash"), nil},
		{"basenames glob", rpm.Glob(rpm.TagBaseNames, "libc*"), []string{"glibc"}},
		{"dirnames exact", rpm.Find(rpm.TagDirNames, "/usr/lib64/"), []string{"glibc"}},
		{"file digests", rpm.Find(rpm.TagFileDigests, "9c01"), []string{"glibc"}},
		{"file sizes", rpm.Find(rpm.TagFileSizes, "2392480"), []string{"glibc"}},
		{"file modes", rpm.Find(rpm.TagFileModes, "33261"), []string{"glibc"}},
		{"modularity label", rpm.Find(rpm.TagModularityLabel, "m:1"), []string{"glibc"}},
		{"empty arrays never match", rpm.Glob(rpm.TagProvideName, "*"), []string{"glibc"}},
		{"absent epoch has no value", rpm.Find(rpm.TagEpoch, ""), nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			packages, err := db.Match(context.Background(), test.query)
			if err != nil {
				t.Fatalf("Match: %v", err)
			}
			if len(packages) != len(test.want) {
				t.Fatalf("matched %d packages, want %v", len(packages), test.want)
			}
			for index, pkg := range packages {
				if pkg.Name != test.want[index] {
					t.Errorf("package %d = %s, want %s", index, pkg.Name, test.want[index])
				}
			}
		})
	}
}

func TestMatchUnsupportedTag(t *testing.T) {
	db := fakeDB(&fakeLister{packages: append(samplePackages(), glibcPackage())})

	for _, tag := range []rpm.Tag{rpm.TagDescription, rpm.TagBuildHost, rpm.TagSigMD5, rpm.Tag(99999)} {
		if Supports(tag) {
			t.Errorf("Supports(%s) = true", tag)
		}
		_, err := db.Match(context.Background(), rpm.Glob(tag, "*"))
		if !errors.Is(err, rpm.ErrUnsupportedTag) {
			t.Errorf("Match on %s error = %v, want ErrUnsupportedTag", tag, err)
		}
	}

	packages, err := db.Match(context.Background(), rpm.Query{Tag: rpm.TagDescription, Mode: rpm.MatchAll})
	if err != nil || len(packages) != 4 {
		t.Errorf("MatchAll ignores the tag: got %d packages, err %v", len(packages), err)
	}
}

func TestMatchConvertsFields(t *testing.T) {
	db := fakeDB(&fakeLister{packages: samplePackages()})

	packages, err := db.Match(context.Background(), rpm.Find(rpm.TagName, "vim-enhanced"))
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if len(packages) != 1 {
		t.Fatalf("matched %d packages", len(packages))
	}
	if got := packages[0].NEVRA(); got != "vim-enhanced-2:9.1.000-1.fc39.x86_64" {
		t.Errorf("NEVRA() = %q", got)
	}

	packages, err = db.Match(context.Background(), rpm.Find(rpm.TagName, "rpm-libs"))
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if packages[0].Size != 790000 || packages[0].Epoch != nil {
		t.Errorf("rpm-libs converted as %+v", packages[0])
	}
}

func TestMatchErrors(t *testing.T) {
	failing := fakeDB(&fakeLister{err: errors.New("corrupt page")})
	if _, err := failing.Match(context.Background(), rpm.All()); err == nil {
		t.Error("Match succeeded over a failing reader")
	}

	db := fakeDB(&fakeLister{packages: samplePackages()})
	if _, err := db.Match(context.Background(), rpm.Regex(rpm.TagName, "(")); err == nil {
		t.Error("Match accepted an invalid regex")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := db.Match(ctx, rpm.All()); !errors.Is(err, context.Canceled) {
		t.Errorf("Match with cancelled context error = %v", err)
	}
}

func TestClose(t *testing.T) {
	lister := &fakeLister{packages: samplePackages()}
	db := fakeDB(lister)

	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if lister.closed != 1 {
		t.Errorf("underlying Close called %d times, want 1", lister.closed)
	}
	if _, err := db.Match(context.Background(), rpm.All()); !errors.Is(err, rpm.ErrClosed) {
		t.Errorf("Match after Close error = %v, want ErrClosed", err)
	}
}

func TestLocate(t *testing.T) {
	root := t.TempDir()

	if _, err := Locate(root); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Locate on empty root error = %v, want ErrNotFound", err)
	}

	legacy := filepath.Join(root, "var", "lib", "rpm", "Packages")
	if err := os.MkdirAll(filepath.Dir(legacy), 0755); err != nil {
		t.Fatalf("creating legacy dir: %v", err)
	}
	if err := os.WriteFile(legacy, []byte("bdb"), 0644); err != nil {
		t.Fatalf("writing legacy db: %v", err)
	}
	path, err := Locate(root)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if path != legacy {
		t.Errorf("Locate = %s, want %s", path, legacy)
	}

	// The SQLite layout wins when both are present.
	modern := filepath.Join(root, "usr", "lib", "sysimage", "rpm", "rpmdb.sqlite")
	if err := os.MkdirAll(filepath.Dir(modern), 0755); err != nil {
		t.Fatalf("creating sysimage dir: %v", err)
	}
	if err := os.WriteFile(modern, []byte("sqlite"), 0644); err != nil {
		t.Fatalf("writing sqlite db: %v", err)
	}
	path, err = Locate(root)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if path != modern {
		t.Errorf("Locate = %s, want %s", path, modern)
	}
}

func TestLocateIgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "var", "lib", "rpm", "Packages"), 0755); err != nil {
		t.Fatalf("creating directory: %v", err)
	}
	if _, err := Locate(root); !errors.Is(err, ErrNotFound) {
		t.Errorf("Locate matched a directory, error = %v", err)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "Packages"), nil); err == nil {
		t.Error("Open of a missing file succeeded")
	}
}
