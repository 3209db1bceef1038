// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/rpmlib/lib/rpm"
)

func epoch(value int) *int { return &value }

var takenAt = time.Date(2026, 3, 14, 15, 9, 26, 535897932, time.UTC)

func basePackages() []rpm.Package {
	return []rpm.Package{
		{Name: "vim-enhanced", Epoch: epoch(2), Version: "9.1.000", Release: "1.fc39", Arch: "x86_64", Summary: "A version of the VIM editor"},
		{Name: "rpm-libs", Version: "4.18.2", Release: "1.fc39", Arch: "x86_64", License: "GPL-2.0-or-later"},
		{Name: "glibc", Version: "2.38", Release: "14.fc39", Arch: "i686"},
		{Name: "glibc", Version: "2.38", Release: "14.fc39", Arch: "x86_64"},
		{Name: "kernel-core", Version: "6.7.4", Release: "200.fc39", Arch: "x86_64"},
	}
}

// manyPackages produces a list large enough to compress.
func manyPackages(count int) []rpm.Package {
	packages := make([]rpm.Package, count)
	for index := range packages {
		packages[index] = rpm.Package{
			Name:    fmt.Sprintf("perl-Module-%04d", index),
			Version: "1.0",
			Release: "1.fc39",
			Arch:    "noarch",
			Summary: "Perl module shipped by the distribution",
			Vendor:  "Fedora Project",
		}
	}
	return packages
}

type fakeSource struct {
	packages []rpm.Package
	err      error
}

func (f *fakeSource) Match(ctx context.Context, query rpm.Query) ([]rpm.Package, error) {
	return f.packages, f.err
}

func (f *fakeSource) Close() error { return nil }

func TestNewSortsByNEVRA(t *testing.T) {
	packages := basePackages()
	snapshot := New("rpmdb", "/", takenAt, packages)

	want := []string{
		"glibc-2.38-14.fc39.i686",
		"glibc-2.38-14.fc39.x86_64",
		"kernel-core-6.7.4-200.fc39.x86_64",
		"rpm-libs-4.18.2-1.fc39.x86_64",
		"vim-enhanced-2:9.1.000-1.fc39.x86_64",
	}
	for index, pkg := range snapshot.Packages {
		if pkg.NEVRA() != want[index] {
			t.Errorf("package %d = %s, want %s", index, pkg.NEVRA(), want[index])
		}
	}
	if packages[0].Name != "vim-enhanced" {
		t.Error("New sorted the caller's slice")
	}
	if snapshot.Taken.Nanosecond() != 0 || snapshot.Taken.Location() != time.UTC {
		t.Errorf("Taken = %v, want UTC truncated to seconds", snapshot.Taken)
	}
}

func TestDigestIgnoresOrderAndMetadata(t *testing.T) {
	packages := basePackages()
	first := New("rpmdb", "/", takenAt, packages)

	reversed := make([]rpm.Package, len(packages))
	for index, pkg := range packages {
		reversed[len(packages)-1-index] = pkg
	}
	second := New("native", "/mnt/image", takenAt.Add(time.Hour), reversed)

	firstDigest, err := first.Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	secondDigest, err := second.Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if firstDigest != secondDigest {
		t.Errorf("digests differ: %s != %s", firstDigest, secondDigest)
	}

	packages[1].Release = "2.fc39"
	changed, err := New("rpmdb", "/", takenAt, packages).Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if changed == firstDigest {
		t.Error("digest did not change with a package release")
	}
}

func TestTake(t *testing.T) {
	source := &fakeSource{packages: basePackages()}
	snapshot, err := Take(context.Background(), source, "rpmdb", "/", takenAt)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if len(snapshot.Packages) != len(source.packages) || snapshot.Backend != "rpmdb" {
		t.Errorf("Take produced %+v", snapshot)
	}

	failing := &fakeSource{err: rpm.ErrUnavailable}
	if _, err := Take(context.Background(), failing, "native", "/", takenAt); !errors.Is(err, rpm.ErrUnavailable) {
		t.Errorf("Take error = %v, want ErrUnavailable", err)
	}
}

func TestWriteReadRoundtrip(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			original := New("rpmdb", "/", takenAt, manyPackages(200))

			var buffer bytes.Buffer
			if _, err := Write(&buffer, original, compression); err != nil {
				t.Fatalf("Write: %v", err)
			}

			headerLine, _, _ := strings.Cut(buffer.String(), "\n")
			if !strings.HasPrefix(headerLine, "rpminv 1 "+compression.String()+" ") {
				t.Errorf("header line = %q", headerLine)
			}

			decoded, err := Read(&buffer)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if decoded.Backend != original.Backend || decoded.Root != original.Root || !decoded.Taken.Equal(original.Taken) {
				t.Errorf("metadata = %+v", decoded)
			}
			if len(decoded.Packages) != len(original.Packages) {
				t.Fatalf("decoded %d packages, want %d", len(decoded.Packages), len(original.Packages))
			}

			originalDigest, _ := original.Digest()
			decodedDigest, _ := decoded.Digest()
			if originalDigest != decodedDigest {
				t.Errorf("package digest changed across roundtrip")
			}
		})
	}
}

func TestWriteFallsBackWhenIncompressible(t *testing.T) {
	snapshot := New("rpmdb", "/", takenAt, nil)

	var buffer bytes.Buffer
	if _, err := Write(&buffer, snapshot, CompressionZstd); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasPrefix(buffer.String(), "rpminv 1 none ") {
		t.Errorf("tiny payload header = %q", strings.SplitN(buffer.String(), "\n", 2)[0])
	}
	if _, err := Read(&buffer); err != nil {
		t.Fatalf("Read: %v", err)
	}
}

func TestReadDetectsTampering(t *testing.T) {
	var buffer bytes.Buffer
	if _, err := Write(&buffer, New("rpmdb", "/", takenAt, basePackages()), CompressionNone); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data := buffer.Bytes()

	// Flip a byte inside a package name: the header still parses and the
	// size still matches, only the digest catches it.
	index := bytes.Index(data, []byte("rpm-libs"))
	if index < 0 {
		t.Fatal("package name not found in uncompressed payload")
	}
	tampered := bytes.Clone(data)
	tampered[index] = 'R'

	if _, err := Read(bytes.NewReader(tampered)); !errors.Is(err, ErrDigestMismatch) {
		t.Errorf("Read of tampered payload error = %v, want ErrDigestMismatch", err)
	}
}

func TestReadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrBadMagic},
		{"wrong magic", "tarball 1 none 0 " + strings.Repeat("0", 64) + "\n", ErrBadMagic},
		{"future version", "rpminv 2 none 0 " + strings.Repeat("0", 64) + "\n", ErrBadMagic},
		{"no newline", strings.Repeat("x", 1024), ErrBadMagic},
		{"wrong size", "rpminv 1 none 10 " + strings.Repeat("0", 64) + "\nabc", nil},
		{"bad compression", "rpminv 1 brotli 0 " + strings.Repeat("0", 64) + "\n", nil},
		{"bad digest", "rpminv 1 none 0 xyz\n", nil},
		{"negative size", "rpminv 1 none -1 " + strings.Repeat("0", 64) + "\n", nil},
		{"zero digest", "rpminv 1 none 0 " + strings.Repeat("0", 64) + "\n", ErrDigestMismatch},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(test.input))
			if err == nil {
				t.Fatal("Read succeeded")
			}
			if test.want != nil && !errors.Is(err, test.want) {
				t.Errorf("error = %v, want %v", err, test.want)
			}
		})
	}
}

func TestWriteFileReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host.rpminv")
	original := New("native", "/", takenAt, basePackages())

	digest, err := WriteFile(path, original, CompressionLZ4)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if digest.IsZero() {
		t.Error("WriteFile returned a zero digest")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the snapshot", len(entries))
	}

	decoded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(decoded.Find("glibc.i686")) != 1 {
		t.Errorf("Find(glibc.i686) = %v", decoded.Find("glibc.i686"))
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("ReadFile of a missing file succeeded")
	}
}

func TestCreateFileRefusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "20260301T120000Z.rpminv")
	first := New("rpmdb", "/", takenAt, basePackages())
	second := New("rpmdb", "/", takenAt, basePackages()[:1])

	if _, err := CreateFile(path, first, CompressionZstd); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if _, err := CreateFile(path, second, CompressionZstd); !errors.Is(err, fs.ErrExist) {
		t.Fatalf("second CreateFile error = %v, want fs.ErrExist", err)
	}

	decoded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(decoded.Packages) != len(first.Packages) {
		t.Errorf("snapshot holds %d packages, want the first write's %d", len(decoded.Packages), len(first.Packages))
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the snapshot", len(entries))
	}
}

func TestParseCompression(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		parsed, err := ParseCompression(compression.String())
		if err != nil || parsed != compression {
			t.Errorf("ParseCompression(%q) = (%v, %v)", compression, parsed, err)
		}
	}
	if _, err := ParseCompression("gzip"); err == nil {
		t.Error("ParseCompression accepted gzip")
	}
}

func TestDigestParse(t *testing.T) {
	digest, err := New("rpmdb", "/", takenAt, basePackages()).Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	parsed, err := ParseDigest(digest.String())
	if err != nil {
		t.Fatalf("ParseDigest: %v", err)
	}
	if parsed != digest {
		t.Error("digest did not survive String/ParseDigest")
	}
	if len(digest.Short()) != 12 {
		t.Errorf("Short() = %q", digest.Short())
	}
	if _, err := ParseDigest("abcd"); err == nil {
		t.Error("ParseDigest accepted a short digest")
	}
}

func TestReadPayloadIsCBOR(t *testing.T) {
	var buffer bytes.Buffer
	if _, err := Write(&buffer, New("rpmdb", "/", takenAt, basePackages()), CompressionZstd); err != nil {
		t.Fatalf("Write: %v", err)
	}
	payload, err := ReadPayload(&buffer)
	if err != nil {
		t.Fatalf("ReadPayload: %v", err)
	}
	// A snapshot encodes as a four-entry CBOR map.
	if len(payload) == 0 || payload[0] != 0xa4 {
		t.Errorf("payload does not start with a 4-entry map: % x", payload[:min(len(payload), 4)])
	}
}
