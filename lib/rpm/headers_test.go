// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpm

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnabled(t *testing.T) {
	core := Enabled()
	for _, header := range core {
		if header.BuildTag != "" || header.Excluded != "" {
			t.Errorf("core set contains %s (tag %q, excluded %q)", header.Path, header.BuildTag, header.Excluded)
		}
	}

	withSign := Enabled("rpmsign")
	if len(withSign) != len(core)+1 {
		t.Fatalf("rpmsign adds %d headers, want 1", len(withSign)-len(core))
	}
	if withSign[len(withSign)-1].Path != "rpm/rpmsign.h" {
		t.Errorf("last enabled header = %s", withSign[len(withSign)-1].Path)
	}

	everything := Enabled("rpmsign", "rpmbuild")
	if len(everything) != len(core)+3 {
		t.Errorf("all tags enable %d headers, want %d", len(everything), len(core)+3)
	}
}

func TestCheckHeaders(t *testing.T) {
	includeDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(includeDir, "rpm"), 0755); err != nil {
		t.Fatalf("creating include dir: %v", err)
	}

	present := map[string]bool{"rpm/rpmdb.h": true, "rpm/header.h": true}
	for path := range present {
		if err := os.WriteFile(filepath.Join(includeDir, path), []byte("/* stub */\n"), 0644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}

	statuses, err := CheckHeaders(includeDir)
	if err != nil {
		t.Fatalf("CheckHeaders: %v", err)
	}

	for _, status := range statuses {
		if status.Header.Excluded != "" {
			t.Errorf("excluded header %s was checked", status.Header.Path)
		}
		if status.Present != present[status.Header.Path] {
			t.Errorf("%s present = %v", status.Header.Path, status.Present)
		}
	}

	missing := Missing(statuses)
	if len(missing) != len(statuses)-len(present) {
		t.Errorf("Missing() returned %d entries, want %d", len(missing), len(statuses)-len(present))
	}
}

func TestCheckHeaders_BadDirectory(t *testing.T) {
	if _, err := CheckHeaders(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("CheckHeaders on missing directory succeeded")
	}

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	if _, err := CheckHeaders(file); err == nil {
		t.Error("CheckHeaders on a regular file succeeded")
	}
}
