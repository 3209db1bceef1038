// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !(cgo && rpmlib)

package native

import (
	"context"
	"errors"
	"testing"

	"github.com/bureau-foundation/rpmlib/lib/rpm"
	"github.com/bureau-foundation/rpmlib/lib/secret"
)

func TestStubReportsUnavailable(t *testing.T) {
	if Available() {
		t.Fatal("Available() = true without the rpmlib tag")
	}

	checks := map[string]error{
		"ReadConfig":  ReadConfig(""),
		"DefineMacro": DefineMacro("_dbpath /tmp", LevelGlobal),
		"DeleteMacro": DeleteMacro("_dbpath"),
		"SetDBPath":   SetDBPath("/tmp"),
	}
	for name, err := range checks {
		if !errors.Is(err, rpm.ErrUnavailable) {
			t.Errorf("%s error = %v, want ErrUnavailable", name, err)
		}
	}

	if _, err := ExpandMacro("%{_dbpath}"); !errors.Is(err, rpm.ErrUnavailable) {
		t.Errorf("ExpandMacro error = %v", err)
	}
	if _, err := Open(Options{}); !errors.Is(err, rpm.ErrUnavailable) {
		t.Errorf("Open error = %v", err)
	}

	var db DB
	if _, err := db.Match(context.Background(), rpm.All()); !errors.Is(err, rpm.ErrUnavailable) {
		t.Errorf("Match error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close error = %v", err)
	}

	var header Header
	if _, err := header.Name(); !errors.Is(err, rpm.ErrUnavailable) {
		t.Errorf("Header.Name error = %v", err)
	}
}

func TestSignStubZeroesKeyID(t *testing.T) {
	if SignAvailable() {
		t.Skip("librpmsign binding compiled in")
	}

	keyID := secret.FromString("0xDEADBEEF")
	err := Sign("/nonexistent.rpm", SignOptions{KeyID: keyID})
	if !errors.Is(err, rpm.ErrUnavailable) {
		t.Fatalf("Sign error = %v, want ErrUnavailable", err)
	}
	if !keyID.Closed() {
		t.Error("key id was not closed")
	}
}

func TestParseSpecStub(t *testing.T) {
	if BuildAvailable() {
		t.Skip("librpmbuild binding compiled in")
	}
	if _, err := ParseSpec("package.spec"); !errors.Is(err, rpm.ErrUnavailable) {
		t.Errorf("ParseSpec error = %v", err)
	}
}
