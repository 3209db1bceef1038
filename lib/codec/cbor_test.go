// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/rpmlib/lib/rpm"
)

func epoch(value int) *int { return &value }

func samplePackages() []rpm.Package {
	return []rpm.Package{
		{Name: "rpm-libs", Version: "4.18.2", Release: "1.fc39", Arch: "x86_64", Size: 790000},
		{Name: "vim-enhanced", Epoch: epoch(2), Version: "9.1.000", Release: "1.fc39", Arch: "x86_64"},
	}
}

// snapshotRecord uses cbor tags, the convention for CBOR-only types.
type snapshotRecord struct {
	Backend string `cbor:"backend"`
	Count   int    `cbor:"count,omitempty"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := samplePackages()

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded []rpm.Package
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(decoded) != len(original) {
		t.Fatalf("decoded %d packages, want %d", len(decoded), len(original))
	}
	for index := range original {
		if decoded[index].NEVRA() != original[index].NEVRA() || decoded[index].Size != original[index].Size {
			t.Errorf("package %d: got %+v, want %+v", index, decoded[index], original[index])
		}
	}
	if decoded[0].Epoch != nil {
		t.Error("absent epoch decoded as present")
	}
}

func TestMarshalDeterministic(t *testing.T) {
	first, err := Marshal(samplePackages())
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(samplePackages())
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestMarshalSortsMapKeys(t *testing.T) {
	// Core Deterministic Encoding sorts keys by encoded bytes, so
	// insertion order never reaches the output.
	forward, err := Marshal(map[string]int{"a": 1, "bb": 2, "c": 3})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	reverse, err := Marshal(map[string]int{"c": 3, "bb": 2, "a": 1})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(forward, reverse) {
		t.Errorf("map encoding depends on insertion order: %x != %x", forward, reverse)
	}
}

func TestJSONTagFallback(t *testing.T) {
	data, err := Marshal(samplePackages()[0])
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	diagnostic, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	for _, key := range []string{`"name"`, `"version"`, `"release"`, `"arch"`, `"size"`} {
		if !strings.Contains(diagnostic, key) {
			t.Errorf("diagnostic %s missing key %s", diagnostic, key)
		}
	}
	if strings.Contains(diagnostic, `"epoch"`) {
		t.Errorf("omitempty epoch was encoded: %s", diagnostic)
	}
}

func TestUnmarshalRejectsDuplicateKeys(t *testing.T) {
	// {"backend": "rpmdb", "backend": "native"}
	data := []byte{
		0xa2,
		0x67, 'b', 'a', 'c', 'k', 'e', 'n', 'd', 0x65, 'r', 'p', 'm', 'd', 'b',
		0x67, 'b', 'a', 'c', 'k', 'e', 'n', 'd', 0x66, 'n', 'a', 't', 'i', 'v', 'e',
	}
	var record snapshotRecord
	if err := Unmarshal(data, &record); err == nil {
		t.Errorf("duplicate key accepted, decoded %+v", record)
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	data, err := Marshal(map[string]any{"backend": "rpmdb", "count": 3, "future": true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var record snapshotRecord
	if err := Unmarshal(data, &record); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if record.Backend != "rpmdb" || record.Count != 3 {
		t.Errorf("decoded %+v", record)
	}
}

func TestEncoderDecoderStream(t *testing.T) {
	records := []snapshotRecord{{Backend: "native", Count: 1}, {Backend: "rpmdb"}}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for index, want := range records {
		var got snapshotRecord
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode %d: %v", index, err)
		}
		if got != want {
			t.Errorf("record %d: got %+v, want %+v", index, got, want)
		}
	}
}

func TestDecodeAnyUsesStringMaps(t *testing.T) {
	data, err := Marshal(map[string]any{"name": "rpm"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var value any
	if err := Unmarshal(data, &value); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := value.(map[string]any); !ok {
		t.Errorf("decoded %T, want map[string]any", value)
	}
}
