// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpm

import "testing"

func TestParseTag(t *testing.T) {
	tests := []struct {
		input string
		want  Tag
	}{
		{"NAME", TagName},
		{"name", TagName},
		{"RPMTAG_DESCRIPTION", TagDescription},
		{" sourcerpm ", TagSourceRPM},
		{"1022", TagArch},
		{"99999", Tag(99999)},
	}
	for _, test := range tests {
		got, err := ParseTag(test.input)
		if err != nil {
			t.Errorf("ParseTag(%q) error: %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseTag(%q) = %d, want %d", test.input, got, test.want)
		}
	}
}

func TestParseTag_Invalid(t *testing.T) {
	for _, input := range []string{"", "RPMTAG_", "not-a-tag", "-5"} {
		if _, err := ParseTag(input); err == nil {
			t.Errorf("ParseTag(%q) succeeded, want error", input)
		}
	}
}

func TestTagString(t *testing.T) {
	if TagVersion.String() != "VERSION" {
		t.Errorf("TagVersion.String() = %q", TagVersion.String())
	}
	if Tag(4242).String() != "4242" {
		t.Errorf("unnamed tag String() = %q", Tag(4242).String())
	}
}

func TestTagTypeClassification(t *testing.T) {
	for _, tagType := range []TagType{TypeChar, TypeInt8, TypeInt16, TypeInt32, TypeInt64} {
		if !tagType.IsInteger() || tagType.IsString() {
			t.Errorf("%s misclassified", tagType)
		}
	}
	for _, tagType := range []TagType{TypeString, TypeStringArray, TypeI18NString} {
		if tagType.IsInteger() || !tagType.IsString() {
			t.Errorf("%s misclassified", tagType)
		}
	}
	for _, tagType := range []TagType{TypeNull, TypeBin} {
		if tagType.IsInteger() || tagType.IsString() {
			t.Errorf("%s misclassified", tagType)
		}
	}
	if TagType(77).String() != "unknown(77)" {
		t.Errorf("unexpected String() for unknown type: %q", TagType(77).String())
	}
}
