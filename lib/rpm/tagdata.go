// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpm

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// TagData is the decoded value of one header tag. Exactly one payload
// is populated, selected by Type: integers for CHAR and INT*, strings
// for STRING, STRING_ARRAY and I18NSTRING, raw bytes for BIN. A tag
// that is absent from a header decodes as TypeNull.
//
// STRING and I18NSTRING are treated identically: librpm returns the
// already-localized string for the latter.
type TagData struct {
	Tag  Tag
	Type TagType

	integers []int64
	strings  []string
	binary   []byte
}

// NullData is the value of a tag the header does not carry.
func NullData(tag Tag) TagData {
	return TagData{Tag: tag, Type: TypeNull}
}

// IntegerData builds CHAR or INT* data. It panics if tagType is not an
// integer type.
func IntegerData(tag Tag, tagType TagType, values ...int64) TagData {
	if !tagType.IsInteger() {
		panic(fmt.Sprintf("rpm: IntegerData with non-integer type %s", tagType))
	}
	return TagData{Tag: tag, Type: tagType, integers: values}
}

// StringData builds STRING, STRING_ARRAY or I18NSTRING data. It panics
// if tagType is not a string type.
func StringData(tag Tag, tagType TagType, values ...string) TagData {
	if !tagType.IsString() {
		panic(fmt.Sprintf("rpm: StringData with non-string type %s", tagType))
	}
	return TagData{Tag: tag, Type: tagType, strings: values}
}

// BinaryData builds BIN data.
func BinaryData(tag Tag, value []byte) TagData {
	return TagData{Tag: tag, Type: TypeBin, binary: value}
}

// IsNull reports whether the tag was absent.
func (d TagData) IsNull() bool {
	return d.Type == TypeNull
}

// Count returns the number of elements (bytes for BIN).
func (d TagData) Count() int {
	switch {
	case d.Type.IsInteger():
		return len(d.integers)
	case d.Type.IsString():
		return len(d.strings)
	case d.Type == TypeBin:
		return len(d.binary)
	default:
		return 0
	}
}

// AsChar returns the first element of CHAR data.
func (d TagData) AsChar() (byte, bool) {
	if d.Type != TypeChar || len(d.integers) == 0 {
		return 0, false
	}
	return byte(d.integers[0]), true
}

// AsInt returns the first element of any integer-typed data, widened
// to int64.
func (d TagData) AsInt() (int64, bool) {
	if !d.Type.IsInteger() || d.Type == TypeChar || len(d.integers) == 0 {
		return 0, false
	}
	return d.integers[0], true
}

// AsInts returns every element of integer-typed data.
func (d TagData) AsInts() ([]int64, bool) {
	if !d.Type.IsInteger() || d.Type == TypeChar {
		return nil, false
	}
	return d.integers, true
}

// AsString returns STRING or I18NSTRING data. STRING_ARRAY is not a
// string; use AsStrings.
func (d TagData) AsString() (string, bool) {
	if (d.Type != TypeString && d.Type != TypeI18NString) || len(d.strings) == 0 {
		return "", false
	}
	return d.strings[0], true
}

// AsStrings returns every string of any string-typed data.
func (d TagData) AsStrings() ([]string, bool) {
	if !d.Type.IsString() {
		return nil, false
	}
	return d.strings, true
}

// AsBytes returns BIN data.
func (d TagData) AsBytes() ([]byte, bool) {
	if d.Type != TypeBin {
		return nil, false
	}
	return d.binary, true
}

// String renders the value for display: integers in decimal, binary in
// hex, arrays comma-separated.
func (d TagData) String() string {
	switch {
	case d.Type == TypeNull:
		return "(none)"
	case d.Type == TypeChar:
		characters := make([]byte, len(d.integers))
		for index, value := range d.integers {
			characters[index] = byte(value)
		}
		return string(characters)
	case d.Type.IsInteger():
		parts := make([]string, len(d.integers))
		for index, value := range d.integers {
			parts[index] = strconv.FormatInt(value, 10)
		}
		return strings.Join(parts, ", ")
	case d.Type.IsString():
		return strings.Join(d.strings, ", ")
	case d.Type == TypeBin:
		return hex.EncodeToString(d.binary)
	default:
		return fmt.Sprintf("(%s)", d.Type)
	}
}
