// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpm

import (
	"fmt"
	"strconv"
	"strings"
)

// Tag identifies an entry in an RPM header. Values are fixed by
// rpmtag.h and shared with librpm.
type Tag int32

// Header tags. Only the tags this module reads are named.
const (
	TagHeaderI18NTable Tag = 100

	TagName            Tag = 1000
	TagVersion         Tag = 1001
	TagRelease         Tag = 1002
	TagEpoch           Tag = 1003
	TagSummary         Tag = 1004
	TagDescription     Tag = 1005
	TagBuildTime       Tag = 1006
	TagBuildHost       Tag = 1007
	TagInstallTime     Tag = 1008
	TagSize            Tag = 1009
	TagDistribution    Tag = 1010
	TagVendor          Tag = 1011
	TagLicense         Tag = 1014
	TagPackager        Tag = 1015
	TagGroup           Tag = 1016
	TagURL             Tag = 1020
	TagOS              Tag = 1021
	TagArch            Tag = 1022
	TagFileSizes       Tag = 1028
	TagFileModes       Tag = 1030
	TagFileDigests     Tag = 1035
	TagSourceRPM       Tag = 1044
	TagProvideName     Tag = 1047
	TagRequireName     Tag = 1049
	TagSigMD5          Tag = 261
	TagBaseNames       Tag = 1117
	TagDirNames        Tag = 1118
	TagLongSize        Tag = 5009
	TagModularityLabel Tag = 5096
)

var tagNames = map[Tag]string{
	TagHeaderI18NTable: "HEADERI18NTABLE",
	TagName:            "NAME",
	TagVersion:         "VERSION",
	TagRelease:         "RELEASE",
	TagEpoch:           "EPOCH",
	TagSummary:         "SUMMARY",
	TagDescription:     "DESCRIPTION",
	TagBuildTime:       "BUILDTIME",
	TagBuildHost:       "BUILDHOST",
	TagInstallTime:     "INSTALLTIME",
	TagSize:            "SIZE",
	TagDistribution:    "DISTRIBUTION",
	TagVendor:          "VENDOR",
	TagLicense:         "LICENSE",
	TagPackager:        "PACKAGER",
	TagGroup:           "GROUP",
	TagURL:             "URL",
	TagOS:              "OS",
	TagArch:            "ARCH",
	TagFileSizes:       "FILESIZES",
	TagFileModes:       "FILEMODES",
	TagFileDigests:     "FILEDIGESTS",
	TagSourceRPM:       "SOURCERPM",
	TagProvideName:     "PROVIDENAME",
	TagRequireName:     "REQUIRENAME",
	TagSigMD5:          "SIGMD5",
	TagBaseNames:       "BASENAMES",
	TagDirNames:        "DIRNAMES",
	TagLongSize:        "LONGSIZE",
	TagModularityLabel: "MODULARITYLABEL",
}

// String returns the rpmtag.h name without the RPMTAG_ prefix, or the
// decimal value for tags this package does not name.
func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return strconv.Itoa(int(t))
}

// ParseTag accepts a tag name in any case, with or without the RPMTAG_
// prefix, or a decimal tag number.
func ParseTag(text string) (Tag, error) {
	normalized := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(text)), "RPMTAG_")
	if normalized == "" {
		return 0, fmt.Errorf("rpm: empty tag name")
	}
	for tag, name := range tagNames {
		if name == normalized {
			return tag, nil
		}
	}
	if number, err := strconv.ParseInt(normalized, 10, 32); err == nil && number >= 0 {
		return Tag(number), nil
	}
	return 0, fmt.Errorf("rpm: unknown tag %q", text)
}

// TagType is the storage type of a tag's data (rpmTagType_e).
type TagType uint32

const (
	TypeNull        TagType = 0
	TypeChar        TagType = 1
	TypeInt8        TagType = 2
	TypeInt16       TagType = 3
	TypeInt32       TagType = 4
	TypeInt64       TagType = 5
	TypeString      TagType = 6
	TypeBin         TagType = 7
	TypeStringArray TagType = 8
	TypeI18NString  TagType = 9
)

func (t TagType) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeChar:
		return "char"
	case TypeInt8:
		return "int8"
	case TypeInt16:
		return "int16"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeString:
		return "string"
	case TypeBin:
		return "bin"
	case TypeStringArray:
		return "string_array"
	case TypeI18NString:
		return "i18nstring"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(t))
	}
}

// IsInteger reports whether the type stores integers (CHAR counts).
func (t TagType) IsInteger() bool {
	return t >= TypeChar && t <= TypeInt64
}

// IsString reports whether the type stores one or more strings.
func (t TagType) IsString() bool {
	return t == TypeString || t == TypeStringArray || t == TypeI18NString
}
