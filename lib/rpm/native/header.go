// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build cgo && rpmlib

package native

/*
#include <rpm/header.h>
#include <rpm/rpmtd.h>

static const void *rpmlib_header_td_data(rpmtd td) {
	return td->data;
}
*/
import "C"

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/rpmlib/lib/rpm"
)

// Header is a reference-counted librpm package header.
type Header struct {
	header C.Header
}

func (h *Header) release() {
	if h.header != nil {
		C.headerFree(h.header)
		h.header = nil
	}
}

// Get reads tag from the header. A tag the header does not carry
// yields null data, not an error.
func (h *Header) Get(tag rpm.Tag) (rpm.TagData, error) {
	if h.header == nil {
		return rpm.NullData(tag), errors.New("rpm: header used outside its callback")
	}

	td := C.rpmtdNew()
	defer C.rpmtdFree(td)

	if C.headerGet(h.header, C.rpmTagVal(tag), td, C.headerGetFlags(C.HEADERGET_MINMEM)) == 0 {
		return rpm.NullData(tag), nil
	}
	defer C.rpmtdFreeData(td)

	tagType := rpm.TagType(C.rpmtdType(td))
	switch {
	case tagType == rpm.TypeNull:
		return rpm.NullData(tag), nil

	case tagType == rpm.TypeChar:
		var values []int64
		C.rpmtdInit(td)
		for C.rpmtdNext(td) >= 0 {
			values = append(values, int64(byte(*C.rpmtdGetChar(td))))
		}
		return rpm.IntegerData(tag, tagType, values...), nil

	case tagType.IsInteger():
		var values []int64
		C.rpmtdInit(td)
		for C.rpmtdNext(td) >= 0 {
			values = append(values, int64(C.rpmtdGetNumber(td)))
		}
		return rpm.IntegerData(tag, tagType, values...), nil

	case tagType.IsString():
		var values []string
		C.rpmtdInit(td)
		for C.rpmtdNext(td) >= 0 {
			values = append(values, C.GoString(C.rpmtdGetString(td)))
		}
		return rpm.StringData(tag, tagType, values...), nil

	case tagType == rpm.TypeBin:
		count := C.rpmtdCount(td)
		return rpm.BinaryData(tag, C.GoBytes(C.rpmlib_header_td_data(td), C.int(count))), nil

	default:
		return rpm.NullData(tag), fmt.Errorf("rpm: tag %s has unsupported type %s", tag, tagType)
	}
}
