// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package native

import (
	"fmt"

	"github.com/bureau-foundation/rpmlib/lib/rpm"
)

// Name returns the package name (NAME tag).
func (h *Header) Name() (string, error) {
	return h.stringTag(rpm.TagName)
}

// Description returns the package description (DESCRIPTION tag).
func (h *Header) Description() (string, error) {
	return h.stringTag(rpm.TagDescription)
}

func (h *Header) stringTag(tag rpm.Tag) (string, error) {
	data, err := h.Get(tag)
	if err != nil {
		return "", err
	}
	value, ok := data.AsString()
	if !ok {
		return "", fmt.Errorf("rpm: header has no string %s tag (type %s)", tag, data.Type)
	}
	return value, nil
}
