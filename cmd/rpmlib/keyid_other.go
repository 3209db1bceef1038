// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package main

import (
	"errors"

	"github.com/bureau-foundation/rpmlib/lib/secret"
)

type keyIDs struct{}

func loadKeyID(path string) (*keyIDs, error) {
	return nil, errors.New("--key-id-file needs locked memory, which is only implemented on linux")
}

func (k *keyIDs) next() *secret.Value[secret.Bytes] { return nil }

func (k *keyIDs) Close() error { return nil }
