// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package main

import "github.com/bureau-foundation/rpmlib/lib/secret"

// keyIDs holds a signing key id in locked memory for the length of a
// sign run. librpm consumes one heap copy per package.
type keyIDs struct {
	buffer *secret.Buffer
}

func loadKeyID(path string) (*keyIDs, error) {
	buffer, err := secret.ReadFromPath(path)
	if err != nil {
		return nil, err
	}
	return &keyIDs{buffer: buffer}, nil
}

// next returns a copy of the key id. Sign and DeleteSignature zero it.
func (k *keyIDs) next() *secret.Value[secret.Bytes] {
	copied := make(secret.Bytes, k.buffer.Len())
	copy(copied, k.buffer.Bytes())
	return secret.NewValue(copied)
}

func (k *keyIDs) Close() error {
	return k.buffer.Close()
}
