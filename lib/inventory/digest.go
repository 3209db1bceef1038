// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 digest.
type Digest [32]byte

// domainKey is a BLAKE3 keyed-hash key. The bytes are the ASCII domain
// name, zero-padded. Changing a key invalidates every stored digest in
// its domain.
type domainKey [32]byte

var (
	packagesDomainKey = domainKey{
		'r', 'p', 'm', 'l', 'i', 'b', '.', 'i', 'n', 'v', 'e', 'n', 't', 'o', 'r', 'y',
		'.', 'p', 'a', 'c', 'k', 'a', 'g', 'e', 's', 0, 0, 0, 0, 0, 0, 0,
	}

	payloadDomainKey = domainKey{
		'r', 'p', 'm', 'l', 'i', 'b', '.', 'i', 'n', 'v', 'e', 'n', 't', 'o', 'r', 'y',
		'.', 'p', 'a', 'y', 'l', 'o', 'a', 'd', 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

func keyedHash(key domainKey, data []byte) Digest {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("inventory: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// String returns the lowercase hex form used in file headers and CLI
// output.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 12 hex characters, for tables.
func (d Digest) Short() string {
	return d.String()[:12]
}

// IsZero reports whether d is the zero digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// ParseDigest parses a 64-character hex string.
func ParseDigest(text string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return digest, fmt.Errorf("inventory: parsing digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("inventory: digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}
