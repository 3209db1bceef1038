// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package secret

import (
	"bytes"
	"fmt"
	"os"
)

// MaxReadSize bounds what ReadFromPath accepts. Key ids and
// passphrases are far smaller.
const MaxReadSize = 64 << 10

// ReadFromPath reads a secret from path, or from stdin when path is
// "-". Input is staged straight into a Buffer and surrounding
// whitespace is trimmed. An empty result is an error.
func ReadFromPath(path string) (*Buffer, error) {
	var raw *Buffer
	var err error
	if path == "-" {
		raw, err = NewFromReader(os.Stdin, MaxReadSize)
	} else {
		raw, err = readFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("secret: %s: %w", describePath(path), err)
	}

	trimmed := bytes.TrimSpace(raw.Bytes())
	if len(trimmed) == len(raw.Bytes()) {
		return raw, nil
	}
	defer raw.Close()
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("secret: %s is empty", describePath(path))
	}
	return NewFromBytes(trimmed)
}

func readFile(path string) (*Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return NewFromReader(file, MaxReadSize)
}

func describePath(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
