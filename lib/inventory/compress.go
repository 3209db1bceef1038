// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how a snapshot payload is stored. The names
// appear in file headers; changing them breaks existing files.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionLZ4
	CompressionZstd
)

// DefaultCompression is used when none is configured. Package lists
// are text-heavy and compress well with zstd.
const DefaultCompression = CompressionZstd

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// ParseCompression parses a compression name.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("inventory: unknown compression %q (want none, lz4, or zstd)", name)
	}
}

// errIncompressible is returned by the compressors when the output
// would not be smaller than the input.
var errIncompressible = errors.New("inventory: data is incompressible")

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("inventory: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxPayloadSize))
	if err != nil {
		panic("inventory: zstd decoder initialization failed: " + err.Error())
	}
}

// compress returns the stored form of data and the compression that
// was actually applied, which is CompressionNone when the requested
// algorithm would not shrink the data.
func compress(data []byte, compression Compression) ([]byte, Compression, error) {
	var (
		compressed []byte
		err        error
	)
	switch compression {
	case CompressionNone:
		return data, CompressionNone, nil
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZstd:
		compressed, err = compressZstd(data)
	default:
		return nil, 0, fmt.Errorf("inventory: unsupported compression %s", compression)
	}
	if errors.Is(err, errIncompressible) {
		return data, CompressionNone, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return compressed, compression, nil
}

// decompress inverts compress. size is the uncompressed length from
// the file header and is verified exactly.
func decompress(stored []byte, compression Compression, size int) ([]byte, error) {
	switch compression {
	case CompressionNone:
		if len(stored) != size {
			return nil, fmt.Errorf("inventory: payload is %d bytes, header says %d", len(stored), size)
		}
		return stored, nil
	case CompressionLZ4:
		return decompressLZ4(stored, size)
	case CompressionZstd:
		return decompressZstd(stored, size)
	default:
		return nil, fmt.Errorf("inventory: unsupported compression %s", compression)
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("inventory: lz4 compress: %w", err)
	}
	// CompressBlock returns 0 for incompressible input.
	if written == 0 || written >= len(data) {
		return nil, errIncompressible
	}
	return destination[:written], nil
}

func decompressLZ4(compressed []byte, size int) ([]byte, error) {
	destination := make([]byte, size)
	read, err := lz4.UncompressBlock(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("inventory: lz4 decompress: %w", err)
	}
	if read != size {
		return nil, fmt.Errorf("inventory: lz4 decompress: got %d bytes, expected %d", read, size)
	}
	return destination, nil
}

func compressZstd(data []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, errIncompressible
	}
	return compressed, nil
}

func decompressZstd(compressed []byte, size int) ([]byte, error) {
	destination, err := zstdDecoder.DecodeAll(compressed, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("inventory: zstd decompress: %w", err)
	}
	if len(destination) != size {
		return nil, fmt.Errorf("inventory: zstd decompress: got %d bytes, expected %d", len(destination), size)
	}
	return destination, nil
}
