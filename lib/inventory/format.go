// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bureau-foundation/rpmlib/lib/codec"
)

const (
	magic         = "rpminv"
	formatVersion = 1

	// maxHeaderLine bounds the header line read before the payload.
	maxHeaderLine = 256

	// maxPayloadSize bounds the uncompressed payload.
	maxPayloadSize = 256 << 20
)

var (
	// ErrBadMagic is returned when the input is not a snapshot file or
	// was written by an unsupported format version.
	ErrBadMagic = errors.New("inventory: not a snapshot file")

	// ErrDigestMismatch is returned when the payload does not match the
	// digest recorded in the header.
	ErrDigestMismatch = errors.New("inventory: payload digest mismatch")
)

// header is the parsed first line of a snapshot file.
type header struct {
	compression Compression
	size        int
	digest      Digest
}

func (h header) String() string {
	return fmt.Sprintf("%s %d %s %d %s\n", magic, formatVersion, h.compression, h.size, h.digest)
}

func parseHeader(line string) (header, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 || fields[0] != magic {
		return header{}, ErrBadMagic
	}
	if fields[1] != strconv.Itoa(formatVersion) {
		return header{}, fmt.Errorf("%w: format version %s", ErrBadMagic, fields[1])
	}

	compression, err := ParseCompression(fields[2])
	if err != nil {
		return header{}, err
	}
	size, err := strconv.Atoi(fields[3])
	if err != nil || size < 0 || size > maxPayloadSize {
		return header{}, fmt.Errorf("inventory: invalid payload size %q", fields[3])
	}
	digest, err := ParseDigest(fields[4])
	if err != nil {
		return header{}, err
	}
	return header{compression: compression, size: size, digest: digest}, nil
}

// Write encodes snapshot to w. The requested compression is downgraded
// to none when it would not shrink the payload. It returns the header
// digest of the payload.
func Write(w io.Writer, snapshot *Snapshot, compression Compression) (Digest, error) {
	payload, err := codec.Marshal(snapshot)
	if err != nil {
		return Digest{}, fmt.Errorf("inventory: encoding snapshot: %w", err)
	}
	if len(payload) > maxPayloadSize {
		return Digest{}, fmt.Errorf("inventory: snapshot payload is %d bytes, limit %d", len(payload), maxPayloadSize)
	}

	stored, applied, err := compress(payload, compression)
	if err != nil {
		return Digest{}, err
	}

	fileHeader := header{compression: applied, size: len(payload), digest: keyedHash(payloadDomainKey, payload)}
	if _, err := io.WriteString(w, fileHeader.String()); err != nil {
		return Digest{}, fmt.Errorf("inventory: writing header: %w", err)
	}
	if _, err := w.Write(stored); err != nil {
		return Digest{}, fmt.Errorf("inventory: writing payload: %w", err)
	}
	return fileHeader.digest, nil
}

// Read decodes a snapshot written by Write, verifying the payload
// digest before decoding.
func Read(r io.Reader) (*Snapshot, error) {
	payload, err := ReadPayload(r)
	if err != nil {
		return nil, err
	}

	var snapshot Snapshot
	if err := codec.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("inventory: decoding snapshot: %w", err)
	}
	return &snapshot, nil
}

// ReadPayload returns the verified, decompressed CBOR payload of a
// snapshot file without decoding it.
func ReadPayload(r io.Reader) ([]byte, error) {
	reader := bufio.NewReaderSize(r, maxHeaderLine)
	line, err := reader.ReadSlice('\n')
	if err != nil {
		if errors.Is(err, bufio.ErrBufferFull) || errors.Is(err, io.EOF) {
			return nil, ErrBadMagic
		}
		return nil, fmt.Errorf("inventory: reading header: %w", err)
	}
	fileHeader, err := parseHeader(string(line))
	if err != nil {
		return nil, err
	}

	stored, err := io.ReadAll(io.LimitReader(reader, maxPayloadSize+1))
	if err != nil {
		return nil, fmt.Errorf("inventory: reading payload: %w", err)
	}
	if len(stored) > maxPayloadSize {
		return nil, fmt.Errorf("inventory: stored payload exceeds %d bytes", maxPayloadSize)
	}

	payload, err := decompress(stored, fileHeader.compression, fileHeader.size)
	if err != nil {
		return nil, err
	}
	if keyedHash(payloadDomainKey, payload) != fileHeader.digest {
		return nil, ErrDigestMismatch
	}
	return payload, nil
}

// WriteFile writes snapshot to path atomically: the file is written
// under a temporary name in the same directory and renamed into place,
// replacing any existing file.
func WriteFile(path string, snapshot *Snapshot, compression Compression) (Digest, error) {
	return writeFile(path, snapshot, compression, true)
}

// CreateFile is WriteFile for a path that must not exist yet. The
// finished file is linked into place, so an existing snapshot is never
// replaced; that case fails with an error matching fs.ErrExist.
func CreateFile(path string, snapshot *Snapshot, compression Compression) (Digest, error) {
	return writeFile(path, snapshot, compression, false)
}

func writeFile(path string, snapshot *Snapshot, compression Compression, replace bool) (Digest, error) {
	directory := filepath.Dir(path)
	temporary, err := os.CreateTemp(directory, "."+filepath.Base(path)+".*")
	if err != nil {
		return Digest{}, fmt.Errorf("inventory: creating %s: %w", path, err)
	}
	defer os.Remove(temporary.Name())

	digest, err := Write(temporary, snapshot, compression)
	if err != nil {
		temporary.Close()
		return Digest{}, err
	}
	if err := temporary.Sync(); err != nil {
		temporary.Close()
		return Digest{}, fmt.Errorf("inventory: syncing %s: %w", path, err)
	}
	if err := temporary.Close(); err != nil {
		return Digest{}, fmt.Errorf("inventory: closing %s: %w", path, err)
	}

	if !replace {
		if err := os.Link(temporary.Name(), path); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return Digest{}, fmt.Errorf("inventory: %s: %w", path, fs.ErrExist)
			}
			return Digest{}, fmt.Errorf("inventory: linking into %s: %w", path, err)
		}
		return digest, nil
	}
	if err := os.Rename(temporary.Name(), path); err != nil {
		return Digest{}, fmt.Errorf("inventory: renaming into %s: %w", path, err)
	}
	return digest, nil
}

// ReadFile reads a snapshot from path.
func ReadFile(path string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("inventory: %w", err)
	}
	defer file.Close()

	snapshot, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snapshot, nil
}
