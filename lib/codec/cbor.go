// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the Core Deterministic encoder.
var encMode cbor.EncMode

// decMode accepts deterministic and non-deterministic input but
// rejects duplicate map keys. Unknown struct fields are ignored so
// older binaries can read newer snapshots.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
		// any-typed targets decode maps as map[string]any, which is
		// what the JSON and YAML printers expect.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		// A full rpmdb is a few thousand packages; leave headroom for
		// build hosts with very large installs.
		MaxArrayElements: 1 << 20,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Encoder is a CBOR stream encoder.
type Encoder = cbor.Encoder

// Decoder is a CBOR stream decoder.
type Decoder = cbor.Decoder

// NewEncoder returns a deterministic CBOR encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a CBOR decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for
// data. `rpmlib inspect --cbor` uses it to dump snapshot payloads.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
