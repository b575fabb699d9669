// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package codec version-tags the canonical §3.1 encoding for anything
// persisted to storage/ or exported across a process boundary
// (evidence export, BPCI frame replay logs). It does not replace
// primitives.Encoder/Decoder — every record still serialises with the
// canonical encoder — it only wraps the result with a version prefix
// so storage/ can evolve record layouts without an on-disk migration
// tool, mirroring the teacher's codec package shape.
package codec

import (
	"encoding/binary"
	"fmt"
)

// Version identifies a wire/record layout revision.
type Version uint16

// CurrentVersion is the only version this build writes. Readers accept
// it and fail closed on anything else until a migration path exists.
const CurrentVersion Version = 0

// Wrap prepends version to payload, producing the bytes storage/
// persists or exports.
func Wrap(version Version, payload []byte) []byte {
	buf := make([]byte, 2+len(payload))
	binary.BigEndian.PutUint16(buf[:2], uint16(version))
	copy(buf[2:], payload)
	return buf
}

// Unwrap splits a Wrap-produced buffer back into its version and
// payload.
func Unwrap(buf []byte) (Version, []byte, error) {
	if len(buf) < 2 {
		return 0, nil, fmt.Errorf("codec: buffer shorter than version prefix")
	}
	v := Version(binary.BigEndian.Uint16(buf[:2]))
	return v, buf[2:], nil
}

// Encodable is any canonical-encoder record codec/storage persists.
type Encodable interface {
	Encode() []byte
}

// Decoder decodes a payload produced by an Encodable's Encode.
type Decoder[T any] func([]byte) (T, error)

// MarshalCurrent wraps v's canonical encoding at CurrentVersion.
func MarshalCurrent(v Encodable) []byte {
	return Wrap(CurrentVersion, v.Encode())
}

// Unmarshal unwraps buf and decodes its payload with decode, rejecting
// any version other than CurrentVersion.
func Unmarshal[T any](buf []byte, decode Decoder[T]) (T, error) {
	var zero T
	version, payload, err := Unwrap(buf)
	if err != nil {
		return zero, err
	}
	if version != CurrentVersion {
		return zero, fmt.Errorf("codec: unsupported version %d", version)
	}
	return decode(payload)
}
