// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package primitives implements the leaf layer of the core: canonical
// encoding, domain-separated hashing, binary Merkle trees, and the
// Ed25519 / BLS12-381 / EC-VRF / AEAD / HKDF cryptographic primitives
// every higher component builds on. Nothing in this package reads a
// clock, touches the network, or retries — every function here is
// a pure transform or returns a boolean/error.
package primitives

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// Encoder builds a canonical byte string with fixed field order and
// deterministic integer widths. Two Encoders fed the same calls in the
// same order always produce byte-identical output; this is the single
// property every hash and signature in the system depends on.
type Encoder struct {
	buf []byte
	err error
}

// NewEncoder returns an Encoder with a pre-sized backing buffer.
func NewEncoder(sizeHint int) *Encoder {
	return &Encoder{buf: make([]byte, 0, sizeHint)}
}

// Err returns the first error encountered, if any.
func (e *Encoder) Err() error { return e.err }

// Bytes returns the accumulated canonical encoding.
func (e *Encoder) Bytes() []byte { return e.buf }

// U8 appends a single byte.
func (e *Encoder) U8(v uint8) *Encoder {
	if e.err != nil {
		return e
	}
	e.buf = append(e.buf, v)
	return e
}

// U64 appends a big-endian uint64.
func (e *Encoder) U64(v uint64) *Encoder {
	if e.err != nil {
		return e
	}
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	e.buf = append(e.buf, tmp[:]...)
	return e
}

// U32 appends a big-endian uint32, used for length prefixes.
func (e *Encoder) U32(v uint32) *Encoder {
	if e.err != nil {
		return e
	}
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	e.buf = append(e.buf, tmp[:]...)
	return e
}

// Fixed appends raw bytes with no length prefix; callers must know the
// width at decode time (header hashes, signatures, fixed-size roots).
func (e *Encoder) Fixed(b []byte) *Encoder {
	if e.err != nil {
		return e
	}
	e.buf = append(e.buf, b...)
	return e
}

// Fixed32 appends exactly 32 bytes.
func (e *Encoder) Fixed32(b [32]byte) *Encoder {
	return e.Fixed(b[:])
}

// Var appends a u32 length prefix followed by the bytes.
func (e *Encoder) Var(b []byte) *Encoder {
	if e.err != nil {
		return e
	}
	e.U32(uint32(len(b)))
	return e.Fixed(b)
}

// SortedMap appends a length-prefixed, key-sorted sequence of
// (key, value) byte pairs, each length-prefixed in turn. §3.1 requires
// maps to serialise deterministically regardless of insertion order.
func (e *Encoder) SortedMap(m map[string][]byte) *Encoder {
	if e.err != nil {
		return e
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	e.U32(uint32(len(keys)))
	for _, k := range keys {
		e.Var([]byte(k))
		e.Var(m[k])
	}
	return e
}

// Decoder reads a canonical encoding produced by Encoder in the same
// field order used to write it.
type Decoder struct {
	buf []byte
	pos int
	err error
}

// NewDecoder wraps buf for sequential reads.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Err returns the first decode error, if any.
func (d *Decoder) Err() error { return d.err }

// Remaining returns the unread suffix.
func (d *Decoder) Remaining() []byte { return d.buf[d.pos:] }

func (d *Decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// U8 reads a single byte.
func (d *Decoder) U8() uint8 {
	if d.err != nil {
		return 0
	}
	if d.pos+1 > len(d.buf) {
		d.fail(fmt.Errorf("primitives: decode u8: short buffer"))
		return 0
	}
	v := d.buf[d.pos]
	d.pos++
	return v
}

// U64 reads a big-endian uint64.
func (d *Decoder) U64() uint64 {
	if d.err != nil {
		return 0
	}
	if d.pos+8 > len(d.buf) {
		d.fail(fmt.Errorf("primitives: decode u64: short buffer"))
		return 0
	}
	v := binary.BigEndian.Uint64(d.buf[d.pos : d.pos+8])
	d.pos += 8
	return v
}

// U32 reads a big-endian uint32.
func (d *Decoder) U32() uint32 {
	if d.err != nil {
		return 0
	}
	if d.pos+4 > len(d.buf) {
		d.fail(fmt.Errorf("primitives: decode u32: short buffer"))
		return 0
	}
	v := binary.BigEndian.Uint32(d.buf[d.pos : d.pos+4])
	d.pos += 4
	return v
}

// Fixed reads exactly n raw bytes.
func (d *Decoder) Fixed(n int) []byte {
	if d.err != nil {
		return nil
	}
	if d.pos+n > len(d.buf) {
		d.fail(fmt.Errorf("primitives: decode fixed(%d): short buffer", n))
		return nil
	}
	v := d.buf[d.pos : d.pos+n]
	d.pos += n
	return v
}

// Fixed32 reads exactly 32 bytes into an array.
func (d *Decoder) Fixed32() [32]byte {
	var out [32]byte
	copy(out[:], d.Fixed(32))
	return out
}

// Var reads a u32 length prefix followed by that many bytes.
func (d *Decoder) Var() []byte {
	if d.err != nil {
		return nil
	}
	n := d.U32()
	if d.err != nil {
		return nil
	}
	return d.Fixed(int(n))
}

// SortedMap reads back a map written by Encoder.SortedMap.
func (d *Decoder) SortedMap() map[string][]byte {
	if d.err != nil {
		return nil
	}
	n := d.U32()
	out := make(map[string][]byte, n)
	for i := uint32(0); i < n; i++ {
		k := d.Var()
		v := d.Var()
		if d.err != nil {
			return nil
		}
		out[string(k)] = v
	}
	return out
}
