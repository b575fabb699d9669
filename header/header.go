// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package header implements the block header structure and its hash
// (§3.3), and the validator-set Merkle map with epoch-boundary
// rotation (§3.4, §4.2). It has no knowledge of consensus messages or
// networking — it is a pure data-model layer C3 builds on.
package header

import (
	"fmt"

	"github.com/luxfi/bftcore/primitives"
)

// Mode fixes the consensus algorithm a header was produced under.
// This core only ever emits IBFT headers; the field is retained from
// the original multi-mode substrate so a header's provenance is
// self-describing.
type Mode uint8

// ModeIBFT is the only mode this core produces (§3.3).
const ModeIBFT Mode = 2

// Version is the current header encoding version.
const Version uint8 = 1

// Header is the canonical block header, field order fixed by §3.3.
type Header struct {
	Version          uint8
	Height           uint64
	Previous         [32]byte // hash of the previous header
	PoHRoot          [32]byte
	ReceiptsRoot     [32]byte // zero if no receipts at this height
	DARoot           [32]byte
	OutboundRoot     [32]byte // cross-mesh outbound queue root
	ValidatorSetHash [32]byte
	Mode             uint8
	Round            uint64
}

// Genesis returns the height-0 header all chains start from: every
// root is zero and Previous is the zero hash, matching Invariant H1's
// base case (there is no header before genesis to link to).
func Genesis(validatorSetHash [32]byte) Header {
	return Header{
		Version:          Version,
		Height:           0,
		ValidatorSetHash: validatorSetHash,
		Mode:             uint8(ModeIBFT),
	}
}

// Encode serialises h through the canonical encoder in field order.
func (h Header) Encode() []byte {
	e := primitives.NewEncoder(1 + 8 + 32*6 + 1 + 8)
	e.U8(h.Version).
		U64(h.Height).
		Fixed32(h.Previous).
		Fixed32(h.PoHRoot).
		Fixed32(h.ReceiptsRoot).
		Fixed32(h.DARoot).
		Fixed32(h.OutboundRoot).
		Fixed32(h.ValidatorSetHash).
		U8(h.Mode).
		U64(h.Round)
	return e.Bytes()
}

// Decode parses a Header from its canonical encoding.
func Decode(b []byte) (Header, error) {
	d := primitives.NewDecoder(b)
	h := Header{
		Version:          d.U8(),
		Height:           d.U64(),
		Previous:         d.Fixed32(),
		PoHRoot:          d.Fixed32(),
		ReceiptsRoot:     d.Fixed32(),
		DARoot:           d.Fixed32(),
		OutboundRoot:     d.Fixed32(),
		ValidatorSetHash: d.Fixed32(),
		Mode:             d.U8(),
		Round:            d.U64(),
	}
	if err := d.Err(); err != nil {
		return Header{}, fmt.Errorf("header: decode: %w", err)
	}
	return h, nil
}

// Hash computes the domain-separated header hash, H(0x10 || enc(h)).
func (h Header) Hash(hasher *primitives.Hasher) [32]byte {
	return hasher.Sum(primitives.DomainHeader, h.Encode())
}

// LinksTo reports Invariant H1: h.Previous equals the hash of prev
// under hasher.
func LinksTo(hasher *primitives.Hasher, h, prev Header) bool {
	return h.Previous == prev.Hash(hasher)
}
