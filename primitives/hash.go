// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package primitives

import (
	"crypto/sha256"

	"github.com/zeebo/blake3"
)

// Domain tags reserved by §3.2. Every hash fed into a Merkle tree,
// header, or record carries one of these as its first byte so that a
// leaf hash can never be confused with an internal node or a header
// hash of the same bit pattern.
const (
	DomainMerkleLeaf  byte = 0x00
	DomainMerkleNode  byte = 0x01
	DomainHeader      byte = 0x10
	DomainBPCIFrame   byte = 0x11
	DomainPoHTick     byte = 0x12
	DomainReceipt     byte = 0x13
	DomainDAShardHead byte = 0x14
)

// HashFunc selects the underlying 256-bit hash backing H. It is fixed
// once per deployment; mixing backends across a running network would
// silently fork header hashes.
type HashFunc uint8

const (
	// HashBlake3 uses 256-bit BLAKE3, the teacher's own default hash
	// (github.com/zeebo/blake3 is an indirect teacher dependency).
	HashBlake3 HashFunc = iota
	// HashSHA256 uses stdlib crypto/sha256, offered as the spec's
	// alternate deployment choice.
	HashSHA256
)

// Hasher wraps the deployment's chosen H with domain separation.
type Hasher struct {
	fn HashFunc
}

// NewHasher returns a Hasher bound to fn for the lifetime of the
// deployment.
func NewHasher(fn HashFunc) *Hasher {
	return &Hasher{fn: fn}
}

// Sum computes H(tag || data...), returning a 32-byte digest.
func (h *Hasher) Sum(tag byte, data ...[]byte) [32]byte {
	switch h.fn {
	case HashSHA256:
		s := sha256.New()
		s.Write([]byte{tag})
		for _, d := range data {
			s.Write(d)
		}
		var out [32]byte
		copy(out[:], s.Sum(nil))
		return out
	default:
		d := blake3.New()
		d.Write([]byte{tag})
		for _, b := range data {
			d.Write(b)
		}
		var out [32]byte
		copy(out[:], d.Sum(nil))
		return out
	}
}

// MerkleLeaf computes leaf(d) = H(0x00 || d).
func (h *Hasher) MerkleLeaf(d []byte) [32]byte {
	return h.Sum(DomainMerkleLeaf, d)
}

// MerkleNode computes node(L,R) = H(0x01 || L || R).
func (h *Hasher) MerkleNode(l, r [32]byte) [32]byte {
	return h.Sum(DomainMerkleNode, l[:], r[:])
}
