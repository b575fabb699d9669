// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ibft implements the three-phase IBFT consensus state machine
// (§4.3): VRF leader selection, the PRE-PREPARE/PREPARE/COMMIT pipeline,
// round-change timeouts, pipelining across heights, and equivocation
// evidence. The state machine itself is synchronous given its inputs —
// all suspension (network I/O, timers) is the caller's Driver's job,
// per §5 and §9's "no await sprinkled through consensus" design note.
package ibft

import (
	"github.com/luxfi/bftcore/header"
	"github.com/luxfi/bftcore/primitives"
)

// MessageKind are the exact wire kind codes of §6.3.
type MessageKind uint16

const (
	KindPrePrepare  MessageKind = 0x01
	KindPrepare     MessageKind = 0x02
	KindCommit      MessageKind = 0x03
	KindRoundChange MessageKind = 0x04
)

// PrePrepare carries the proposed header for (height, round) along
// with the proposer's VRF leader-eligibility proof, so receivers can
// check leadership without a side channel (§4.3).
type PrePrepare struct {
	Height uint64
	Round  uint64
	Header header.Header
	Claim  LeaderClaim
}

// Prepare attests agreement with a header hash for (height, round).
type Prepare struct {
	Height     uint64
	Round      uint64
	HeaderHash [32]byte
}

// CommitMsg is a single validator's COMMIT vote: its BLS signature
// over the header hash.
type CommitMsg struct {
	Height     uint64
	Round      uint64
	HeaderHash [32]byte
	Signature  []byte // compressed G1, 48 bytes
}

// RoundChange requests advancing to round+1 after a timeout.
type RoundChange struct {
	Height uint64
	Round  uint64
}

// Message is the envelope every inbound/outbound wire message carries:
// a kind tag, the signer's validator index, and the typed payload. The
// Ed25519 envelope signature (§6.3) is verified by the gossip layer
// before a Message ever reaches the engine — Signer here is already
// authenticated.
type Message struct {
	Kind   MessageKind
	Signer uint32
	PrePrepare  *PrePrepare
	Prepare     *Prepare
	Commit      *CommitMsg
	RoundChange *RoundChange
}

// Bitmap is a ⌈N/8⌉-byte selection of validator indices, bit 0 =
// index 0, per §3.5's canonical byte-sorted index-first encoding.
type Bitmap []byte

// NewBitmap allocates a zeroed bitmap sized for n validators.
func NewBitmap(n int) Bitmap {
	return make(Bitmap, (n+7)/8)
}

// Set marks index as selected.
func (b Bitmap) Set(index uint32) {
	byteIdx := index / 8
	if int(byteIdx) >= len(b) {
		return
	}
	b[byteIdx] |= 1 << (index % 8)
}

// IsSet reports whether index is selected.
func (b Bitmap) IsSet(index uint32) bool {
	byteIdx := index / 8
	if int(byteIdx) >= len(b) {
		return false
	}
	return b[byteIdx]&(1<<(index%8)) != 0
}

// Indices returns the selected validator indices in ascending order.
func (b Bitmap) Indices(n int) []uint32 {
	var out []uint32
	for i := 0; i < n; i++ {
		if b.IsSet(uint32(i)) {
			out = append(out, uint32(i))
		}
	}
	return out
}

// PopCount returns the number of selected indices.
func (b Bitmap) PopCount() int {
	count := 0
	for _, byt := range b {
		for byt != 0 {
			count += int(byt & 1)
			byt >>= 1
		}
	}
	return count
}

// Commit is the finality object of §3.5: an aggregate BLS signature
// over the header hash plus the bitmap of contributing signers.
type Commit struct {
	HeaderHash [32]byte
	Signature  []byte // compressed G1 aggregate, 48 bytes
	Bitmap     Bitmap
}

// Encode serialises a Commit in the canonical byte-sorted,
// index-first order §3.5 specifies.
func (c Commit) Encode() []byte {
	e := primitives.NewEncoder(32 + len(c.Signature) + len(c.Bitmap) + 8)
	e.Fixed32(c.HeaderHash)
	e.Var(c.Signature)
	e.Var(c.Bitmap)
	return e.Bytes()
}

// DecodeCommit parses a Commit from its canonical encoding.
func DecodeCommit(b []byte) (Commit, error) {
	d := primitives.NewDecoder(b)
	c := Commit{
		HeaderHash: d.Fixed32(),
		Signature:  d.Var(),
		Bitmap:     Bitmap(d.Var()),
	}
	if err := d.Err(); err != nil {
		return Commit{}, err
	}
	return c, nil
}
