// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lightclient

import (
	"crypto/ed25519"

	"github.com/luxfi/bftcore/internal/utils/set"
	"github.com/luxfi/bftcore/primitives"
)

// Obligation is the pair (BPCI-frame hash, pending decision) of §3.9:
// a frame observed in gossip by height ObservedHeight that the
// proposer of ObservedHeight+K must either include or reject.
type Obligation struct {
	FrameHash      [32]byte
	ObservedHeight uint64
}

// RejectProof is a proposer-signed statement declining an obligation,
// per §4.6's "a signed statement from the proposer citing a policy
// predicate evaluation against the referenced frame". The predicate
// itself is out of this core's scope (§9 Open Question); only the
// signature over (frame, height, reason) is checked here.
type RejectProof struct {
	ProposerKey ed25519.PublicKey
	Reason      []byte // opaque policy predicate result, not interpreted here
	Signature   []byte
}

func rejectProofMessage(frameHash [32]byte, height uint64, reason []byte) []byte {
	e := primitives.NewEncoder(48 + len(reason))
	e.Fixed32(frameHash)
	e.U64(height)
	e.Var(reason)
	return e.Bytes()
}

// Verify checks p's signature over (frameHash, height, p.Reason).
func (p RejectProof) Verify(frameHash [32]byte, height uint64) bool {
	if len(p.ProposerKey) != ed25519.PublicKeySize {
		return false
	}
	return primitives.Ed25519Verify(p.ProposerKey, rejectProofMessage(frameHash, height, p.Reason), p.Signature)
}

// Resolution is how a single obligation was settled at the header
// under test: either it was included (an inclusion-root membership
// proof) or rejected (a RejectProof), never both.
type Resolution struct {
	Obligation Obligation
	Included   *primitives.Proof
	Rejected   *RejectProof
}

// InclusionState is everything VerifyBundle needs for §4.6 step 6:
// the due obligations (ObservedHeight+K <= header.Height) and how each
// was resolved in the header under test.
type InclusionState struct {
	K           uint64
	Resolutions []Resolution
}

// Satisfied reports whether every due obligation in s resolves
// correctly against receiptsRoot, the header's inclusion-root
// (§9's Open Question resolution: receipts_root doubles as the
// obligation root since an included frame becomes a receipt; see
// DESIGN.md).
func (s InclusionState) Satisfied(height uint64, receiptsRoot [32]byte, hasher *primitives.Hasher) bool {
	for _, r := range s.Resolutions {
		if r.Obligation.ObservedHeight+s.K > height {
			continue // not yet due
		}
		switch {
		case r.Included != nil:
			if !hasher.MerkleVerify(receiptsRoot, r.Obligation.FrameHash[:], *r.Included) {
				return false
			}
		case r.Rejected != nil:
			if !r.Rejected.Verify(r.Obligation.FrameHash, height) {
				return false
			}
		default:
			return false // due and unresolved
		}
	}
	return true
}

// Cache is the bounded inclusion-list cache G(h) of §4.6: obligations
// observed by each height, retained until they age out past the
// configured horizon. A single designated writer calls Observe; GC
// runs from the same writer per §5's "single designated writer task"
// mutation rule.
type Cache struct {
	byHeight map[uint64][]Obligation
}

// NewCache returns an empty inclusion-list cache.
func NewCache() *Cache {
	return &Cache{byHeight: make(map[uint64][]Obligation)}
}

// Observe records an obligation as seen at height.
func (c *Cache) Observe(height uint64, frameHash [32]byte) {
	c.byHeight[height] = append(c.byHeight[height], Obligation{FrameHash: frameHash, ObservedHeight: height})
}

// Obligations returns the obligations observed at height.
func (c *Cache) Obligations(height uint64) []Obligation {
	return append([]Obligation(nil), c.byHeight[height]...)
}

// Heights returns the set of heights currently holding cached
// obligations, for callers (e.g. a health reporter) that need the
// cache's live footprint without copying every bucket.
func (c *Cache) Heights() set.Set[uint64] {
	heights := set.NewSet[uint64](len(c.byHeight))
	for h := range c.byHeight {
		heights.Add(h)
	}
	return heights
}

// GC discards bucket entries at or below height-K-epsilon, matching
// §5's "pending-obligation cache (per-height bucket with GC at height
// h-K-epsilon)". Callers pass the already-computed cutoff height.
func (c *Cache) GC(cutoff uint64) {
	for h := range c.byHeight {
		if h <= cutoff {
			delete(c.byHeight, h)
		}
	}
}
