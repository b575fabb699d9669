// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lightclient implements the pure-functional header verifier
// of §4.6 (C6): linkage, validator-set binding, aggregate-signature
// verification, PoH recomputation, DA sampling, inclusion-list
// enforcement, and external-anchor preference, composed into a single
// verify_bundle decision. Nothing here touches the network, a clock,
// or a mutable store beyond the bounded caches this package owns
// itself — every check is a boolean over its inputs, matching §4.6's
// "all six checks are independent and order-invariant except linkage".
package lightclient

import (
	"github.com/luxfi/bftcore/da"
	"github.com/luxfi/bftcore/header"
	"github.com/luxfi/bftcore/ibft"
	"github.com/luxfi/bftcore/poh"
	"github.com/luxfi/bftcore/primitives"
)

// FailureKind enumerates verify_bundle's possible rejections. The zero
// value, Valid, means the bundle passed every check.
type FailureKind uint8

const (
	Valid FailureKind = iota
	LinkFail
	SetFail
	SigFail
	PoHFail
	DAFail
	InclusionFail
	AnchorFail
)

func (k FailureKind) String() string {
	switch k {
	case Valid:
		return "valid"
	case LinkFail:
		return "link_fail"
	case SetFail:
		return "set_fail"
	case SigFail:
		return "sig_fail"
	case PoHFail:
		return "poh_fail"
	case DAFail:
		return "da_fail"
	case InclusionFail:
		return "inclusion_fail"
	case AnchorFail:
		return "anchor_fail"
	default:
		return "unknown"
	}
}

// PoHWitness carries what the verifier needs to redo the PoH check
// (§4.1 step 4) without re-running the proposer's admission pipeline:
// the leader's VRF claim for the header's round and the admitted tick
// entries the proposer included.
type PoHWitness struct {
	ProposerVRFKey [32]byte
	SeedProof      []byte
	Entries        []poh.Entry
}

// DASampleState is sample_state for a single header: the shard
// openings a validator's sampler collected against header.DARoot, how
// many of the s draws failed, and the configured shortfall threshold
// t (§4.5/§4.6 step 5).
type DASampleState struct {
	Openings  []da.Opening
	Failures  int
	Threshold int
}

// Bundle is everything verify_bundle needs: the header under test,
// its commit, the header it links to, the validator-set directory,
// the PoH witness, the DA sample state, and the inclusion/anchor
// inputs threaded through InclusionState and AnchorState.
type Bundle struct {
	Header     header.Header
	Commit     ibft.Commit
	PrevHeader header.Header
	Directory  *header.Directory
	PoH        PoHWitness
	DA         DASampleState
	Inclusion  InclusionState
	Anchor     AnchorState
}

// VerifyBundle runs the seven checks of §4.6 in the gated order the
// spec requires: linkage first (it alone gates the rest), then the
// remaining six, each independent and order-invariant among
// themselves. The first failing check's kind is returned.
func VerifyBundle(hasher *primitives.Hasher, b Bundle) FailureKind {
	if b.Header.Height > 0 && !header.LinksTo(hasher, b.Header, b.PrevHeader) {
		return LinkFail
	}

	activeRoot := b.Directory.ActiveRoot(b.Header.Height)
	if b.Header.ValidatorSetHash != activeRoot {
		return SetFail
	}

	if !verifyCommit(hasher, b.Directory.ActiveSet(), b.Header, b.Commit) {
		return SigFail
	}

	if !poh.VerifyBundle(hasher, b.PoH.ProposerVRFKey, b.Header.Height, b.PrevHeader.PoHRoot, b.PoH.SeedProof, b.PoH.Entries, b.Header.PoHRoot) {
		return PoHFail
	}

	if !verifyDA(hasher, b.Header.DARoot, b.DA) {
		return DAFail
	}

	if !b.Inclusion.Satisfied(b.Header.Height, b.Header.ReceiptsRoot, hasher) {
		return InclusionFail
	}

	if !b.Anchor.Accepts(b.Header.Height, b.Header.Hash(hasher)) {
		return AnchorFail
	}

	return Valid
}

// VerifyChainLinkage runs the first three of verify_bundle's seven
// checks — linkage, validator-set binding, and aggregate-signature
// verification — against stored chain state alone, without the PoH,
// DA, inclusion, or anchor witnesses a full verify_bundle call needs.
// cmd/node's `verify --last N` uses this: a replayed node only
// persists headers, commits, and validator roots (§6.5), not the
// per-height PoH/DA/inclusion/anchor witnesses a live validator
// observed in real time.
func VerifyChainLinkage(hasher *primitives.Hasher, h header.Header, commit ibft.Commit, prev header.Header, dir *header.Directory) FailureKind {
	if h.Height > 0 && !header.LinksTo(hasher, h, prev) {
		return LinkFail
	}
	if h.ValidatorSetHash != dir.ActiveRoot(h.Height) {
		return SetFail
	}
	if !verifyCommit(hasher, dir.ActiveSet(), h, commit) {
		return SigFail
	}
	return Valid
}

// verifyCommit implements step 3: parse the bitmap, require |S| >=
// quorum, aggregate the selected public keys, and fast-aggregate-verify
// the commit signature against the header hash.
func verifyCommit(hasher *primitives.Hasher, set header.Set, h header.Header, c ibft.Commit) bool {
	indices := c.Bitmap.Indices(len(set.Entries))
	if len(indices) < set.QuorumSize() {
		return false
	}
	headerHash := h.Hash(hasher)
	if c.HeaderHash != headerHash {
		return false
	}
	pubkeys := make([][]byte, 0, len(indices))
	for _, idx := range indices {
		entry, ok := set.ByIndex(idx)
		if !ok {
			return false
		}
		pubkeys = append(pubkeys, entry.BLSPublicKey)
	}
	return primitives.BLSFastAggregateVerify(pubkeys, headerHash[:], c.Signature)
}

// verifyDA implements step 5: every collected opening must verify
// against da_root, and the number of failed samples must stay under
// the configured threshold t.
func verifyDA(hasher *primitives.Hasher, daRoot [32]byte, state DASampleState) bool {
	if state.Threshold > 0 && state.Failures >= state.Threshold {
		return false
	}
	for _, o := range state.Openings {
		if !o.Verify(hasher, daRoot) {
			return false
		}
	}
	return true
}
