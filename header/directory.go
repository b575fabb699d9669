// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package header

import (
	"fmt"
	"sort"

	"github.com/luxfi/bftcore/internal/utils"
	"github.com/luxfi/bftcore/primitives"
)

// Metadata carries the non-key attributes every validator-set entry
// records at registration (§3.4): region/ASN for geographic diversity
// scoring, the client implementation tag for fork-monitoring, and
// whether a hardware-attestation proof was supplied.
type Metadata struct {
	Region           string
	ASN              string
	ClientImpl       string
	HardwareAttested bool
}

func (m Metadata) encode(e *primitives.Encoder) {
	e.Var([]byte(m.Region))
	e.Var([]byte(m.ASN))
	e.Var([]byte(m.ClientImpl))
	if m.HardwareAttested {
		e.U8(1)
	} else {
		e.U8(0)
	}
}

func decodeMetadata(d *primitives.Decoder) Metadata {
	region := string(d.Var())
	asn := string(d.Var())
	client := string(d.Var())
	attested := d.U8() == 1
	return Metadata{Region: region, ASN: asn, ClientImpl: client, HardwareAttested: attested}
}

// Entry is one index -> (public-key, metadata) binding in the
// validator-set Merkle map.
type Entry struct {
	Index        uint32
	BLSPublicKey []byte   // compressed G2, 96 bytes (§3.5)
	VRFPublicKey [32]byte // EC-VRF public key (§4.3 leader selection)
	Meta         Metadata
}

// encodeLeaf produces the canonical leaf bytes hashed into the set's
// Merkle tree: index || blskey || vrfkey || metadata.
func (e Entry) encodeLeaf() []byte {
	enc := primitives.NewEncoder(128)
	enc.U32(e.Index)
	enc.Var(e.BLSPublicKey)
	enc.Fixed32(e.VRFPublicKey)
	e.Meta.encode(enc)
	return enc.Bytes()
}

// Set is an ordered (by index) validator-set snapshot.
type Set struct {
	Entries []Entry
}

// ByzantineTolerance returns f, the maximum Byzantine validator count
// tolerated under f < N/3.
func (s Set) ByzantineTolerance() int {
	n := len(s.Entries)
	if n == 0 {
		return 0
	}
	return (n - 1) / 3
}

// QuorumSize returns 2f+1, the minimum distinct signer count Invariant
// V1 requires for a valid commit.
func (s Set) QuorumSize() int {
	return 2*s.ByzantineTolerance() + 1
}

// sortedLeaves returns leaf bytes ordered by index, duplicating no
// entry — the canonical order the Merkle root and membership proofs
// are computed over.
func (s Set) sortedLeaves() [][]byte {
	entries := append([]Entry(nil), s.Entries...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Index < entries[j].Index })
	leaves := make([][]byte, len(entries))
	for i, e := range entries {
		leaves[i] = e.encodeLeaf()
	}
	return leaves
}

// Root computes set_root(entries), the Merkle root committed into
// header.ValidatorSetHash.
func (s Set) Root(hasher *primitives.Hasher) [32]byte {
	return hasher.MerkleRoot(s.sortedLeaves())
}

// ByIndex looks up an entry by its validator index.
func (s Set) ByIndex(index uint32) (Entry, bool) {
	for _, e := range s.Entries {
		if e.Index == index {
			return e, true
		}
	}
	return Entry{}, false
}

// MembershipProof returns the Merkle path proving entry index's
// inclusion in the set.
func (s Set) MembershipProof(hasher *primitives.Hasher, index uint32) (primitives.Proof, Entry, error) {
	entries := append([]Entry(nil), s.Entries...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Index < entries[j].Index })
	pos := -1
	for i, e := range entries {
		if e.Index == index {
			pos = i
			break
		}
	}
	if pos < 0 {
		return primitives.Proof{}, Entry{}, fmt.Errorf("header: index %d not in validator set", index)
	}
	leaves := make([][]byte, len(entries))
	for i, e := range entries {
		leaves[i] = e.encodeLeaf()
	}
	proof, ok := hasher.MerkleProve(leaves, pos)
	if !ok {
		return primitives.Proof{}, Entry{}, fmt.Errorf("header: failed to build membership proof")
	}
	return proof, entries[pos], nil
}

// VerifyMembership implements set_verify: checks that (index, entry)
// opens against root via proof.
func VerifyMembership(hasher *primitives.Hasher, root [32]byte, entry Entry, proof primitives.Proof) bool {
	return hasher.MerkleVerify(root, entry.encodeLeaf(), proof)
}

// Directory holds the currently active validator set plus a
// next-epoch staging buffer. Per §4.2, mutations are staged and only
// take effect at an explicit Swap call at the epoch boundary; mid-epoch
// reads always observe the same active root, satisfying the "a single
// header's commit corresponds to exactly one set root" requirement of
// §3.4.
type Directory struct {
	active *utils.Atomic[directorySnapshot]
	staged *Set // only ever touched by the single epoch-swap writer
}

type directorySnapshot struct {
	epoch uint64
	set   Set
	root  [32]byte
}

// NewDirectory seeds the directory with the genesis validator set.
func NewDirectory(hasher *primitives.Hasher, genesis Set) *Directory {
	snap := directorySnapshot{epoch: 0, set: genesis, root: genesis.Root(hasher)}
	d := &Directory{active: utils.NewAtomic(snap)}
	return d
}

// ActiveRoot returns the root of the currently active set. It ignores
// height because mid-epoch changes are forbidden (§3.4) — the active
// root is constant until the next Swap regardless of which height in
// the epoch asks.
func (d *Directory) ActiveRoot(_ uint64) [32]byte {
	return d.active.Get().root
}

// ActiveSet returns the currently active set snapshot.
func (d *Directory) ActiveSet() Set {
	return d.active.Get().set
}

// ActiveEpoch returns the epoch number of the active set.
func (d *Directory) ActiveEpoch() uint64 {
	return d.active.Get().epoch
}

// Stage buffers a new validator set to become active at the next
// Swap. It does not affect ActiveRoot/ActiveSet until Swap is called.
func (d *Directory) Stage(next Set) {
	d.staged = &next
}

// Swap atomically promotes the staged set to active, advancing the
// epoch counter. It is idempotent: calling it again with nothing newly
// staged re-applies the same staged set and yields the same root,
// satisfying the epoch-swap idempotence law of §8.
func (d *Directory) Swap(hasher *primitives.Hasher) error {
	if d.staged == nil {
		return fmt.Errorf("header: swap called with no staged validator set")
	}
	next := directorySnapshot{
		epoch: d.active.Get().epoch + 1,
		set:   *d.staged,
		root:  d.staged.Root(hasher),
	}
	d.active.Set(next)
	return nil
}
