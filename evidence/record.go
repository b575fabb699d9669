// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package evidence defines the portable slashing-evidence record every
// violation detector (IBFT equivocation, DA shortfall, inclusion miss,
// anchor conflict) emits. A Record is self-contained and independently
// verifiable: it names the violating validator(s), the height, and the
// conflicting artifacts, canonically encoded and domain-tagged like a
// header so its hash is stable across exporters.
package evidence

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/luxfi/bftcore/primitives"
)

// Kind enumerates the violation taxonomy of §7 ("consensus violation").
type Kind uint8

const (
	// KindUnknown is the zero value and never a valid emitted kind.
	KindUnknown Kind = iota
	// KindEquivocation: two COMMITs by one validator, same height,
	// different header hashes (§4.3).
	KindEquivocation
	// KindInclusionMiss: an obligation unmet by height h'+K (§4.6 point 6).
	KindInclusionMiss
	// KindDAShortfall: >= t of s DA samples failed at a height (§4.5).
	KindDAShortfall
	// KindAnchorConflict: a header disagrees with a confirmed external
	// anchor at the same height (§4.6 point 7).
	KindAnchorConflict
)

func (k Kind) String() string {
	switch k {
	case KindEquivocation:
		return "equivocation"
	case KindInclusionMiss:
		return "inclusion_miss"
	case KindDAShortfall:
		return "da_shortfall"
	case KindAnchorConflict:
		return "anchor_conflict"
	default:
		return "unknown"
	}
}

// domainEvidence tags an evidence record's hash, distinct from header,
// BPCI, tick, and receipt domains reserved by spec §3.2. Evidence is a
// repo-level supplement (§12 of SPEC_FULL.md), so it claims an
// unreserved tag rather than colliding with one of the spec's seven.
const domainEvidence byte = 0x20

// Record is the portable, hashable evidence of a single violation.
type Record struct {
	Kind       Kind
	Height     uint64
	Validators []uint32 // validator indices implicated
	// ArtifactA/B hold the conflicting artifact hashes: two header
	// hashes for equivocation, the frame hash for an inclusion miss,
	// the shard hash for a DA shortfall, the competing header hash for
	// an anchor conflict. ArtifactB is zero when not applicable.
	ArtifactA [32]byte
	ArtifactB [32]byte
	// Detail carries kind-specific opaque context (e.g. the two raw
	// COMMIT signatures for equivocation) for off-chain replay; it is
	// not hashed into the evidence ID to keep IDs stable across
	// re-serializations of the same logical violation.
	Detail []byte
}

func (r Record) encode() []byte {
	e := primitives.NewEncoder(64 + len(r.Validators)*4 + len(r.Detail))
	e.U8(uint8(r.Kind))
	e.U64(r.Height)
	e.U32(uint32(len(r.Validators)))
	for _, v := range r.Validators {
		e.U32(v)
	}
	e.Fixed32(r.ArtifactA)
	e.Fixed32(r.ArtifactB)
	return e.Bytes()
}

// ID computes a stable, domain-separated identifier for export and
// dedup, deliberately excluding Detail (see its doc comment).
func (r Record) ID(hasher *primitives.Hasher) [32]byte {
	return hasher.Sum(domainEvidence, r.encode())
}

// Export renders the full portable record (the hashed fields plus
// Detail) for the §6.6 evidence-export command.
func (r Record) Export() []byte {
	e := primitives.NewEncoder(64 + len(r.Validators)*4 + len(r.Detail))
	e.Fixed(r.encode())
	e.Var(r.Detail)
	return e.Bytes()
}

// cborRecord is the self-describing wire shape for ExportCBOR, field
// indices assigned the way the pack's own CBOR-tagged receipt structs
// do (forestrie-go-merklelog/massifs.MMRState), so third-party tooling
// that only understands CBOR can decode a record without linking this
// module's canonical decoder.
type cborRecord struct {
	Kind       uint8    `cbor:"1,keyasint"`
	Height     uint64   `cbor:"2,keyasint"`
	Validators []uint32 `cbor:"3,keyasint"`
	ArtifactA  [32]byte `cbor:"4,keyasint"`
	ArtifactB  [32]byte `cbor:"5,keyasint"`
	Detail     []byte   `cbor:"6,keyasint,omitempty"`
}

// ExportCBOR renders r as self-describing CBOR, for operators piping
// evidence into external tooling that does not link this module.
func (r Record) ExportCBOR() ([]byte, error) {
	return cbor.Marshal(cborRecord{
		Kind:       uint8(r.Kind),
		Height:     r.Height,
		Validators: r.Validators,
		ArtifactA:  r.ArtifactA,
		ArtifactB:  r.ArtifactB,
		Detail:     r.Detail,
	})
}

// ImportRecordCBOR parses bytes produced by ExportCBOR.
func ImportRecordCBOR(b []byte) (Record, error) {
	var c cborRecord
	if err := cbor.Unmarshal(b, &c); err != nil {
		return Record{}, err
	}
	return Record{
		Kind:       Kind(c.Kind),
		Height:     c.Height,
		Validators: c.Validators,
		ArtifactA:  c.ArtifactA,
		ArtifactB:  c.ArtifactB,
		Detail:     c.Detail,
	}, nil
}

// ImportRecord parses bytes produced by Export.
func ImportRecord(b []byte) (Record, error) {
	d := primitives.NewDecoder(b)
	r := Record{
		Kind:   Kind(d.U8()),
		Height: d.U64(),
	}
	n := d.U32()
	for i := uint32(0); i < n; i++ {
		r.Validators = append(r.Validators, d.U32())
	}
	r.ArtifactA = d.Fixed32()
	r.ArtifactB = d.Fixed32()
	r.Detail = d.Var()
	if err := d.Err(); err != nil {
		return Record{}, err
	}
	return r, nil
}
