// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package poh

import "github.com/luxfi/bftcore/primitives"

// ComputeTick derives a tick as H(0x12 ‖ seed_h ‖ NC_i), per §3.6.
func ComputeTick(hasher *primitives.Hasher, seed []byte, chainTail [32]byte) [32]byte {
	return hasher.Sum(primitives.DomainPoHTick, seed, chainTail[:])
}

// Entry is one admitted tick: the sender's identity, the nonce that
// advanced its chain, the chain link (PrevTail -> Tail), and the
// resulting tick hash. It is both the leaf fed into poh_root and the
// witness a light client needs to recompute Invariant P1.
type Entry struct {
	SenderID string
	Nonce    uint64
	PrevTail [32]byte
	Tail     [32]byte
	Tick     [32]byte
}

// VerifyEntry checks that entry is internally consistent: its chain
// link holds and its tick hash matches seed and Tail, per Invariant P1.
// It does not by itself prove PrevTail traces back to NC_0 — that
// requires replaying the sender's full nonce history, which storage/poh
// retains; a single height's light-client check only needs this hop
// plus poh_root membership.
func VerifyEntry(hasher *primitives.Hasher, seed []byte, entry Entry) bool {
	if !VerifyLink(hasher, entry.PrevTail, entry.Nonce, entry.Tail) {
		return false
	}
	return ComputeTick(hasher, seed, entry.Tail) == entry.Tick
}
