// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package poh

import "github.com/luxfi/bftcore/primitives"

// VerifyBundle implements the light client's PoH check (§4.1 step 4):
// recompute the height's seed from the proposer's VRF proof, check each
// witness's chain link and tick hash against that seed, then confirm
// the Merkle root over the witnesses equals the header's poh_root. It
// never panics and returns a single boolean, matching §4.1's contract
// that every verify step is a boolean, never an exception.
func VerifyBundle(hasher *primitives.Hasher, proposerVRFKey [32]byte, height uint64, prevTick [32]byte, seedProof []byte, entries []Entry, pohRoot [32]byte) bool {
	seed, ok := VerifySeed(proposerVRFKey, height, prevTick, seedProof)
	if !ok {
		return false
	}
	for _, e := range entries {
		if !VerifyEntry(hasher, seed, e) {
			return false
		}
	}
	return TicksRoot(hasher, entries) == pohRoot
}
