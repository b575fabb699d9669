// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package da

import (
	"encoding/binary"

	"github.com/luxfi/bftcore/primitives"
)

// domainSample tags the per-index sampling hash. DA sampling has no
// tag reserved by §3.2, so it claims an unreserved one the same way
// evidence and PoH's nonce-chain link do.
const domainSample byte = 0x22

// SampleIndices draws s shard indices out of n for a validator
// sampling a block at a given height, per §4.5: idx_i = H(seed_s || i)
// mod n, where seed_s is the height's publicly derived VRF beta. The
// same seed always yields the same indices, so any observer can check
// a validator sampled the indices it claims to have.
func SampleIndices(hasher *primitives.Hasher, seed []byte, s int, n int) []uint32 {
	if n <= 0 || s <= 0 {
		return nil
	}
	out := make([]uint32, s)
	var counter [8]byte
	for i := 0; i < s; i++ {
		binary.BigEndian.PutUint64(counter[:], uint64(i))
		digest := hasher.Sum(domainSample, seed, counter[:])
		v := binary.BigEndian.Uint64(digest[:8])
		out[i] = uint32(v % uint64(n))
	}
	return out
}
