// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ibft

import (
	"bytes"
	"encoding/binary"

	"github.com/luxfi/bftcore/primitives"
)

// RoundSeedAlpha builds the VRF input alpha for leader selection at
// (height, round): enc(height || round), matching §4.3's
// "compute β of the round seed".
func RoundSeedAlpha(height, round uint64) []byte {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[0:8], height)
	binary.BigEndian.PutUint64(buf[8:16], round)
	return buf[:]
}

// LeaderClaim is one validator's self-assessed eligibility to propose
// at (height, round): it computed β from its own VRF key and found
// β mod N equal to its own index.
type LeaderClaim struct {
	Index     uint32
	PublicKey []byte // VRF public key, used only for the tie-break order
	Beta      []byte
	Proof     []byte
}

// ComputeLeaderClaim evaluates whether kp is eligible to lead
// (height, round) out of n validators, returning the claim if so.
func ComputeLeaderClaim(kp primitives.VRFKeyPair, index uint32, n int, height, round uint64) (LeaderClaim, bool) {
	if n <= 0 {
		return LeaderClaim{}, false
	}
	pi, beta, err := primitives.VRFProve(kp, RoundSeedAlpha(height, round))
	if err != nil {
		return LeaderClaim{}, false
	}
	if leaderIndexFromBeta(beta, n) != index {
		return LeaderClaim{}, false
	}
	pub := kp.Public
	return LeaderClaim{Index: index, PublicKey: pub[:], Beta: beta, Proof: pi}, true
}

// VerifyLeaderClaim checks that claim.Proof verifies against pk for
// (height, round) and that it implies the claimed index.
func VerifyLeaderClaim(pk [32]byte, n int, height, round uint64, claim LeaderClaim) bool {
	beta, ok := primitives.VRFVerify(pk, RoundSeedAlpha(height, round), claim.Proof)
	if !ok {
		return false
	}
	if !bytes.Equal(beta, claim.Beta) {
		return false
	}
	return leaderIndexFromBeta(beta, n) == claim.Index
}

func leaderIndexFromBeta(beta []byte, n int) uint32 {
	// Reduce the 32-byte VRF output to a uniform value mod n using the
	// low 8 bytes as a big-endian integer.
	v := binary.BigEndian.Uint64(beta[24:32])
	return uint32(v % uint64(n))
}

// ResolveLeader picks the winner among validators that simultaneously
// believe themselves eligible to propose — an identical-β collision,
// per §9's Open Question, resolved here as lowest public-key byte
// order. With a single claimant (the overwhelmingly common case) it
// just returns that claim.
func ResolveLeader(claims []LeaderClaim) (LeaderClaim, bool) {
	if len(claims) == 0 {
		return LeaderClaim{}, false
	}
	best := claims[0]
	for _, c := range claims[1:] {
		if bytes.Compare(c.PublicKey, best.PublicKey) < 0 {
			best = c
		}
	}
	return best, true
}
