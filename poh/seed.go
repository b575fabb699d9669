// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package poh

import (
	"encoding/binary"

	"github.com/luxfi/bftcore/primitives"
)

// SeedAlpha builds the VRF input alpha for height h's PoH seed:
// enc(h ‖ prev_tick), per §3.6. prevTick is the previous header's PoH
// root — the chain anchor that makes each height's seed unpredictable
// before the prior height finalises, yet publicly recomputable after.
func SeedAlpha(height uint64, prevTick [32]byte) []byte {
	buf := make([]byte, 8+32)
	binary.BigEndian.PutUint64(buf[0:8], height)
	copy(buf[8:], prevTick[:])
	return buf
}

// DeriveSeed computes seed_h = VRF.β(sk_vrf, enc(h ‖ prev_tick)) along
// with its proof, which the proposer publishes alongside the header so
// any verifier can recompute seed_h without the secret key (§4.4).
func DeriveSeed(kp primitives.VRFKeyPair, height uint64, prevTick [32]byte) (proof, seed []byte, err error) {
	return primitives.VRFProve(kp, SeedAlpha(height, prevTick))
}

// VerifySeed checks proof against the proposer's VRF public key and
// returns the resulting seed_h on success.
func VerifySeed(pk [32]byte, height uint64, prevTick [32]byte, proof []byte) ([]byte, bool) {
	return primitives.VRFVerify(pk, SeedAlpha(height, prevTick), proof)
}
