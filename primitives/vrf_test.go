// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package primitives

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVRFProveVerifyRoundTrip(t *testing.T) {
	var seed [32]byte
	copy(seed[:], []byte("deterministic-test-vrf-seed-32b"))
	kp, err := GenerateVRF(seed)
	require.NoError(t, err)

	alpha := []byte("height=1||prev_tick")
	pi, beta, err := VRFProve(kp, alpha)
	require.NoError(t, err)
	require.Len(t, pi, vrfProofLen)
	require.Len(t, beta, 32)

	gotBeta, ok := VRFVerify(kp.Public, alpha, pi)
	require.True(t, ok)
	require.Equal(t, beta, gotBeta)
}

func TestVRFVerifyRejectsTamperedProof(t *testing.T) {
	var seed [32]byte
	copy(seed[:], []byte("another-deterministic-vrf-seed!"))
	kp, err := GenerateVRF(seed)
	require.NoError(t, err)

	alpha := []byte("height=2")
	pi, _, err := VRFProve(kp, alpha)
	require.NoError(t, err)

	tampered := append([]byte(nil), pi...)
	tampered[0] ^= 0xFF
	_, ok := VRFVerify(kp.Public, alpha, tampered)
	require.False(t, ok)
}

func TestVRFVerifyRejectsWrongAlpha(t *testing.T) {
	var seed [32]byte
	copy(seed[:], []byte("yet-another-vrf-seed-for-tests!"))
	kp, err := GenerateVRF(seed)
	require.NoError(t, err)

	pi, _, err := VRFProve(kp, []byte("alpha-one"))
	require.NoError(t, err)
	_, ok := VRFVerify(kp.Public, []byte("alpha-two"), pi)
	require.False(t, ok)
}

func TestVRFIsDeterministic(t *testing.T) {
	var seed [32]byte
	copy(seed[:], []byte("determinism-check-vrf-seed-bytes"))
	kp, err := GenerateVRF(seed)
	require.NoError(t, err)

	alpha := []byte("height=7")
	pi1, beta1, err := VRFProve(kp, alpha)
	require.NoError(t, err)
	pi2, beta2, err := VRFProve(kp, alpha)
	require.NoError(t, err)
	require.Equal(t, pi1, pi2)
	require.Equal(t, beta1, beta2)
}
