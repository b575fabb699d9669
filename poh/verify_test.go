// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package poh

import (
	"testing"

	"github.com/luxfi/bftcore/primitives"
	"github.com/stretchr/testify/require"
)

func TestVerifyBundleAcceptsHonestBundle(t *testing.T) {
	hasher := primitives.NewHasher(primitives.HashBlake3)
	kp := testVRFKey(t, 0x55)
	svc := NewService(Config{Window: 64}, hasher)
	require.NoError(t, svc.StartHeight(kp, 1, [32]byte{}))

	_, err := svc.Admit("sender-a", 1)
	require.NoError(t, err)
	_, err = svc.Admit("sender-b", 1)
	require.NoError(t, err)

	_, proof := svc.Seed()
	require.True(t, VerifyBundle(hasher, kp.Public, 1, [32]byte{}, proof, svc.Entries(), svc.Root()))
}

func TestVerifyBundleRejectsWrongHeight(t *testing.T) {
	hasher := primitives.NewHasher(primitives.HashBlake3)
	kp := testVRFKey(t, 0x66)
	svc := NewService(Config{Window: 64}, hasher)
	require.NoError(t, svc.StartHeight(kp, 1, [32]byte{}))
	_, err := svc.Admit("sender-a", 1)
	require.NoError(t, err)

	_, proof := svc.Seed()
	require.False(t, VerifyBundle(hasher, kp.Public, 2, [32]byte{}, proof, svc.Entries(), svc.Root()))
}

func TestVerifyBundleRejectsTamperedEntry(t *testing.T) {
	hasher := primitives.NewHasher(primitives.HashBlake3)
	kp := testVRFKey(t, 0x77)
	svc := NewService(Config{Window: 64}, hasher)
	require.NoError(t, svc.StartHeight(kp, 1, [32]byte{}))
	_, err := svc.Admit("sender-a", 1)
	require.NoError(t, err)

	entries := svc.Entries()
	entries[0].Nonce = 99
	_, proof := svc.Seed()
	require.False(t, VerifyBundle(hasher, kp.Public, 1, [32]byte{}, proof, entries, svc.Root()))
}

func TestVerifyBundleRejectsRootMismatch(t *testing.T) {
	hasher := primitives.NewHasher(primitives.HashBlake3)
	kp := testVRFKey(t, 0x88)
	svc := NewService(Config{Window: 64}, hasher)
	require.NoError(t, svc.StartHeight(kp, 1, [32]byte{}))
	_, err := svc.Admit("sender-a", 1)
	require.NoError(t, err)

	_, proof := svc.Seed()
	wrongRoot := [32]byte{1, 2, 3}
	require.False(t, VerifyBundle(hasher, kp.Public, 1, [32]byte{}, proof, svc.Entries(), wrongRoot))
}
