// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package header

import (
	"testing"

	"github.com/luxfi/bftcore/primitives"
	"github.com/stretchr/testify/require"
)

func TestHeaderEncodeDecodeRoundTrip(t *testing.T) {
	h := Header{
		Version:          Version,
		Height:           42,
		Previous:         [32]byte{1},
		PoHRoot:          [32]byte{2},
		ReceiptsRoot:     [32]byte{3},
		DARoot:           [32]byte{4},
		OutboundRoot:     [32]byte{5},
		ValidatorSetHash: [32]byte{6},
		Mode:             uint8(ModeIBFT),
		Round:            3,
	}
	got, err := Decode(h.Encode())
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestHeaderLinksTo(t *testing.T) {
	hasher := primitives.NewHasher(primitives.HashBlake3)
	genesis := Genesis([32]byte{9})
	child := Header{
		Version:          Version,
		Height:           1,
		Previous:         genesis.Hash(hasher),
		ValidatorSetHash: [32]byte{9},
		Mode:             uint8(ModeIBFT),
	}
	require.True(t, LinksTo(hasher, child, genesis))

	child.Previous[0] ^= 0xFF
	require.False(t, LinksTo(hasher, child, genesis))
}

func TestHeaderHashChangesOnAnyFieldFlip(t *testing.T) {
	hasher := primitives.NewHasher(primitives.HashBlake3)
	h := Genesis([32]byte{1})
	base := h.Hash(hasher)

	h2 := h
	h2.Round = 1
	require.NotEqual(t, base, h2.Hash(hasher))
}
