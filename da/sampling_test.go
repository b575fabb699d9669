// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package da

import (
	"testing"

	"github.com/luxfi/bftcore/primitives"
	"github.com/stretchr/testify/require"
)

func TestSampleIndicesDeterministicAndInRange(t *testing.T) {
	hasher := primitives.NewHasher(primitives.HashBlake3)
	seed := []byte("height-10-vrf-beta")

	a := SampleIndices(hasher, seed, 20, 12)
	b := SampleIndices(hasher, seed, 20, 12)
	require.Equal(t, a, b)
	require.Len(t, a, 20)
	for _, idx := range a {
		require.Less(t, idx, uint32(12))
	}
}

func TestSampleIndicesDiffersByHeightSeed(t *testing.T) {
	hasher := primitives.NewHasher(primitives.HashBlake3)
	a := SampleIndices(hasher, []byte("seed-a"), 20, 12)
	b := SampleIndices(hasher, []byte("seed-b"), 20, 12)
	require.NotEqual(t, a, b)
}

func TestSampleIndicesEmptyOnDegenerateInput(t *testing.T) {
	hasher := primitives.NewHasher(primitives.HashBlake3)
	require.Nil(t, SampleIndices(hasher, []byte("seed"), 0, 12))
	require.Nil(t, SampleIndices(hasher, []byte("seed"), 20, 0))
}
