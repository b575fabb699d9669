// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package header

import (
	"testing"

	"github.com/luxfi/bftcore/primitives"
	"github.com/stretchr/testify/require"
)

func testSet(n int) Set {
	s := Set{}
	for i := 0; i < n; i++ {
		s.Entries = append(s.Entries, Entry{
			Index:        uint32(i),
			BLSPublicKey: make([]byte, 96),
			Meta:         Metadata{Region: "us-east", ClientImpl: "bftcore"},
		})
	}
	return s
}

func TestSetRootMembershipProof(t *testing.T) {
	hasher := primitives.NewHasher(primitives.HashBlake3)
	set := testSet(7)
	root := set.Root(hasher)

	proof, entry, err := set.MembershipProof(hasher, 3)
	require.NoError(t, err)
	require.True(t, VerifyMembership(hasher, root, entry, proof))
}

func TestSetQuorumSizeByzantineTolerance(t *testing.T) {
	set := testSet(4)
	require.Equal(t, 1, set.ByzantineTolerance())
	require.Equal(t, 3, set.QuorumSize())

	set7 := testSet(7)
	require.Equal(t, 2, set7.ByzantineTolerance())
	require.Equal(t, 5, set7.QuorumSize())

	// N divisible by 3 is the residue class where a naive n/3 formula
	// overstates f; f = floor((n-1)/3) must still hold here.
	set3 := testSet(3)
	require.Equal(t, 0, set3.ByzantineTolerance())
	require.Equal(t, 1, set3.QuorumSize())

	set6 := testSet(6)
	require.Equal(t, 1, set6.ByzantineTolerance())
	require.Equal(t, 3, set6.QuorumSize())

	set9 := testSet(9)
	require.Equal(t, 2, set9.ByzantineTolerance())
	require.Equal(t, 5, set9.QuorumSize())
}

func TestDirectoryStageSwapAtomic(t *testing.T) {
	hasher := primitives.NewHasher(primitives.HashBlake3)
	genesis := testSet(4)
	dir := NewDirectory(hasher, genesis)

	originalRoot := dir.ActiveRoot(100)
	require.Equal(t, uint64(0), dir.ActiveEpoch())

	next := testSet(5)
	dir.Stage(next)
	// Mid-epoch reads must still see the old root.
	require.Equal(t, originalRoot, dir.ActiveRoot(101))

	require.NoError(t, dir.Swap(hasher))
	require.Equal(t, uint64(1), dir.ActiveEpoch())
	require.NotEqual(t, originalRoot, dir.ActiveRoot(200))
}

func TestDirectorySwapIdempotentAtSameBoundary(t *testing.T) {
	hasher := primitives.NewHasher(primitives.HashBlake3)
	dir := NewDirectory(hasher, testSet(4))
	dir.Stage(testSet(6))
	require.NoError(t, dir.Swap(hasher))
	root1 := dir.ActiveRoot(10)

	// Re-staging the identical set and swapping again yields the same root.
	dir.Stage(testSet(6))
	require.NoError(t, dir.Swap(hasher))
	root2 := dir.ActiveRoot(11)
	require.Equal(t, root1, root2)
}

func TestSwapWithoutStageErrors(t *testing.T) {
	hasher := primitives.NewHasher(primitives.HashBlake3)
	dir := NewDirectory(hasher, testSet(4))
	require.Error(t, dir.Swap(hasher))
}
