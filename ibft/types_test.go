// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ibft

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitmapSetIndicesPopCount(t *testing.T) {
	b := NewBitmap(10)
	b.Set(0)
	b.Set(3)
	b.Set(9)

	require.True(t, b.IsSet(0))
	require.True(t, b.IsSet(3))
	require.True(t, b.IsSet(9))
	require.False(t, b.IsSet(1))
	require.Equal(t, []uint32{0, 3, 9}, b.Indices(10))
	require.Equal(t, 3, b.PopCount())
}

func TestBitmapSetOutOfRangeIsNoOp(t *testing.T) {
	b := NewBitmap(4)
	b.Set(100)
	require.False(t, b.IsSet(100))
	require.Equal(t, 0, b.PopCount())
}

func TestCommitEncodeDecodeRoundTrip(t *testing.T) {
	b := NewBitmap(4)
	b.Set(0)
	b.Set(2)
	c := Commit{
		HeaderHash: [32]byte{9, 9, 9},
		Signature:  []byte("compressed-g1-aggregate"),
		Bitmap:     b,
	}
	got, err := DecodeCommit(c.Encode())
	require.NoError(t, err)
	require.Equal(t, c.HeaderHash, got.HeaderHash)
	require.Equal(t, c.Signature, got.Signature)
	require.Equal(t, []byte(c.Bitmap), []byte(got.Bitmap))
}

func TestDecodeCommitRejectsTruncatedInput(t *testing.T) {
	_, err := DecodeCommit([]byte{1, 2, 3})
	require.Error(t, err)
}
