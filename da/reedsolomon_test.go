// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package da

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncoderEncodeProducesVerifiableParity(t *testing.T) {
	enc, err := NewEncoder(4, 2)
	require.NoError(t, err)

	data := [][]byte{
		[]byte("aaaaaaaa"),
		[]byte("bbbbbbbb"),
		[]byte("cccccccc"),
		[]byte("dddddddd"),
	}
	shards, err := enc.Encode(data)
	require.NoError(t, err)
	require.Len(t, shards, 6)

	ok, err := enc.VerifyParity(shards)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEncoderVerifyParityDetectsCorruption(t *testing.T) {
	enc, err := NewEncoder(4, 2)
	require.NoError(t, err)
	data := [][]byte{
		[]byte("aaaaaaaa"),
		[]byte("bbbbbbbb"),
		[]byte("cccccccc"),
		[]byte("dddddddd"),
	}
	shards, err := enc.Encode(data)
	require.NoError(t, err)

	shards[1][0] ^= 0xFF
	ok, err := enc.VerifyParity(shards)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEncoderEncodeRejectsMismatchedShardSizes(t *testing.T) {
	enc, err := NewEncoder(2, 2)
	require.NoError(t, err)
	_, err = enc.Encode([][]byte{[]byte("ab"), []byte("abcd")})
	require.ErrorIs(t, err, ErrShardSizeMismatch)
}

func TestEncoderEncodeChunkSplitsAndPads(t *testing.T) {
	enc, err := NewEncoder(3, 2)
	require.NoError(t, err)
	shards, err := enc.EncodeChunk([]byte("hello world, this is a da chunk"))
	require.NoError(t, err)
	require.Len(t, shards, 5)
}

func TestRecoverShardsReconstructsFromAnyK(t *testing.T) {
	enc, err := NewEncoder(4, 2)
	require.NoError(t, err)
	data := [][]byte{
		[]byte("11112222"),
		[]byte("33334444"),
		[]byte("55556666"),
		[]byte("77778888"),
	}
	shards, err := enc.Encode(data)
	require.NoError(t, err)

	// Drop two shards (one data, one parity); recover from the rest.
	available := [][]byte{shards[0], shards[2], shards[4], shards[5]}
	indices := []int{0, 2, 4, 5}

	recovered, err := RecoverShards(available, indices, 4, 2)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		require.Equal(t, data[i], recovered[i])
	}
}

func TestEncoderEncodeRejectsWrongShardCount(t *testing.T) {
	enc, err := NewEncoder(3, 1)
	require.NoError(t, err)
	_, err = enc.Encode([][]byte{[]byte("ab")})
	require.ErrorIs(t, err, ErrShardCount)
}

func TestNewEncoderRejectsInvalidConfig(t *testing.T) {
	_, err := NewEncoder(0, 1)
	require.ErrorIs(t, err, ErrInvalidConfig)
	_, err = NewEncoder(1, 0)
	require.ErrorIs(t, err, ErrInvalidConfig)
}
