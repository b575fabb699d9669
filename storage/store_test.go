// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"testing"

	"github.com/luxfi/bftcore/da"
	"github.com/luxfi/bftcore/evidence"
	"github.com/luxfi/bftcore/header"
	"github.com/luxfi/bftcore/ibft"
	"github.com/luxfi/bftcore/primitives"
	"github.com/luxfi/database/memdb"
	"github.com/stretchr/testify/require"
)

func TestChainStorePutGetRoundTrip(t *testing.T) {
	s := New(memdb.New())
	h := header.Genesis([32]byte{1})
	h.Height = 7
	commit := ibft.Commit{HeaderHash: [32]byte{2}, Signature: []byte{3, 4, 5}, Bitmap: ibft.NewBitmap(4)}

	require.NoError(t, s.Chain.PutHeight(s.db, h, commit))

	got, err := s.Chain.GetHeader(7)
	require.NoError(t, err)
	require.Equal(t, h, got)

	gotCommit, err := s.Chain.GetCommit(7)
	require.NoError(t, err)
	require.Equal(t, commit.HeaderHash, gotCommit.HeaderHash)

	last, ok, err := s.Chain.LastHeight()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(7), last)
}

func TestChainStoreLastHeightEmpty(t *testing.T) {
	s := New(memdb.New())
	_, ok, err := s.Chain.LastHeight()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestValidatorStorePutGetRoot(t *testing.T) {
	s := New(memdb.New())
	root := [32]byte{9, 9, 9}
	require.NoError(t, s.Validators.PutRoot(s.db, 3, root))
	got, err := s.Validators.GetRoot(3)
	require.NoError(t, err)
	require.Equal(t, root, got)
}

func TestValidatorStorePutGetSet(t *testing.T) {
	s := New(memdb.New())
	set := header.Set{Entries: []header.Entry{
		{Index: 0, BLSPublicKey: []byte{1, 2}, VRFPublicKey: [32]byte{3}, Meta: header.Metadata{Region: "us-east", ClientImpl: "bftcore"}},
		{Index: 1, BLSPublicKey: []byte{4, 5}, VRFPublicKey: [32]byte{6}, Meta: header.Metadata{HardwareAttested: true}},
	}}
	require.NoError(t, s.Validators.PutSet(s.db, 2, set))
	got, err := s.Validators.GetSet(2)
	require.NoError(t, err)
	require.Equal(t, set, got)
}

func TestPoHStorePutGetTail(t *testing.T) {
	s := New(memdb.New())
	_, _, ok, err := s.PoH.GetTail("sender-a")
	require.NoError(t, err)
	require.False(t, ok)

	tail := [32]byte{1, 2, 3}
	require.NoError(t, s.PoH.PutTail(s.db, "sender-a", tail, 42))

	gotTail, gotNonce, ok, err := s.PoH.GetTail("sender-a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, tail, gotTail)
	require.Equal(t, uint64(42), gotNonce)
}

func TestDAStorePutListShardHeaders(t *testing.T) {
	s := New(memdb.New())
	h0 := da.ShardHeader{Index: 0, Size: 1024, BlockHeight: 5, ContentHash: [32]byte{1}}
	h1 := da.ShardHeader{Index: 1, Size: 1024, BlockHeight: 5, ContentHash: [32]byte{2}}

	require.NoError(t, s.DA.PutShardHeader(s.db, 5, 0, h0))
	require.NoError(t, s.DA.PutShardHeader(s.db, 5, 1, h1))

	got, err := s.DA.ListShardHeaders(5)
	require.NoError(t, err)
	require.Equal(t, []da.ShardHeader{h0, h1}, got)

	require.NoError(t, s.DA.PutPinnerRef(s.db, 5, []byte("pin-ref")))
	ref, err := s.DA.GetPinnerRef(5)
	require.NoError(t, err)
	require.Equal(t, []byte("pin-ref"), ref)
}

func TestEvidenceStorePutGetListDedup(t *testing.T) {
	s := New(memdb.New())
	rec := evidence.Record{Kind: evidence.KindEquivocation, Height: 11, Validators: []uint32{2}, ArtifactA: [32]byte{7}}
	id := rec.ID(primitives.NewHasher(primitives.HashBlake3))

	require.NoError(t, s.Evidence.Put(s.db, id, rec))
	require.NoError(t, s.Evidence.Put(s.db, id, rec))

	got, err := s.Evidence.Get(id)
	require.NoError(t, err)
	require.Equal(t, rec, got)

	list, err := s.Evidence.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
}
