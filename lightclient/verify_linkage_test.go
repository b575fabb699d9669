// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lightclient

import (
	"testing"

	"github.com/luxfi/bftcore/ibft"
	"github.com/stretchr/testify/require"
)

func TestVerifyChainLinkageAcceptsHonestCommit(t *testing.T) {
	f := buildFixture(t)
	got := VerifyChainLinkage(f.hasher, f.bundle.Header, f.bundle.Commit, f.prev, f.dir)
	require.Equal(t, Valid, got)
}

func TestVerifyChainLinkageRejectsBrokenLinkage(t *testing.T) {
	f := buildFixture(t)
	broken := f.bundle.Header
	broken.Previous[0] ^= 0xFF
	got := VerifyChainLinkage(f.hasher, broken, f.bundle.Commit, f.prev, f.dir)
	require.Equal(t, LinkFail, got)
}

func TestVerifyChainLinkageRejectsSubQuorumCommit(t *testing.T) {
	f := buildFixture(t)
	short := f.bundle.Commit
	short.Bitmap = ibft.NewBitmap(len(f.set.Entries))
	short.Bitmap.Set(0)
	got := VerifyChainLinkage(f.hasher, f.bundle.Header, short, f.prev, f.dir)
	require.Equal(t, SigFail, got)
}

func TestVerifyChainLinkageRejectsWrongSetRoot(t *testing.T) {
	f := buildFixture(t)
	wrong := f.bundle.Header
	wrong.ValidatorSetHash[0] ^= 0xFF
	got := VerifyChainLinkage(f.hasher, wrong, f.bundle.Commit, f.prev, f.dir)
	require.Equal(t, SetFail, got)
}
