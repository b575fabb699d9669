// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lightclient

import (
	"testing"

	"github.com/luxfi/bftcore/da"
	"github.com/luxfi/bftcore/header"
	"github.com/luxfi/bftcore/ibft"
	"github.com/luxfi/bftcore/poh"
	"github.com/luxfi/bftcore/primitives"
	"github.com/stretchr/testify/require"
)

type testFixture struct {
	hasher    *primitives.Hasher
	dir       *header.Directory
	set       header.Set
	blsKeys   []primitives.BLSKeyPair
	vrfKeys   []primitives.VRFKeyPair
	prev      header.Header
	bundle    Bundle
}

func genBLSKey(t *testing.T, seed byte) primitives.BLSKeyPair {
	t.Helper()
	ikm := make([]byte, 32)
	for i := range ikm {
		ikm[i] = seed
	}
	kp, err := primitives.GenerateBLS(ikm)
	require.NoError(t, err)
	return kp
}

func genVRFKey(t *testing.T, seed byte) primitives.VRFKeyPair {
	t.Helper()
	var s [32]byte
	for i := range s {
		s[i] = seed
	}
	kp, err := primitives.GenerateVRF(s)
	require.NoError(t, err)
	return kp
}

// buildFixture assembles a 4-validator directory, a genesis-linked
// header at height 1 with a quorum BLS commit, an honest PoH bundle,
// and two verifying DA openings — the happy path every failure test
// mutates one field of.
func buildFixture(t *testing.T) testFixture {
	t.Helper()
	hasher := primitives.NewHasher(primitives.HashBlake3)
	const n = 4

	var entries []header.Entry
	var blsKeys []primitives.BLSKeyPair
	var vrfKeys []primitives.VRFKeyPair
	for i := 0; i < n; i++ {
		bls := genBLSKey(t, byte(i+1))
		vrf := genVRFKey(t, byte(i+50))
		blsKeys = append(blsKeys, bls)
		vrfKeys = append(vrfKeys, vrf)
		entries = append(entries, header.Entry{
			Index:        uint32(i),
			BLSPublicKey: bls.Public,
			VRFPublicKey: vrf.Public,
		})
	}
	set := header.Set{Entries: entries}
	dir := header.NewDirectory(hasher, set)

	prev := header.Genesis(dir.ActiveRoot(0))

	svc := poh.NewService(poh.Config{Window: 64}, hasher)
	require.NoError(t, svc.StartHeight(vrfKeys[0], 1, prev.PoHRoot))
	_, err := svc.Admit("sender-a", 1)
	require.NoError(t, err)
	pohRoot := svc.Root()
	_, seedProof := svc.Seed()

	shardHeaders := []da.ShardHeader{
		{Index: 0, Size: 256, BlockHeight: 1, ContentHash: [32]byte{1}},
		{Index: 1, Size: 256, BlockHeight: 1, ContentHash: [32]byte{2}},
	}
	daRoot := da.Root(hasher, shardHeaders)
	opening0, ok := da.Prove(hasher, shardHeaders, 0)
	require.True(t, ok)

	h := header.Header{
		Version:          header.Version,
		Height:           1,
		Previous:         prev.Hash(hasher),
		PoHRoot:          pohRoot,
		ReceiptsRoot:     [32]byte{},
		DARoot:           daRoot,
		ValidatorSetHash: dir.ActiveRoot(1),
		Mode:             uint8(header.ModeIBFT),
		Round:            0,
	}
	headerHash := h.Hash(hasher)

	bitmap := ibft.NewBitmap(n)
	var sigs [][]byte
	for i := 0; i < set.QuorumSize(); i++ {
		bitmap.Set(uint32(i))
		sig, err := primitives.BLSSign(blsKeys[i].Secret, headerHash[:])
		require.NoError(t, err)
		sigs = append(sigs, sig)
	}
	agg, err := primitives.BLSAggregate(sigs)
	require.NoError(t, err)

	commit := ibft.Commit{HeaderHash: headerHash, Signature: agg, Bitmap: bitmap}

	bundle := Bundle{
		Header:     h,
		Commit:     commit,
		PrevHeader: prev,
		Directory:  dir,
		PoH: PoHWitness{
			ProposerVRFKey: vrfKeys[0].Public,
			SeedProof:      seedProof,
			Entries:        svc.Entries(),
		},
		DA: DASampleState{
			Openings:  []da.Opening{opening0},
			Failures:  0,
			Threshold: 3,
		},
		Inclusion: InclusionState{K: 4},
		Anchor:    AnchorState{},
	}

	return testFixture{hasher: hasher, dir: dir, set: set, blsKeys: blsKeys, vrfKeys: vrfKeys, prev: prev, bundle: bundle}
}

func TestVerifyBundleAcceptsHonestHeader(t *testing.T) {
	f := buildFixture(t)
	require.Equal(t, Valid, VerifyBundle(f.hasher, f.bundle))
}

func TestVerifyBundleRejectsBrokenLinkage(t *testing.T) {
	f := buildFixture(t)
	f.bundle.Header.Previous[0] ^= 0xFF
	require.Equal(t, LinkFail, VerifyBundle(f.hasher, f.bundle))
}

func TestVerifyBundleRejectsWrongValidatorSetHash(t *testing.T) {
	f := buildFixture(t)
	f.bundle.Header.ValidatorSetHash = [32]byte{9, 9, 9}
	require.Equal(t, SetFail, VerifyBundle(f.hasher, f.bundle))
}

func TestVerifyBundleRejectsSubQuorumCommit(t *testing.T) {
	f := buildFixture(t)
	headerHash := f.bundle.Header.Hash(f.hasher)
	bitmap := ibft.NewBitmap(len(f.set.Entries))
	bitmap.Set(0)
	sig, err := primitives.BLSSign(f.blsKeys[0].Secret, headerHash[:])
	require.NoError(t, err)
	f.bundle.Commit = ibft.Commit{HeaderHash: headerHash, Signature: sig, Bitmap: bitmap}
	require.Equal(t, SigFail, VerifyBundle(f.hasher, f.bundle))
}

func TestVerifyBundleRejectsTamperedPoHEntry(t *testing.T) {
	f := buildFixture(t)
	f.bundle.PoH.Entries[0].Nonce = 999
	require.Equal(t, PoHFail, VerifyBundle(f.hasher, f.bundle))
}

func TestVerifyBundleRejectsDAShortfall(t *testing.T) {
	f := buildFixture(t)
	f.bundle.DA.Failures = 3
	require.Equal(t, DAFail, VerifyBundle(f.hasher, f.bundle))
}

func TestVerifyBundleRejectsUnresolvedDueObligation(t *testing.T) {
	f := buildFixture(t)
	f.bundle.Inclusion.K = 1
	f.bundle.Inclusion.Resolutions = []Resolution{
		{Obligation: Obligation{FrameHash: [32]byte{1}, ObservedHeight: 0}},
	}
	require.Equal(t, InclusionFail, VerifyBundle(f.hasher, f.bundle))
}

func TestVerifyBundleRejectsAnchorConflict(t *testing.T) {
	f := buildFixture(t)
	headerHash := f.bundle.Header.Hash(f.hasher)
	f.bundle.Anchor = AnchorState{Height: 1, HeaderHash: [32]byte{byte(headerHash[0] ^ 0xFF)}, Confirmed: true}
	require.Equal(t, AnchorFail, VerifyBundle(f.hasher, f.bundle))
}
