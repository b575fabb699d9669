// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gossip

import (
	"testing"

	"github.com/luxfi/bftcore/header"
	"github.com/luxfi/bftcore/ibft"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePrePrepareRoundTrip(t *testing.T) {
	h := header.Genesis([32]byte{1})
	h.Height = 5
	claim := ibft.LeaderClaim{Index: 2, PublicKey: []byte{1, 2, 3}, Beta: []byte{4, 5}, Proof: []byte{6, 7, 8, 9}}
	msg := ibft.Message{Kind: ibft.KindPrePrepare, Signer: 2, PrePrepare: &ibft.PrePrepare{Height: 5, Round: 1, Header: h, Claim: claim}}

	payload, err := encodePayload(msg)
	require.NoError(t, err)
	got, err := decodePayload(ibft.KindPrePrepare, 2, payload)
	require.NoError(t, err)
	require.Equal(t, msg.PrePrepare.Height, got.PrePrepare.Height)
	require.Equal(t, msg.PrePrepare.Round, got.PrePrepare.Round)
	require.Equal(t, msg.PrePrepare.Header, got.PrePrepare.Header)
	require.Equal(t, msg.PrePrepare.Claim, got.PrePrepare.Claim)
}

func TestEncodeDecodePrepareRoundTrip(t *testing.T) {
	msg := ibft.Message{Kind: ibft.KindPrepare, Signer: 1, Prepare: &ibft.Prepare{Height: 3, Round: 0, HeaderHash: [32]byte{9}}}
	payload, err := encodePayload(msg)
	require.NoError(t, err)
	got, err := decodePayload(ibft.KindPrepare, 1, payload)
	require.NoError(t, err)
	require.Equal(t, *msg.Prepare, *got.Prepare)
}

func TestEncodeDecodeCommitMsgRoundTrip(t *testing.T) {
	msg := ibft.Message{Kind: ibft.KindCommit, Signer: 0, Commit: &ibft.CommitMsg{Height: 3, Round: 0, HeaderHash: [32]byte{1}, Signature: []byte{1, 2, 3, 4}}}
	payload, err := encodePayload(msg)
	require.NoError(t, err)
	got, err := decodePayload(ibft.KindCommit, 0, payload)
	require.NoError(t, err)
	require.Equal(t, *msg.Commit, *got.Commit)
}

func TestEncodeDecodeRoundChangeRoundTrip(t *testing.T) {
	msg := ibft.Message{Kind: ibft.KindRoundChange, Signer: 3, RoundChange: &ibft.RoundChange{Height: 9, Round: 2}}
	payload, err := encodePayload(msg)
	require.NoError(t, err)
	got, err := decodePayload(ibft.KindRoundChange, 3, payload)
	require.NoError(t, err)
	require.Equal(t, *msg.RoundChange, *got.RoundChange)
}

func TestEncodePayloadRejectsNilFields(t *testing.T) {
	_, err := encodePayload(ibft.Message{Kind: ibft.KindPrepare})
	require.Error(t, err)
}
