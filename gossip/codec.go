// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package gossip implements the wire encoding and envelope signature
// of §6.3: consensus messages (PRE-PREPARE, PREPARE, COMMIT,
// ROUND-CHANGE) carried with a 2-byte kind prefix through the
// canonical encoder and an Ed25519 envelope signature by the sending
// validator. It also carries the zmq-based pub/sub and router/dealer
// transport the rest of the pack's messaging stack is built on.
package gossip

import (
	"fmt"

	"github.com/luxfi/bftcore/header"
	"github.com/luxfi/bftcore/ibft"
	"github.com/luxfi/bftcore/primitives"
)

func encodeLeaderClaim(e *primitives.Encoder, c ibft.LeaderClaim) {
	e.U32(c.Index)
	e.Var(c.PublicKey)
	e.Var(c.Beta)
	e.Var(c.Proof)
}

func decodeLeaderClaim(d *primitives.Decoder) ibft.LeaderClaim {
	return ibft.LeaderClaim{
		Index:     d.U32(),
		PublicKey: d.Var(),
		Beta:      d.Var(),
		Proof:     d.Var(),
	}
}

func encodePrePrepare(m ibft.PrePrepare) []byte {
	e := primitives.NewEncoder(256)
	e.U64(m.Height)
	e.U64(m.Round)
	e.Var(m.Header.Encode())
	encodeLeaderClaim(e, m.Claim)
	return e.Bytes()
}

func decodePrePrepare(b []byte) (ibft.PrePrepare, error) {
	d := primitives.NewDecoder(b)
	height := d.U64()
	round := d.U64()
	headerBytes := d.Var()
	claim := decodeLeaderClaim(d)
	if err := d.Err(); err != nil {
		return ibft.PrePrepare{}, err
	}
	h, err := header.Decode(headerBytes)
	if err != nil {
		return ibft.PrePrepare{}, err
	}
	return ibft.PrePrepare{Height: height, Round: round, Header: h, Claim: claim}, nil
}

func encodePrepare(m ibft.Prepare) []byte {
	e := primitives.NewEncoder(48)
	e.U64(m.Height)
	e.U64(m.Round)
	e.Fixed32(m.HeaderHash)
	return e.Bytes()
}

func decodePrepare(b []byte) (ibft.Prepare, error) {
	d := primitives.NewDecoder(b)
	m := ibft.Prepare{Height: d.U64(), Round: d.U64(), HeaderHash: d.Fixed32()}
	return m, d.Err()
}

func encodeCommitMsg(m ibft.CommitMsg) []byte {
	e := primitives.NewEncoder(48 + len(m.Signature))
	e.U64(m.Height)
	e.U64(m.Round)
	e.Fixed32(m.HeaderHash)
	e.Var(m.Signature)
	return e.Bytes()
}

func decodeCommitMsg(b []byte) (ibft.CommitMsg, error) {
	d := primitives.NewDecoder(b)
	m := ibft.CommitMsg{Height: d.U64(), Round: d.U64(), HeaderHash: d.Fixed32(), Signature: d.Var()}
	return m, d.Err()
}

func encodeRoundChange(m ibft.RoundChange) []byte {
	e := primitives.NewEncoder(16)
	e.U64(m.Height)
	e.U64(m.Round)
	return e.Bytes()
}

func decodeRoundChange(b []byte) (ibft.RoundChange, error) {
	d := primitives.NewDecoder(b)
	m := ibft.RoundChange{Height: d.U64(), Round: d.U64()}
	return m, d.Err()
}

// encodePayload serialises msg's typed payload per its kind, the
// portion that sits after the 2-byte kind prefix in §6.3's layout.
func encodePayload(msg ibft.Message) ([]byte, error) {
	switch msg.Kind {
	case ibft.KindPrePrepare:
		if msg.PrePrepare == nil {
			return nil, fmt.Errorf("gossip: PRE-PREPARE kind with nil payload")
		}
		return encodePrePrepare(*msg.PrePrepare), nil
	case ibft.KindPrepare:
		if msg.Prepare == nil {
			return nil, fmt.Errorf("gossip: PREPARE kind with nil payload")
		}
		return encodePrepare(*msg.Prepare), nil
	case ibft.KindCommit:
		if msg.Commit == nil {
			return nil, fmt.Errorf("gossip: COMMIT kind with nil payload")
		}
		return encodeCommitMsg(*msg.Commit), nil
	case ibft.KindRoundChange:
		if msg.RoundChange == nil {
			return nil, fmt.Errorf("gossip: ROUND-CHANGE kind with nil payload")
		}
		return encodeRoundChange(*msg.RoundChange), nil
	default:
		return nil, fmt.Errorf("gossip: unknown message kind %d", msg.Kind)
	}
}

// decodePayload parses a payload back into a typed ibft.Message given
// its kind and signer.
func decodePayload(kind ibft.MessageKind, signer uint32, payload []byte) (ibft.Message, error) {
	msg := ibft.Message{Kind: kind, Signer: signer}
	switch kind {
	case ibft.KindPrePrepare:
		pp, err := decodePrePrepare(payload)
		if err != nil {
			return ibft.Message{}, err
		}
		msg.PrePrepare = &pp
	case ibft.KindPrepare:
		p, err := decodePrepare(payload)
		if err != nil {
			return ibft.Message{}, err
		}
		msg.Prepare = &p
	case ibft.KindCommit:
		c, err := decodeCommitMsg(payload)
		if err != nil {
			return ibft.Message{}, err
		}
		msg.Commit = &c
	case ibft.KindRoundChange:
		rc, err := decodeRoundChange(payload)
		if err != nil {
			return ibft.Message{}, err
		}
		msg.RoundChange = &rc
	default:
		return ibft.Message{}, fmt.Errorf("gossip: unknown message kind %d", kind)
	}
	return msg, nil
}
