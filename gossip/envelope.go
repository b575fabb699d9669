// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package gossip

import (
	"crypto/ed25519"
	"encoding/binary"
	"errors"

	"github.com/luxfi/bftcore/ibft"
	"github.com/luxfi/bftcore/primitives"
)

// ErrBadEnvelopeSignature is returned by Open when the envelope's
// Ed25519 signature does not verify against the claimed signer.
var ErrBadEnvelopeSignature = errors.New("gossip: envelope signature invalid")

// Envelope is one signed wire message: the 2-byte kind code, the
// signer's validator index, the canonically-encoded payload, and the
// Ed25519 signature over (kind || signer || payload).
type Envelope struct {
	Kind      ibft.MessageKind
	Signer    uint32
	Payload   []byte
	Signature []byte
}

func signedBytes(kind ibft.MessageKind, signer uint32, payload []byte) []byte {
	e := primitives.NewEncoder(6 + len(payload))
	e.U8(uint8(kind >> 8))
	e.U8(uint8(kind))
	e.U32(signer)
	e.Var(payload)
	return e.Bytes()
}

// Seal builds a signed Envelope for msg, sent by signer using priv.
func Seal(priv ed25519.PrivateKey, signer uint32, msg ibft.Message) (Envelope, error) {
	payload, err := encodePayload(msg)
	if err != nil {
		return Envelope{}, err
	}
	sig := primitives.Ed25519Sign(priv, signedBytes(msg.Kind, signer, payload))
	return Envelope{Kind: msg.Kind, Signer: signer, Payload: payload, Signature: sig}, nil
}

// Open verifies env's envelope signature against pub and decodes its
// payload back into a typed ibft.Message.
func Open(pub ed25519.PublicKey, env Envelope) (ibft.Message, error) {
	if !primitives.Ed25519Verify(pub, signedBytes(env.Kind, env.Signer, env.Payload), env.Signature) {
		return ibft.Message{}, ErrBadEnvelopeSignature
	}
	return decodePayload(env.Kind, env.Signer, env.Payload)
}

// Encode serialises env for the wire: 2-byte kind, 4-byte signer,
// length-prefixed payload, 64-byte signature.
func (env Envelope) Encode() []byte {
	buf := make([]byte, 0, 6+4+len(env.Payload)+64)
	var kindBuf [2]byte
	binary.BigEndian.PutUint16(kindBuf[:], uint16(env.Kind))
	buf = append(buf, kindBuf[:]...)
	var signerBuf [4]byte
	binary.BigEndian.PutUint32(signerBuf[:], env.Signer)
	buf = append(buf, signerBuf[:]...)
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(env.Payload)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, env.Payload...)
	buf = append(buf, env.Signature...)
	return buf
}

// DecodeEnvelope parses the wire format Encode produces.
func DecodeEnvelope(buf []byte) (Envelope, error) {
	if len(buf) < 2+4+4+64 {
		return Envelope{}, errors.New("gossip: envelope shorter than fixed regions")
	}
	kind := ibft.MessageKind(binary.BigEndian.Uint16(buf[0:2]))
	signer := binary.BigEndian.Uint32(buf[2:6])
	plen := int(binary.BigEndian.Uint32(buf[6:10]))
	if len(buf) < 10+plen+64 {
		return Envelope{}, errors.New("gossip: envelope payload length out of range")
	}
	payload := append([]byte(nil), buf[10:10+plen]...)
	sig := append([]byte(nil), buf[10+plen:10+plen+64]...)
	return Envelope{Kind: kind, Signer: signer, Payload: payload, Signature: sig}, nil
}
