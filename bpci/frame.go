// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bpci implements the bit-exact wire frame of §6.2: the
// encrypted, Ed25519-signed envelope submitters use to carry payload
// commitments and PoH references into gossip. Nothing here decides
// policy or touches consensus state — it is pure encode/decode plus
// the X25519/AEAD session crypto primitives package wires together.
package bpci

import (
	"crypto/ed25519"
	"encoding/binary"
	"errors"

	"github.com/luxfi/bftcore/primitives"
)

// headerRegionSize is the 105-byte signed/authenticated region of
// §6.2's layout table: version(1) + source(16) + dest(16) +
// serviceIDHash(32) + nonce(8) + pohTickRef(32).
const headerRegionSize = 1 + 16 + 16 + 32 + 8 + 32

// sessionInfoPrefix tags HKDF's info parameter per §6.2:
// HKDF(shared, "BPCI-AEAD" || service_id_hash).
const sessionInfoPrefix = "BPCI-AEAD"

// ErrShortFrame is returned by Decode when buf is too short to hold
// even the fixed-size regions.
var ErrShortFrame = errors.New("bpci: frame shorter than fixed regions")

// ErrBadSignature is returned by Open when the envelope's Ed25519
// signature fails to verify.
var ErrBadSignature = errors.New("bpci: envelope signature invalid")

// Frame is a decoded BPCI wire frame, fields in §6.2's canonical
// order. Ciphertext includes the trailing 16-byte AEAD tag, matching
// how golang.org/x/crypto/chacha20poly1305 returns it.
type Frame struct {
	Version         uint8
	SourceClusterID [16]byte
	DestClusterID   [16]byte
	ServiceIDHash   [32]byte
	Nonce           uint64
	PoHTickRef      [32]byte
	Ciphertext      []byte
	Signature       [64]byte
}

func (f Frame) headerRegion() []byte {
	buf := make([]byte, headerRegionSize)
	buf[0] = f.Version
	copy(buf[1:17], f.SourceClusterID[:])
	copy(buf[17:33], f.DestClusterID[:])
	copy(buf[33:65], f.ServiceIDHash[:])
	binary.BigEndian.PutUint64(buf[65:73], f.Nonce)
	copy(buf[73:105], f.PoHTickRef[:])
	return buf
}

// signedRegion returns the bytes the Ed25519 signature and AEAD
// associated data both cover: the header region concatenated with the
// ciphertext's 4-byte big-endian length.
func (f Frame) signedRegion() []byte {
	region := f.headerRegion()
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(f.Ciphertext)))
	return append(region, lenBuf[:]...)
}

// Encode serialises f exactly per §6.2's byte layout.
func (f Frame) Encode() []byte {
	region := f.signedRegion() // header region || length
	out := make([]byte, 0, len(region)+len(f.Ciphertext)+len(f.Signature))
	out = append(out, region...)
	out = append(out, f.Ciphertext...)
	out = append(out, f.Signature[:]...)
	return out
}

// Decode parses a wire frame previously produced by Encode.
func Decode(buf []byte) (Frame, error) {
	if len(buf) < headerRegionSize+4+64 {
		return Frame{}, ErrShortFrame
	}
	var f Frame
	f.Version = buf[0]
	copy(f.SourceClusterID[:], buf[1:17])
	copy(f.DestClusterID[:], buf[17:33])
	copy(f.ServiceIDHash[:], buf[33:65])
	f.Nonce = binary.BigEndian.Uint64(buf[65:73])
	copy(f.PoHTickRef[:], buf[73:105])
	ctLen := int(binary.BigEndian.Uint32(buf[105:109]))
	if len(buf) < 109+ctLen+64 {
		return Frame{}, ErrShortFrame
	}
	f.Ciphertext = append([]byte(nil), buf[109:109+ctLen]...)
	copy(f.Signature[:], buf[109+ctLen:109+ctLen+64])
	return f, nil
}

// sessionKey derives the AEAD key for (shared, serviceIDHash) per
// §6.2's HKDF construction.
func sessionKey(shared []byte, serviceIDHash [32]byte) ([]byte, error) {
	info := append([]byte(sessionInfoPrefix), serviceIDHash[:]...)
	return primitives.HKDFExpand(shared, info, 32)
}

// aeadNonce builds the 24-byte XChaCha20-Poly1305 nonce deterministically
// from the frame's own replay nonce: the wire layout reserves no
// separate slot for an AEAD nonce, so this core derives one from the
// strictly-increasing per-(source,service) counter already present,
// zero-extended to 24 bytes. Uniqueness per session key follows from
// the nonce's own strict-increase invariant (§6.2's replay rule).
func aeadNonce(frameNonce uint64) []byte {
	nonce := make([]byte, primitives.AEADNonceSize)
	binary.BigEndian.PutUint64(nonce[:8], frameNonce)
	return nonce
}

// Seal builds and signs a frame: it encrypts plaintext under the
// session key derived from senderPriv/peerPub and serviceIDHash, then
// signs the header region with the sender's Ed25519 envelope key.
func Seal(senderX25519 primitives.X25519KeyPair, peerPub [primitives.X25519KeySize]byte, envelopeKey ed25519.PrivateKey, source, dest [16]byte, serviceIDHash [32]byte, nonce uint64, pohTickRef [32]byte, plaintext []byte) (Frame, error) {
	shared, err := primitives.X25519Shared(senderX25519.Private, peerPub)
	if err != nil {
		return Frame{}, err
	}
	key, err := sessionKey(shared, serviceIDHash)
	if err != nil {
		return Frame{}, err
	}

	f := Frame{
		Version:         1,
		SourceClusterID: source,
		DestClusterID:   dest,
		ServiceIDHash:   serviceIDHash,
		Nonce:           nonce,
		PoHTickRef:      pohTickRef,
	}
	ad := f.signedRegion()
	ciphertext, err := primitives.AEADSeal(key, aeadNonce(nonce), plaintext, ad)
	if err != nil {
		return Frame{}, err
	}
	f.Ciphertext = ciphertext
	// The signed region's length field must reflect the now-known
	// ciphertext size before signing.
	sig := primitives.Ed25519Sign(envelopeKey, f.signedRegion())
	copy(f.Signature[:], sig)
	return f, nil
}

// Open verifies f's Ed25519 signature against senderEnvelopeKey, then
// decrypts its ciphertext using the session key derived from
// receiverPriv and the sender's X25519 public key.
func Open(f Frame, senderEnvelopeKey ed25519.PublicKey, receiverX25519 primitives.X25519KeyPair, senderX25519Pub [primitives.X25519KeySize]byte) ([]byte, error) {
	if !primitives.Ed25519Verify(senderEnvelopeKey, f.signedRegion(), f.Signature[:]) {
		return nil, ErrBadSignature
	}
	shared, err := primitives.X25519Shared(receiverX25519.Private, senderX25519Pub)
	if err != nil {
		return nil, err
	}
	key, err := sessionKey(shared, f.ServiceIDHash)
	if err != nil {
		return nil, err
	}
	return primitives.AEADOpen(key, aeadNonce(f.Nonce), f.Ciphertext, f.signedRegion())
}

// ReplayWindow tracks the strictly-increasing nonce per (source,
// service) pair with a tolerance window, per §6.2's replay rule. It
// mirrors poh.Chain's admission discipline at the transport layer.
type ReplayWindow struct {
	window    uint64
	lastNonce map[[48]byte]uint64
}

// NewReplayWindow returns a tracker with the given tolerance window
// (<= 64 per §6.2).
func NewReplayWindow(window uint64) *ReplayWindow {
	return &ReplayWindow{window: window, lastNonce: make(map[[48]byte]uint64)}
}

func replayKey(source, dest [16]byte, serviceIDHash [32]byte) [48]byte {
	var k [48]byte
	copy(k[0:16], source[:])
	copy(k[16:32], serviceIDHash[:16])
	copy(k[32:48], serviceIDHash[16:32])
	_ = dest // destination does not scope replay state per §6.2 ("per (source, service)")
	return k
}

// ErrReplayed is returned by Admit when nonce violates the
// per-(source,service) monotonic window.
var ErrReplayed = errors.New("bpci: nonce outside replay window")

// Admit checks f's nonce against the sender's prior state and, if
// valid, records it as the new high-water mark.
func (r *ReplayWindow) Admit(f Frame) error {
	key := replayKey(f.SourceClusterID, f.DestClusterID, f.ServiceIDHash)
	last, ok := r.lastNonce[key]
	if ok {
		if f.Nonce <= last {
			return ErrReplayed
		}
		if f.Nonce-last > r.window {
			return ErrReplayed
		}
	}
	r.lastNonce[key] = f.Nonce
	return nil
}
