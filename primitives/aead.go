// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package primitives

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"hash"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

func newSHA256() hash.Hash { return sha256.New() }

// AEAD seal/open (XChaCha20-Poly1305, 24-byte nonce) and HKDF-SHA256
// back the BPCI frame's session encryption (§6.2). X25519 key
// agreement is exposed here too so bpci/frame.go never touches raw
// curve arithmetic directly.

const (
	// X25519KeySize is the size of both public and private X25519 keys.
	X25519KeySize = 32
	// AEADNonceSize is the XChaCha20-Poly1305 nonce size (§6.2).
	AEADNonceSize = chacha20poly1305.NonceSizeX
)

var ErrAEADOpenFailed = errors.New("primitives: aead open failed")

// X25519KeyPair is an ephemeral or static Diffie-Hellman key pair.
type X25519KeyPair struct {
	Public  [X25519KeySize]byte
	Private [X25519KeySize]byte
}

// GenerateX25519 generates a fresh ephemeral key pair.
func GenerateX25519() (X25519KeyPair, error) {
	var kp X25519KeyPair
	if _, err := io.ReadFull(rand.Reader, kp.Private[:]); err != nil {
		return X25519KeyPair{}, err
	}
	pub, err := curve25519.X25519(kp.Private[:], curve25519.Basepoint)
	if err != nil {
		return X25519KeyPair{}, err
	}
	copy(kp.Public[:], pub)
	return kp, nil
}

// X25519Shared computes the shared secret between a local private key
// and a peer's public key.
func X25519Shared(priv, peerPub [X25519KeySize]byte) ([]byte, error) {
	return curve25519.X25519(priv[:], peerPub[:])
}

// HKDFExpand derives keyLen bytes from shared secret material with
// context-separated info, per §6.2's
// `HKDF(X25519_shared, "BPCI-AEAD" || service_id_hash)`.
func HKDFExpand(secret, info []byte, keyLen int) ([]byte, error) {
	r := hkdf.New(newSHA256, secret, nil, info)
	out := make([]byte, keyLen)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

// AEADSeal encrypts plaintext with associated data ad under key, using
// the caller-supplied 24-byte nonce (any other length is rejected), and
// returns ciphertext||tag; the nonce is not included in the output.
func AEADSeal(key, nonce, plaintext, ad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != AEADNonceSize {
		return nil, errors.New("primitives: aead nonce must be 24 bytes")
	}
	return aead.Seal(nil, nonce, plaintext, ad), nil
}

// AEADOpen decrypts and authenticates ciphertext, returning the
// plaintext or ErrAEADOpenFailed. Never panics on malformed input.
func AEADOpen(key, nonce, ciphertext, ad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != AEADNonceSize {
		return nil, ErrAEADOpenFailed
	}
	out, err := aead.Open(nil, nonce, ciphertext, ad)
	if err != nil {
		return nil, ErrAEADOpenFailed
	}
	return out, nil
}
