// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package primitives

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// Ed25519 signatures back receipt records (§3.8) and the gossip
// envelope signature (§6.3). golang.org/x/crypto's constant-time
// field arithmetic is reused transitively through crypto/ed25519,
// which on modern Go is built on filippo.io/edwards25519.

// Ed25519KeyPair holds a generated signing key.
type Ed25519KeyPair struct {
	Public  ed25519.PublicKey
	Private ed25519.PrivateKey
}

// GenerateEd25519 generates a fresh key pair.
func GenerateEd25519() (Ed25519KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Ed25519KeyPair{}, fmt.Errorf("primitives: ed25519 keygen: %w", err)
	}
	return Ed25519KeyPair{Public: pub, Private: priv}, nil
}

// Ed25519Sign signs msg with priv.
func Ed25519Sign(priv ed25519.PrivateKey, msg []byte) []byte {
	return ed25519.Sign(priv, msg)
}

// Ed25519Verify reports whether sig is a valid signature by pub over
// msg. Never panics, never returns an error — only a boolean, per the
// §4.1 failure-mode contract.
func Ed25519Verify(pub ed25519.PublicKey, msg, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(pub, msg, sig)
}
