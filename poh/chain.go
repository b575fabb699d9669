// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package poh implements the Proof-of-History tick service (§3.6, §4.4):
// per-sender nonce chains binding a submitter's admitted frames into a
// hash chain, VRF-seeded per-height tick derivation, and Merkleisation
// of the ticks admitted at a height into the header's PoH root.
package poh

import (
	"encoding/binary"
	"errors"

	"github.com/luxfi/bftcore/primitives"
)

// domainNonceChain tags the per-sender hash-chain link hash. §3.2
// reserves tags up to 0x14; this repo extends the scheme the same way
// evidence/record.go does, with its own tag outside that range.
const domainNonceChain byte = 0x21

var (
	// ErrNonceNotIncreasing rejects a nonce that does not strictly
	// exceed the sender's last admitted nonce (§4.4).
	ErrNonceNotIncreasing = errors.New("poh: nonce must strictly increase")
	// ErrNonceOutsideWindow rejects a nonce that jumps further ahead
	// than the configured anti-replay window W allows.
	ErrNonceOutsideWindow = errors.New("poh: nonce outside anti-replay window")
)

// Chain is one sender's PoH nonce chain: NC_0 = 0^32, NC_i = H(NC_{i-1}
// ‖ nonce_i). It has no domain-tag reservation in §3.2's table, so this
// core hashes the link under its own domainNonceChain tag rather than
// leaving it untagged.
type Chain struct {
	tail      [32]byte
	lastNonce uint64
	started   bool
}

// NewChain returns a chain at its genesis tail, NC_0 = 0^32.
func NewChain() *Chain {
	return &Chain{}
}

// Tail returns the chain's current NC_i.
func (c *Chain) Tail() [32]byte { return c.tail }

// LastNonce reports the most recently admitted nonce, if any.
func (c *Chain) LastNonce() (uint64, bool) { return c.lastNonce, c.started }

// Advance admits nonce onto the chain, enforcing the rolling anti-replay
// window W (§4.4): nonce must strictly exceed the last admitted one and
// may not skip ahead by more than window. It returns the new tail and
// the prior tail (the one-hop witness linking the new tick back toward
// NC_0).
func (c *Chain) Advance(hasher *primitives.Hasher, nonce, window uint64) (newTail, prevTail [32]byte, err error) {
	if c.started {
		if nonce <= c.lastNonce {
			return [32]byte{}, [32]byte{}, ErrNonceNotIncreasing
		}
		if nonce-c.lastNonce > window {
			return [32]byte{}, [32]byte{}, ErrNonceOutsideWindow
		}
	}
	prevTail = c.tail
	var nonceBuf [8]byte
	binary.BigEndian.PutUint64(nonceBuf[:], nonce)
	newTail = hasher.Sum(domainNonceChain, prevTail[:], nonceBuf[:])

	c.tail = newTail
	c.lastNonce = nonce
	c.started = true
	return newTail, prevTail, nil
}

// VerifyLink checks that tail = H(domainNonceChain ‖ prevTail ‖ nonce),
// the one-hop chain-link check a light client performs when auditing a
// tick witness.
func VerifyLink(hasher *primitives.Hasher, prevTail [32]byte, nonce uint64, tail [32]byte) bool {
	var nonceBuf [8]byte
	binary.BigEndian.PutUint64(nonceBuf[:], nonce)
	return hasher.Sum(domainNonceChain, prevTail[:], nonceBuf[:]) == tail
}
