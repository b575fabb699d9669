// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package validator maps the validator-set indices header.Set commits
// to the operational detail the gossip and BPCI layers need at
// runtime: a network identity and an Ed25519 envelope key. header.Entry
// intentionally carries only the BLS and VRF keys §3.4/§4.3 require for
// consensus proofs, so the node-wiring layer keeps this binding
// separately rather than growing the consensus-critical struct.
package validator

import (
	"crypto/ed25519"
	"fmt"
	"sync"

	"github.com/luxfi/ids"
	"github.com/mr-tron/base58"
)

// Endpoint is one validator's network and messaging identity: where to
// dial it for gossip/BPCI delivery and which key verifies its envelope
// signatures (§6.2, §6.3).
type Endpoint struct {
	NodeID      ids.NodeID
	Address     string
	EnvelopeKey ed25519.PublicKey
}

// DisplayID renders ep's envelope key as base58, the pack's standard
// human-facing encoding for opaque identity bytes (CB58/base58
// rendering of ids.ID in the teacher's formatting conventions), for
// operator-facing output such as cmd/node's health and evidence
// surfaces.
func (ep Endpoint) DisplayID() string {
	return base58.Encode(ep.EnvelopeKey)
}

// Registry is a concurrency-safe index -> Endpoint table, populated as
// the operator learns peers (via configuration or a future discovery
// mechanism) and consulted by gossip transport wiring and cmd/node's
// health surface.
type Registry struct {
	mu      sync.RWMutex
	entries map[uint32]Endpoint
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[uint32]Endpoint)}
}

// Register binds index to ep, overwriting any prior binding.
func (r *Registry) Register(index uint32, ep Endpoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[index] = ep
}

// Remove drops index's binding, e.g. once an epoch swap retires it.
func (r *Registry) Remove(index uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, index)
}

// Lookup returns index's bound Endpoint.
func (r *Registry) Lookup(index uint32) (Endpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ep, ok := r.entries[index]
	return ep, ok
}

// Indices returns every currently bound validator index, unordered.
func (r *Registry) Indices() []uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]uint32, 0, len(r.entries))
	for idx := range r.entries {
		out = append(out, idx)
	}
	return out
}

// Len returns the number of bound validators.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// MustLookup is Lookup but returns a descriptive error instead of ok
// for callers that treat a missing binding as fatal to the operation.
func (r *Registry) MustLookup(index uint32) (Endpoint, error) {
	ep, ok := r.Lookup(index)
	if !ok {
		return Endpoint{}, fmt.Errorf("validator: no endpoint bound for index %d", index)
	}
	return ep, nil
}
