// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package poh

import "github.com/luxfi/bftcore/primitives"

// Config is the PoH service's boot-time parameter set (§10's explicit
// config-struct convention — no global singleton).
type Config struct {
	// Window is W, the rolling anti-replay window; deployments must set
	// W >= 64 per §4.4.
	Window uint64
}

// Service advances per-sender nonce chains and assembles the admitted
// ticks for the height currently being built into poh_root (§4.4). It
// is driven by a single admission path per height, matching §9's
// "N_sender worker tasks, one per contending sender bucket" model at
// the level of one bucket; a production deployment shards Admit calls
// across sender buckets and serialises each bucket's own chain, which
// this type's per-sender map already provides safe isolation for.
type Service struct {
	cfg    Config
	hasher *primitives.Hasher
	chains map[string]*Chain

	height    uint64
	seed      []byte
	seedProof []byte
	entries   []Entry
}

// NewService returns a Service with no admitted senders yet.
func NewService(cfg Config, hasher *primitives.Hasher) *Service {
	return &Service{cfg: cfg, hasher: hasher, chains: make(map[string]*Chain)}
}

// StartHeight derives height's PoH seed from the proposer's VRF key and
// the previous header's PoH root, and clears the admission buffer for
// the new height.
func (s *Service) StartHeight(kp primitives.VRFKeyPair, height uint64, prevTick [32]byte) error {
	proof, seed, err := DeriveSeed(kp, height, prevTick)
	if err != nil {
		return err
	}
	s.startHeightWithSeed(height, seed, proof)
	return nil
}

// StartHeightWithSeed seeds height from an already-published (seed,
// proof) pair, for validators that verify the proposer's seed rather
// than deriving their own.
func (s *Service) StartHeightWithSeed(height uint64, seed, proof []byte) {
	s.startHeightWithSeed(height, seed, proof)
}

func (s *Service) startHeightWithSeed(height uint64, seed, proof []byte) {
	s.height = height
	s.seed = seed
	s.seedProof = proof
	s.entries = nil
}

// Admit advances senderID's chain with nonce and, on success, appends
// the resulting tick to the current height's admission buffer.
func (s *Service) Admit(senderID string, nonce uint64) (Entry, error) {
	chain, ok := s.chains[senderID]
	if !ok {
		chain = NewChain()
		s.chains[senderID] = chain
	}
	tail, prevTail, err := chain.Advance(s.hasher, nonce, s.cfg.Window)
	if err != nil {
		return Entry{}, err
	}
	entry := Entry{SenderID: senderID, Nonce: nonce, PrevTail: prevTail, Tail: tail, Tick: ComputeTick(s.hasher, s.seed, tail)}
	s.entries = append(s.entries, entry)
	return entry, nil
}

// Entries returns the ticks admitted so far at the current height, in
// insertion order — the order Merkleised into Root.
func (s *Service) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Root computes poh_root over the current height's admitted ticks.
func (s *Service) Root() [32]byte {
	return TicksRoot(s.hasher, s.entries)
}

// Seed returns the current height's derived PoH seed and the VRF proof
// that lets any verifier recompute it without the secret key.
func (s *Service) Seed() (seed, proof []byte) {
	return s.seed, s.seedProof
}

// Height reports the height the service is currently admitting ticks
// for.
func (s *Service) Height() uint64 { return s.height }

// TicksRoot Merkleises entries' tick hashes in their given order. Both
// the Service (building a header) and a light client (recomputing
// poh_root from witnesses) call this over the same ordered set.
func TicksRoot(hasher *primitives.Hasher, entries []Entry) [32]byte {
	leaves := make([][]byte, len(entries))
	for i, e := range entries {
		leaves[i] = append([]byte{}, e.Tick[:]...)
	}
	return hasher.MerkleRoot(leaves)
}
