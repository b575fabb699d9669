// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package da

import (
	"time"

	"github.com/luxfi/bftcore/evidence"
	"github.com/luxfi/bftcore/internal/clock"
)

// Config is the DA engine's boot-time parameter set (§10's explicit
// config-struct convention). Defaults per §4.5: chunk size in
// [256KiB, 512KiB]; RS(k,n) = (8,12) initial or (16,24) mature;
// s=20 initial samples, s=40-60 mature (§4.5's detection invariant D1).
type Config struct {
	DataShards   int
	ParityShards int
	Samples      int           // s
	Threshold    int           // t, t <= s
	Timeout      time.Duration // tau, the per-challenge response deadline
}

// Challenge is one outstanding sample request: a validator asked a
// pinner for (shard_header, shard_bytes) at Index with a Merkle
// opening into the height's da_root, and is waiting up to Timeout for
// a verified reply.
type Challenge struct {
	Height   uint64
	Index    uint32
	DARoot   [32]byte
	deadline uint64
}

// Issue arms a challenge's deadline against clk.
func Issue(clk clock.Clock, height uint64, index uint32, root [32]byte, timeout time.Duration) Challenge {
	return Challenge{Height: height, Index: index, DARoot: root, deadline: clk.Now() + uint64(timeout)}
}

// Expired reports whether clk has passed c's response deadline.
func (c Challenge) Expired(clk clock.Clock) bool {
	return clk.Now() >= c.deadline
}

// Tracker accumulates per-height challenge outcomes and decides when a
// shortfall has crossed the slashing threshold t (§4.5's "if >= t of s
// challenges at height h fail... the shortfall is attributed to the
// signers of h's commit").
type Tracker struct {
	cfg      Config
	failures map[uint64]int
	results  map[uint64]int
}

// NewTracker returns an empty Tracker for cfg.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{cfg: cfg, failures: make(map[uint64]int), results: make(map[uint64]int)}
}

// Record books one challenge outcome at height. ok is true when the
// response's Merkle opening verified against da_root within the
// timeout; false for a missed deadline or a failed opening.
func (t *Tracker) Record(height uint64, ok bool) {
	t.results[height]++
	if !ok {
		t.failures[height]++
	}
}

// Shortfall reports whether height's failure count has reached the
// configured threshold t. It does not require all s samples to have
// reported back: the threshold can be crossed early.
func (t *Tracker) Shortfall(height uint64) bool {
	return t.failures[height] >= t.cfg.Threshold
}

// FailureRate returns height's observed sample failure ratio, for
// operator health reporting (§6.6). It returns 0 for a height with no
// recorded samples yet.
func (t *Tracker) FailureRate(height uint64) float64 {
	total := t.results[height]
	if total == 0 {
		return 0
	}
	return float64(t.failures[height]) / float64(total)
}

// Reset clears height's bookkeeping, called once its challenge window
// closes (successfully or via emitted evidence), so the Tracker does
// not grow unbounded across the chain's lifetime.
func (t *Tracker) Reset(height uint64) {
	delete(t.failures, height)
	delete(t.results, height)
}

// Evidence builds the slashing evidence record for a shortfall at
// height, attributing it to the height's commit signers, once
// Shortfall(height) is true and the recovery window W' has closed
// without the shortfall being cured.
func Evidence(height uint64, shardHash [32]byte, signers []uint32) evidence.Record {
	return evidence.Record{
		Kind:       evidence.KindDAShortfall,
		Height:     height,
		Validators: append([]uint32(nil), signers...),
		ArtifactA:  shardHash,
	}
}
