// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ibft

import (
	"sync"

	"github.com/luxfi/bftcore/evidence"
)

// EquivocationTracker stores the last COMMIT seen per (validator,
// height) and reports a slashing-evidence record the instant a
// validator signs two different header hashes at the same height
// (§4.3). It never retries the offending message — the caller drops it
// after recording evidence, per §7's "consensus violation" handling.
type EquivocationTracker struct {
	mu   sync.Mutex
	last map[equivKey]CommitMsg
}

type equivKey struct {
	validator uint32
	height    uint64
}

// NewEquivocationTracker returns an empty tracker.
func NewEquivocationTracker() *EquivocationTracker {
	return &EquivocationTracker{last: make(map[equivKey]CommitMsg)}
}

// Observe records msg from signer and returns (evidence, true) if this
// contradicts a previously observed COMMIT from the same signer at the
// same height for a different header hash.
func (t *EquivocationTracker) Observe(signer uint32, msg CommitMsg) (evidence.Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := equivKey{validator: signer, height: msg.Height}
	prev, seen := t.last[key]
	if !seen {
		t.last[key] = msg
		return evidence.Record{}, false
	}
	if prev.HeaderHash == msg.HeaderHash {
		// Duplicate gossip of the identical COMMIT — not equivocation.
		return evidence.Record{}, false
	}

	rec := evidence.Record{
		Kind:       evidence.KindEquivocation,
		Height:     msg.Height,
		Validators: []uint32{signer},
		ArtifactA:  prev.HeaderHash,
		ArtifactB:  msg.HeaderHash,
		Detail:     append(append([]byte{}, prev.Signature...), msg.Signature...),
	}
	return rec, true
}

// Forget drops tracked state for heights at or below upTo, called as
// the chain advances so the tracker's memory stays bounded.
func (t *EquivocationTracker) Forget(upTo uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k := range t.last {
		if k.height <= upTo {
			delete(t.last, k)
		}
	}
}
