// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lightclient

import "time"

// AnchorState is the highest confirmed external-anchor record a
// verifier has observed across the two independent chains of §6.4:
// "light clients treat a header as economically irreversible once its
// height <= the most recent confirmed anchor... and the hash
// matches". A zero-value AnchorState (no anchor yet observed) accepts
// every header.
type AnchorState struct {
	Height     uint64
	HeaderHash [32]byte
	Confirmed  bool
}

// Accepts implements §4.6 step 7: reject any header below the highest
// confirmed anchor, or whose hash disagrees with the anchor at the
// same height.
func (a AnchorState) Accepts(height uint64, headerHash [32]byte) bool {
	if !a.Confirmed {
		return true
	}
	if height < a.Height {
		return false
	}
	if height == a.Height && headerHash != a.HeaderHash {
		return false
	}
	return true
}

// Advance folds in a newly observed anchor post, keeping the higher of
// the two. A lower or equal-height anchor that disagrees with the
// current one is ignored rather than overwriting it; callers that need
// to detect such a conflict should compare before calling Advance.
func (a AnchorState) Advance(height uint64, headerHash [32]byte) AnchorState {
	if !a.Confirmed || height > a.Height {
		return AnchorState{Height: height, HeaderHash: headerHash, Confirmed: true}
	}
	return a
}

// InboxEntry is one obligation committed to the force-inclusion delay
// inbox on an external chain, per §4.6's "obligations committed to a
// delay inbox on external chain(s) must be included within a delay
// Delta".
type InboxEntry struct {
	FrameHash [32]byte
	PostedAt  time.Time
}

// InboxWatcher tracks force-inclusion entries and reports which have
// overrun their delay window without being resolved locally.
type InboxWatcher struct {
	delay   time.Duration
	pending map[[32]byte]InboxEntry
}

// NewInboxWatcher returns a watcher enforcing delay as the maximum
// time an inbox entry may stay unresolved.
func NewInboxWatcher(delay time.Duration) *InboxWatcher {
	return &InboxWatcher{delay: delay, pending: make(map[[32]byte]InboxEntry)}
}

// Observe records an inbox posting seen on an anchored external chain.
func (w *InboxWatcher) Observe(frameHash [32]byte, postedAt time.Time) {
	if _, ok := w.pending[frameHash]; !ok {
		w.pending[frameHash] = InboxEntry{FrameHash: frameHash, PostedAt: postedAt}
	}
}

// Resolve clears frameHash once the local chain includes it or a
// valid reject-proof covers it.
func (w *InboxWatcher) Resolve(frameHash [32]byte) {
	delete(w.pending, frameHash)
}

// Overdue returns the entries whose delay window has elapsed as of
// now without being resolved, the set the verifier must treat as a
// forced inclusion failure.
func (w *InboxWatcher) Overdue(now time.Time) []InboxEntry {
	var out []InboxEntry
	for _, e := range w.pending {
		if now.Sub(e.PostedAt) >= w.delay {
			out = append(out, e)
		}
	}
	return out
}
