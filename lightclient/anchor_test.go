// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lightclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAnchorStateAcceptsWhenUnconfirmed(t *testing.T) {
	var a AnchorState
	require.True(t, a.Accepts(100, [32]byte{1}))
}

func TestAnchorStateRejectsBelowConfirmedHeight(t *testing.T) {
	a := AnchorState{Height: 95, HeaderHash: [32]byte{1}, Confirmed: true}
	require.False(t, a.Accepts(90, [32]byte{2}))
}

func TestAnchorStateRejectsHashDisagreementAtSameHeight(t *testing.T) {
	a := AnchorState{Height: 95, HeaderHash: [32]byte{1}, Confirmed: true}
	require.False(t, a.Accepts(95, [32]byte{2}))
	require.True(t, a.Accepts(95, [32]byte{1}))
}

func TestAnchorStateAcceptsHeightsAboveConfirmed(t *testing.T) {
	a := AnchorState{Height: 95, HeaderHash: [32]byte{1}, Confirmed: true}
	require.True(t, a.Accepts(96, [32]byte{2}))
}

func TestAnchorStateAdvanceKeepsHigher(t *testing.T) {
	a := AnchorState{Height: 95, HeaderHash: [32]byte{1}, Confirmed: true}
	advanced := a.Advance(90, [32]byte{9})
	require.Equal(t, a, advanced)

	advanced = a.Advance(100, [32]byte{9})
	require.Equal(t, uint64(100), advanced.Height)
	require.Equal(t, [32]byte{9}, advanced.HeaderHash)
}

func TestInboxWatcherOverdueAfterDelay(t *testing.T) {
	w := NewInboxWatcher(10 * time.Minute)
	posted := time.Now()
	w.Observe([32]byte{1}, posted)

	require.Empty(t, w.Overdue(posted.Add(5*time.Minute)))
	require.Len(t, w.Overdue(posted.Add(11*time.Minute)), 1)
}

func TestInboxWatcherResolveClearsEntry(t *testing.T) {
	w := NewInboxWatcher(time.Minute)
	posted := time.Now()
	w.Observe([32]byte{1}, posted)
	w.Resolve([32]byte{1})
	require.Empty(t, w.Overdue(posted.Add(time.Hour)))
}
