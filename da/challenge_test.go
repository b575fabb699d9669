// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package da

import (
	"testing"
	"time"

	"github.com/luxfi/bftcore/evidence"
	"github.com/luxfi/bftcore/internal/clock"
	"github.com/stretchr/testify/require"
)

func TestChallengeExpiredAfterTimeout(t *testing.T) {
	clk := clock.NewManual(1000)
	c := Issue(clk, 10, 3, [32]byte{1}, 200*time.Millisecond)
	require.False(t, c.Expired(clk))

	clk.Advance(200 * time.Millisecond)
	require.True(t, c.Expired(clk))
}

func TestTrackerShortfallAtThreshold(t *testing.T) {
	cfg := Config{Samples: 20, Threshold: 5}
	tr := NewTracker(cfg)

	for i := 0; i < 4; i++ {
		tr.Record(10, false)
	}
	require.False(t, tr.Shortfall(10))

	tr.Record(10, false)
	require.True(t, tr.Shortfall(10))
}

func TestTrackerResetClearsHeight(t *testing.T) {
	cfg := Config{Samples: 20, Threshold: 1}
	tr := NewTracker(cfg)
	tr.Record(10, false)
	require.True(t, tr.Shortfall(10))

	tr.Reset(10)
	require.False(t, tr.Shortfall(10))
}

func TestEvidenceBuildsDAShortfallRecord(t *testing.T) {
	shardHash := [32]byte{7}
	signers := []uint32{2, 5}
	rec := Evidence(42, shardHash, signers)
	require.Equal(t, evidence.KindDAShortfall, rec.Kind)
	require.Equal(t, uint64(42), rec.Height)
	require.Equal(t, signers, rec.Validators)
	require.Equal(t, shardHash, rec.ArtifactA)
}
