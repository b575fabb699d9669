// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package block

import (
	"testing"
	"time"

	"github.com/luxfi/bftcore/da"
	"github.com/luxfi/bftcore/header"
	"github.com/luxfi/bftcore/ibft"
	"github.com/luxfi/bftcore/internal/clock"
	"github.com/luxfi/bftcore/internal/log"
	"github.com/luxfi/bftcore/lightclient"
	"github.com/luxfi/bftcore/primitives"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*ibft.Engine, *header.Directory) {
	t.Helper()
	hasher := primitives.NewHasher(primitives.HashBlake3)
	bls, err := primitives.GenerateBLS(make([]byte, 32))
	require.NoError(t, err)
	vrf, err := primitives.GenerateVRF([32]byte{7})
	require.NoError(t, err)

	set := header.Set{Entries: []header.Entry{{Index: 0, BLSPublicKey: bls.Public, VRFPublicKey: vrf.Public}}}
	dir := header.NewDirectory(hasher, set)
	cfg := ibft.Config{SelfIndex: 0, InitialTimeout: time.Second, TimeoutCap: 8 * time.Second}
	engine := ibft.NewEngine(cfg, hasher, dir, clock.NewManual(0), log.NewNoOpLogger(), bls.Secret, vrf)
	return engine, dir
}

func TestReporterReportsHealth(t *testing.T) {
	engine, dir := newTestEngine(t)
	incl := lightclient.NewCache()
	incl.Observe(10, [32]byte{1})

	tracker := da.NewTracker(da.Config{DataShards: 8, ParityShards: 4, Samples: 20, Threshold: 3})
	tracker.Record(10, true)
	tracker.Record(10, false)
	tracker.Record(10, false)

	r := NewReporter(engine, dir, incl, tracker)
	r.Finalized(9)

	h := r.Report(12, 10)
	require.Equal(t, uint64(9), h.LastFinalizedHeight)
	require.Equal(t, uint64(3), h.LinkageDepth)
	require.Equal(t, 1, h.ActiveValidators)
	require.Equal(t, 1, h.PendingObligations)
	require.InDelta(t, 2.0/3.0, h.DASampleMissRate, 1e-9)
}

func TestReporterFinalizedMonotonic(t *testing.T) {
	engine, dir := newTestEngine(t)
	r := NewReporter(engine, dir, nil, nil)
	r.Finalized(5)
	r.Finalized(3)
	require.Equal(t, uint64(5), r.lastFinalized)
}
