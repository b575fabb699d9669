// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package block adapts the teacher's ChainVM-style health/handler
// surface (originally HealthCheck(context.Context) (interface{},
// error) plus CreateHandlers) to the concrete operator-visible state
// §6.6 requires: linkage depth, last finalised height, current round,
// active validator count, and pending inclusion obligations.
package block

import (
	"github.com/luxfi/bftcore/da"
	"github.com/luxfi/bftcore/header"
	"github.com/luxfi/bftcore/ibft"
	"github.com/luxfi/bftcore/lightclient"
)

// Health is the snapshot cmd/node's `health` command renders (§6.6).
type Health struct {
	LinkageDepth        uint64
	LastFinalizedHeight uint64
	Round               uint64
	ActiveValidators    int
	PendingObligations  int
	DASampleMissRate    float64
}

// Reporter assembles a Health snapshot from the live consensus,
// validator-directory, inclusion-cache, and DA-tracker state, the way
// the teacher's ChainVM.HealthCheck pulls from VM-internal state
// without owning it.
type Reporter struct {
	engine        *ibft.Engine
	dir           *header.Directory
	inclusion     *lightclient.Cache
	da            *da.Tracker
	lastFinalized uint64
}

// NewReporter wires a Reporter to the consensus engine, the active
// validator directory, the inclusion-obligation cache, and the DA
// challenge tracker it reports on.
func NewReporter(engine *ibft.Engine, dir *header.Directory, inclusion *lightclient.Cache, tracker *da.Tracker) *Reporter {
	return &Reporter{engine: engine, dir: dir, inclusion: inclusion, da: tracker}
}

// Finalized records height as the most recently finalised header, for
// LastFinalizedHeight and LinkageDepth reporting.
func (r *Reporter) Finalized(height uint64) {
	if height > r.lastFinalized {
		r.lastFinalized = height
	}
}

// Report renders the current Health snapshot. currentHeight is the
// engine's proposal height (may be ahead of lastFinalized while a
// round is in flight); daHeight selects which height's DA sample
// failure rate is surfaced, typically the last finalised height.
func (r *Reporter) Report(currentHeight uint64, daHeight uint64) Health {
	h := Health{
		LastFinalizedHeight: r.lastFinalized,
		Round:               r.engine.Round(),
		ActiveValidators:    len(r.dir.ActiveSet().Entries),
	}
	if currentHeight >= r.lastFinalized {
		h.LinkageDepth = currentHeight - r.lastFinalized
	}
	if r.inclusion != nil {
		for height := range r.inclusion.Heights() {
			h.PendingObligations += len(r.inclusion.Obligations(height))
		}
	}
	if r.da != nil {
		h.DASampleMissRate = r.da.FailureRate(daHeight)
	}
	return h
}
