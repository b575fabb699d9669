// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validator

import (
	"sync"

	"github.com/luxfi/bftcore/internal/clock"
)

// Calculator reports a validator's observed uptime ratio: of the rounds
// booked for it through Observe, the fraction during which it was
// marked Connected.
type Calculator interface {
	Connected(index uint32)
	Disconnected(index uint32)
	Observe(index uint32)
	Uptime(index uint32) float64
}

// trackedValidator is one index's connection and observation history.
type trackedValidator struct {
	connectedAt uint64
	connected   bool
	observed    uint64
	total       uint64
}

// LockedCalculator is a mutex-guarded Calculator backed by a Clock, the
// same "locked calculator wrapping a clock" shape the teacher's
// validator/uptime package re-exports from its upstream module, rebuilt
// here in-tree since that module is not part of the retrieved stack.
type LockedCalculator struct {
	mu    sync.Mutex
	clk   clock.Clock
	nodes map[uint32]*trackedValidator
}

// NewLockedCalculator returns a Calculator that tracks observations
// against clk.
func NewLockedCalculator(clk clock.Clock) *LockedCalculator {
	return &LockedCalculator{clk: clk, nodes: make(map[uint32]*trackedValidator)}
}

// Connected marks index as online starting now.
func (c *LockedCalculator) Connected(index uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tv := c.entry(index)
	if !tv.connected {
		tv.connected = true
		tv.connectedAt = c.clk.Now()
	}
}

// Disconnected marks index as offline.
func (c *LockedCalculator) Disconnected(index uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tv, ok := c.nodes[index]; ok {
		tv.connected = false
	}
}

// Observe books one round in which index had an opportunity to
// contribute, incrementing its total and, if connected, its observed
// count.
func (c *LockedCalculator) Observe(index uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tv := c.entry(index)
	tv.total++
	if tv.connected {
		tv.observed++
	}
}

// Uptime returns index's observed/total ratio, or 1.0 for an index
// with no recorded rounds yet (optimistic default, matching the
// teacher's NoOpCalculator convention of never penalising an unseen
// validator).
func (c *LockedCalculator) Uptime(index uint32) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	tv, ok := c.nodes[index]
	if !ok || tv.total == 0 {
		return 1.0
	}
	return float64(tv.observed) / float64(tv.total)
}

func (c *LockedCalculator) entry(index uint32) *trackedValidator {
	tv, ok := c.nodes[index]
	if !ok {
		tv = &trackedValidator{}
		c.nodes[index] = tv
	}
	return tv
}

// NoOpCalculator reports every validator as perfectly available. Used
// where uptime tracking is wired but not yet meaningful, e.g. single-
// validator test deployments.
type NoOpCalculator struct{}

// Connected is a no-op.
func (NoOpCalculator) Connected(uint32) {}

// Disconnected is a no-op.
func (NoOpCalculator) Disconnected(uint32) {}

// Observe is a no-op.
func (NoOpCalculator) Observe(uint32) {}

// Uptime always returns 1.0.
func (NoOpCalculator) Uptime(uint32) float64 { return 1.0 }
