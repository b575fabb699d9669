// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validator

import (
	"testing"

	"github.com/luxfi/bftcore/internal/clock"
	"github.com/stretchr/testify/require"
)

func TestLockedCalculatorUptimeDefaultsToOne(t *testing.T) {
	c := NewLockedCalculator(clock.NewManual(0))
	require.Equal(t, 1.0, c.Uptime(1))
}

func TestLockedCalculatorTracksObservations(t *testing.T) {
	c := NewLockedCalculator(clock.NewManual(0))
	c.Connected(1)
	c.Observe(1)
	c.Observe(1)
	c.Disconnected(1)
	c.Observe(1)
	require.InDelta(t, 2.0/3.0, c.Uptime(1), 1e-9)
}

func TestNoOpCalculatorAlwaysOne(t *testing.T) {
	var c NoOpCalculator
	c.Connected(1)
	c.Observe(1)
	require.Equal(t, 1.0, c.Uptime(1))
}
