// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package clock supplies the monotonic tick source consensus-critical
// code is required to use instead of reading the wall clock directly.
// Round timeouts, DA challenge timeouts, and anchor observation windows
// all read a Clock rather than time.Now(), so tests can drive them
// deterministically.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock returns a monotonically non-decreasing tick count in
// nanoseconds. It is the only time source permitted inside ibft, poh,
// and da state machines.
type Clock interface {
	Now() uint64
}

// Real is backed by the OS monotonic clock.
type Real struct{}

// NewReal returns a Clock backed by time.Now().
func NewReal() Clock { return Real{} }

// processStart is the epoch Real measures from; time.Since reads its
// monotonic clock reading rather than the wall clock.
var processStart = time.Now()

// Now returns the current monotonic time as nanoseconds since an
// arbitrary epoch fixed at process start.
func (Real) Now() uint64 {
	return uint64(time.Since(processStart))
}

// Manual is a Clock whose value is only advanced by explicit calls,
// for deterministic tests of round timeouts and challenge windows.
type Manual struct {
	nanos atomic.Uint64
}

// NewManual returns a Manual clock starting at the given value.
func NewManual(start uint64) *Manual {
	m := &Manual{}
	m.nanos.Store(start)
	return m
}

// Now returns the current value.
func (m *Manual) Now() uint64 {
	return m.nanos.Load()
}

// Advance moves the clock forward by d and returns the new value.
func (m *Manual) Advance(d time.Duration) uint64 {
	return m.nanos.Add(uint64(d))
}

// Set pins the clock to an absolute value. Used by tests replaying a
// fixed sequence of timestamps.
func (m *Manual) Set(nanos uint64) {
	m.nanos.Store(nanos)
}
