// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ibft

import (
	"time"

	"github.com/luxfi/bftcore/internal/utils"
	safemath "github.com/luxfi/bftcore/internal/utils/math"
)

// Timer tracks the adaptive round-timeout schedule of §4.3/§5: an
// initial duration D, doubled on every failed round up to a cap. It
// reads only the injected clock.Clock, never wall time directly, per
// §9's design note. Snapshots are served from an atomic value so a
// reader task never blocks the single-writer state machine.
type Timer struct {
	initial time.Duration
	cap     time.Duration
	current *utils.Atomic[time.Duration]
	roundAt *utils.Atomic[uint64] // clock reading when the round's timer armed
}

// NewTimer builds a Timer with the given initial duration and cap.
func NewTimer(initial, cap time.Duration) *Timer {
	return &Timer{
		initial: initial,
		cap:     cap,
		current: utils.NewAtomic(initial),
		roundAt: utils.NewAtomic(uint64(0)),
	}
}

// Arm records armedAt (a clock.Clock.Now() reading) as the start of
// the current round's timeout window.
func (t *Timer) Arm(armedAt uint64) {
	t.roundAt.Set(armedAt)
}

// Expired reports whether now has passed the current round's deadline.
// A saturating add guards against a corrupted/adversarial clock
// reading wrapping the deadline back below now.
func (t *Timer) Expired(now uint64) bool {
	deadline, err := safemath.Add64(t.roundAt.Get(), uint64(t.current.Get()))
	if err != nil {
		deadline = ^uint64(0)
	}
	return now >= deadline
}

// Double advances the schedule after a failed round, capping growth.
func (t *Timer) Double() {
	doubled, err := safemath.Mul64(uint64(t.current.Get()), 2)
	next := t.cap
	if err == nil && time.Duration(doubled) <= t.cap {
		next = time.Duration(doubled)
	}
	t.current.Set(next)
}

// Reset returns the schedule to its initial duration, called when a
// height finalises and a fresh round-0 timer begins.
func (t *Timer) Reset() {
	t.current.Set(t.initial)
}

// Current returns the active timeout duration.
func (t *Timer) Current() time.Duration {
	return t.current.Get()
}
