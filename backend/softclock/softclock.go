// Package softclock implements a ztimer.Backend entirely in Go, using a
// goroutine and a time.Timer to stand in for the hardware counter and
// alarm interrupt spec.md describes. It is the portable fallback backend:
// it needs no kernel timer facility, just a monotonic wall clock, so it
// runs anywhere the Go runtime does.
package softclock

import (
	"sync"
	"time"

	"ztimer-go/logging"
)

// Clock is a software 16-bit counter running at a fixed tick rate. Now()
// reports elapsed ticks since the clock was created, truncated to 16 bits;
// SetAlarm/SetOverflowAlarm program a time.Timer for the requested
// deadline and deliver it on its own goroutine, exactly as a real ISR
// would deliver independently of whatever the caller's goroutine is doing.
type Clock struct {
	tick  time.Duration
	start time.Time

	mu         sync.Mutex
	alarmTimer *time.Timer
	overflowT  *time.Timer
	onAlarm    func()
	onOverflow func()
}

// New returns a Clock ticking once every tick. A tick of a few hundred
// microseconds to a few milliseconds is typical; very small ticks burn CPU
// rearming the wrap timer, very large ones lose resolution.
func New(tick time.Duration) *Clock {
	return &Clock{tick: tick, start: time.Now()}
}

// Now implements ztimer.Backend.
func (c *Clock) Now() uint32 {
	elapsed := time.Since(c.start)
	ticks := uint64(elapsed / c.tick)
	return uint32(ticks & 0xFFFF)
}

// BindCallbacks implements ztimer.Backend.
func (c *Clock) BindCallbacks(onAlarm, onOverflow func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAlarm = onAlarm
	c.onOverflow = onOverflow
}

// SetAlarm implements ztimer.Backend.
func (c *Clock) SetAlarm(target uint32) {
	d := c.durationUntil(target)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.alarmTimer != nil {
		c.alarmTimer.Stop()
	}
	cb := c.onAlarm
	c.alarmTimer = time.AfterFunc(d, func() {
		if cb != nil {
			cb()
		}
	})
}

// CancelAlarm implements ztimer.Backend.
func (c *Clock) CancelAlarm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.alarmTimer != nil {
		c.alarmTimer.Stop()
		c.alarmTimer = nil
	}
}

// SetOverflowAlarm implements ztimer.Backend.
func (c *Clock) SetOverflowAlarm() {
	now := c.Now()
	remaining := (uint32(0x10000) - now) & 0xFFFF
	if remaining == 0 {
		remaining = 0x10000
	}
	d := time.Duration(remaining) * c.tick

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.overflowT != nil {
		c.overflowT.Stop()
	}
	cb := c.onOverflow
	c.overflowT = time.AfterFunc(d, func() {
		if cb != nil {
			cb()
		}
	})
}

// CancelOverflowAlarm implements ztimer.Backend.
func (c *Clock) CancelOverflowAlarm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.overflowT != nil {
		c.overflowT.Stop()
		c.overflowT = nil
	}
}

// durationUntil returns how long to wait for the counter to reach target,
// handling the wrap the same way the hardware comparator would: target is
// always in the future by definition, by at most one wrap.
func (c *Clock) durationUntil(target uint32) time.Duration {
	now := c.Now()
	delta := (target - now) & 0xFFFF
	if delta == 0 {
		logging.Debug("softclock: alarm target equals now, firing immediately", "target", target)
	}
	return time.Duration(delta) * c.tick
}
