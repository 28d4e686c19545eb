//go:build ztimer_debug

package ztimer

import (
	"fmt"

	"ztimer-go/logging"
)

// armedInspector is implemented by backends that expose their outstanding-
// alarm state for testing, such as ztimertest.MockBackend. assertInvariants
// uses it opportunistically to check I4/I5; a backend that doesn't implement
// it (softclock, unixhr) just skips that part of the check rather than
// forcing the Backend contract to grow a query method every implementation
// must carry.
type armedInspector interface {
	AlarmArmed() (target uint32, armed bool)
	OverflowArmed() bool
}

// assertInvariants walks the list checking I1 (list well-formedness: no
// cycles, every entry's device field points back at d) and I3 (reference
// validity: the counts elapsed since d.reference must not have crossed the
// head's fire time). I2 holds by construction, since Timer.offset is
// unsigned and can never push a fire time backward. When d.backend
// implements armedInspector this also checks I4/I5: exactly one alarm
// outstanding while the list is non-empty, none while it is empty. It is
// compiled in only under the ztimer_debug build tag; callers always hold
// d.mu. A violation panics — this is a programming-error detector, not a
// recoverable condition.
func assertInvariants(d *Device) {
	seen := make(map[*Timer]bool)
	for t := d.head; t != nil; t = t.next {
		if seen[t] {
			panic(fmt.Sprintf("ztimer: cycle detected in timer list at %p", t))
		}
		seen[t] = true
		if t.device != d {
			panic(fmt.Sprintf("ztimer: timer %p in list but device field mismatch", t))
		}
	}

	if d.head != nil {
		n := d.backend.Now()
		elapsed := (n - d.reference) & 0xFFFF
		if elapsed > d.head.offset {
			panic(fmt.Sprintf("ztimer: reference stale: %d counts elapsed but head offset is only %d", elapsed, d.head.offset))
		}
	}

	if ai, ok := d.backend.(armedInspector); ok {
		_, alarmed := ai.AlarmArmed()
		overflowed := ai.OverflowArmed()
		switch {
		case d.head == nil:
			if alarmed || overflowed {
				panic("ztimer: list is empty but an alarm is still armed")
			}
		case alarmed == overflowed:
			panic(fmt.Sprintf("ztimer: expected exactly one outstanding alarm, got alarm=%v overflow=%v", alarmed, overflowed))
		}
	}
}

// traceEvent logs an arm/disarm/dispatch event at debug level. Only
// compiled in under ztimer_debug, alongside assertInvariants, so a
// production build carries neither the allocation nor the branch.
func traceEvent(op string, args ...any) {
	logging.Debug("ztimer: "+op, args...)
}
