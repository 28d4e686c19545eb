package ztimer

import (
	"sync"
	"sync/atomic"
)

// DefaultGuard is the default GUARD margin (see Device.Guard): a small
// number of counts that keeps an alarm from being programmed so close to
// now that the backend would miss it and have to wait a full wrap.
const DefaultGuard = 20

// Device is a scheduler instance bound to one Backend. It owns the head of
// a singly-linked list of pending Timers and the backend counter value
// ("reference") from which the head's offset is measured.
//
// A Device is long-lived: create it once with Init and never tear it down.
// All exported methods are safe to call concurrently with each other and
// with the backend's alarm delivery.
type Device struct {
	backend Backend

	mu        sync.Mutex
	head      *Timer
	reference uint32

	// Guard is the GUARD margin from spec §4.5. Init defaults it to
	// DefaultGuard when left zero.
	Guard uint32

	// AfterDispatch, if set, is called once after each top-level (non-nested)
	// alarm or overflow dispatch completes and the backend has been
	// rearmed. It runs with no lock held. This is the "yield to scheduler"
	// collaborator hook; the core does not require or supply one itself.
	AfterDispatch func()

	// depth counts in-flight dispatches on this device, so a dispatch can
	// tell whether it is nested inside another one already running on a
	// different goroutine.
	depth atomic.Int32
}

// Init binds d to backend: it cancels any outstanding backend alarms,
// empties the pending list, installs d's callbacks into the backend, and
// samples the current count as the initial reference. Call once, before any
// other method.
func (d *Device) Init(backend Backend) {
	d.backend = backend
	d.head = nil
	if d.Guard == 0 {
		d.Guard = DefaultGuard
	}
	backend.CancelAlarm()
	backend.CancelOverflowAlarm()
	backend.BindCallbacks(d.onAlarm, d.onOverflow)
	d.reference = backend.Now()
}

// Now returns the backend's current count, unchanged.
func (d *Device) Now() uint32 {
	return d.backend.Now()
}
