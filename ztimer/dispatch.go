package ztimer

// onAlarm is bound to the backend as the alarm-fired callback. It runs
// whatever goroutine the backend delivers alarms from — treat it as
// interrupt context.
func (d *Device) onAlarm() {
	nested := d.depth.Load() > 0
	d.depth.Add(1)
	defer d.depth.Add(-1)

	d.mu.Lock()
	d.backend.CancelAlarm()
	d.backend.CancelOverflowAlarm()
	n := d.backend.Now()
	d.advanceHead((n - d.reference) & 0xFFFF)
	d.reference = n
	if d.head != nil {
		d.head.offset = 0
	}
	d.drain()
	n = d.backend.Now()
	d.rearm(n)
	d.reference = n
	traceEvent("dispatch.alarm", "now", n, "nested", nested)
	assertInvariants(d)
	d.mu.Unlock()

	if !nested && d.AfterDispatch != nil {
		d.AfterDispatch()
	}
}

// onOverflow is bound to the backend as the overflow-fired callback: the
// counter has just wrapped from 0xFFFF to 0.
func (d *Device) onOverflow() {
	nested := d.depth.Load() > 0
	d.depth.Add(1)
	defer d.depth.Add(-1)

	d.mu.Lock()
	d.backend.CancelAlarm()
	d.backend.CancelOverflowAlarm()
	elapsed := uint32(0x10000) - (d.reference & 0xFFFF)
	d.advanceHead(elapsed)
	d.drain()
	n := d.backend.Now()
	d.rearm(n)
	d.reference = n
	traceEvent("dispatch.overflow", "now", n, "nested", nested)
	assertInvariants(d)
	d.mu.Unlock()

	if !nested && d.AfterDispatch != nil {
		d.AfterDispatch()
	}
}

// drain runs the due prefix of the list: every entry left at offset zero by
// the caller. It must be called with d.mu held; it releases the lock around
// each callback invocation and reacquires it before returning, so a
// callback is free to call Arm/Disarm on any timer, including itself,
// without deadlocking (see SPEC_FULL.md §13).
func (d *Device) drain() {
	for d.head != nil && d.head.offset == 0 {
		t := d.head
		d.head = t.next
		t.next = nil
		t.device = nil

		before := d.backend.Now()
		cb, arg := t.Callback, t.Arg

		d.mu.Unlock()
		if cb != nil {
			cb(arg)
		}
		d.mu.Lock()

		after := d.backend.Now()
		d.advanceHead((after - before) & 0xFFFF)
	}
}
