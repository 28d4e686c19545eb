package ztimer

// Arm schedules t to fire after delay counts on d's backend. delay may
// exceed the backend's 16-bit horizon; d spans it by re-arming across
// overflow alarms (§4.3/§4.7).
//
// Arming an already-armed t first disarms it, so Arm is equivalent to
// disarm-then-arm: re-arming a pending timer reschedules it, it does not
// queue a second fire.
func (d *Device) Arm(t *Timer, delay uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := d.backend.Now()
	d.remove(t)
	t.offset = delay
	d.advanceHead((n - d.reference) & 0xFFFF)
	d.insert(t)
	d.reference = n

	if d.head == t {
		d.rearm(n)
	}

	traceEvent("arm", "delay", delay, "now", n)
	assertInvariants(d)
}
