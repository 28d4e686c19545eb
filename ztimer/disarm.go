package ztimer

// Disarm cancels t if it is pending on d. It is a synchronous no-op if t is
// not currently armed on d — including if t's callback has already started
// running but t was unlinked before the call (§5: a disarmed timer whose
// callback has not yet run must still be cancellable by identity, and by
// the time Disarm could observe it, it is no longer in the list at all).
func (d *Device) Disarm(t *Timer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := d.backend.Now()
	d.advanceHead((n - d.reference) & 0xFFFF)
	d.remove(t)
	d.rearm(n)
	d.reference = n

	traceEvent("disarm", "now", n)
	assertInvariants(d)
}
