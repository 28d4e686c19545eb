package ztimer

// advanceHead subtracts delta from the head's offset, carrying any
// remainder into subsequent entries. Entries whose cumulative offset is
// consumed by delta are left at offset zero — a contiguous due prefix the
// caller (arm, disarm, or a dispatch loop) is responsible for interpreting.
// advanceHead never dispatches anything itself.
//
// Callers compute delta as (now - reference) & 0xFFFF, which is always
// below 0x10000; the overflow handler is the one caller that can pass a
// full 0x10000-count epoch, which this loop handles identically.
func (d *Device) advanceHead(delta uint32) {
	t := d.head
	for t != nil && delta > 0 {
		if delta >= t.offset {
			delta -= t.offset
			t.offset = 0
			t = t.next
		} else {
			t.offset -= delta
			delta = 0
		}
	}
}

// insert splices e into the list in ascending fire-time order. Entries tied
// with e's fire time are kept before it, giving FIFO dispatch order among
// same-time timers.
func (d *Device) insert(e *Timer) {
	var sum uint32
	var prev *Timer
	cur := d.head

	for cur != nil && sum+cur.offset <= e.offset {
		sum += cur.offset
		prev = cur
		cur = cur.next
	}

	e.offset -= sum
	if cur != nil {
		cur.offset -= e.offset
	}
	e.next = cur
	e.device = d

	if prev == nil {
		d.head = e
	} else {
		prev.next = e
	}
}

// remove unlinks e from the list, if present, folding its offset into its
// successor so the rest of the list keeps its relative-offset invariant.
// It is a no-op if e is not in this device's list.
func (d *Device) remove(e *Timer) {
	var prev *Timer
	cur := d.head
	for cur != nil {
		if cur == e {
			if cur.next != nil {
				cur.next.offset += cur.offset
			}
			if prev == nil {
				d.head = cur.next
			} else {
				prev.next = cur.next
			}
			cur.next = nil
			cur.device = nil
			return
		}
		prev = cur
		cur = cur.next
	}
}
