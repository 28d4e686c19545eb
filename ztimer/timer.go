package ztimer

// Callback is invoked when a Timer fires. It runs on whatever goroutine the
// backend delivers its alarm from — treat it as interrupt-context code: keep
// it short, and do not assume any other lock is held.
type Callback func(arg any)

// Timer is a single pending one-shot timeout. The zero value is ready to
// arm once Callback is set. A Timer is owned by the caller; the scheduler
// never allocates or frees one, it only links and unlinks it.
//
// Do not copy a Timer once it has been armed.
type Timer struct {
	// Callback is invoked with Arg when the timer fires.
	Callback Callback
	// Arg is passed to Callback unchanged.
	Arg any

	next   *Timer
	offset uint32
	device *Device
}

// IsArmed reports whether t is currently pending on some device.
func (t *Timer) IsArmed() bool {
	return t.device != nil
}
