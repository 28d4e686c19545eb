//go:build linux

package ztimerctl

import (
	"time"

	"ztimer-go/backend/softclock"
	"ztimer-go/backend/unixhr"
	"ztimer-go/errors"
	"ztimer-go/logging"
	"ztimer-go/ztimer"
)

// selectBackend constructs the live clock backend named by name. "auto"
// prefers backend/unixhr (a real kernel timerfd) and falls back to
// backend/softclock if the kernel resource can't be acquired.
func selectBackend(name string) (ztimer.Backend, func(), error) {
	const tick = time.Millisecond

	switch name {
	case "unixhr":
		c, err := unixhr.New(tick)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { c.Close() }, nil

	case "softclock":
		c := softclock.New(tick)
		return c, func() {}, nil

	case "auto", "":
		c, err := unixhr.New(tick)
		if err != nil {
			logging.Warn("unixhr unavailable, falling back to softclock", "error", err)
			return softclock.New(tick), func() {}, nil
		}
		return c, func() { c.Close() }, nil

	default:
		return nil, nil, errors.New(errors.ErrInvalidConfig, "selectBackend", "unknown backend: "+name)
	}
}
