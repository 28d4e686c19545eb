//go:build !linux

package ztimerctl

import (
	"time"

	"ztimer-go/backend/softclock"
	"ztimer-go/errors"
	"ztimer-go/ztimer"
)

// selectBackend constructs the live clock backend named by name.
// backend/unixhr is Linux-only; off Linux, "auto" and "softclock" both
// resolve to backend/softclock, and "unixhr" is rejected.
func selectBackend(name string) (ztimer.Backend, func(), error) {
	const tick = time.Millisecond

	switch name {
	case "softclock", "auto", "":
		return softclock.New(tick), func() {}, nil
	case "unixhr":
		return nil, nil, errors.WrapWithBackend(nil, errors.ErrUnsupported, "selectBackend", "unixhr")
	default:
		return nil, nil, errors.New(errors.ErrInvalidConfig, "selectBackend", "unknown backend: "+name)
	}
}
