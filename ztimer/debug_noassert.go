//go:build !ztimer_debug

package ztimer

// assertInvariants is a no-op in production builds. Build with -tags
// ztimer_debug to enable the list-invariant checks in debug_assert.go.
func assertInvariants(*Device) {}

// traceEvent is a no-op in production builds; see debug_assert.go.
func traceEvent(string, ...any) {}
