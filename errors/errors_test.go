package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{ErrInvalidConfig, "invalid config"},
		{ErrUnsupported, "unsupported"},
		{ErrResource, "resource error"},
		{ErrPermission, "permission denied"},
		{ErrClosed, "backend closed"},
		{ErrInternal, "internal error"},
		{ErrorKind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("ErrorKind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBackendError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *BackendError
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "<nil>",
		},
		{
			name: "full error",
			err: &BackendError{
				Op:      "New",
				Backend: "unixhr",
				Kind:    ErrResource,
				Detail:  "timerfd_create failed",
				Err:     fmt.Errorf("too many open files"),
			},
			expected: "unixhr: New: timerfd_create failed: too many open files",
		},
		{
			name: "without backend",
			err: &BackendError{
				Op:     "SetAlarm",
				Kind:   ErrResource,
				Detail: "timerfd_settime failed",
			},
			expected: "SetAlarm: timerfd_settime failed",
		},
		{
			name: "kind only",
			err: &BackendError{
				Kind: ErrPermission,
			},
			expected: "permission denied",
		},
		{
			name: "with underlying error",
			err: &BackendError{
				Op:   "Now",
				Kind: ErrResource,
				Err:  fmt.Errorf("clock_gettime: EFAULT"),
			},
			expected: "Now: resource error: clock_gettime: EFAULT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("BackendError.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBackendError_Unwrap(t *testing.T) {
	underlying := fmt.Errorf("underlying error")
	err := &BackendError{
		Op:   "test",
		Kind: ErrInternal,
		Err:  underlying,
	}

	if got := err.Unwrap(); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}

	// Test nil error
	var nilErr *BackendError
	if got := nilErr.Unwrap(); got != nil {
		t.Errorf("nil.Unwrap() = %v, want nil", got)
	}
}

func TestBackendError_Is(t *testing.T) {
	err1 := &BackendError{Kind: ErrResource, Op: "test1"}
	err2 := &BackendError{Kind: ErrResource, Op: "test2"}
	err3 := &BackendError{Kind: ErrPermission, Op: "test3"}

	// Same kind should match
	if !err1.Is(err2) {
		t.Error("err1.Is(err2) should be true (same kind)")
	}

	// Different kind should not match
	if err1.Is(err3) {
		t.Error("err1.Is(err3) should be false (different kind)")
	}

	// Non-BackendError should not match
	if err1.Is(fmt.Errorf("some error")) {
		t.Error("err1.Is(fmt.Errorf(...)) should be false")
	}

	// Nil handling
	var nilErr *BackendError
	if !nilErr.Is(nil) {
		t.Error("nil.Is(nil) should be true")
	}
}

func TestNew(t *testing.T) {
	err := New(ErrInvalidConfig, "validate", "tick duration is zero")

	if err.Kind != ErrInvalidConfig {
		t.Errorf("Kind = %v, want %v", err.Kind, ErrInvalidConfig)
	}
	if err.Op != "validate" {
		t.Errorf("Op = %q, want %q", err.Op, "validate")
	}
	if err.Detail != "tick duration is zero" {
		t.Errorf("Detail = %q, want %q", err.Detail, "tick duration is zero")
	}
}

func TestWrap(t *testing.T) {
	underlying := fmt.Errorf("permission denied")
	err := Wrap(underlying, ErrPermission, "open clock device")

	if err.Err != underlying {
		t.Error("Wrapped error should preserve underlying error")
	}
	if err.Kind != ErrPermission {
		t.Errorf("Kind = %v, want %v", err.Kind, ErrPermission)
	}
	if err.Op != "open clock device" {
		t.Errorf("Op = %q, want %q", err.Op, "open clock device")
	}
}

func TestWrapWithBackend(t *testing.T) {
	underlying := fmt.Errorf("not found")
	err := WrapWithBackend(underlying, ErrUnsupported, "New", "unixhr")

	if err.Backend != "unixhr" {
		t.Errorf("Backend = %q, want %q", err.Backend, "unixhr")
	}
}

func TestWrapWithDetail(t *testing.T) {
	underlying := fmt.Errorf("syscall failed")
	err := WrapWithDetail(underlying, ErrResource, "SetAlarm", "timerfd_settime returned EINVAL")

	if err.Detail != "timerfd_settime returned EINVAL" {
		t.Errorf("Detail = %q, want %q", err.Detail, "timerfd_settime returned EINVAL")
	}
}

func TestIsKind(t *testing.T) {
	err := &BackendError{Kind: ErrResource}
	wrapped := fmt.Errorf("wrapped: %w", err)

	if !IsKind(err, ErrResource) {
		t.Error("IsKind(err, ErrResource) should be true")
	}
	if !IsKind(wrapped, ErrResource) {
		t.Error("IsKind(wrapped, ErrResource) should be true")
	}
	if IsKind(err, ErrPermission) {
		t.Error("IsKind(err, ErrPermission) should be false")
	}
	if IsKind(fmt.Errorf("plain error"), ErrResource) {
		t.Error("IsKind(plain error, ErrResource) should be false")
	}
}

func TestGetKind(t *testing.T) {
	err := &BackendError{Kind: ErrClosed}
	wrapped := fmt.Errorf("wrapped: %w", err)

	kind, ok := GetKind(err)
	if !ok || kind != ErrClosed {
		t.Errorf("GetKind(err) = (%v, %v), want (%v, true)", kind, ok, ErrClosed)
	}

	kind, ok = GetKind(wrapped)
	if !ok || kind != ErrClosed {
		t.Errorf("GetKind(wrapped) = (%v, %v), want (%v, true)", kind, ok, ErrClosed)
	}

	_, ok = GetKind(fmt.Errorf("plain error"))
	if ok {
		t.Error("GetKind(plain error) should return false")
	}
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  *BackendError
		kind ErrorKind
	}{
		{"ErrZeroTick", ErrZeroTick, ErrInvalidConfig},
		{"ErrNilCallback", ErrNilCallback, ErrInvalidConfig},
		{"ErrPlatformUnsupported", ErrPlatformUnsupported, ErrUnsupported},
		{"ErrTimerfdCreate", ErrTimerfdCreate, ErrResource},
		{"ErrTimerfdSettime", ErrTimerfdSettime, ErrResource},
		{"ErrClockGettime", ErrClockGettime, ErrResource},
		{"ErrEpollCreate", ErrEpollCreate, ErrResource},
		{"ErrBackendClosed", ErrBackendClosed, ErrClosed},
		{"ErrNotATerminal", ErrNotATerminal, ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("%s.Kind = %v, want %v", tt.name, tt.err.Kind, tt.kind)
			}
			// Ensure Is() works with sentinel errors
			wrapped := Wrap(fmt.Errorf("underlying"), tt.kind, "test")
			if !errors.Is(wrapped, tt.err) {
				t.Errorf("errors.Is(wrapped, %s) should be true", tt.name)
			}
		})
	}
}

func TestErrorChain(t *testing.T) {
	// Test that error chains work correctly with errors.Is and errors.As
	underlying := fmt.Errorf("timerfd_create: too many open files")
	err1 := Wrap(underlying, ErrResource, "New")
	err2 := fmt.Errorf("backend construction failed: %w", err1)

	// errors.Is should find the BackendError in the chain
	if !errors.Is(err2, ErrTimerfdCreate) {
		t.Error("errors.Is should find ErrTimerfdCreate in chain")
	}

	// errors.As should extract the BackendError
	var berr *BackendError
	if !errors.As(err2, &berr) {
		t.Error("errors.As should find BackendError in chain")
	}
	if berr.Op != "New" {
		t.Errorf("berr.Op = %q, want %q", berr.Op, "New")
	}

	// Unwrap should work through the chain
	if errors.Unwrap(err1) != underlying {
		t.Error("Unwrap should return underlying error")
	}
}
