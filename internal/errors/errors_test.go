package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNdkError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *NdkError
		expected string
	}{
		{
			name:     "message only",
			err:      &NdkError{Message: "something failed"},
			expected: "something failed",
		},
		{
			name:     "with path",
			err:      &NdkError{Path: "bin/clang", Message: "cannot set executable bit"},
			expected: "bin/clang: cannot set executable bit",
		},
		{
			name:     "with path and cause",
			err:      &NdkError{Path: "https://example.com/a.zip", Message: "download failed", Cause: errors.New("404")},
			expected: "https://example.com/a.zip: download failed: 404",
		},
		{
			name:     "cause without path",
			err:      &NdkError{Message: "wrapped", Cause: errors.New("inner")},
			expected: "wrapped: inner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNdkError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &NdkError{
		Message: "wrapper",
		Cause:   cause,
	}

	if got := err.Unwrap(); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}

	errNoCause := &NdkError{Message: "no cause"}
	if got := errNoCause.Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestNdkError_ExitCode(t *testing.T) {
	tests := []struct {
		name     string
		kind     ErrorKind
		expected int
	}{
		{"runtime", KindRuntime, ExitRuntimeError},
		{"config", KindConfig, ExitConfigError},
		{"not found", KindNotFound, ExitRuntimeError},
		{"download", KindDownload, ExitRuntimeError},
		{"integrity", KindIntegrity, ExitIntegrityError},
		{"layout", KindLayout, ExitRuntimeError},
		{"permission", KindPermission, ExitRuntimeError},
		{"environment", KindEnvironment, ExitEnvironmentError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &NdkError{Kind: tt.kind}
			if got := err.ExitCode(); got != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name string
		err  *NdkError
		kind ErrorKind
	}{
		{"New", New("x"), KindRuntime},
		{"Newf", Newf("x %d", 1), KindRuntime},
		{"Config", Config("x"), KindConfig},
		{"Configf", Configf("x %s", "y"), KindConfig},
		{"Environment", Environment("x"), KindEnvironment},
		{"Environmentf", Environmentf("x %s", "y"), KindEnvironment},
		{"Download", Download("https://example.com", cause), KindDownload},
		{"Integrity", Integrity("a.zip", "checksum mismatch"), KindIntegrity},
		{"Layout", Layout("/pkg", cause), KindLayout},
		{"Permission", Permission("/pkg/bin/ld", cause), KindPermission},
		{"Wrap", Wrap(cause, "x"), KindRuntime},
		{"NotFound", NotFound("archive", "a.zip"), KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.kind)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf("error %d: %s", 42, "details")
	if err.Message != "error 42: details" {
		t.Errorf("Message = %q, want %q", err.Message, "error 42: details")
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("profile", "r99")
	expected := "profile not found: r99"
	if err.Message != expected {
		t.Errorf("Message = %q, want %q", err.Message, expected)
	}
}

func TestIsKind(t *testing.T) {
	wrapped := fmt.Errorf("run: %w", Integrity("a.zip", "checksum mismatch"))

	if !IsKind(wrapped, KindIntegrity) {
		t.Error("IsKind(wrapped, KindIntegrity) = false, want true")
	}
	if IsKind(wrapped, KindDownload) {
		t.Error("IsKind(wrapped, KindDownload) = true, want false")
	}
	if IsKind(errors.New("plain"), KindRuntime) {
		t.Error("IsKind(plain, KindRuntime) = true, want false")
	}
}

type codedError struct{ code int }

func (e codedError) Error() string { return "coded" }
func (e codedError) ExitCode() int { return e.code }

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"runtime", New("runtime"), ExitRuntimeError},
		{"config", Config("config"), ExitConfigError},
		{"integrity wrapped", fmt.Errorf("x: %w", Integrity("a", "b")), ExitIntegrityError},
		{"foreign exit coder", codedError{code: 2}, ExitConfigError},
		{"generic error", errors.New("generic"), ExitRuntimeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	kinds := []ErrorKind{KindRuntime, KindConfig, KindNotFound, KindDownload, KindIntegrity, KindLayout, KindPermission, KindEnvironment}
	seen := make(map[string]bool)

	for _, k := range kinds {
		s := k.String()
		if seen[s] {
			t.Errorf("duplicate ErrorKind string: %q", s)
		}
		seen[s] = true
	}
}
