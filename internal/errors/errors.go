// Package errors provides structured error types and exit codes for ndkpkg.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the ndkpkg binary.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Runtime error (download failed, layout failed, etc.)
	ExitConfigError      = 2 // Configuration error (unsupported host, API level, etc.)
	ExitEnvironmentError = 3 // Environment error (missing python, readelf, etc.)
	ExitIntegrityError   = 4 // Archive checksum mismatch or missing checksum
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindDownload
	KindIntegrity
	KindLayout
	KindPermission
	KindEnvironment
)

// String returns the kind name used in messages.
func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindNotFound:
		return "not found"
	case KindDownload:
		return "download"
	case KindIntegrity:
		return "integrity"
	case KindLayout:
		return "layout"
	case KindPermission:
		return "permission"
	case KindEnvironment:
		return "environment"
	default:
		return "runtime"
	}
}

// NdkError is the base error type for ndkpkg.
type NdkError struct {
	Kind    ErrorKind
	Message string
	Path    string // File or URL the error refers to, if any
	Cause   error  // Underlying error
}

func (e *NdkError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *NdkError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *NdkError) ExitCode() int {
	switch e.Kind {
	case KindConfig:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	case KindIntegrity:
		return ExitIntegrityError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *NdkError {
	return &NdkError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *NdkError {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *NdkError {
	return &NdkError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *NdkError {
	return Config(fmt.Sprintf(format, args...))
}

// Environment creates a new environment error.
func Environment(message string) *NdkError {
	return &NdkError{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *NdkError {
	return Environment(fmt.Sprintf(format, args...))
}

// Download creates an error for a failed archive download.
func Download(url string, cause error) *NdkError {
	return &NdkError{
		Kind:    KindDownload,
		Message: "download failed",
		Path:    url,
		Cause:   cause,
	}
}

// Integrity creates an error for a checksum mismatch or a missing checksum.
func Integrity(path, message string) *NdkError {
	return &NdkError{
		Kind:    KindIntegrity,
		Message: message,
		Path:    path,
	}
}

// Layout creates an error for a failed package layout step.
func Layout(path string, cause error) *NdkError {
	return &NdkError{
		Kind:    KindLayout,
		Message: "package layout failed",
		Path:    path,
		Cause:   cause,
	}
}

// Permission creates a non-fatal error for a file whose mode could not be changed.
func Permission(path string, cause error) *NdkError {
	return &NdkError{
		Kind:    KindPermission,
		Message: "cannot set executable bit",
		Path:    path,
		Cause:   cause,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *NdkError {
	return &NdkError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *NdkError {
	return &NdkError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// IsKind reports whether err (or any error it wraps) is an NdkError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ne *NdkError
	if errors.As(err, &ne) {
		return ne.Kind == kind
	}
	return false
}

// exitCoder is implemented by errors that carry their own exit code,
// such as toolchain configuration errors.
type exitCoder interface {
	ExitCode() int
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ec exitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitRuntimeError
}
