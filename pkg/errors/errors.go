// Package errors provides typed errors for janus-ci
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrConfig indicates a configuration error
	ErrConfig ErrorType = iota
	// ErrSandbox indicates an isolated-environment setup/teardown error
	ErrSandbox
	// ErrDownload indicates a style-guide download error
	ErrDownload
	// ErrLint indicates a lint execution error
	ErrLint
	// ErrBuild indicates a build or install error
	ErrBuild
	// ErrTest indicates a test execution error
	ErrTest
	// ErrValidation indicates an input validation error
	ErrValidation
	// ErrTimeout indicates a timeout occurred
	ErrTimeout
)

// CIError is the base error type for all janus-ci errors
type CIError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error returns the error message
func (e *CIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", errorTypeString(e.Type), e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", errorTypeString(e.Type), e.Message)
}

// Unwrap returns the underlying cause
func (e *CIError) Unwrap() error {
	return e.Cause
}

// New creates a new CIError
func New(errType ErrorType, message string, cause error) *CIError {
	return &CIError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context to the error
func (e *CIError) WithContext(key string, value interface{}) *CIError {
	e.Context[key] = value
	return e
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	var ciErr *CIError
	if err == nil {
		return false
	}
	if errors.As(err, &ciErr) {
		return ciErr.Type == errType
	}
	return false
}

// IsRetryable returns true if the error is transient and retryable.
// Only the style-guide download is retried; every other stage failure
// aborts the run immediately.
func IsRetryable(err error) bool {
	var ciErr *CIError
	if !errors.As(err, &ciErr) {
		return false
	}

	switch ciErr.Type {
	case ErrDownload:
		return true
	default:
		return false
	}
}

func errorTypeString(et ErrorType) string {
	switch et {
	case ErrConfig:
		return "CONFIG"
	case ErrSandbox:
		return "SANDBOX"
	case ErrDownload:
		return "DOWNLOAD"
	case ErrLint:
		return "LINT"
	case ErrBuild:
		return "BUILD"
	case ErrTest:
		return "TEST"
	case ErrValidation:
		return "VALIDATION"
	case ErrTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *CIError {
	return New(ErrConfig, message, cause)
}

// SandboxError creates a sandbox error
func SandboxError(message string, cause error) *CIError {
	return New(ErrSandbox, message, cause)
}

// DownloadError creates a download error
func DownloadError(message string, cause error) *CIError {
	return New(ErrDownload, message, cause)
}

// LintError creates a lint error
func LintError(message string, cause error) *CIError {
	return New(ErrLint, message, cause)
}

// BuildError creates a build error
func BuildError(message string, cause error) *CIError {
	return New(ErrBuild, message, cause)
}

// TestError creates a test error
func TestError(message string, cause error) *CIError {
	return New(ErrTest, message, cause)
}

// ValidationError creates a validation error
func ValidationError(message string, cause error) *CIError {
	return New(ErrValidation, message, cause)
}

// TimeoutError creates a timeout error
func TimeoutError(message string, cause error) *CIError {
	return New(ErrTimeout, message, cause)
}
