package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPermission   ErrorCode = "PERMISSION"
	ErrCancelled    ErrorCode = "CANCELLED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Host errors
	ErrUnsupportedPlatform ErrorCode = "UNSUPPORTED_PLATFORM"
	ErrMissingPrerequisite ErrorCode = "MISSING_PREREQUISITE"
	ErrCommandFailed       ErrorCode = "COMMAND_FAILED"
	ErrUserLookup          ErrorCode = "USER_LOOKUP"

	// Shell configuration errors
	ErrZshrcMissing ErrorCode = "ZSHRC_MISSING"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrBackup       ErrorCode = "BACKUP"
)

// ZshkitError represents a structured error with code and details
type ZshkitError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ZshkitError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ZshkitError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ZshkitError) Is(target error) bool {
	var targetErr *ZshkitError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ZshkitError with the given code and message
func New(code ErrorCode, message string) *ZshkitError {
	return &ZshkitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ZshkitError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ZshkitError {
	return &ZshkitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ZshkitError.
// Callers must check err for nil first: a nil *ZshkitError stored in an
// error interface is not a nil error.
func Wrap(err error, code ErrorCode, message string) *ZshkitError {
	if err == nil {
		return nil
	}
	return &ZshkitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ZshkitError {
	if err == nil {
		return nil
	}
	return &ZshkitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ZshkitError) WithDetail(key string, value interface{}) *ZshkitError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var zErr *ZshkitError
	if errors.As(err, &zErr) {
		return zErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ZshkitError
func GetErrorCode(err error) ErrorCode {
	var zErr *ZshkitError
	if errors.As(err, &zErr) {
		return zErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ZshkitError
func GetErrorDetails(err error) map[string]interface{} {
	var zErr *ZshkitError
	if errors.As(err, &zErr) {
		return zErr.Details
	}
	return nil
}
