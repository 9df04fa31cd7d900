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
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad      ErrorCode = "CONFIG_LOAD"
	ErrConfigParse     ErrorCode = "CONFIG_PARSE"
	ErrConfigValid     ErrorCode = "CONFIG_INVALID"
	ErrProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"

	// Base installation errors
	ErrUnknownProfile     ErrorCode = "UNKNOWN_PROFILE"
	ErrBaseInvalid        ErrorCode = "BASE_INVALID"
	ErrRequirementMissing ErrorCode = "REQUIREMENT_MISSING"
	ErrChecksumMismatch   ErrorCode = "CHECKSUM_MISMATCH"

	// Workspace errors
	ErrWorkspaceExists  ErrorCode = "WORKSPACE_EXISTS"
	ErrWorkspaceInvalid ErrorCode = "WORKSPACE_INVALID"
	ErrInvalidStrategy  ErrorCode = "INVALID_STRATEGY"

	// Launch errors
	ErrExecutableNotFound  ErrorCode = "EXECUTABLE_NOT_FOUND"
	ErrUnsupportedPlatform ErrorCode = "UNSUPPORTED_PLATFORM"
	ErrLaunch              ErrorCode = "LAUNCH"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrFileCopy      ErrorCode = "FILE_COPY"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrLinkCreate    ErrorCode = "LINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// RealmError represents a structured error with code and details
type RealmError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RealmError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RealmError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *RealmError) Is(target error) bool {
	var targetErr *RealmError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RealmError with the given code and message
func New(code ErrorCode, message string) *RealmError {
	return &RealmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RealmError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RealmError {
	return &RealmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a RealmError
func Wrap(err error, code ErrorCode, message string) *RealmError {
	if err == nil {
		return nil
	}
	return &RealmError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RealmError {
	if err == nil {
		return nil
	}
	return &RealmError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RealmError) WithDetail(key string, value interface{}) *RealmError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var realmErr *RealmError
	if errors.As(err, &realmErr) {
		return realmErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RealmError
func GetErrorCode(err error) ErrorCode {
	var realmErr *RealmError
	if errors.As(err, &realmErr) {
		return realmErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RealmError
func GetErrorDetails(err error) map[string]interface{} {
	var realmErr *RealmError
	if errors.As(err, &realmErr) {
		return realmErr.Details
	}
	return nil
}
