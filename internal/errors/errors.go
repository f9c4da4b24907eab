package errors

import (
	stderrors "errors"
	"fmt"
)

// MeshError is the structured error type for meshidx.
// It carries enough context for logging and for a useful CLI message.
type MeshError struct {
	// Code is the unique error code (e.g., "ERR_402_INVALID_DIMENSION").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *MeshError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *MeshError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with MeshError.
func (e *MeshError) Is(target error) bool {
	if t, ok := target.(*MeshError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *MeshError) WithDetail(key, value string) *MeshError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *MeshError) WithSuggestion(suggestion string) *MeshError {
	e.Suggestion = suggestion
	return e
}

// New creates a new MeshError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *MeshError {
	return &MeshError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a MeshError from an existing error.
// The error's message becomes the MeshError message.
func Wrap(code string, err error) *MeshError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *MeshError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOFailure reports an unwritable or unreadable path.
func IOFailure(path string, cause error) *MeshError {
	msg := fmt.Sprintf("cannot write %s", path)
	if cause != nil {
		msg = fmt.Sprintf("cannot write %s: %v", path, cause)
	}
	return New(ErrCodeIOFailure, msg, cause).WithDetail("path", path)
}

// MissingArgument reports a required parameter that was not supplied.
func MissingArgument(name string) *MeshError {
	return New(ErrCodeMissingArgument, fmt.Sprintf("required argument --%s is missing", name), nil).
		WithDetail("parameter", name).
		WithSuggestion(fmt.Sprintf("pass --%s <int>", name))
}

// InvalidDimension reports a dimension that cannot be used, such as a zero divisor.
func InvalidDimension(name string, value int, reason string) *MeshError {
	return New(ErrCodeInvalidDimension,
		fmt.Sprintf("invalid %s=%d: %s", name, value, reason), nil).
		WithDetail("parameter", name).
		WithDetail("value", fmt.Sprint(value))
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *MeshError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *MeshError {
	return New(ErrCodeInternal, message, cause)
}

// As returns the first MeshError in err's chain.
func As(err error) (*MeshError, bool) {
	var me *MeshError
	if stderrors.As(err, &me) {
		return me, true
	}
	return nil, false
}

// GetCode extracts the error code from a MeshError.
// Returns empty string if err carries no MeshError.
func GetCode(err error) string {
	if me, ok := As(err); ok {
		return me.Code
	}
	return ""
}
