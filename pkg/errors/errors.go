package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard error types
var (
	ErrNotFound           = errors.New("resource not found")
	ErrBadRequest         = errors.New("bad request")
	ErrConflict           = errors.New("resource conflict")
	ErrInternal           = errors.New("internal server error")
	ErrValidation         = errors.New("validation error")
	ErrReference          = errors.New("unknown reference")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrMalformedChain     = errors.New("malformed manager chain")
)

// AppError represents an application error with context
type AppError struct {
	Err        error             `json:"-"`
	Message    string            `json:"message"`
	Code       string            `json:"code"`
	StatusCode int               `json:"status_code"`
	Details    map[string]string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code string, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, code string, message string, statusCode int) *AppError {
	return &AppError{
		Err:        err,
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithDetails adds details to an AppError
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

// Common error constructors

func NotFound(resource string) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

func BadRequest(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:        ErrConflict,
		Code:       "CONFLICT",
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func Internal(message string) *AppError {
	return &AppError{
		Err:        ErrInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

func Validation(details map[string]string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		Code:       "VALIDATION_ERROR",
		Message:    "validation failed",
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// Reference reports a criteria or chain value pointing at an id that is not in
// the roster. Callers degrade the affected facet or query to "no match".
func Reference(id string) *AppError {
	return &AppError{
		Err:        ErrReference,
		Code:       "REFERENCE_ERROR",
		Message:    fmt.Sprintf("id %q is not in the roster", id),
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// InvariantViolation reports an operation that would break a core invariant,
// such as recording a grid position outside 1..9. The ledger is left unchanged.
func InvariantViolation(message string) *AppError {
	return &AppError{
		Err:        ErrInvariantViolation,
		Code:       "INVARIANT_VIOLATION",
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// MalformedChain reports a cyclic or self-referential manager chain. The chain
// is truncated at the cycle point and the employee flagged, never a failure.
func MalformedChain(employeeID string) *AppError {
	return &AppError{
		Err:        ErrMalformedChain,
		Code:       "MALFORMED_CHAIN",
		Message:    fmt.Sprintf("manager chain for employee %q contains a cycle", employeeID),
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// Is checks if the error matches a target error
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target any) bool {
	return errors.As(err, target)
}
