package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target carries the same error code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e != nil && t != nil && e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid username or password")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Registration errors, one per eligibility check.
var (
	ErrClassNotFound       = New("CLASS_NOT_FOUND", http.StatusNotFound, "class not found")
	ErrClassFull           = New("CLASS_FULL", http.StatusConflict, "class is full (0 seats remaining)")
	ErrAlreadyEnrolled     = New("ALREADY_ENROLLED", http.StatusConflict, "already registered for this class")
	ErrSlotConflict        = New("SLOT_CONFLICT", http.StatusConflict, "schedule clash with an existing class")
	ErrCreditLimitExceeded = New("CREDIT_LIMIT_EXCEEDED", http.StatusConflict, "credit limit exceeded")
)

// Grading and re-evaluation errors.
var (
	ErrNotEnrolled      = New("NOT_ENROLLED", http.StatusNotFound, "student is not enrolled in this class")
	ErrGradeLocked      = New("GRADE_LOCKED", http.StatusForbidden, "grade is locked; an approved re-evaluation request is required")
	ErrNoGradeYet       = New("NO_GRADE_YET", http.StatusBadRequest, "no grade assigned yet")
	ErrDuplicatePending = New("DUPLICATE_PENDING", http.StatusConflict, "a pending re-evaluation request already exists")
	ErrInvalidOutcome   = New("INVALID_OUTCOME", http.StatusBadRequest, "outcome must be approved or rejected")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
