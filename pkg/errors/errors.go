package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeInvalidReference ErrorType = "invalid_reference"
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeSourceNotFound   ErrorType = "source_not_found"
	ErrorTypeNoSections       ErrorType = "no_sections"
	ErrorTypeTransient        ErrorType = "transient"
	ErrorTypeStore            ErrorType = "store"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewInvalidReferenceError marks a document reference that cannot be decoded.
func NewInvalidReferenceError(details string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidReference,
		Message:    "malformed document reference",
		Details:    details,
		StatusCode: http.StatusBadRequest,
	}
}

// NewNotFoundError marks an absent object. Callers treat this as "no data
// yet" wherever absence is meaningful rather than fatal.
func NewNotFoundError(key string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    "object not found",
		Details:    key,
		StatusCode: http.StatusNotFound,
		Cause:      cause,
	}
}

// NewSourceNotFoundError marks a missing extraction source PDF.
func NewSourceNotFoundError(key string) *AppError {
	return &AppError{
		Type:       ErrorTypeSourceNotFound,
		Message:    "source document not found",
		Details:    key,
		StatusCode: http.StatusNotFound,
	}
}

// NewNoSectionsError marks a bulk extraction requested with zero sections.
func NewNoSectionsError(ref string) *AppError {
	return &AppError{
		Type:       ErrorTypeNoSections,
		Message:    "document has no sections",
		Details:    ref,
		StatusCode: http.StatusBadRequest,
	}
}

// NewTransientError marks a timeout or network failure. The whole operation
// may be retried by the caller.
func NewTransientError(op, key string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTransient,
		Message:    "store operation timed out",
		Details:    op + " " + key,
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// NewStoreError marks any other backend failure, not retryable without
// investigation.
func NewStoreError(op, key string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeStore,
		Message:    "store operation failed",
		Details:    op + " " + key,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// IsNotFound reports whether err represents object absence.
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
