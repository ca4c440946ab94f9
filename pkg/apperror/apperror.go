// Package apperror defines the error taxonomy shared by the storage,
// service and API layers. Every error that crosses a layer boundary is
// either an *AppError or gets reported as a store failure (500).
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequest(message string) *AppError {
	return &AppError{Message: message, StatusCode: http.StatusBadRequest}
}

// NewInvalidID flags a malformed record identifier.
func NewInvalidID(message string) *AppError {
	return NewBadRequest(message)
}

func NewUnauthenticated(message string) *AppError {
	return &AppError{Message: message, StatusCode: http.StatusUnauthorized}
}

func NewForbidden(message string) *AppError {
	return &AppError{Message: message, StatusCode: http.StatusForbidden}
}

func NewNotFound(message string) *AppError {
	return &AppError{Message: message, StatusCode: http.StatusNotFound}
}

func NewConflict(message string) *AppError {
	return &AppError{Message: message, StatusCode: http.StatusConflict}
}

// NewStore wraps an underlying persistence failure.
func NewStore(err error) *AppError {
	return &AppError{Message: "Database error", StatusCode: http.StatusInternalServerError, Err: err}
}

// Status resolves any error to an HTTP status code.
func Status(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// UserMessage returns the message safe to show the caller; fallback is
// used for errors outside the taxonomy.
func UserMessage(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode < http.StatusInternalServerError {
		return appErr.Message
	}
	return fallback
}

func IsNotFound(err error) bool {
	return Status(err) == http.StatusNotFound
}
