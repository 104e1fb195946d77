// Package apperr defines the error taxonomy shared by all API handlers.
//
// Callers distinguish four terminal outcomes: the input is malformed or
// references an unknown id (Validation), the caller is not logged in
// (Unauthenticated), the caller is logged in but not the owner (Forbidden),
// the addressed resource does not exist (NotFound), or a uniqueness rule was
// violated (Conflict). No error in this core is retryable.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Code    int    // HTTP status code
	Message string // user-facing message
	Err     error  // underlying cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, Err: err}
}

func Validation(msg string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: msg}
}

func Unauthenticated(msg string) *Error {
	return &Error{Code: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Code: http.StatusForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Code: http.StatusNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Code: http.StatusConflict, Message: msg}
}

// HTTPCode maps any error to a response status; unknown errors are 500.
func HTTPCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return http.StatusInternalServerError
}

// Message returns the user-facing message for an error, hiding internals of
// unknown errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}
