package errs

import (
	"errors"
	"net/http"
)

// NewValidationError creates a 422 error for a required field that is
// missing or blank after trimming.
func NewValidationError(message string) *Error {
	return &Error{
		Status:     StatusFailed,
		StatusCode: http.StatusUnprocessableEntity,
		Message:    message,
	}
}

// NewBadRequestError creates a 400 error for a structurally missing
// required group (e.g. an update without both name and email).
func NewBadRequestError(message string) *Error {
	return &Error{
		Status:     StatusFailed,
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

// NewNotFoundError creates a 404 error. Authentication failures use the
// same shape on purpose so bad credentials are indistinguishable from a
// missing account.
func NewNotFoundError(message string) *Error {
	return &Error{
		Status:     StatusFailed,
		StatusCode: http.StatusNotFound,
		Message:    message,
	}
}

// NewConflictError creates a 409 error for a duplicate email.
func NewConflictError(message string) *Error {
	return &Error{
		Status:     StatusFailed,
		StatusCode: http.StatusConflict,
		Message:    message,
	}
}

// NewInternalError creates a 500 error. The fault description is carried in
// the message; this system deliberately exposes it to clients.
func NewInternalError(message string) *Error {
	return &Error{
		Status:     StatusError,
		StatusCode: http.StatusInternalServerError,
		Message:    message,
	}
}

// IsNotFound reports whether err is an application error with status 404.
func IsNotFound(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.StatusCode == http.StatusNotFound
}

// IsConflict reports whether err is an application error with status 409.
func IsConflict(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.StatusCode == http.StatusConflict
}
