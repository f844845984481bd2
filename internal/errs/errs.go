// Package errs defines the typed application error used across the API.
//
// Every failure the API reports to a client is an *errs.Error carrying the
// uniform outcome contract: a status label ("failed" for client-correctable
// conditions, "error" for internal faults), an HTTP status code, and a
// human-readable message. Errors are created at the point of failure and
// translated into a response exactly once, by the global error handler.
package errs

// Status labels the outcome of a request.
type Status string

const (
	// StatusFailed marks a client-correctable condition (4xx).
	StatusFailed Status = "failed"
	// StatusError marks an unexpected internal fault (5xx).
	StatusError Status = "error"
)

// Error is the application error type. It serializes directly into the
// failure half of the outcome contract.
type Error struct {
	Status     Status `json:"status"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// Error satisfies the built-in error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is also an *errs.Error, so errors.Is can be used
// to check "is this one of ours" without comparing fields.
func (e *Error) Is(target error) bool {
	_, ok := target.(*Error)
	return ok
}

// WithMessage returns a copy of the error with the message replaced.
// Useful when a lower layer reports a generic condition and the caller
// knows the endpoint-specific wording.
func (e *Error) WithMessage(message string) *Error {
	return &Error{
		Status:     e.Status,
		StatusCode: e.StatusCode,
		Message:    message,
	}
}
