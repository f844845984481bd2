// Package validation contains the logic for validating request data.
//
// Required string fields follow one rule everywhere: a field is invalid if
// it is absent, or if it is empty after trimming leading and trailing
// whitespace. Fields are checked in their declared order and the first
// failure wins, so error messages are deterministic when several fields
// are bad at once.
package validation

import (
	"strings"

	"github.com/doondisunkara/messy-migration/internal/errs"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to
// validate themselves.
type Validatable interface {
	Validate() error
}

// BindAndValidate binds the request body, path and query parameters into
// payload, then runs the payload's own validation. payload must be a
// pointer so Echo's Bind can populate it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError("Invalid request payload")
	}

	return payload.Validate()
}

// RequiredField applies the trim-then-non-empty rule to a required field.
//
// An absent or empty value yields "Require <label>"; a value that trims
// down to nothing yields "Invalid <label>". Both are 422 validation errors.
func RequiredField(value, label string) error {
	if value == "" {
		return errs.NewValidationError("Require " + label)
	}
	if strings.TrimSpace(value) == "" {
		return errs.NewValidationError("Invalid " + label)
	}
	return nil
}
