package sqlerr

import (
	"database/sql"
	"errors"

	"github.com/doondisunkara/messy-migration/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// HandleError converts a low-level database error into an application error.
//
// Rules:
//   - *errs.Error passes through unchanged (no double wrapping).
//   - unique violation on users.email -> 409 conflict.
//   - other constraint violations -> 500 with the driver message.
//   - pgx.ErrNoRows / sql.ErrNoRows -> 404.
//   - anything else -> 500 with the fault's description.
func HandleError(err error) error {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch MapCode(pgErr.Code) {
		case UniqueViolation:
			return errs.NewConflictError("Email already found, Enter another email")
		default:
			return errs.NewInternalError(pgErr.Message)
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("User Not Found")
	}

	return errs.NewInternalError(err.Error())
}
