// Package sqlerr translates database driver errors into application errors.
//
// Repositories call HandleError after a failed pgx call so that SQLSTATE
// codes and sentinel errors never leak past the persistence layer. The
// unique constraint on users.email is the backstop for concurrent inserts
// of the same address: the race surfaces here as a unique violation and is
// reported as a conflict, the same outcome the application-level pre-check
// produces.
package sqlerr

// Code classifies the constraint violations this schema can produce.
type Code int

const (
	Other Code = iota
	UniqueViolation
	NotNullViolation
	CheckViolation
	ForeignKeyViolation
)

// MapCode maps a PostgreSQL SQLSTATE to a Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	case "23503":
		return ForeignKeyViolation
	default:
		return Other
	}
}
