// Package entity defines the domain records persisted by the repository layer.
package entity

// User is the sole entity of the system: one row in the users table.
//
// PasswordHash holds a salted bcrypt hash, never the plaintext secret.
// It is excluded from JSON so it is never echoed back to clients.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
