package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// seedUsers are the sample accounts inserted into an empty database when
// seeding is enabled. Their passwords are hashed on insert, never stored.
var seedUsers = []struct {
	name     string
	email    string
	password string
}{
	{"John Doe", "john@example.com", "password123"},
	{"Jane Smith", "jane@example.com", "secret456"},
	{"Bob Johnson", "bob@example.com", "qwerty789"},
}

// Seed populates the users table with sample accounts. It is idempotent:
// a table that already holds rows is left untouched.
func Seed(ctx context.Context, pool *pgxpool.Pool, logger *zerolog.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("counting users before seed: %w", err)
	}
	if count > 0 {
		logger.Info().Int("users", count).Msg("users table not empty, skipping seed")
		return nil
	}

	for _, u := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing seed password: %w", err)
		}

		_, err = pool.Exec(ctx,
			`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3)`,
			u.name, u.email, string(hash),
		)
		if err != nil {
			return fmt.Errorf("inserting seed user %s: %w", u.email, err)
		}
	}

	logger.Info().Int("users", len(seedUsers)).Msg("seeded sample accounts")
	return nil
}
