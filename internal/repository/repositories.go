// Package repository handles all interactions with the database.
//
// It contains the SQL queries and methods to fetch, persist and update
// data, abstracting SQL away from the service layer. Every query uses
// parameter binding; user input is never interpolated into SQL text.
package repository

import (
	"github.com/doondisunkara/messy-migration/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users *UserRepository
}

// NewRepositories constructs the repository container from the shared
// application resources.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users: NewUserRepository(s.DB.Pool),
	}
}
