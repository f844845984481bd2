// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass it
// validated input, it applies the domain rules (normalization, hashing,
// uniqueness) and calls repository methods to touch the data.
package service

import (
	"github.com/doondisunkara/messy-migration/internal/repository"
	"github.com/doondisunkara/messy-migration/internal/server"
)

// Services is a container that groups all business services.
type Services struct {
	Users *UserService
}

// NewServices constructs the service container.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Users: NewUserService(repos.Users, s.Logger),
	}
}
