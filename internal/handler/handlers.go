package handler

import (
	"github.com/doondisunkara/messy-migration/internal/server"
	"github.com/doondisunkara/messy-migration/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// receives one object instead of many.
type Handlers struct {
	Health *HealthHandler
	Users  *UserHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
		Users:  NewUserHandler(s, services.Users),
	}
}
