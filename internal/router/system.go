package router

import (
	"github.com/doondisunkara/messy-migration/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not business logic:
// the root liveness string and the health endpoint used by monitors.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	e.GET("/", h.Health.Home)
	e.GET("/status", h.Health.CheckHealth)
}
