// Package router initializes the HTTP router (using Echo).
//
// It registers the global middleware stack and maps paths to their
// corresponding handlers.
package router

import (
	"github.com/doondisunkara/messy-migration/internal/handler"
	"github.com/doondisunkara/messy-migration/internal/middleware"
	"github.com/doondisunkara/messy-migration/internal/server"
	"github.com/labstack/echo/v4"
)

// New builds the Echo router with the full middleware chain, the global
// error handler and all routes registered.
func New(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	// Order matters: the request ID must exist before the context enhancer
	// builds the request-scoped logger, which the request logger reads.
	e.Use(middleware.RequestID())
	e.Use(m.ContextEnhancer.EnhanceContext())
	e.Use(m.Global.RequestLogger())
	e.Use(m.Global.Recover())
	e.Use(m.Global.CORS())
	e.Use(m.Global.Secure())

	registerSystemRoutes(e, h)
	registerUserRoutes(e, h)

	return e
}
