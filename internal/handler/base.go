// Package handler is the HTTP layer: the first entry point for business
// logic after the router.
//
// Handlers bind and validate input with the validation package, invoke the
// service layer and produce responses following the uniform outcome
// contract: {"status", "status_code", ...} on success, with all failures
// routed through the global error handler.
package handler

import (
	"time"

	"github.com/doondisunkara/messy-migration/internal/middleware"
	"github.com/doondisunkara/messy-migration/internal/server"
	"github.com/doondisunkara/messy-migration/internal/validation"
	"github.com/labstack/echo/v4"
)

// Handler is the base handler type that holds shared application
// dependencies. Concrete handlers embed it.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler. Returning the struct by value is
// fine: it only holds a pointer, so copies share the same Server.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Response is the envelope every successful handler result embeds.
type Response struct {
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
}

// successResponse builds the success envelope for the given status code.
func successResponse(statusCode int) Response {
	return Response{Status: "success", StatusCode: statusCode}
}

// HandlerFunc is a typed endpoint function: it receives a bound and
// validated request payload and returns the response or an error.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// Handle wraps a typed endpoint function with binding, validation, logging
// and response writing, producing an echo.HandlerFunc ready for route
// registration.
//
// newReq builds a fresh request value per invocation; sharing one request
// instance across concurrent requests would be a data race.
func Handle[Req validation.Validatable, Res any](
	h Handler,
	fn HandlerFunc[Req, Res],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		logger := middleware.GetLogger(c).With().
			Str("operation", "handler").
			Str("method", c.Request().Method).
			Str("route", c.Path()).
			Logger()

		req := newReq()
		if err := validation.BindAndValidate(c, req); err != nil {
			logger.Debug().Err(err).Msg("request validation failed")
			return err
		}

		result, err := fn(c, req)
		if err != nil {
			// The global error handler owns logging and response writing
			// for failures.
			return err
		}

		logger.Info().
			Dur("duration", time.Since(start)).
			Msg("request completed")

		return c.JSON(status, result)
	}
}
