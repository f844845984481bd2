package middleware

import (
	"net/http"

	"github.com/doondisunkara/messy-migration/internal/errs"
	"github.com/doondisunkara/messy-migration/internal/server"
	"github.com/doondisunkara/messy-migration/internal/sqlerr"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware applied to every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the global middleware bundle.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{server: s}
}

// CORS returns Echo's CORS middleware configured from server config.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger returns Echo's request logger middleware wired to zerolog.
//
// It emits one structured "API" line per request. When the handler returned
// an error, the final status is not written yet at log time, so the status
// is derived from the error type instead of the response.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			statusCode := v.Status

			if v.Error != nil {
				var appErr *errs.Error
				var echoErr *echo.HTTPError

				if errors.As(v.Error, &appErr) {
					statusCode = appErr.StatusCode
				} else if errors.As(v.Error, &echoErr) {
					statusCode = echoErr.Code
				}
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo's panic recovery middleware, turning handler panics
// into 500 responses instead of crashing the process.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return echomw.Recover()
}

// Secure returns Echo's secure headers middleware.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return echomw.Secure()
}

// GlobalErrorHandler is the final error funnel for the HTTP server.
//
// Every error from any handler ends up here and is translated into the
// uniform outcome contract exactly once:
//
//   - *errs.Error already carries its status, code and message.
//   - Echo's route 404 becomes a not-found outcome.
//   - Anything else is assumed to be a driver/unknown fault and goes
//     through sqlerr before being reported.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	originalErr := err

	var appErr *errs.Error
	if !errors.As(err, &appErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if echoErr.Code == http.StatusNotFound {
				err = errs.NewNotFoundError("Route not found")
			} else if msg, ok := echoErr.Message.(string); ok {
				err = &errs.Error{
					Status:     errs.StatusFailed,
					StatusCode: echoErr.Code,
					Message:    msg,
				}
			} else {
				err = &errs.Error{
					Status:     errs.StatusFailed,
					StatusCode: echoErr.Code,
					Message:    http.StatusText(echoErr.Code),
				}
			}
		} else {
			err = sqlerr.HandleError(err)
		}
	}

	var response *errs.Error
	if !errors.As(err, &response) {
		response = errs.NewInternalError(http.StatusText(http.StatusInternalServerError))
	}

	logger := GetLogger(c)
	event := logger.Warn()
	if response.StatusCode >= 500 {
		event = logger.Error()
	}
	event.
		Err(originalErr).
		Int("status", response.StatusCode).
		Str("outcome", string(response.Status)).
		Msg(response.Message)

	if !c.Response().Committed {
		_ = c.JSON(response.StatusCode, response)
	}
}
