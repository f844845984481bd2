// Package logger configures the application's structured logging.
//
// It uses zerolog everywhere: a console writer in the local environment for
// readability, JSON elsewhere so log pipelines can ingest it. It also
// provides the adapters the database package needs to route pgx query
// tracing through zerolog.
package logger

import (
	"os"
	"strings"

	"github.com/doondisunkara/messy-migration/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// New builds the application logger from config.
func New(cfg *config.Config) zerolog.Logger {
	level := ParseLevel(cfg.Logging.Level)

	var logger zerolog.Logger
	if cfg.Primary.Env == "local" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stdout)
	}

	return logger.Level(level).With().
		Timestamp().
		Str("service", "user-api").
		Str("env", cfg.Primary.Env).
		Logger()
}

// ParseLevel converts a config level string into a zerolog level,
// defaulting to info on unknown values.
func ParseLevel(level string) zerolog.Level {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || parsed == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return parsed
}

// NewPgxLogger derives the logger used for SQL query tracing.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().
		Timestamp().
		Str("component", "pgx").
		Logger()
}

// GetPgxTraceLogLevel maps the application log level onto pgx tracelog
// levels so SQL tracing verbosity follows the global setting.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch level {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}
