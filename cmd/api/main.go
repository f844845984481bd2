// Command api runs the user-management HTTP API.
//
// Startup order: load config, build the logger, migrate the schema,
// connect the pool (optionally seeding sample accounts), wire the layers
// and serve until SIGINT/SIGTERM, then shut down gracefully.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/doondisunkara/messy-migration/internal/config"
	"github.com/doondisunkara/messy-migration/internal/database"
	"github.com/doondisunkara/messy-migration/internal/handler"
	loggerPkg "github.com/doondisunkara/messy-migration/internal/logger"
	"github.com/doondisunkara/messy-migration/internal/middleware"
	"github.com/doondisunkara/messy-migration/internal/repository"
	"github.com/doondisunkara/messy-migration/internal/router"
	"github.com/doondisunkara/messy-migration/internal/server"
	"github.com/doondisunkara/messy-migration/internal/service"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := bootstrapLogger()
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := loggerPkg.New(cfg)

	ctx := context.Background()
	if err := database.Migrate(ctx, &log, cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database schema")
	}

	srv, err := server.New(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	if cfg.Seed.Enabled {
		if err := database.Seed(ctx, srv.DB.Pool, &log); err != nil {
			log.Fatal().Err(err).Msg("failed to seed sample accounts")
		}
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)

	e := router.New(srv, handlers, middlewares)
	srv.SetupHTTPServer(e)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// bootstrapLogger covers the window before config is loaded.
func bootstrapLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
