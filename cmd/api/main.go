// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

// Command api is the entry point for the My Bini HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mybini/mybini/internal/api"
	"github.com/mybini/mybini/internal/core/character"
	"github.com/mybini/mybini/internal/core/feed"
	"github.com/mybini/mybini/internal/core/series"
	"github.com/mybini/mybini/internal/media"
	"github.com/mybini/mybini/internal/platform/config"
	"github.com/mybini/mybini/internal/platform/constants"
	"github.com/mybini/mybini/internal/platform/migration"
	pgstore "github.com/mybini/mybini/internal/platform/postgres"
	redisstore "github.com/mybini/mybini/internal/platform/redis"
	"github.com/mybini/mybini/internal/platform/sec"
	"github.com/mybini/mybini/internal/realtime"
	"github.com/mybini/mybini/internal/social/comment"
	"github.com/mybini/mybini/internal/social/like"
	"github.com/mybini/mybini/internal/users/account"
	"github.com/mybini/mybini/internal/users/auth"
	"github.com/mybini/mybini/internal/users/favourite"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[My Bini] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Application-lifetime context; cancellation stops background routines
	// like the rate limiter cleanup.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(appCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security & Infrastructure ──────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	mediaStorage, err := media.NewStorage(cfg.MediaDir, cfg.MediaBaseURL)
	must(log, err, "initialize media storage")

	hub := realtime.NewHub(log)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	seriesRepository := series.NewPostgresRepository(pool)
	seriesService := series.NewService(seriesRepository, log)

	characterRepository := character.NewPostgresRepository(pool)
	characterService := character.NewService(characterRepository, seriesRepository, log)

	feedService := feed.NewService(seriesService, characterService, log)

	likeRepository := like.NewPostgresRepository(pool)
	likeService := like.NewService(likeRepository, hub, log)

	commentRepository := comment.NewPostgresRepository(pool)
	commentService := comment.NewService(commentRepository, hub, log)

	favouriteStore := favourite.NewStore()
	favouriteRepository := favourite.NewPostgresRepository(pool)
	favouriteService := favourite.NewService(favouriteStore, favouriteRepository, characterService, log)

	accountRepository := auth.NewPostgresAccountRepository(pool)
	sessionRepository := auth.NewPostgresSessionRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	authService := auth.NewService(accountRepository, sessionRepository, resetTokenRepository, jwtSvc)

	// Session lifecycle drives the in-memory favourites view.
	authService.AddSessionObserver(favouriteService)

	accountService := account.NewService(accountRepository, characterService,
		favouriteService, likeService, commentService, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Series:    series.NewHandler(seriesService),
		Character: character.NewHandler(characterService),
		Feed:      feed.NewHandler(feedService),
		Favourite: favourite.NewHandler(favouriteService),
		Like:      like.NewHandler(likeService),
		Comment:   comment.NewHandler(commentService, accountService),
		Account:   account.NewHandler(accountService),
		Media:     media.NewHandler(mediaStorage),
		Stream:    realtime.NewStreamHandler(hub),
		MediaDir:  mediaStorage.RootDir(),
	}

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
