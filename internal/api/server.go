// Copyright (c) 2026 My Bini. All rights reserved.
// Author: hello@mybini.app

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mybini/mybini/internal/core/character"
	"github.com/mybini/mybini/internal/core/feed"
	"github.com/mybini/mybini/internal/core/series"
	"github.com/mybini/mybini/internal/media"
	"github.com/mybini/mybini/internal/platform/config"
	"github.com/mybini/mybini/internal/platform/constants"
	"github.com/mybini/mybini/internal/platform/middleware"
	"github.com/mybini/mybini/internal/realtime"
	"github.com/mybini/mybini/internal/social/comment"
	"github.com/mybini/mybini/internal/social/like"
	"github.com/mybini/mybini/internal/users/account"
	"github.com/mybini/mybini/internal/users/auth"
	"github.com/mybini/mybini/internal/users/favourite"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the session lifecycle (register, login, refresh, recovery).
	Auth *auth.Handler

	// Series handles the series catalogue and its admin panel.
	Series *series.Handler

	// Character handles the character gallery and its admin panel.
	Character *character.Handler

	// Feed assembles the landing page payload.
	Feed *feed.Handler

	// Favourite handles the member's favourites.
	Favourite *favourite.Handler

	// Like handles per-character like state.
	Like *like.Handler

	// Comment handles per-character comment threads.
	Comment *comment.Handler

	// Account handles profiles, showcase, and statistics.
	Account *account.Handler

	// Media handles admin image uploads.
	Media *media.Handler

	// Stream upgrades character pages to a live websocket event feed.
	Stream *realtime.StreamHandler

	// MediaDir is served read-only under /media.
	MediaDir string
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Static Media
	// Uploaded images served straight from disk.
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(h.MediaDir))))

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/feed", h.Feed.Routes())
		api.Mount("/series", h.Series.Routes())
		api.Mount("/uploads", h.Media.Routes())
		api.Mount("/favourites", h.Favourite.Routes())
		api.Mount("/accounts", h.Account.Routes())

		api.Route("/characters", func(characters chi.Router) {
			characters.Mount("/", h.Character.Routes())
			characters.Mount("/{id}/likes", h.Like.Routes())
			characters.Mount("/{id}/comments", h.Comment.Routes())
			characters.Method(http.MethodGet, "/{id}/stream", h.Stream)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
