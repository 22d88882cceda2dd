// Copyright (c) 2026 Datacore. All rights reserved.

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

	"github.com/datacore/datacore/internal/core/trek"
	"github.com/datacore/datacore/internal/notes"
	"github.com/datacore/datacore/internal/platform/config"
	"github.com/datacore/datacore/internal/platform/constants"
	"github.com/datacore/datacore/internal/platform/middleware"
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
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when the backend and cache answer.
	Readiness http.HandlerFunc

	// Trek serves entity presentations, lookup tables and favorites.
	Trek *trek.Handler

	// Workspaces serves notes workspace sessions.
	Workspaces *notes.Handler
}

// accessLogParams names the route parameters every access log entry carries.
var accessLogParams = middleware.RouteParams{
	"workspace_id": "id",
	"note_id":      "noteID",
	"entity_type":  "type",
	"entity_uid":   "uid",
	"favorite_id":  "favoriteID",
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RPS:     cfg.RateLimitRPS,
		Burst:   cfg.RateLimitBurst,
		IdleTTL: constants.RateLimitClientTTL,
		Exempt:  []string{"/health", "/ready"},
	})
	go limiter.Run(context)

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log, accessLogParams))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(limiter.Handler)
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg.IsDevelopment(), cfg.AllowedOrigins))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Health checks for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/trek", h.Trek.Routes())
		api.Mount("/workspaces", h.Workspaces.Routes())
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

// Handler returns the root router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
