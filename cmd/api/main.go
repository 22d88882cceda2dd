// Copyright (c) 2026 Datacore. All rights reserved.

// Command api is the entry point for the Datacore frontend API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Create the backend client.
//  4. Connect to Redis when a URL is configured.
//  5. Wire HTTP handlers and the workspace registry.
//  6. Start HTTP server with graceful shutdown.
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

	goredis "github.com/redis/go-redis/v9"

	"github.com/datacore/datacore/internal/api"
	"github.com/datacore/datacore/internal/core/trek"
	"github.com/datacore/datacore/internal/notes"
	"github.com/datacore/datacore/internal/platform/backend"
	"github.com/datacore/datacore/internal/platform/clock"
	"github.com/datacore/datacore/internal/platform/config"
	"github.com/datacore/datacore/internal/platform/constants"
	redisstore "github.com/datacore/datacore/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

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
		slog.String("backend", cfg.BackendURL),
		slog.Bool("cache", cfg.CacheEnabled()),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives until shutdown; background loops stop when it is cancelled.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. Backend ────────────────────────────────────────────────────────
	client := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout, log)
	if err := client.Ping(startupCtx); err != nil {
		// The backend may come up after us; readiness reports it until then.
		log.Warn("backend_unreachable_at_startup", slog.Any("error", err))
	}

	// ── 4. Redis ──────────────────────────────────────────────────────────
	var entityRepository trek.Repository = trek.NewHTTPRepository(client)
	var rdb *goredis.Client
	if cfg.CacheEnabled() {
		rdb, err = redisstore.NewClient(startupCtx, redisstore.Options{
			URL:          cfg.RedisURL,
			PoolSize:     cfg.RedisPoolSize,
			MinIdleConns: cfg.RedisMinIdleConns,
			Timeout:      cfg.RedisTimeout,
		}, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()
		entityRepository = trek.NewCachedRepository(entityRepository, rdb, cfg.EntityCacheTTL, log)
	}

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	health := api.HealthDependencies{
		CheckBackend: func() error {
			return client.Ping(context.Background())
		},
	}
	if rdb != nil {
		health.CheckCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(health, log)

	trekService := trek.NewService(entityRepository, log)

	registry := notes.NewRegistry(
		notes.NewHTTPRepository(client),
		cfg.SessionIdleTimeout,
		clock.Real{},
		log,
		notes.WithFlushOnSwitch(cfg.NotesFlushOnSwitch),
	)
	go registry.Run(appCtx)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Trek:       trek.NewHandler(trekService),
		Workspaces: notes.NewHandler(registry),
	}

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(appCtx, cfg, log, handlers)

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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	// Workspaces flush or drop their pending edits once no request can reach them.
	registry.Shutdown()
	appCancel()

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
