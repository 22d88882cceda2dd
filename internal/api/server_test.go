// Copyright (c) 2026 Datacore. All rights reserved.

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacore/datacore/internal/api"
	"github.com/datacore/datacore/internal/core/trek"
	"github.com/datacore/datacore/internal/notes"
	"github.com/datacore/datacore/internal/platform/backend"
	"github.com/datacore/datacore/internal/platform/clock"
	"github.com/datacore/datacore/internal/platform/config"
)

func newTestServer(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	upstream := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(upstream.Close)
	client := backend.NewClient(upstream.URL, time.Second, logger)

	registry := notes.NewRegistry(notes.NewHTTPRepository(client), time.Minute, clock.Real{}, logger)
	t.Cleanup(registry.Shutdown)

	liveness, readiness := api.NewHealthHandlers(deps, logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{ServerPort: "0", Environment: "development"}
	server := api.NewServer(ctx, cfg, logger, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Trek:       trek.NewHandler(trek.NewService(trek.NewHTTPRepository(client), logger)),
		Workspaces: notes.NewHandler(registry),
	})
	return server.Handler()
}

/*
TestServer_MountsDomainRoutes reaches both domains under /api/v1.
*/
func TestServer_MountsDomainRoutes(t *testing.T) {
	handler := newTestServer(t, api.HealthDependencies{})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/trek/labels/spacecraftClass", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	var body struct {
		Data struct {
			Route string `json:"route"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "/trek/spacecraftClass", body.Data.Route)

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/workspaces/unknown", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestServer_Readiness reports degraded when a dependency fails.
*/
func TestServer_Readiness(t *testing.T) {
	healthy := newTestServer(t, api.HealthDependencies{
		CheckBackend: func() error { return nil },
	})
	recorder := httptest.NewRecorder()
	healthy.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	degraded := newTestServer(t, api.HealthDependencies{
		CheckBackend: func() error { return nil },
		CheckCache:   func() error { return errors.New("connection refused") },
	})
	recorder = httptest.NewRecorder()
	degraded.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "degraded")

	recorder = httptest.NewRecorder()
	degraded.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}
