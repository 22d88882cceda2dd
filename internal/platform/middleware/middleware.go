// Copyright (c) 2026 Datacore. All rights reserved.

/*
Package middleware provides the HTTP chain in front of the trek and notes
workspace routes.

Chain, outermost first:

  - RequestID: correlation id shared with the backend client.
  - StructuredLogger: per-request logger and an access log naming the route,
    workspace, note and entity a request touched.
  - RateLimiter: token bucket per client IP, sized from configuration.
  - PanicRecovery: turns a panic into the standard error envelope.
  - CORS: origins from configuration.
*/
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"net"
	"net/http"
	"runtime/debug"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/datacore/datacore/internal/platform/apperr"
	"github.com/datacore/datacore/internal/platform/constants"
	"github.com/datacore/datacore/internal/platform/ctxutil"
	"github.com/datacore/datacore/internal/platform/respond"
	"github.com/datacore/datacore/pkg/uuid"
)

// # Request Tracing

// maxRequestIDLength bounds a client-supplied X-Request-ID.
const maxRequestIDLength = 64

// RequestID reuses a well-formed X-Request-ID from the client or issues a
// new v7 id. The id is echoed in the response and forwarded to the backend.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if !validRequestID(requestID) {
				requestID = uuid.New()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

// validRequestID accepts short ids made of letters, digits and - _ . :
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return false
		}
	}
	return true
}

// # Activity Logging

// RouteParams maps a log attribute to the chi URL parameter it is read
// from, e.g. "workspace_id" → "id".
type RouteParams map[string]string

type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (recorder *responseRecorder) WriteHeader(code int) {
	if recorder.status == 0 {
		recorder.status = code
	}
	recorder.ResponseWriter.WriteHeader(code)
}

func (recorder *responseRecorder) Write(body []byte) (int, error) {
	if recorder.status == 0 {
		recorder.status = http.StatusOK
	}
	n, err := recorder.ResponseWriter.Write(body)
	recorder.bytes += n
	return n, err
}

func (recorder *responseRecorder) Unwrap() http.ResponseWriter {
	return recorder.ResponseWriter
}

/*
StructuredLogger injects a request logger and writes one access log entry
per request.

Route parameters are only known once chi has matched the request, so the
matched pattern and the parameters named in params are attached to the
access entry after the handler returns.
*/
func StructuredLogger(logger *slog.Logger, params RouteParams) func(http.Handler) http.Handler {
	attributes := slices.Sorted(maps.Keys(params))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			started := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("ip", RealIP(request)),
			)
			ctx := ctxutil.WithLogger(request.Context(), requestLogger)
			recorder := &responseRecorder{ResponseWriter: writer}

			next.ServeHTTP(recorder, request.WithContext(ctx))

			status := recorder.status
			if status == 0 {
				status = http.StatusOK
			}
			entry := []any{
				slog.Int("status", status),
				slog.Int("bytes", recorder.bytes),
				slog.Int64("latency_ms", time.Since(started).Milliseconds()),
			}
			if routeContext := chi.RouteContext(ctx); routeContext != nil {
				if pattern := routeContext.RoutePattern(); pattern != "" {
					entry = append(entry, slog.String("route", pattern))
				}
				for _, attribute := range attributes {
					if value := routeContext.URLParam(params[attribute]); value != "" {
						entry = append(entry, slog.String(attribute, value))
					}
				}
			}

			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}
			requestLogger.Log(ctx, level, "http_request_finished", entry...)
		})
	}
}

// # Rate Limiting

// RateLimitConfig sizes the per-IP token buckets. Zero values fall back to
// the defaults in constants.
type RateLimitConfig struct {
	RPS     float64
	Burst   int
	IdleTTL time.Duration
	// Exempt lists exact paths that are never limited, such as health checks.
	Exempt []string
}

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per client IP.
type RateLimiter struct {
	limit      rate.Limit
	burst      int
	idleTTL    time.Duration
	retryAfter int
	exempt     map[string]bool

	mu      sync.Mutex
	clients map[string]*rateLimitClient
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.RPS <= 0 {
		cfg.RPS = constants.DefaultRateLimitRPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = constants.DefaultRateLimitBurst
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = constants.RateLimitClientTTL
	}

	exempt := make(map[string]bool, len(cfg.Exempt))
	for _, path := range cfg.Exempt {
		exempt[path] = true
	}

	return &RateLimiter{
		limit:      rate.Limit(cfg.RPS),
		burst:      cfg.Burst,
		idleTTL:    cfg.IdleTTL,
		retryAfter: max(1, int(math.Ceil(1/cfg.RPS))),
		exempt:     exempt,
		clients:    make(map[string]*rateLimitClient),
	}
}

// Handler rejects requests beyond the bucket with 429 and Retry-After.
func (limiter *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if limiter.exempt[request.URL.Path] || limiter.allow(RealIP(request), time.Now()) {
			next.ServeHTTP(writer, request)
			return
		}

		writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(limiter.retryAfter))
		respond.Error(writer, request, apperr.RateLimited(limiter.retryAfter))
	})
}

func (limiter *RateLimiter) allow(ip string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	client, ok := limiter.clients[ip]
	if !ok {
		client = &rateLimitClient{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter.AllowN(now, 1)
}

// Sweep forgets clients idle since before now minus the idle TTL and
// returns how many it dropped.
func (limiter *RateLimiter) Sweep(now time.Time) int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	dropped := 0
	for ip, client := range limiter.clients {
		if now.Sub(client.lastSeen) > limiter.idleTTL {
			delete(limiter.clients, ip)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of tracked clients.
func (limiter *RateLimiter) Len() int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	return len(limiter.clients)
}

// Run sweeps idle clients until context is done.
func (limiter *RateLimiter) Run(context context.Context) {
	ticker := time.NewTicker(constants.RateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-context.Done():
			return
		case now := <-ticker.C:
			limiter.Sweep(now)
		}
	}
}

// # Reliability & Safety

// PanicRecovery answers a panicking handler with the standard 500 envelope.
// http.ErrAbortHandler is re-raised so the server aborts the connection.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if err, ok := recovered.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(recovered)
				}

				ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "panic_recovered",
					slog.Any("panic", recovered),
					slog.String("stack", string(debug.Stack())),
				)
				respond.Error(writer, request, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// CORS admits any origin in development and only allowedOrigins otherwise.
// The API is cookie-less, so credentials are never allowed.
func CORS(development bool, allowedOrigins []string) func(http.Handler) http.Handler {
	options := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Accept", constants.HeaderContentType, constants.HeaderXRequestID},
		ExposedHeaders: []string{constants.HeaderXRequestID, constants.HeaderRetryAfter},
		MaxAge:         300,
	}
	if development {
		options.AllowedOrigins = []string{"*"}
	}
	return cors.New(options).Handler
}

// # Middleware Helpers

// RealIP returns the client address: X-Real-IP, then the first valid
// X-Forwarded-For hop, then the connection's remote address.
func RealIP(request *http.Request) string {
	if ip := strings.TrimSpace(request.Header.Get(constants.HeaderXRealIP)); net.ParseIP(ip) != nil {
		return ip
	}
	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
