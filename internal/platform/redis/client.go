// Copyright (c) 2026 Datacore. All rights reserved.

/*
Package redis connects the entity cache.

Redis is optional: without REDIS_URL the trek repository talks to the
backend directly. Nothing stored here is authoritative and every key
carries a TTL, so a slow or missing Redis must never hold a request up for
longer than the configured timeout.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Fallbacks for zero-valued [Options].
const (
	defaultPoolSize = 10
	defaultTimeout  = 2 * time.Second
)

// Options selects the server and sizes the pool.
type Options struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	// Timeout bounds dialing, each read and write, and the health ping.
	Timeout time.Duration
}

/*
NewClient connects to the cache and pings it once.

The idle pool keeps at most half the pool open, and never fewer than the
minimum idle connections.

Returns:
  - *redis.Client: A connected client
  - error: An invalid URL or a failed ping
*/
func NewClient(context stdctx.Context, opts Options, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	if opts.PoolSize <= 0 {
		opts.PoolSize = defaultPoolSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	options.PoolSize = opts.PoolSize
	options.MinIdleConns = min(opts.MinIdleConns, opts.PoolSize)
	options.MaxIdleConns = max(options.MinIdleConns, opts.PoolSize/2)
	options.DialTimeout = opts.Timeout
	options.ReadTimeout = opts.Timeout
	options.WriteTimeout = opts.Timeout

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("entity_cache_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
		slog.Duration("timeout", opts.Timeout),
	)
	return client, nil
}

// Ping checks the connection within the client's read timeout.
func Ping(context stdctx.Context, client *redis.Client) error {
	timeout := client.Options().ReadTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pingCtx, cancel := stdctx.WithTimeout(context, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
