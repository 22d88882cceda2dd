// Copyright (c) 2026 Datacore. All rights reserved.

package trek_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacore/datacore/internal/core/trek"
)

// countingRepository serves a fixed record and counts backend reads.
type countingRepository struct {
	reads int
}

func (repository *countingRepository) GetEntity(context context.Context, entityType trek.EntityType, uid string) (*trek.Detail, error) {
	repository.reads++
	return &trek.Detail{Data: map[string]any{"uid": uid, "name": "Galaxy"}}, nil
}

func (repository *countingRepository) AddFavorite(context context.Context, favorite trek.FavoriteRecord) (*trek.FavoriteRecord, error) {
	favorite.ID = 1
	return &favorite, nil
}

func (repository *countingRepository) UpdateFavorite(context context.Context, entityType trek.EntityType, uid string, id int, input trek.FavoriteInput) (*trek.FavoriteRecord, error) {
	return &trek.FavoriteRecord{ID: id, Notes: input.Notes}, nil
}

func (repository *countingRepository) RemoveFavorite(context context.Context, entityType trek.EntityType, uid string, id int) error {
	return nil
}

func newCache(t *testing.T) (*miniredis.Miniredis, *countingRepository, *trek.CachedRepository) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	next := &countingRepository{}
	return server, next, trek.NewCachedRepository(next, client, time.Minute, discardLogger())
}

/*
TestCachedRepository_ReadThrough serves the second read from Redis.
*/
func TestCachedRepository_ReadThrough(t *testing.T) {
	server, next, cache := newCache(t)
	ctx := context.Background()

	first, err := cache.GetEntity(ctx, trek.TypeSpacecraftClass, "SCMA1")
	require.NoError(t, err)
	second, err := cache.GetEntity(ctx, trek.TypeSpacecraftClass, "SCMA1")
	require.NoError(t, err)

	assert.Equal(t, 1, next.reads)
	assert.Equal(t, first.Data, second.Data)
	assert.True(t, server.Exists("trek:entity:spacecraftClass:SCMA1"))
	assert.Equal(t, time.Minute, server.TTL("trek:entity:spacecraftClass:SCMA1"))
}

/*
TestCachedRepository_FavoriteInvalidates drops the cached record after each favorite mutation.
*/
func TestCachedRepository_FavoriteInvalidates(t *testing.T) {
	server, next, cache := newCache(t)
	ctx := context.Background()
	key := trek.CacheKey(trek.TypeSpacecraftClass, "SCMA1")

	_, err := cache.GetEntity(ctx, trek.TypeSpacecraftClass, "SCMA1")
	require.NoError(t, err)
	require.True(t, server.Exists(key))

	_, err = cache.AddFavorite(ctx, trek.FavoriteRecord{EntityType: trek.TypeSpacecraftClass, EntityUID: "SCMA1"})
	require.NoError(t, err)
	assert.False(t, server.Exists(key))

	_, err = cache.GetEntity(ctx, trek.TypeSpacecraftClass, "SCMA1")
	require.NoError(t, err)
	assert.Equal(t, 2, next.reads)

	require.NoError(t, cache.RemoveFavorite(ctx, trek.TypeSpacecraftClass, "SCMA1", 1))
	assert.False(t, server.Exists(key))
}

/*
TestCachedRepository_RedisDown falls through to the wrapped repository.
*/
func TestCachedRepository_RedisDown(t *testing.T) {
	server, next, cache := newCache(t)
	server.Close()

	detail, err := cache.GetEntity(context.Background(), trek.TypeSpacecraftClass, "SCMA1")
	require.NoError(t, err)
	assert.Equal(t, "SCMA1", detail.Data.(map[string]any)["uid"])
	assert.Equal(t, 1, next.reads)
}

/*
TestCachedRepository_CorruptEntry refetches when the cached payload cannot be decoded.
*/
func TestCachedRepository_CorruptEntry(t *testing.T) {
	server, next, cache := newCache(t)
	require.NoError(t, server.Set(trek.CacheKey(trek.TypeSpecies, "SPMA1"), "{not json"))

	_, err := cache.GetEntity(context.Background(), trek.TypeSpecies, "SPMA1")
	require.NoError(t, err)
	assert.Equal(t, 1, next.reads)
}
