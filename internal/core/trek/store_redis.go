// Copyright (c) 2026 Datacore. All rights reserved.

package trek

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/datacore/datacore/internal/platform/constants"
)

// CachedRepository is a read-through Redis cache in front of another [Repository].
//
// Cache errors never fail a request: they are logged and the call falls
// through to the wrapped repository. Favorite mutations drop the cached record.
type CachedRepository struct {
	next   Repository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedRepository(next Repository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// CacheKey returns the Redis key of a record.
func CacheKey(entityType EntityType, uid string) string {
	return constants.RedisPrefixEntity + string(entityType) + ":" + uid
}

func (repository *CachedRepository) GetEntity(context context.Context, entityType EntityType, uid string) (*Detail, error) {
	key := CacheKey(entityType, uid)

	raw, err := repository.client.Get(context, key).Bytes()
	switch {
	case err == nil:
		var detail Detail
		if err := json.Unmarshal(raw, &detail); err == nil {
			repository.logger.Debug("entity_cache_hit", slog.String("key", key))
			return &detail, nil
		}
		repository.logger.Warn("entity_cache_corrupt", slog.String("key", key))
	case errors.Is(err, redis.Nil):
		repository.logger.Debug("entity_cache_miss", slog.String("key", key))
	default:
		repository.logger.Warn("entity_cache_get_failed", slog.String("key", key), slog.Any("error", err))
	}

	detail, err := repository.next.GetEntity(context, entityType, uid)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(detail); err == nil {
		if err := repository.client.Set(context, key, payload, repository.ttl).Err(); err != nil {
			repository.logger.Warn("entity_cache_set_failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	return detail, nil
}

func (repository *CachedRepository) AddFavorite(context context.Context, favorite FavoriteRecord) (*FavoriteRecord, error) {
	created, err := repository.next.AddFavorite(context, favorite)
	if err != nil {
		return nil, err
	}
	repository.invalidate(context, favorite.EntityType, favorite.EntityUID)
	return created, nil
}

func (repository *CachedRepository) UpdateFavorite(context context.Context, entityType EntityType, uid string, id int, input FavoriteInput) (*FavoriteRecord, error) {
	updated, err := repository.next.UpdateFavorite(context, entityType, uid, id, input)
	if err != nil {
		return nil, err
	}
	repository.invalidate(context, entityType, uid)
	return updated, nil
}

func (repository *CachedRepository) RemoveFavorite(context context.Context, entityType EntityType, uid string, id int) error {
	if err := repository.next.RemoveFavorite(context, entityType, uid, id); err != nil {
		return err
	}
	repository.invalidate(context, entityType, uid)
	return nil
}

func (repository *CachedRepository) invalidate(context context.Context, entityType EntityType, uid string) {
	key := CacheKey(entityType, uid)
	if err := repository.client.Del(context, key).Err(); err != nil {
		repository.logger.Warn("entity_cache_invalidate_failed", slog.String("key", key), slog.Any("error", err))
	}
}
