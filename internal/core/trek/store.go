// Copyright (c) 2026 Datacore. All rights reserved.

package trek

import "context"

// Repository is the source of raw entity records and favorite state.
type Repository interface {
	GetEntity(context context.Context, entityType EntityType, uid string) (*Detail, error)
	AddFavorite(context context.Context, favorite FavoriteRecord) (*FavoriteRecord, error)
	UpdateFavorite(context context.Context, entityType EntityType, uid string, id int, input FavoriteInput) (*FavoriteRecord, error)
	RemoveFavorite(context context.Context, entityType EntityType, uid string, id int) error
}
