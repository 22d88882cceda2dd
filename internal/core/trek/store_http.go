// Copyright (c) 2026 Datacore. All rights reserved.

package trek

import (
	"context"
	"net/url"
	"strconv"

	"github.com/datacore/datacore/internal/platform/backend"
)

// HTTPRepository reads records from the backend reference API.
type HTTPRepository struct {
	client *backend.Client
}

func NewHTTPRepository(client *backend.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (repository *HTTPRepository) GetEntity(context context.Context, entityType EntityType, uid string) (*Detail, error) {
	var detail Detail
	path := "/trek/" + url.PathEscape(string(entityType)) + "/" + url.PathEscape(uid)
	if err := repository.client.Get(context, path, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (repository *HTTPRepository) AddFavorite(context context.Context, favorite FavoriteRecord) (*FavoriteRecord, error) {
	var created FavoriteRecord
	if err := repository.client.Post(context, "/trek/favorites", favorite, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (repository *HTTPRepository) UpdateFavorite(context context.Context, _ EntityType, _ string, id int, input FavoriteInput) (*FavoriteRecord, error) {
	var updated FavoriteRecord
	if err := repository.client.Patch(context, favoritePath(id), input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (repository *HTTPRepository) RemoveFavorite(context context.Context, _ EntityType, _ string, id int) error {
	return repository.client.Delete(context, favoritePath(id), nil)
}

func favoritePath(id int) string {
	return "/trek/favorites/" + strconv.Itoa(id)
}
