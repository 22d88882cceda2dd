// Copyright (c) 2026 Datacore. All rights reserved.

package trek

import (
	"cmp"
	"context"
	"log/slog"

	"github.com/datacore/datacore/internal/platform/apperr"
	"github.com/datacore/datacore/internal/platform/validate"
)

// Service turns backend records into entity views and manages favorites.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
GetEntity fetches one record and runs it through the presentation pipeline.

Parameters:
  - context: Request context
  - entityType: Record kind, used for labels and the detail key
  - uid: Record identifier

Returns:
  - *EntityView: Presentation plus category, route and favorite state
  - error: NotFound, NetworkFailure, or InvalidInput when the payload is not a record
*/
func (service *Service) GetEntity(context context.Context, entityType EntityType, uid string) (*EntityView, error) {
	if err := validateRef(entityType, uid); err != nil {
		return nil, err
	}

	detail, err := service.repo.GetEntity(context, entityType, uid)
	if err != nil {
		return nil, err
	}

	record, ok := unwrapRecord(entityType, detail.Data)
	if !ok {
		service.logger.Warn("entity_payload_not_record",
			slog.String("type", string(entityType)),
			slog.String("uid", uid),
		)
		return nil, apperr.InvalidInput("Entity payload must be a JSON object")
	}

	presentation, err := Present(entityType, record)
	if err != nil {
		return nil, err
	}

	view := &EntityView{
		Type:         entityType,
		Route:        RouteFor(entityType, cmp.Or(presentation.Identity.UID, uid)),
		Presentation: presentation,
		Favorite: Favorite{
			IsFavorite: detail.IsFavorite,
			ID:         detail.FavoriteID,
			Notes:      detail.FavoriteNotes,
		},
	}
	if category := CategoryFor(entityType); category != nil {
		view.Category = &category.Key
		view.Color = category.Color
	}

	return view, nil
}

/*
AddFavorite bookmarks a record under its current display name.

Parameters:
  - context: Request context
  - entityType, uid: The record to bookmark
  - input: Optional notes

Returns:
  - *FavoriteRecord: The stored favorite
  - error: Validation, NotFound or NetworkFailure
*/
func (service *Service) AddFavorite(context context.Context, entityType EntityType, uid string, input FavoriteInput) (*FavoriteRecord, error) {
	if err := validateRef(entityType, uid); err != nil {
		return nil, err
	}
	if err := validateNotes(input.Notes); err != nil {
		return nil, err
	}

	view, err := service.GetEntity(context, entityType, uid)
	if err != nil {
		return nil, err
	}

	created, err := service.repo.AddFavorite(context, FavoriteRecord{
		EntityType: entityType,
		EntityUID:  uid,
		EntityName: cmp.Or(view.Presentation.Identity.DisplayName, uid),
		Notes:      input.Notes,
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("favorite_added",
		slog.String("type", string(entityType)),
		slog.String("uid", uid),
		slog.Int("favorite_id", created.ID),
	)
	return created, nil
}

// UpdateFavorite replaces the notes of a favorite.
func (service *Service) UpdateFavorite(context context.Context, entityType EntityType, uid string, id int, input FavoriteInput) (*FavoriteRecord, error) {
	if err := validateRef(entityType, uid); err != nil {
		return nil, err
	}
	if err := validateNotes(input.Notes); err != nil {
		return nil, err
	}

	updated, err := service.repo.UpdateFavorite(context, entityType, uid, id, input)
	if err != nil {
		return nil, err
	}

	service.logger.Info("favorite_updated", slog.Int("favorite_id", id))
	return updated, nil
}

// RemoveFavorite deletes a favorite.
func (service *Service) RemoveFavorite(context context.Context, entityType EntityType, uid string, id int) error {
	if err := validateRef(entityType, uid); err != nil {
		return err
	}

	if err := service.repo.RemoveFavorite(context, entityType, uid, id); err != nil {
		return err
	}

	service.logger.Warn("favorite_removed", slog.Int("favorite_id", id))
	return nil
}

// # Helpers

func validateRef(entityType EntityType, uid string) error {
	validator := &validate.Validator{}
	validator.Required(FieldType, string(entityType)).MaxLen(FieldType, string(entityType), 64)
	validator.Required(FieldUID, uid).MaxLen(FieldUID, uid, 64)
	return validator.Err()
}

func validateNotes(notes *string) error {
	if notes == nil {
		return nil
	}
	validator := &validate.Validator{}
	validator.MaxLen(FieldNotes, *notes, 2000)
	return validator.Err()
}

// unwrapRecord finds the record inside a detail payload. The backend sends
// either the record itself or an envelope keyed by the entity type; any
// other shape is the record as given.
func unwrapRecord(entityType EntityType, payload any) (map[string]any, bool) {
	data, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	if nested, ok := data[string(entityType)].(map[string]any); ok {
		return nested, true
	}
	return data, true
}
