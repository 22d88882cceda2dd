// Copyright (c) 2026 Datacore. All rights reserved.

package trek

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/datacore/datacore/internal/platform/request"
	"github.com/datacore/datacore/internal/platform/respond"
	"github.com/datacore/datacore/internal/platform/validate"
)

// # Handler Implementation

// Handler exposes the reference database views.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the trek endpoints.
//
// Table lookups are static and never reach the backend; entity and favorite
// routes go through the [Service].
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Static Tables
	router.Get("/categories", handler.listCategories)
	router.Get("/labels/{type}", handler.getLabel)

	// ## Records
	router.Get("/{type}/{uid}", handler.getEntity)

	// ## Favorites
	router.Post("/{type}/{uid}/favorite", handler.addFavorite)
	router.Patch("/{type}/{uid}/favorite/{favoriteID}", handler.updateFavorite)
	router.Delete("/{type}/{uid}/favorite/{favoriteID}", handler.removeFavorite)

	return router
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, Categories())
}

func (handler *Handler) getLabel(writer http.ResponseWriter, request *http.Request) {
	entityType := EntityType(requestutil.Param(request, "type"))

	respond.OK(writer, map[string]any{
		"type":     entityType,
		"label":    LabelFor(entityType),
		"route":    TypeRoute(entityType),
		"category": CategoryFor(entityType),
	})
}

func (handler *Handler) getEntity(writer http.ResponseWriter, request *http.Request) {
	entityType, uid := refFromRequest(request)

	view, err := handler.service.GetEntity(request.Context(), entityType, uid)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

func (handler *Handler) addFavorite(writer http.ResponseWriter, request *http.Request) {
	entityType, uid := refFromRequest(request)

	var input FavoriteInput
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	favorite, err := handler.service.AddFavorite(request.Context(), entityType, uid, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, favorite)
}

func (handler *Handler) updateFavorite(writer http.ResponseWriter, request *http.Request) {
	entityType, uid := refFromRequest(request)

	favoriteID, err := favoriteIDFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input FavoriteInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	favorite, err := handler.service.UpdateFavorite(request.Context(), entityType, uid, favoriteID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, favorite)
}

func (handler *Handler) removeFavorite(writer http.ResponseWriter, request *http.Request) {
	entityType, uid := refFromRequest(request)

	favoriteID, err := favoriteIDFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveFavorite(request.Context(), entityType, uid, favoriteID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Helpers

func refFromRequest(request *http.Request) (EntityType, string) {
	return EntityType(requestutil.Param(request, "type")), requestutil.Param(request, "uid")
}

func favoriteIDFromRequest(request *http.Request) (int, error) {
	id, err := strconv.Atoi(requestutil.Param(request, "favoriteID"))
	if err != nil || id <= 0 {
		return 0, validate.RequiredError(FieldFavoriteID, "must be a positive integer")
	}
	return id, nil
}
