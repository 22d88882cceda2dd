// Copyright (c) 2026 Datacore. All rights reserved.

package trek_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datacore/datacore/internal/core/trek"
	"github.com/datacore/datacore/internal/platform/apperr"
	"github.com/datacore/datacore/internal/platform/backend"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newBackendService(t *testing.T, mux *http.ServeMux) *trek.Service {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := backend.NewClient(server.URL, 2*time.Second, discardLogger())
	return trek.NewService(trek.NewHTTPRepository(client), discardLogger())
}

func writeJSON(t *testing.T, writer http.ResponseWriter, payload any) {
	t.Helper()
	writer.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(writer).Encode(payload))
}

/*
TestService_GetEntity_UnwrapsDetailKey reads the record under its type key and
carries favorite state through.
*/
func TestService_GetEntity_UnwrapsDetailKey(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /trek/character/CHMA0000215045", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, map[string]any{
			"data": map[string]any{
				"character": map[string]any{
					"uid":      "CHMA0000215045",
					"name":     "Jean-Luc Picard",
					"deceased": false,
				},
			},
			"is_favorite":    true,
			"favorite_id":    4,
			"favorite_notes": "Make it so",
		})
	})
	service := newBackendService(t, mux)

	view, err := service.GetEntity(context.Background(), trek.TypeCharacter, "CHMA0000215045")
	require.NoError(t, err)

	assert.Equal(t, "Jean-Luc Picard", view.Presentation.Identity.DisplayName)
	assert.Equal(t, "/trek/character/CHMA0000215045", view.Route)
	require.NotNil(t, view.Category)
	assert.Equal(t, trek.CategoryPersonnel, *view.Category)
	assert.NotEmpty(t, view.Color)
	assert.True(t, view.Favorite.IsFavorite)
	require.NotNil(t, view.Favorite.ID)
	assert.Equal(t, 4, *view.Favorite.ID)
	assert.Len(t, view.Presentation.Indicators, 1)
}

/*
TestService_GetEntity_PayloadShapes covers the other envelope forms.
*/
func TestService_GetEntity_PayloadShapes(t *testing.T) {
	tests := []struct {
		name    string
		data    any
		want    string
		invalid bool
	}{
		{"record itself", map[string]any{"uid": "X1", "name": "Direct"}, "Direct", false},
		{"keyed by type", map[string]any{"location": map[string]any{"uid": "X1", "name": "Nested"}}, "Nested", false},
		{"other single key", map[string]any{"entity": map[string]any{"uid": "X1", "name": "Nested"}}, "", false},
		{"not a record", "oops", "", true},
		{"missing", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("GET /trek/location/X1", func(writer http.ResponseWriter, request *http.Request) {
				writeJSON(t, writer, map[string]any{"data": tt.data})
			})
			service := newBackendService(t, mux)

			view, err := service.GetEntity(context.Background(), trek.TypeLocation, "X1")
			if tt.invalid {
				assert.True(t, apperr.Is(err, apperr.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, view.Presentation.Identity.DisplayName)
		})
	}
}

/*
TestService_GetEntity_SparseRecordKeepsShape presents a record without a uid
as itself, even when one attribute is a nested record.
*/
func TestService_GetEntity_SparseRecordKeepsShape(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /trek/spacecraft/S1", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, map[string]any{
			"data": map[string]any{
				"name":            "Enterprise-D",
				"registry":        "NCC-1701-D",
				"spacecraftClass": map[string]any{"name": "Galaxy"},
			},
		})
	})
	service := newBackendService(t, mux)

	view, err := service.GetEntity(context.Background(), trek.TypeSpacecraft, "S1")
	require.NoError(t, err)

	assert.Equal(t, "Enterprise-D", view.Presentation.Identity.DisplayName)
	values := make(map[string]string)
	for _, field := range view.Presentation.Fields {
		values[field.Label] = field.Value
	}
	assert.Equal(t, "NCC-1701-D", values["Registry"])
	assert.Equal(t, "Galaxy", values["Class"])
}

/*
TestService_GetEntity_Errors covers validation and upstream failures.
*/
func TestService_GetEntity_Errors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /trek/character/missing", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /trek/character/broken", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusInternalServerError)
	})
	service := newBackendService(t, mux)

	_, err := service.GetEntity(context.Background(), trek.TypeCharacter, "")
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	_, err = service.GetEntity(context.Background(), trek.TypeCharacter, "missing")
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	_, err = service.GetEntity(context.Background(), trek.TypeCharacter, "broken")
	assert.True(t, apperr.Is(err, apperr.CodeNetworkFailure))
}

/*
TestService_Favorites sends the resolved display name with a new favorite.
*/
func TestService_Favorites(t *testing.T) {
	var created map[string]any
	var patched map[string]any
	deleted := false

	mux := http.NewServeMux()
	mux.HandleFunc("GET /trek/spacecraft/SRMA1", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, map[string]any{"data": map[string]any{"uid": "SRMA1", "name": "Enterprise-D"}})
	})
	mux.HandleFunc("POST /trek/favorites", func(writer http.ResponseWriter, request *http.Request) {
		require.NoError(t, json.NewDecoder(request.Body).Decode(&created))
		writeJSON(t, writer, map[string]any{"id": 11, "entity_type": "spacecraft", "entity_uid": "SRMA1", "entity_name": "Enterprise-D"})
	})
	mux.HandleFunc("PATCH /trek/favorites/11", func(writer http.ResponseWriter, request *http.Request) {
		require.NoError(t, json.NewDecoder(request.Body).Decode(&patched))
		writeJSON(t, writer, map[string]any{"id": 11, "notes": "Flagship"})
	})
	mux.HandleFunc("DELETE /trek/favorites/11", func(writer http.ResponseWriter, request *http.Request) {
		deleted = true
		writer.WriteHeader(http.StatusNoContent)
	})
	service := newBackendService(t, mux)
	ctx := context.Background()

	favorite, err := service.AddFavorite(ctx, trek.TypeSpacecraft, "SRMA1", trek.FavoriteInput{})
	require.NoError(t, err)
	assert.Equal(t, 11, favorite.ID)
	assert.Equal(t, map[string]any{"entity_type": "spacecraft", "entity_uid": "SRMA1", "entity_name": "Enterprise-D"}, created)

	notes := "Flagship"
	updated, err := service.UpdateFavorite(ctx, trek.TypeSpacecraft, "SRMA1", 11, trek.FavoriteInput{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"notes": "Flagship"}, patched)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "Flagship", *updated.Notes)

	require.NoError(t, service.RemoveFavorite(ctx, trek.TypeSpacecraft, "SRMA1", 11))
	assert.True(t, deleted)
}
