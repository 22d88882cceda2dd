// Copyright (c) 2026 Datacore. All rights reserved.

/*
Package trek reduces reference-database records into display models.

The backend serves heterogeneous entity records (characters, performers,
spacecraft, episodes, organizations and more) as open property bags. This
package turns each record into a deterministic, ordered [Presentation] and
owns the static tables every cross-link relies on: labels, categories,
routes and relation types.

Layers:

  - Tables: [LabelFor], [CategoryFor], [RouteFor], [InferTypeFor].
  - Pipeline: [Present], pure and synchronous.
  - Service: fetches records through a [Repository] and wraps the pipeline
    output with category, route and favorite state.
*/
package trek

// # Entity Types

// EntityType is a closed tag naming a record kind.
type EntityType string

const (
	TypeCharacter          EntityType = "character"
	TypePerformer          EntityType = "performer"
	TypeStaff              EntityType = "staff"
	TypeSpacecraft         EntityType = "spacecraft"
	TypeSpacecraftClass    EntityType = "spacecraftClass"
	TypeSpecies            EntityType = "species"
	TypeAstronomicalObject EntityType = "astronomicalObject"
	TypeLocation           EntityType = "location"
	TypeTechnology         EntityType = "technology"
	TypeWeapon             EntityType = "weapon"
	TypeMaterial           EntityType = "material"
	TypeSeries             EntityType = "series"
	TypeSeason             EntityType = "season"
	TypeEpisode            EntityType = "episode"
	TypeMovie              EntityType = "movie"
	TypeOrganization       EntityType = "organization"
	TypeFood               EntityType = "food"
	TypeAnimal             EntityType = "animal"
	TypeOccupation         EntityType = "occupation"
	TypeTitle              EntityType = "title"
	TypeCompany            EntityType = "company"
	TypeBook               EntityType = "book"
	TypeComicSeries        EntityType = "comicSeries"
	TypeVideoGame          EntityType = "videoGame"
	TypeSoundtrack         EntityType = "soundtrack"
)

// AllTypes lists every known entity type in table order.
var AllTypes = []EntityType{
	TypeCharacter, TypePerformer, TypeStaff, TypeSpacecraft, TypeSpacecraftClass,
	TypeSpecies, TypeAstronomicalObject, TypeLocation, TypeTechnology, TypeWeapon,
	TypeMaterial, TypeSeries, TypeSeason, TypeEpisode, TypeMovie, TypeOrganization,
	TypeFood, TypeAnimal, TypeOccupation, TypeTitle, TypeCompany, TypeBook,
	TypeComicSeries, TypeVideoGame, TypeSoundtrack,
}

// Known reports whether t is one of the closed set of entity types.
func (t EntityType) Known() bool {
	_, ok := labels[t]
	return ok
}

// # Raw Records

// RawEntity is an open attribute bag as decoded from backend JSON.
// Values are string, float64, bool, nil, map[string]any or []any.
type RawEntity = map[string]any

// # Presentation Model

// DisplayField is one label/value row of the detail view.
type DisplayField struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Order int    `json:"order"`
}

// TraitIndicator is a named boolean rendered as a lit or unlit light.
type TraitIndicator struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// RelationItem is a single cross-link. Route is empty when the related
// record carries no uid.
type RelationItem struct {
	UID   string `json:"uid,omitempty"`
	Name  string `json:"name"`
	Route string `json:"route,omitempty"`
}

// RelationGroup is a labeled list of cross-links taken from one array attribute.
//
// Items holds at most [MaxRelationItems] entries; Hidden is the "+N more" count.
type RelationGroup struct {
	FieldName    string         `json:"field_name"`
	InferredType EntityType     `json:"inferred_type"`
	Label        string         `json:"label"`
	Items        []RelationItem `json:"items"`
	Total        int            `json:"total"`
	Hidden       int            `json:"hidden"`
}

// Identity is the heading block of the detail view.
type Identity struct {
	UID           string `json:"uid"`
	DisplayName   string `json:"display_name"`
	StylizedLabel string `json:"stylized_label"`
}

// Presentation is the pipeline output for one record.
type Presentation struct {
	Identity   Identity         `json:"identity"`
	Fields     []DisplayField   `json:"fields"`
	Indicators []TraitIndicator `json:"indicators"`
	Relations  []RelationGroup  `json:"relations"`
}

// # Service Views

// Favorite is the caller's bookmark state for a record.
type Favorite struct {
	IsFavorite bool    `json:"is_favorite"`
	ID         *int    `json:"favorite_id,omitempty"`
	Notes      *string `json:"favorite_notes,omitempty"`
}

// EntityView is a presentation enriched with category and routing data.
type EntityView struct {
	Type         EntityType    `json:"type"`
	Route        string        `json:"route"`
	Category     *CategoryKey  `json:"category"`
	Color        string        `json:"color,omitempty"`
	Presentation *Presentation `json:"presentation"`
	Favorite     Favorite      `json:"favorite"`
}

// Detail is the backend envelope for GET /trek/{type}/{uid}.
type Detail struct {
	Data          any     `json:"data"`
	IsFavorite    bool    `json:"is_favorite"`
	FavoriteID    *int    `json:"favorite_id,omitempty"`
	FavoriteNotes *string `json:"favorite_notes,omitempty"`
}

// FavoriteInput is the body for adding or updating a favorite.
type FavoriteInput struct {
	Notes *string `json:"notes,omitempty"`
}

// FavoriteRecord is what the backend returns for a stored favorite.
type FavoriteRecord struct {
	ID         int        `json:"id,omitempty"`
	EntityType EntityType `json:"entity_type"`
	EntityUID  string     `json:"entity_uid"`
	EntityName string     `json:"entity_name"`
	Notes      *string    `json:"notes,omitempty"`
}

// # Constants

// MaxRelationItems caps the cross-links rendered per relation group.
const MaxRelationItems = 30

// Field keys used by validators and error details.
const (
	FieldType       = "type"
	FieldUID        = "uid"
	FieldNotes      = "notes"
	FieldFavoriteID = "favorite_id"
)
