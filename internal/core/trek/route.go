// Copyright (c) 2026 Datacore. All rights reserved.

package trek

import (
	"net/url"
	"strings"
)

// RoutePrefix is the root of every entity path.
const RoutePrefix = "/trek"

// RouteFor returns the detail path of a record.
func RouteFor(t EntityType, uid string) string {
	return TypeRoute(t) + "/" + url.PathEscape(uid)
}

// TypeRoute returns the browse path of a type.
func TypeRoute(t EntityType) string {
	return RoutePrefix + "/" + string(t)
}

// relationTypes maps well-known relation fields to the type they link to.
var relationTypes = map[string]EntityType{
	"characters":          TypeCharacter,
	"episodes":            TypeEpisode,
	"performers":          TypePerformer,
	"seasons":             TypeSeason,
	"movies":              TypeMovie,
	"spacecrafts":         TypeSpacecraft,
	"spacecraftClasses":   TypeSpacecraftClass,
	"staff":               TypeStaff,
	"writers":             TypeStaff,
	"directors":           TypeStaff,
	"stuntPerformers":     TypePerformer,
	"standInPerformers":   TypePerformer,
	"astronomicalObjects": TypeAstronomicalObject,
	"locations":           TypeLocation,
	"occupations":         TypeOccupation,
	"titles":              TypeTitle,
	"organizations":       TypeOrganization,
	"foods":               TypeFood,
	"animals":             TypeAnimal,
	"weapons":             TypeWeapon,
	"technology":          TypeTechnology,
	"materials":           TypeMaterial,
	"books":               TypeBook,
	"companies":           TypeCompany,
	"soundtracks":         TypeSoundtrack,
	"comicSeries":         TypeComicSeries,
	"videoGames":          TypeVideoGame,
	"characterRelations":  TypeCharacter,
	"characterSpecies":    TypeSpecies,
	"series":              TypeSeries,
	"species":             TypeSpecies,
}

// relationOrder is the display order of the known relation fields.
var relationOrder = []string{
	"characters", "performers", "staff", "writers", "directors", "stuntPerformers",
	"standInPerformers", "series", "seasons", "episodes", "movies", "spacecrafts",
	"spacecraftClasses", "characterSpecies", "characterRelations", "astronomicalObjects",
	"locations", "occupations", "titles", "organizations", "companies", "technology",
	"weapons", "materials", "foods", "animals", "books", "comicSeries", "videoGames",
	"soundtracks",
}

// InferTypeFor maps a relation field to the entity type it links to.
// Unknown fields fall back to plural stripping.
func InferTypeFor(fieldName string) EntityType {
	if t, ok := relationTypes[fieldName]; ok {
		return t
	}

	switch {
	case strings.HasSuffix(fieldName, "ies"):
		return EntityType(strings.TrimSuffix(fieldName, "ies") + "y")
	case strings.HasSuffix(fieldName, "s"):
		return EntityType(strings.TrimSuffix(fieldName, "s"))
	default:
		return EntityType(fieldName)
	}
}
