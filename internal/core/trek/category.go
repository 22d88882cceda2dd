// Copyright (c) 2026 Datacore. All rights reserved.

package trek

// CategoryKey names a browsing group of entity types.
type CategoryKey string

const (
	CategoryPersonnel     CategoryKey = "personnel"
	CategoryStarships     CategoryKey = "starships"
	CategorySpecies       CategoryKey = "species"
	CategoryWorlds        CategoryKey = "worlds"
	CategoryScience       CategoryKey = "science"
	CategoryMedia         CategoryKey = "media"
	CategoryProduction    CategoryKey = "production"
	CategoryOrganizations CategoryKey = "organizations"
	CategoryCulture       CategoryKey = "culture"
)

// Category is one entry of the browsing index.
type Category struct {
	Key   CategoryKey  `json:"key"`
	Label string       `json:"label"`
	Color string       `json:"color"`
	Types []EntityType `json:"types"`
}

// categories is scanned linearly; a type belongs to the first category listing it.
var categories = []Category{
	{CategoryPersonnel, "Personnel", "#ff9966", []EntityType{TypeCharacter, TypeOccupation, TypeTitle}},
	{CategoryStarships, "Starships", "#9999ff", []EntityType{TypeSpacecraft, TypeSpacecraftClass}},
	{CategorySpecies, "Species", "#cc99cc", []EntityType{TypeSpecies, TypeAnimal}},
	{CategoryWorlds, "Worlds", "#99ccff", []EntityType{TypeAstronomicalObject, TypeLocation}},
	{CategoryScience, "Science", "#ffcc66", []EntityType{TypeTechnology, TypeWeapon, TypeMaterial}},
	{CategoryMedia, "Media", "#cc6666", []EntityType{TypeSeries, TypeSeason, TypeEpisode, TypeMovie}},
	{CategoryProduction, "Production", "#ffcc99", []EntityType{TypePerformer, TypeStaff, TypeCompany}},
	{CategoryOrganizations, "Organizations", "#6699cc", []EntityType{TypeOrganization}},
	{CategoryCulture, "Culture", "#cc9966", []EntityType{TypeFood, TypeBook, TypeComicSeries, TypeVideoGame, TypeSoundtrack}},
}

// Categories returns a copy of the category index.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, category := range categories {
		category.Types = append([]EntityType(nil), category.Types...)
		out[i] = category
	}
	return out
}

// CategoryFor returns the category owning t, or nil.
func CategoryFor(t EntityType) *Category {
	for i := range categories {
		for _, member := range categories[i].Types {
			if member == t {
				category := categories[i]
				return &category
			}
		}
	}
	return nil
}
