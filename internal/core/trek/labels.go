// Copyright (c) 2026 Datacore. All rights reserved.

package trek

import "strings"

// Label is the pair of headings shown for an entity type.
type Label struct {
	Display  string `json:"display"`
	Stylized string `json:"stylized"`
}

var labels = map[EntityType]Label{
	TypeCharacter:          {"Characters", "PERSONNEL FILE"},
	TypePerformer:          {"Performers", "PERFORMER RECORD"},
	TypeStaff:              {"Staff", "PRODUCTION STAFF RECORD"},
	TypeSpacecraft:         {"Spacecraft", "VESSEL REGISTRY"},
	TypeSpacecraftClass:    {"Spacecraft Classes", "VESSEL CLASS DATABASE"},
	TypeSpecies:            {"Species", "XENOBIOLOGY DATABASE"},
	TypeAstronomicalObject: {"Astronomical Objects", "STELLAR CARTOGRAPHY"},
	TypeLocation:           {"Locations", "LOCATION INDEX"},
	TypeTechnology:         {"Technology", "ENGINEERING DATABASE"},
	TypeWeapon:             {"Weapons", "TACTICAL DATABASE"},
	TypeMaterial:           {"Materials", "MATERIALS ANALYSIS"},
	TypeSeries:             {"Series", "SERIES ARCHIVE"},
	TypeSeason:             {"Seasons", "SEASON ARCHIVE"},
	TypeEpisode:            {"Episodes", "EPISODE LOG"},
	TypeMovie:              {"Movies", "FILM ARCHIVE"},
	TypeOrganization:       {"Organizations", "ORGANIZATION DOSSIER"},
	TypeFood:               {"Foods", "REPLICATOR PATTERNS"},
	TypeAnimal:             {"Animals", "FAUNA DATABASE"},
	TypeOccupation:         {"Occupations", "OCCUPATION REGISTRY"},
	TypeTitle:              {"Titles", "RANK AND TITLE REGISTRY"},
	TypeCompany:            {"Companies", "CORPORATE RECORD"},
	TypeBook:               {"Books", "LIBRARY COMPUTER"},
	TypeComicSeries:        {"Comic Series", "ILLUSTRATED ARCHIVE"},
	TypeVideoGame:          {"Video Games", "HOLOPROGRAM ARCHIVE"},
	TypeSoundtrack:         {"Soundtracks", "AUDIO ARCHIVE"},
}

// LabelFor returns the labels of t. Unknown types echo the tag and its
// upper-cased form.
func LabelFor(t EntityType) Label {
	if label, ok := labels[t]; ok {
		return label
	}
	return Label{Display: string(t), Stylized: strings.ToUpper(string(t))}
}
