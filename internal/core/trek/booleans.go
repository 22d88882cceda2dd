// Copyright (c) 2026 Datacore. All rights reserved.

package trek

// traitFlag is one row of the booleans-label table.
type traitFlag struct {
	key   string
	label string
}

// traitFlags is grouped by the entity type that usually carries each flag,
// but lookup is flat: any record may light any flag. Order is display order.
var traitFlags = []traitFlag{
	// Shared
	{"mirror", "Mirror Universe"},
	{"alternateReality", "Alternate Reality"},

	// Characters
	{"deceased", "Deceased"},
	{"hologram", "Hologram"},
	{"fictionalCharacter", "Fictional"},

	// Performers
	{"animalPerformer", "Animal Performer"},
	{"disPerformer", "Discovery"},
	{"ds9Performer", "Deep Space Nine"},
	{"entPerformer", "Enterprise"},
	{"filmPerformer", "Films"},
	{"standInPerformer", "Stand-In"},
	{"stuntPerformer", "Stunts"},
	{"tasPerformer", "Animated Series"},
	{"tngPerformer", "The Next Generation"},
	{"tosPerformer", "The Original Series"},
	{"videoGamePerformer", "Video Games"},
	{"voicePerformer", "Voice"},
	{"voyPerformer", "Voyager"},

	// Staff
	{"artDepartment", "Art Department"},
	{"cameraAndElectricalDepartment", "Camera & Electrical"},
	{"castingDepartment", "Casting"},
	{"costumeDepartment", "Costume"},
	{"director", "Director"},
	{"writer", "Writer"},
	{"producer", "Producer"},
	{"composer", "Composer"},
	{"makeupStaff", "Makeup"},
	{"specialEffectsStaff", "Special Effects"},
	{"visualEffectsArtist", "Visual Effects"},
	{"novelist", "Novelist"},
	{"comicAuthor", "Comic Author"},

	// Species
	{"extinctSpecies", "Extinct"},
	{"warpCapableSpecies", "Warp Capable"},
	{"extraGalacticSpecies", "Extragalactic"},
	{"humanoidSpecies", "Humanoid"},
	{"reptilianSpecies", "Reptilian"},
	{"nonCorporealSpecies", "Non-Corporeal"},
	{"shapeshiftingSpecies", "Shapeshifting"},
	{"spaceborneSpecies", "Spaceborne"},
	{"telepathicSpecies", "Telepathic"},
	{"transDimensionalSpecies", "Trans-Dimensional"},
	{"unnamedSpecies", "Unnamed"},

	// Spacecraft classes
	{"warpCapable", "Warp Capable"},

	// Locations
	{"earthlyLocation", "Earthly"},
	{"fictionalLocation", "Fictional"},
	{"religiousLocation", "Religious"},
	{"geographicalLocation", "Geographical"},
	{"bodyOfWater", "Body of Water"},
	{"country", "Country"},
	{"settlement", "Settlement"},
	{"colony", "Colony"},
	{"landmark", "Landmark"},
	{"structure", "Structure"},
	{"shipyard", "Shipyard"},
	{"establishment", "Establishment"},
	{"school", "School"},

	// Technology and weapons
	{"borgTechnology", "Borg Technology"},
	{"borgComponent", "Borg Component"},
	{"communicationsTechnology", "Communications"},
	{"computerTechnology", "Computer"},
	{"medicalEquipment", "Medical Equipment"},
	{"transporterTechnology", "Transporter"},
	{"tool", "Tool"},
	{"handHeldWeapon", "Hand-Held"},
	{"laserTechnology", "Laser"},
	{"plasmaTechnology", "Plasma"},
	{"photonicTechnology", "Photonic"},
	{"phaserTechnology", "Phaser"},

	// Materials
	{"chemicalCompound", "Chemical Compound"},
	{"biochemicalCompound", "Biochemical Compound"},
	{"drug", "Drug"},
	{"mineral", "Mineral"},
	{"preciousMaterial", "Precious"},
	{"explosive", "Explosive"},
	{"gemstone", "Gemstone"},
	{"alloyOrComposite", "Alloy or Composite"},
	{"fuel", "Fuel"},
	{"crystallineMaterial", "Crystalline"},

	// Food
	{"earthlyOrigin", "Earthly Origin"},
	{"dessert", "Dessert"},
	{"fruit", "Fruit"},
	{"herbOrSpice", "Herb or Spice"},
	{"sauce", "Sauce"},
	{"soup", "Soup"},
	{"beverage", "Beverage"},
	{"alcoholicBeverage", "Alcoholic"},
	{"juice", "Juice"},
	{"tea", "Tea"},

	// Animals
	{"earthAnimal", "Earth Animal"},
	{"earthInsect", "Earth Insect"},
	{"avian", "Avian"},
	{"canine", "Canine"},
	{"feline", "Feline"},

	// Occupations and titles
	{"legalOccupation", "Legal"},
	{"medicalOccupation", "Medical"},
	{"scientificOccupation", "Scientific"},
	{"militaryRank", "Military Rank"},
	{"fleetRank", "Fleet Rank"},
	{"religiousTitle", "Religious Title"},
	{"position", "Position"},

	// Organizations
	{"government", "Government"},
	{"intergovernmentalOrganization", "Intergovernmental"},
	{"researchOrganization", "Research"},
	{"sportOrganization", "Sport"},
	{"medicalOrganization", "Medical"},
	{"militaryOrganization", "Military"},
	{"militaryUnit", "Military Unit"},
	{"governmentAgency", "Government Agency"},
	{"lawEnforcementAgency", "Law Enforcement"},
	{"prisonOrPenalColony", "Prison or Penal Colony"},

	// Companies
	{"broadcaster", "Broadcaster"},
	{"collectibleCompany", "Collectibles"},
	{"conglomerate", "Conglomerate"},
	{"distributor", "Distributor"},
	{"gameCompany", "Games"},
	{"productionCompany", "Production"},
	{"propCompany", "Props"},
	{"recordLabel", "Record Label"},
	{"specialEffectsCompany", "Special Effects"},
	{"tvAndFilmProductionCompany", "TV & Film Production"},
	{"videoGameCompany", "Video Games"},

	// Books and comics
	{"novel", "Novel"},
	{"referenceBook", "Reference"},
	{"biographyBook", "Biography"},
	{"rolePlayingBook", "Role-Playing"},
	{"eBook", "E-Book"},
	{"anthology", "Anthology"},
	{"novelization", "Novelization"},
	{"audiobook", "Audiobook"},
	{"photonovelSeries", "Photonovel"},
	{"miniseries", "Miniseries"},
}

var traitLabels = func() map[string]string {
	index := make(map[string]string, len(traitFlags))
	for _, flag := range traitFlags {
		index[flag.key] = flag.label
	}
	return index
}()

// TraitLabel returns the indicator label for a boolean attribute.
func TraitLabel(key string) (string, bool) {
	label, ok := traitLabels[key]
	return label, ok
}
