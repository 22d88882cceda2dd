// Copyright (c) 2026 Datacore. All rights reserved.

package trek

import (
	"cmp"
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/datacore/datacore/internal/platform/apperr"
)

// # Field Tables

// fieldSpec is one addIfPresent row.
type fieldSpec struct {
	key   string
	label string
	order int
}

// Order buckets. Rows inside a bucket keep their table order.
const (
	orderCatchAll = 1000
)

var classificationFields = []fieldSpec{
	{"gender", "Gender", 10},
	{"abbreviation", "Abbreviation", 11},
	{"registry", "Registry", 12},
	{"status", "Status", 13},
	{"dateStatus", "Date Status", 14},
	{"type", "Type", 15},
}

// nestedFields usually hold records; their name or title is shown.
var nestedFields = []fieldSpec{
	{"species", "Species", 20},
	{"homeworld", "Homeworld", 21},
	{"quadrant", "Quadrant", 22},
	{"location", "Location", 23},
	{"spacecraftClass", "Class", 24},
	{"owner", "Owner", 25},
	{"operator", "Operator", 26},
	{"mainDirector", "Director", 27},
	{"productionCompany", "Production Company", 28},
	{"originalBroadcaster", "Original Broadcaster", 29},
	{"series", "Series", 30},
	{"season", "Season", 31},
}

var contextFields = []fieldSpec{
	{"seasonNumber", "Season Number", 32},
	{"episodeNumber", "Episode Number", 33},
	{"productionSerialNumber", "Production Serial Number", 34},
}

// placeOfBirth and placeOfDeath serve characters and performers alike;
// a record is only ever one or the other.
var lifeFields = []fieldSpec{
	{"placeOfBirth", "Birthplace", 41},
	{"stardateOfBirth", "Stardate of Birth", 42},
	{"placeOfDeath", "Place of Death", 44},
	{"stardateOfDeath", "Stardate of Death", 45},
	{"birthName", "Birth Name", 46},
	{"usAirDate", "US Air Date", 48},
	{"finalScriptDate", "Final Script Date", 49},
}

// datePieces assembles one row from year/month/day attributes. fallback is a
// preformatted string used only when none of the pieces is present.
type datePieces struct {
	label    string
	order    int
	year     string
	month    string
	day      string
	fallback string
}

var assembledDates = []datePieces{
	{"Born", 40, "yearOfBirth", "monthOfBirth", "dayOfBirth", "dateOfBirth"},
	{"Died", 43, "yearOfDeath", "monthOfDeath", "dayOfDeath", "dateOfDeath"},
	{"Published", 47, "publishedYear", "publishedMonth", "publishedDay", ""},
}

type rangeSpec struct {
	label   string
	order   int
	from    string
	to      string
	openEnd string
}

var ranges = []rangeSpec{
	{"Stardate", 50, "stardateFrom", "stardateTo", openUnknown},
	{"Years", 51, "yearFrom", "yearTo", openUnknown},
	{"Production", 52, "productionStartYear", "productionEndYear", openPresent},
	{"Original Run", 53, "originalRunStartDate", "originalRunEndDate", openPresent},
	{"Active", 54, "activeFrom", "activeTo", openPresent},
}

type localizedTitle struct {
	key    string
	prefix string
}

// localizedTitles is in display order.
var localizedTitles = []localizedTitle{
	{"titleGerman", "DE"},
	{"titleJapanese", "JP"},
	{"titleItalian", "IT"},
	{"titleSpanish", "ES"},
	{"titleRussian", "RU"},
	{"titlePolish", "PL"},
	{"titleBulgarian", "BG"},
	{"titleCatalan", "CA"},
	{"titleChineseTraditional", "ZH"},
	{"titleSerbian", "SR"},
}

const (
	alternateTitlesLabel     = "Alternate Titles"
	alternateTitlesOrder     = 60
	alternateTitlesSeparator = " · "
)

var countFields = []fieldSpec{
	{"seasonsCount", "Seasons", 70},
	{"episodesCount", "Episodes", 71},
	{"featureLengthEpisodesCount", "Feature-Length Episodes", 72},
	{"numberOfDecks", "Decks", 73},
	{"crew", "Crew", 74},
	{"height", "Height", 75},
	{"weight", "Weight", 76},
	{"bloodType", "Blood Type", 77},
	{"maritalStatus", "Marital Status", 78},
	{"serialNumber", "Serial Number", 79},
	{"hologramActivationDate", "Hologram Activation", 80},
	{"hologramStatus", "Hologram Status", 81},
	{"hologramDateStatus", "Hologram Date Status", 82},
	{"numberOfPages", "Pages", 84},
	{"numberOfIssues", "Issues", 85},
	{"length", "Length", 86},
	{"releaseDate", "Release Date", 87},
}

const (
	featureLengthKey   = "featureLength"
	featureLengthLabel = "Feature Length"
	featureLengthOrder = 83
)

// identityKeys name and title the heading instead of a row.
var identityKeys = []string{"uid", "name", "title"}

// handled is every attribute consumed before the catch-all.
var handled = func() map[string]struct{} {
	set := make(map[string]struct{})
	add := func(keys ...string) {
		for _, key := range keys {
			if key != "" {
				set[key] = struct{}{}
			}
		}
	}

	add(identityKeys...)
	for _, table := range [][]fieldSpec{classificationFields, nestedFields, contextFields, lifeFields, countFields} {
		for _, spec := range table {
			add(spec.key)
		}
	}
	for _, date := range assembledDates {
		add(date.year, date.month, date.day, date.fallback)
	}
	for _, r := range ranges {
		add(r.from, r.to)
	}
	for _, title := range localizedTitles {
		add(title.key)
	}
	add(featureLengthKey)
	return set
}()

// IsHandled reports whether key is consumed by a dedicated rule.
func IsHandled(key string) bool {
	_, ok := handled[key]
	return ok
}

// # Pipeline

// Present reduces a raw record to its display model. It fails only when raw
// is not a record.
func Present(entityType EntityType, raw any) (*Presentation, error) {
	record, ok := raw.(map[string]any)
	if !ok {
		return nil, apperr.InvalidInput("Entity payload must be a JSON object")
	}

	builder := &fieldBuilder{record: record, fields: make([]DisplayField, 0)}

	// 1. Ordered scalar additions
	for _, table := range [][]fieldSpec{classificationFields, nestedFields, contextFields} {
		for _, spec := range table {
			builder.addIfPresent(spec)
		}
	}

	// 2. Assembled dates and places
	for _, date := range assembledDates {
		builder.addDate(date)
	}
	for _, spec := range lifeFields {
		builder.addIfPresent(spec)
	}

	// 3. Ranges
	for _, r := range ranges {
		builder.add(r.label, formatRange(builder.scalar(r.from), builder.scalar(r.to), r.openEnd), r.order)
	}

	// 4. Localized titles
	builder.addAlternateTitles()

	// 5. Counts and miscellany
	for _, spec := range countFields {
		builder.addIfPresent(spec)
	}
	if flag, ok := record[featureLengthKey].(bool); ok && flag {
		builder.add(featureLengthLabel, "Yes", featureLengthOrder)
	}

	// 6. Scalar catch-all
	builder.addRemaining()

	// 7. Sort
	slices.SortStableFunc(builder.fields, func(a, b DisplayField) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), strings.Compare(a.Label, b.Label))
	})

	label := LabelFor(entityType)
	return &Presentation{
		Identity: Identity{
			UID:           scalarString(record["uid"]),
			DisplayName:   cmp.Or(scalarString(record["name"]), scalarString(record["title"])),
			StylizedLabel: label.Stylized,
		},
		Fields:     builder.fields,
		Indicators: indicators(record),
		Relations:  relations(record),
	}, nil
}

// fieldBuilder accumulates rows for one record.
type fieldBuilder struct {
	record map[string]any
	fields []DisplayField
}

func (builder *fieldBuilder) add(label, value string, order int) {
	if value == "" {
		return
	}
	builder.fields = append(builder.fields, DisplayField{Label: label, Value: value, Order: order})
}

// addIfPresent stringifies scalars and extracts name or title from records.
// Booleans and arrays never produce a row here.
func (builder *fieldBuilder) addIfPresent(spec fieldSpec) {
	builder.add(spec.label, displayValue(builder.record[spec.key]), spec.order)
}

func (builder *fieldBuilder) scalar(key string) string {
	return scalarString(builder.record[key])
}

func (builder *fieldBuilder) addDate(date datePieces) {
	value := assembleDate(builder.scalar(date.year), builder.scalar(date.month), builder.scalar(date.day))
	if value == "" && date.fallback != "" {
		if text, ok := builder.record[date.fallback].(string); ok {
			value = strings.TrimSpace(text)
		}
	}
	builder.add(date.label, value, date.order)
}

func (builder *fieldBuilder) addAlternateTitles() {
	var parts []string
	for _, title := range localizedTitles {
		if value := builder.scalar(title.key); value != "" {
			parts = append(parts, title.prefix+": "+value)
		}
	}
	builder.add(alternateTitlesLabel, strings.Join(parts, alternateTitlesSeparator), alternateTitlesOrder)
}

func (builder *fieldBuilder) addRemaining() {
	keys := make([]string, 0, len(builder.record))
	for key := range builder.record {
		if !IsHandled(key) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	for _, key := range keys {
		builder.add(Humanize(key), scalarString(builder.record[key]), orderCatchAll)
	}
}

// # Indicators

func indicators(record map[string]any) []TraitIndicator {
	out := make([]TraitIndicator, 0)
	for _, flag := range traitFlags {
		if active, ok := record[flag.key].(bool); ok {
			out = append(out, TraitIndicator{Key: flag.key, Label: flag.label, Active: active})
		}
	}
	return out
}

// # Relations

func relations(record map[string]any) []RelationGroup {
	known := make(map[string]struct{}, len(relationOrder))
	fields := make([]string, 0)
	for _, field := range relationOrder {
		known[field] = struct{}{}
		if _, ok := record[field]; ok {
			fields = append(fields, field)
		}
	}

	var unknown []string
	for field := range record {
		if _, ok := known[field]; !ok {
			unknown = append(unknown, field)
		}
	}
	slices.Sort(unknown)
	fields = append(fields, unknown...)

	out := make([]RelationGroup, 0)
	for _, field := range fields {
		if group, ok := relationGroup(field, record[field]); ok {
			out = append(out, group)
		}
	}
	return out
}

func relationGroup(field string, value any) (RelationGroup, bool) {
	list, ok := value.([]any)
	if !ok || len(list) == 0 {
		return RelationGroup{}, false
	}
	first, ok := list[0].(map[string]any)
	if !ok || !hasAny(first, "uid", "name", "title") {
		return RelationGroup{}, false
	}

	inferred := InferTypeFor(field)
	items := make([]RelationItem, 0, min(len(list), MaxRelationItems))
	total := 0
	for _, element := range list {
		related, ok := element.(map[string]any)
		if !ok {
			continue
		}
		uid := scalarString(related["uid"])
		name := cmp.Or(scalarString(related["name"]), scalarString(related["title"]), uid)
		if name == "" {
			continue
		}
		total++
		if len(items) == MaxRelationItems {
			continue
		}

		item := RelationItem{UID: uid, Name: name}
		if uid != "" {
			item.Route = RouteFor(inferred, uid)
		}
		items = append(items, item)
	}

	return RelationGroup{
		FieldName:    field,
		InferredType: inferred,
		Label:        Humanize(field),
		Items:        items,
		Total:        total,
		Hidden:       total - len(items),
	}, true
}

func hasAny(record map[string]any, keys ...string) bool {
	for _, key := range keys {
		if _, ok := record[key]; ok {
			return true
		}
	}
	return false
}

// # Value Formatting

// displayValue renders a scalar, or the name/title of a nested record.
func displayValue(value any) string {
	if nested, ok := value.(map[string]any); ok {
		return cmp.Or(scalarString(nested["name"]), scalarString(nested["title"]))
	}
	return scalarString(value)
}

// scalarString renders strings and numbers. Booleans, nulls, records and
// arrays render as "".
func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return formatNumber(v)
	case float32:
		return formatNumber(float64(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return formatNumber(f)
		}
		return v.String()
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
