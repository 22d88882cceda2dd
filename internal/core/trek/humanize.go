// Copyright (c) 2026 Datacore. All rights reserved.

package trek

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser keeps existing capitals so acronyms such as "DS9" survive.
var titleCaser = cases.Title(language.English, cases.NoLower)

// Humanize turns a camelCase attribute key into a Title Case label.
//
// Example:
//
//	Humanize("numberOfDecks")  // "Number Of Decks"
//	Humanize("ds9Performer")   // "Ds9 Performer"
func Humanize(key string) string {
	if key == "" {
		return ""
	}

	var builder strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		if r == '_' || r == '-' {
			builder.WriteRune(' ')
			continue
		}
		if i > 0 && unicode.IsUpper(r) {
			previous := runes[i-1]
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(previous) || unicode.IsDigit(previous) || (unicode.IsUpper(previous) && nextIsLower) {
				builder.WriteRune(' ')
			}
		}
		builder.WriteRune(r)
	}

	return titleCaser.String(strings.Join(strings.Fields(builder.String()), " "))
}
