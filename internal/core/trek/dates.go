// Copyright (c) 2026 Datacore. All rights reserved.

package trek

import (
	"strconv"
	"strings"
	"time"
)

// Range placeholders.
const (
	rangeSeparator = " – "
	openUnknown    = "?"
	openPresent    = "Present"
)

// assembleDate renders "day month year" from whichever pieces are present.
// Month numbers outside 1..12 are dropped.
func assembleDate(year, month, day string) string {
	parts := make([]string, 0, 3)
	if day != "" {
		parts = append(parts, day)
	}
	if month != "" {
		if name := monthName(month); name != "" {
			parts = append(parts, name)
		}
	}
	if year != "" {
		parts = append(parts, year)
	}
	return strings.Join(parts, " ")
}

func monthName(month string) string {
	n, err := strconv.Atoi(month)
	if err != nil || n < int(time.January) || n > int(time.December) {
		return ""
	}
	return time.Month(n).String()
}

// formatRange renders a from/to pair as a single row value.
//
//   - Both missing: "".
//   - Equal endpoints: the single value.
//   - Missing end: "from – " plus openEnd ("?" or "Present").
//   - Missing start: "? – to".
func formatRange(from, to, openEnd string) string {
	switch {
	case from == "" && to == "":
		return ""
	case from == to:
		return from
	case to == "":
		return from + rangeSeparator + openEnd
	case from == "":
		return openUnknown + rangeSeparator + to
	default:
		return from + rangeSeparator + to
	}
}
