package tabular

import (
	"strconv"
	"strings"
	"time"
)

// dateFormats is the accepted set of date layouts, tried in order.
var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// missingTokens are cell values treated as absent regardless of field type.
var missingTokens = map[string]struct{}{
	"":     {},
	"n/a":  {},
	"na":   {},
	"nan":  {},
	"none": {},
	"null": {},
	"-":    {},
}

func isMissing(raw string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// coerceText trims a cell; absent markers collapse to the empty string.
func coerceText(raw string) string {
	if isMissing(raw) {
		return ""
	}
	return strings.TrimSpace(raw)
}

// coerceNumber parses a cell as a float. Unparsable or absent cells come back
// nil rather than failing the row. With nonNegative set, negative readings are
// treated as absent too.
func coerceNumber(raw string, nonNegative bool) *float64 {
	if isMissing(raw) {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	if nonNegative && n < 0 {
		return nil
	}
	return &n
}

// coerceDate parses a cell against the accepted layouts. Unparsable or absent
// cells come back nil.
func coerceDate(raw string) *time.Time {
	if isMissing(raw) {
		return nil
	}
	trimmed := strings.TrimSpace(raw)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return &t
		}
	}
	return nil
}
