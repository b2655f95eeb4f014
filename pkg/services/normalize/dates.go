package normalize

import (
	"strings"
	"time"
)

// Date formats observed in payment feeds. Order matters: the most common
// first so the loop usually exits on the first try.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
}

// ParseDate attempts to parse a date string in multiple common formats.
// Returns a zero time and false if the input is empty or unparseable.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
