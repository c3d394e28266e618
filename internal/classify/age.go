package classify

import (
	"strconv"
	"time"

	"github.com/mquezada/katutubo/internal/datastore"
)

// birthDateLayouts are the date shapes observed in stored records, oldest
// imports included.
var birthDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"January 2, 2006",
}

// ParseBirthDate parses the tolerated birth date encodings: ISO dates,
// RFC3339 timestamps, US-style dates, spelled-out dates, and bare epoch
// seconds from the oldest exports.
func ParseBirthDate(raw string) (time.Time, bool) {
	s := normalizeSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if IsNumeric(s) {
		if secs, err := strconv.ParseInt(s, 10, 64); err == nil && secs > 0 {
			return time.Unix(secs, 0).UTC(), true
		}
	}
	return time.Time{}, false
}

func normalizeSpace(s string) string {
	// Trim only; date layouts are case sensitive so no folding here.
	for len(s) > 0 && (s[0] == ' ' || s[0] == '\t') {
		s = s[1:]
	}
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
		s = s[:len(s)-1]
	}
	return s
}

// Age resolves the age of p as of now. A parseable birth date takes
// precedence over the stored age column; the stored value is only trusted
// when no birth date is available. The second return is false when neither
// source yields an age.
func Age(p *datastore.Person, now time.Time) (int, bool) {
	if p == nil {
		return 0, false
	}
	if dob, ok := ParseBirthDate(p.DateOfBirth); ok {
		return yearsBetween(dob, now), true
	}
	if p.Age != nil {
		return *p.Age, true
	}
	return 0, false
}

// yearsBetween computes whole years from birth to now, decrementing when
// this year's birthday has not yet occurred.
func yearsBetween(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}
