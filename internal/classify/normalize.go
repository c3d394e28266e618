// Package classify answers the classification questions asked of person
// records: student status, employment, health condition, derived age, and
// the category filters and orderings built on top of them.
//
// Records come in two shapes. Current records carry structured fields
// (IsStudent, IsEmployed, the Healthy/Not Healthy enum); legacy records only
// carry free text that has to be reinterpreted against fixed vocabularies.
// Every function here is total: malformed data degrades to the legacy
// fallback or to "unknown", never to a panic or an error.
package classify

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Normalize trims surrounding whitespace and case-folds s for comparisons.
func Normalize(s string) string {
	return folder.String(strings.TrimSpace(s))
}

// NormalizePhone canonicalizes Philippine mobile numbers to +63 form.
// Values that do not match a known shape are returned stripped of spaces
// and dashes but otherwise untouched.
func NormalizePhone(raw string) string {
	if raw == "" {
		return ""
	}
	v := strings.NewReplacer(" ", "", "-", "").Replace(raw)
	switch {
	case strings.HasPrefix(v, "+63") && len(v) == 13:
		return v
	case strings.HasPrefix(v, "09") && len(v) == 11:
		return "+63" + v[1:]
	default:
		return v
	}
}

// SplitList converts a comma-joined display string into a trimmed list,
// dropping empty entries.
func SplitList(val string) []string {
	if strings.TrimSpace(val) == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// JoinList renders a stored name list in the comma-joined display form.
func JoinList(vals []string) string {
	return strings.Join(vals, ", ")
}

// IsNumeric reports whether s consists solely of ASCII digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
