// Package barangay holds the fixed barangay enumeration of Catanauan,
// Quezon. The list is authoritative: person records must carry one of
// these names verbatim, and the per-barangay views enumerate all of them
// whether populated or not.
package barangay

import "strings"

// Barangay is one entry of the fixed enumeration.
type Barangay struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// allBarangays is the enumeration in listing order. IDs are stable and
// referenced by stored client links, never renumber.
var allBarangays = []Barangay{
	{1, "Ajos"},
	{2, "Anusan"},
	{3, "Barangay 1"},
	{4, "Barangay 10"},
	{5, "Barangay 2"},
	{6, "Barangay 3"},
	{7, "Barangay 4"},
	{8, "Barangay 5"},
	{9, "Barangay 6"},
	{10, "Barangay 7"},
	{11, "Barangay 8"},
	{12, "Barangay 9"},
	{13, "Bolo"},
	{14, "Bulagsong"},
	{15, "Camandilison"},
	{16, "Canculajao"},
	{17, "Catumbo"},
	{18, "Cawayanin Ibaba"},
	{19, "Cawayanin Ilaya"},
	{20, "Cutcutan"},
	{21, "Dahican"},
	{22, "Doongan Ibaba"},
	{23, "Doongan Ilaya"},
	{24, "Gatasan"},
	{25, "Macpac"},
	{26, "Madulao"},
	{27, "Matandang Sabang Kanluran"},
	{28, "Matandang Sabang Silangan"},
	{29, "Milagrosa"},
	{30, "Navitas"},
	{31, "Pacabit"},
	{32, "San Antonio Magkupa"},
	{33, "San Antonio Pala"},
	{34, "San Isidro"},
	{35, "San Jose Anyao"},
	{36, "San Pablo"},
	{37, "San Roque"},
	{38, "San Vicente Kanluran"},
	{39, "San Vicente Silangan"},
	{40, "Santa Maria"},
	{41, "Tagabas Ibaba"},
	{42, "Tagabas Ilaya"},
	{43, "Tagbacan Ibaba"},
	{44, "Tagbacan Ilaya"},
	{45, "Tagbacan Silangan"},
	{46, "Tuhian"},
}

// byLower maps the case-folded name to the canonical entry.
var byLower = func() map[string]Barangay {
	m := make(map[string]Barangay, len(allBarangays))
	for _, b := range allBarangays {
		m[strings.ToLower(b.Name)] = b
	}
	return m
}()

// All returns the enumeration in listing order. The caller must not
// modify the returned slice.
func All() []Barangay {
	return allBarangays
}

// Names returns the barangay names in listing order.
func Names() []string {
	names := make([]string, len(allBarangays))
	for i, b := range allBarangays {
		names[i] = b.Name
	}
	return names
}

// Valid reports whether name matches a known barangay, ignoring case and
// surrounding whitespace.
func Valid(name string) bool {
	return Canonical(name) != ""
}

// Canonical resolves name to its canonical spelling, or "" when the name
// is not in the enumeration.
func Canonical(name string) string {
	b, ok := byLower[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ""
	}
	return b.Name
}

// MatchPrefix returns up to limit barangay names starting with term,
// case-insensitive, in listing order. An empty term matches nothing.
func MatchPrefix(term string, limit int) []string {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" || limit <= 0 {
		return nil
	}
	var out []string
	for _, b := range allBarangays {
		if strings.HasPrefix(strings.ToLower(b.Name), t) {
			out = append(out, b.Name)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
