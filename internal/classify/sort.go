package classify

import (
	"sort"
	"strings"

	"github.com/mquezada/katutubo/internal/datastore"
)

// SortByName orders people by last name, then first, then middle,
// ascending and case-insensitive. Missing names compare as empty strings
// and therefore sort first. The sort is stable.
func SortByName(people []datastore.Person) {
	sort.SliceStable(people, func(i, j int) bool {
		a, b := &people[i], &people[j]
		if c := compareFold(a.LastName, b.LastName); c != 0 {
			return c < 0
		}
		if c := compareFold(a.FirstName, b.FirstName); c != 0 {
			return c < 0
		}
		return compareFold(a.MiddleName, b.MiddleName) < 0
	})
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
