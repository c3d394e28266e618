package classify

import (
	"time"

	"github.com/mquezada/katutubo/internal/datastore"
)

// Category identifies one of the dashboard population categories.
type Category string

const (
	CategoryAll                 Category = ""
	CategoryMale                Category = "male"
	CategoryFemale              Category = "female"
	CategoryStudents            Category = "students"
	CategoryNotAttending25Below Category = "not_attending_25_below"
	CategoryUnemployed          Category = "unemployed"
	CategoryWithHealth          Category = "with_health"
	CategoryNoHealth            Category = "no_health"
)

// ParseCategory maps a request parameter to a Category. Unknown values
// degrade to CategoryAll rather than erroring; category links are built by
// clients of several vintages.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryMale, CategoryFemale, CategoryStudents,
		CategoryNotAttending25Below, CategoryUnemployed,
		CategoryWithHealth, CategoryNoHealth:
		return Category(s)
	case "student": // older links use the singular form
		return CategoryStudents
	default:
		return CategoryAll
	}
}

// FilterByCategory returns the subset of people matching cat as of now.
// CategoryAll is the identity. Ordering of the result is the input
// ordering; sorting is a separate concern.
func (c *Classifier) FilterByCategory(people []datastore.Person, cat Category, now time.Time) []datastore.Person {
	if cat == CategoryAll {
		return people
	}
	out := make([]datastore.Person, 0, len(people))
	for i := range people {
		p := &people[i]
		if c.matchesCategory(p, cat, now) {
			out = append(out, people[i])
		}
	}
	return out
}

func (c *Classifier) matchesCategory(p *datastore.Person, cat Category, now time.Time) bool {
	switch cat {
	case CategoryMale:
		return p.Gender == "Male"
	case CategoryFemale:
		return p.Gender == "Female"
	case CategoryStudents:
		return c.IsStudent(p)
	case CategoryNotAttending25Below:
		// Uses the fallback-aware student predicate so legacy records
		// without the structured enum still participate.
		age, ok := Age(p, now)
		return ok && age <= 25 && !c.IsStudent(p)
	case CategoryUnemployed:
		return c.IsUnemployed(p)
	case CategoryWithHealth:
		return c.HasHealthCondition(p)
	case CategoryNoHealth:
		return !c.HasHealthCondition(p)
	default:
		return true
	}
}
