package classify

import (
	"time"

	"github.com/mquezada/katutubo/internal/datastore"
)

// Summary holds the aggregate community counts shown on the dashboards.
type Summary struct {
	Total               int `json:"total"`
	Male                int `json:"male"`
	Female              int `json:"female"`
	Students            int `json:"students"`
	NotAttending25Below int `json:"notAttending25Below"`
	Unemployed          int `json:"unemployed"`
	WithHealth          int `json:"withHealthCondition"`
	NoHealth            int `json:"noHealthCondition"`
}

// Summarize computes the aggregate counts over people as of now in a
// single pass.
func (c *Classifier) Summarize(people []datastore.Person, now time.Time) Summary {
	s := Summary{Total: len(people)}
	for i := range people {
		p := &people[i]
		switch p.Gender {
		case "Male":
			s.Male++
		case "Female":
			s.Female++
		}
		if c.IsStudent(p) {
			s.Students++
		} else if age, ok := Age(p, now); ok && age <= 25 {
			s.NotAttending25Below++
		}
		if c.IsUnemployed(p) {
			s.Unemployed++
		}
		if c.HasHealthCondition(p) {
			s.WithHealth++
		} else {
			s.NoHealth++
		}
	}
	return s
}
