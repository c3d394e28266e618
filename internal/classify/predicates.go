package classify

import (
	"strings"

	"github.com/mquezada/katutubo/internal/datastore"
)

// Structured enum values of the current schema.
const (
	StudentYes = "Student"
	StudentNo  = "Not Student"

	HealthHealthy    = "Healthy"
	HealthNotHealthy = "Not Healthy"
)

// IsStudent reports whether p is a student. The structured IsStudent enum
// wins when present; legacy records fall back to a keyword scan of the
// occupation text.
func (c *Classifier) IsStudent(p *datastore.Person) bool {
	if p == nil {
		return false
	}
	if p.IsStudent != "" {
		return p.IsStudent == StudentYes
	}
	return c.studentOccupation(p.Occupation)
}

func (c *Classifier) studentOccupation(occupation string) bool {
	if occupation == "" {
		return false
	}
	s := Normalize(occupation)
	for _, k := range c.Vocab.StudentKeywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// IsUnemployed reports whether p is unemployed. The structured IsEmployed
// flag wins when present, even against contradictory occupation text;
// legacy records fall back to the empty-occupation markers.
func (c *Classifier) IsUnemployed(p *datastore.Person) bool {
	if p == nil {
		return false
	}
	if p.IsEmployed != nil {
		return !*p.IsEmployed
	}
	return c.emptyOccupation(p.Occupation)
}

func (c *Classifier) emptyOccupation(occupation string) bool {
	s := Normalize(occupation)
	if s == "" {
		return true
	}
	for _, m := range c.Vocab.EmptyOccupationMarkers {
		if s == m {
			return true
		}
	}
	return false
}

// HasHealthCondition reports whether p has a recorded health condition.
// The Healthy/Not Healthy enum wins when present; legacy free text is
// matched against the healthy-synonym vocabulary, anything else counts as
// a condition.
func (c *Classifier) HasHealthCondition(p *datastore.Person) bool {
	if p == nil {
		return false
	}
	switch p.HealthCondition {
	case HealthHealthy:
		return false
	case HealthNotHealthy:
		return true
	}
	s := Normalize(p.HealthCondition)
	if s == "" {
		return false
	}
	for _, syn := range c.Vocab.HealthySynonyms {
		if s == syn {
			return false
		}
	}
	return true
}
