package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mquezada/katutubo/internal/datastore"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"", CategoryAll},
		{"male", CategoryMale},
		{"female", CategoryFemale},
		{"students", CategoryStudents},
		{"student", CategoryStudents}, // legacy singular
		{"not_attending_25_below", CategoryNotAttending25Below},
		{"unemployed", CategoryUnemployed},
		{"with_health", CategoryWithHealth},
		{"no_health", CategoryNoHealth},
		{"bogus", CategoryAll},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseCategory(tt.in), "input %q", tt.in)
	}
}

func testPopulation() []datastore.Person {
	return []datastore.Person{
		{PublicID: "m-student", FirstName: "Juan", Gender: "Male", IsStudent: StudentYes, Occupation: "Student", DateOfBirth: "2005-01-01"},
		{PublicID: "f-legacy-student", FirstName: "Maria", Gender: "Female", Occupation: "estudyante", DateOfBirth: "2008-03-10"},
		{PublicID: "m-young-idle", FirstName: "Pedro", Gender: "Male", IsStudent: StudentNo, Occupation: "none", DateOfBirth: "2004-06-01"},
		{PublicID: "f-worker", FirstName: "Ana", Gender: "Female", IsEmployed: boolPtr(true), Occupation: "Teacher", Age: intPtr(40)},
		{PublicID: "m-sick", FirstName: "Jose", Gender: "Male", HealthCondition: "Asthma", Age: intPtr(60)},
		{PublicID: "no-age", FirstName: "Luz", Gender: "Female", IsStudent: StudentNo},
	}
}

func TestFilterByCategory(t *testing.T) {
	c := NewClassifier(Vocabulary{})
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	people := testPopulation()

	ids := func(cat Category) []string {
		var out []string
		for _, p := range c.FilterByCategory(people, cat, now) {
			out = append(out, p.PublicID)
		}
		return out
	}

	assert.Len(t, c.FilterByCategory(people, CategoryAll, now), len(people))
	assert.Equal(t, []string{"m-student", "m-young-idle", "m-sick"}, ids(CategoryMale))
	assert.Equal(t, []string{"f-legacy-student", "f-worker", "no-age"}, ids(CategoryFemale))
	assert.Equal(t, []string{"m-student", "f-legacy-student"}, ids(CategoryStudents))
	// The legacy-aware student predicate keeps f-legacy-student out; no-age
	// has no resolvable age and is excluded as well.
	assert.Equal(t, []string{"m-young-idle"}, ids(CategoryNotAttending25Below))
	assert.Equal(t, []string{"m-young-idle", "m-sick", "no-age"}, ids(CategoryUnemployed))
	assert.Equal(t, []string{"m-sick"}, ids(CategoryWithHealth))
	assert.Equal(t, []string{"m-student", "f-legacy-student", "m-young-idle", "f-worker", "no-age"}, ids(CategoryNoHealth))
}

func TestFilterByCategoryPreservesInputOrder(t *testing.T) {
	c := NewClassifier(Vocabulary{})
	now := time.Now()
	people := []datastore.Person{
		{PublicID: "b", Gender: "Male"},
		{PublicID: "a", Gender: "Male"},
	}

	got := c.FilterByCategory(people, CategoryMale, now)
	assert.Equal(t, "b", got[0].PublicID)
	assert.Equal(t, "a", got[1].PublicID)
}
