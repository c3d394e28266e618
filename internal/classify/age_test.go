package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mquezada/katutubo/internal/datastore"
)

func TestParseBirthDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
		ok   bool
	}{
		{"iso date", "2000-06-15", time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"rfc3339", "2000-06-15T00:00:00Z", time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"us date", "06/15/2000", time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"spelled out", "June 15, 2000", time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"epoch seconds", "961027200", time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"surrounding whitespace", "  2000-06-15  ", time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"free text", "sometime in june", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBirthDate(tt.raw)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAgeBirthDatePrecedence(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	// A parseable birth date wins over a contradictory stored age.
	p := &datastore.Person{DateOfBirth: "2000-06-15", Age: intPtr(99)}
	age, ok := Age(p, now)
	require.True(t, ok)
	assert.Equal(t, 25, age)
}

func TestAgeStoredFallback(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	p := &datastore.Person{DateOfBirth: "unknown", Age: intPtr(42)}
	age, ok := Age(p, now)
	require.True(t, ok)
	assert.Equal(t, 42, age)
}

func TestAgeUnknown(t *testing.T) {
	now := time.Now()

	_, ok := Age(&datastore.Person{}, now)
	assert.False(t, ok)

	_, ok = Age(nil, now)
	assert.False(t, ok)
}

func TestAgeBirthdayBoundary(t *testing.T) {
	birth := "2000-06-15"

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"day before birthday", time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), 24},
		{"on birthday", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), 25},
		{"day after birthday", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), 25},
		{"earlier month", time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), 24},
		{"later month", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &datastore.Person{DateOfBirth: birth}
			age, ok := Age(p, tt.now)
			require.True(t, ok)
			assert.Equal(t, tt.want, age)
		})
	}
}
