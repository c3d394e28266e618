package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "juan dela cruz", Normalize("  Juan Dela Cruz  "))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "ñato", Normalize("Ñato"))
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"09171234567", "+639171234567"},
		{"0917 123 4567", "+639171234567"},
		{"0917-123-4567", "+639171234567"},
		{"+639171234567", "+639171234567"},
		{"12345", "12345"},          // unknown shape, passed through
		{"0917123", "0917123"},      // too short for the 09 rule
		{"(042) 315", "(042)315"},   // stripped of spaces only
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), "input %q", tt.in)
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList("   "))
	assert.Equal(t, []string{"Ana"}, SplitList("Ana"))
	assert.Equal(t, []string{"Ana", "Ben", "Carla"}, SplitList("Ana, Ben , Carla"))
	assert.Equal(t, []string{"Ana", "Ben"}, SplitList("Ana,,Ben,"))
}

func TestJoinList(t *testing.T) {
	assert.Equal(t, "", JoinList(nil))
	assert.Equal(t, "Ana, Ben", JoinList([]string{"Ana", "Ben"}))
}

func TestSplitJoinRoundTrip(t *testing.T) {
	in := "Ana, Ben, Carla"
	assert.Equal(t, in, JoinList(SplitList(in)))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("25"))
	assert.True(t, IsNumeric("0"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("25a"))
	assert.False(t, IsNumeric("2.5"))
	assert.False(t, IsNumeric("-5"))
}
