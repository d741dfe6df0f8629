package validation

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	v := Violations{}
	assert.False(t, Required("name", "   ", v))
	assert.True(t, v.Has("name"))

	v = Violations{}
	assert.True(t, Required("name", "Ducati", v))
	assert.True(t, v.Empty())
}

func TestMinMaxLength(t *testing.T) {
	v := Violations{}
	MinLength("firstName", "J", 2, v)
	MaxLength("notes", "abcdef", 5, v)
	assert.Equal(t, []string{"firstName", "notes"}, v.Fields())
	assert.Equal(t, "firstName must be at least 2 characters", v["firstName"])

	// counted in runes, not bytes
	v = Violations{}
	assert.True(t, MinLength("lastName", "Ñú", 2, v))
}

func TestMatches(t *testing.T) {
	re := regexp.MustCompile(`^\d+$`)
	v := Violations{}
	assert.False(t, Matches("zipCode", "28a01", re, "invalid zip code", v))
	assert.Equal(t, "invalid zip code", v["zipCode"])
}

func TestMergeAndAddOverwrites(t *testing.T) {
	v := Violations{}
	v.Add("discount", "first")
	v.Add("discount", "second")
	assert.Equal(t, "second", v["discount"])

	outer := Violations{}
	outer.Merge("details[1].", v)
	assert.Equal(t, "second", outer["details[1].discount"])
}
