package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var crewHeader = []string{"tconst", "directors", "writers"}

func TestPersonSetSkipsEmptyIDs(t *testing.T) {
	crew := newTable(t, "title.crew", crewHeader,
		[]string{"e1", "nm1,nm2", ""},
		[]string{"e2", `\N`, "nm3,"},
	)
	characters := newTable(t, "characters", []string{"tconst", "nconst"},
		[]string{"e1", "nm4"},
	)

	people, err := PersonSet(crew, characters)
	require.NoError(t, err)

	assert.Equal(t, map[string]struct{}{"nm1": {}, "nm2": {}, "nm3": {}, "nm4": {}}, people)
	assert.NotContains(t, people, "")
	assert.NotContains(t, people, `\N`)
}

func TestBuildNameLookup(t *testing.T) {
	crew := newTable(t, "title.crew", crewHeader,
		[]string{"e1", "nm1", "nm2,nm1"},
	)
	characters := newTable(t, "characters", []string{"tconst", "nconst"},
		[]string{"e1", "nm3"},
		[]string{"e2", "nm3"},
	)
	names := newTable(t, "name.basics", []string{"nconst", "primaryName", "birthYear"},
		[]string{"nm3", "Anna Torv", "1978"},
		[]string{"nm9", "Someone Else", "1950"},
		[]string{"nm1", "Alex Graves", "1965"},
		[]string{"nm2", "Alex Kurtzman", "1973"},
		[]string{"nm1", "Alex Graves", "1965"},
	)

	lookup, err := BuildNameLookup(crew, characters, names)
	require.NoError(t, err)

	assert.Equal(t, NameColumns, lookup.Header())
	assert.Equal(t, []string{"nm3", "nm1", "nm2"}, column(t, lookup, "nconst"))
	assert.Equal(t, []string{"Anna Torv", "Alex Graves", "Alex Kurtzman"}, column(t, lookup, "primaryName"))
}
