package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	table := NewTable("title.episode", []string{"tconst", "parentTconst", "seasonNumber", "episodeNumber"})
	require.NoError(t, table.Append([]string{"tt2", "tt1", "1", "2"}))
	require.NoError(t, table.Append([]string{"tt3", "tt1", `\N`, `\N`}))
	require.NoError(t, table.Append([]string{"tt4", "tt9", "x", "1"}))
	return table
}

func TestTableAppendColumnCount(t *testing.T) {
	table := NewTable("t", []string{"a", "b"})

	err := table.Append([]string{"only-one"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrColumnCount))
	assert.Equal(t, 0, table.Len())
}

func TestTableFilterKeepsOrder(t *testing.T) {
	table := newTestTable(t)

	got := table.Filter(func(r Row) bool { return r.Get("parentTconst") == "tt1" })

	ids, err := got.Values("tconst")
	require.NoError(t, err)
	assert.Equal(t, []string{"tt2", "tt3"}, ids)
	assert.Equal(t, table.Header(), got.Header())
}

func TestTableSelectAndDrop(t *testing.T) {
	table := newTestTable(t)

	selected, err := table.Select("episodeNumber", "tconst")
	require.NoError(t, err)
	assert.Equal(t, []string{"episodeNumber", "tconst"}, selected.Header())
	assert.Equal(t, []string{"2", "tt2"}, selected.Row(0).Values())

	dropped, err := table.Drop("parentTconst")
	require.NoError(t, err)
	assert.Equal(t, []string{"tconst", "seasonNumber", "episodeNumber"}, dropped.Header())
	assert.Equal(t, 3, dropped.Len())

	_, err = table.Select("nope")
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestTableIndexFirstOccurrence(t *testing.T) {
	table := NewTable("t", []string{"id"})
	require.NoError(t, table.Append([]string{"a"}))
	require.NoError(t, table.Append([]string{"b"}))
	require.NoError(t, table.Append([]string{"a"}))

	index, err := table.Index("id")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 0, "b": 1}, index)
}

func TestRowAccessors(t *testing.T) {
	table := newTestTable(t)

	season, ok, err := table.Row(0).Int("seasonNumber")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, season)

	_, ok, err = table.Row(1).Int("seasonNumber")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, table.Row(1).IsNull("episodeNumber"))

	_, _, err = table.Row(2).Int("seasonNumber")
	assert.Error(t, err)

	ratings := NewTable("title.ratings", []string{"tconst", "averageRating"})
	require.NoError(t, ratings.Append([]string{"tt2", "8.4"}))
	rating, ok, err := ratings.Row(0).Float("averageRating")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 8.4, rating, 1e-9)
}
