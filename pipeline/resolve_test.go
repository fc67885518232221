package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var titleHeader = []string{"tconst", "titleType", "primaryTitle", "originalTitle", "runtimeMinutes"}

func TestResolveSeries(t *testing.T) {
	titles := newTable(t, "title.basics", titleHeader,
		[]string{"tt0000099", "movie", "Fringe", "Fringe", "90"},
		[]string{"tt1119644", "tvSeries", "Fringe", "Fringe", "46"},
		[]string{"tt5555555", "tvSeries", "Fringe", "Fringe (2030)", "40"},
	)

	id, err := ResolveSeries(titles, "Fringe", "tvSeries")
	require.NoError(t, err)
	assert.Equal(t, "tt1119644", id, "first match in table order wins")
}

func TestResolveSeriesNotFound(t *testing.T) {
	titles := newTable(t, "title.basics", titleHeader,
		[]string{"tt0000099", "movie", "Fringe", "Fringe", "90"},
	)

	_, err := ResolveSeries(titles, "Fringe", "tvSeries")

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Fringe", notFound.Title)
	assert.Equal(t, "tvSeries", notFound.TitleType)
	assert.Contains(t, err.Error(), `"Fringe"`)
}
