package pipeline

import (
	"sort"
	"strconv"

	"series-extract/dataset"
)

// EpisodeColumns is the header of the episodes output
var EpisodeColumns = []string{
	"tconst", "parentTconst", "seasonNumber", "episodeNumber",
	"episodeTitle", "originalTitle", "runtimeMinutes", "episodeIndex",
}

// ordinal is a season or episode number; unknown values sort last
type ordinal struct {
	value int
	known bool
}

func (o ordinal) less(other ordinal) bool {
	if o.known != other.known {
		return o.known
	}
	return o.value < other.value
}

type episodeRecord struct {
	values  []string
	season  ordinal
	episode ordinal
}

// AssembleEpisodes selects the episodes of seriesID, attaches their title
// fields, orders them by season then episode number and numbers them from 1.
// Episodes without a matching title row keep null title fields.
func AssembleEpisodes(episodes, titles *dataset.Table, seriesID string) (*dataset.Table, error) {
	if err := episodes.Require("tconst", "parentTconst", "seasonNumber", "episodeNumber"); err != nil {
		return nil, err
	}
	if err := titles.Require("tconst", "primaryTitle", "originalTitle", "runtimeMinutes"); err != nil {
		return nil, err
	}

	titleIndex, err := titles.Index("tconst")
	if err != nil {
		return nil, err
	}

	var records []episodeRecord
	for i := 0; i < episodes.Len(); i++ {
		row := episodes.Row(i)
		if row.Get("parentTconst") != seriesID {
			continue
		}

		tconst := row.Get("tconst")
		season, err := parseOrdinal(tconst, "seasonNumber", row.Get("seasonNumber"))
		if err != nil {
			return nil, err
		}
		episode, err := parseOrdinal(tconst, "episodeNumber", row.Get("episodeNumber"))
		if err != nil {
			return nil, err
		}

		episodeTitle, originalTitle, runtime := dataset.Null, dataset.Null, dataset.Null
		if j, ok := titleIndex[tconst]; ok {
			title := titles.Row(j)
			episodeTitle = title.Get("primaryTitle")
			originalTitle = title.Get("originalTitle")
			runtime = title.Get("runtimeMinutes")
		}

		records = append(records, episodeRecord{
			values: []string{
				tconst,
				row.Get("parentTconst"),
				row.Get("seasonNumber"),
				row.Get("episodeNumber"),
				episodeTitle,
				originalTitle,
				runtime,
			},
			season:  season,
			episode: episode,
		})
	}

	sort.SliceStable(records, func(a, b int) bool {
		ra, rb := records[a], records[b]
		if ra.season != rb.season {
			return ra.season.less(rb.season)
		}
		return ra.episode.less(rb.episode)
	})

	out := dataset.NewTable("episodes", EpisodeColumns)
	for i, rec := range records {
		if err := out.Append(append(rec.values, strconv.Itoa(i+1))); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseOrdinal(tconst, column, raw string) (ordinal, error) {
	if raw == dataset.Null || raw == "" {
		return ordinal{}, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return ordinal{}, &MalformedRowError{Tconst: tconst, Column: column, Value: raw}
	}
	return ordinal{value: n, known: true}, nil
}

// Seasons counts the distinct known season numbers of an episodes table
func Seasons(episodes *dataset.Table) int {
	seen := make(map[string]bool)
	for i := 0; i < episodes.Len(); i++ {
		season := episodes.Row(i).Get("seasonNumber")
		if season != dataset.Null && season != "" {
			seen[season] = true
		}
	}
	return len(seen)
}
