package pipeline

import "series-extract/dataset"

// actingCategories are the principal categories kept as characters
var actingCategories = map[string]bool{
	"actor":   true,
	"actress": true,
}

// TitleSet collects the tconst values of a table
func TitleSet(table *dataset.Table) (map[string]struct{}, error) {
	ids, err := table.Values("tconst")
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// FilterByTitle keeps the rows whose tconst is in ids, in original order
func FilterByTitle(table *dataset.Table, ids map[string]struct{}) (*dataset.Table, error) {
	if err := table.Require("tconst"); err != nil {
		return nil, err
	}
	return table.Filter(func(r dataset.Row) bool {
		_, ok := ids[r.Get("tconst")]
		return ok
	}), nil
}

// FilterCharacters keeps the acting principals of the titles in ids and
// drops the job column.
func FilterCharacters(principals *dataset.Table, ids map[string]struct{}) (*dataset.Table, error) {
	if err := principals.Require("tconst", "category", "job"); err != nil {
		return nil, err
	}
	cast := principals.Filter(func(r dataset.Row) bool {
		_, ok := ids[r.Get("tconst")]
		return ok && actingCategories[r.Get("category")]
	})
	return cast.Drop("job")
}
