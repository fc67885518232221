package pipeline

import (
	"strings"

	"series-extract/dataset"
)

// NameColumns is the header of the name lookup output
var NameColumns = []string{"nconst", "primaryName"}

// PersonSet returns every person referenced by the crew (directors and
// writers) and cast tables. Empty and null ids are never included.
func PersonSet(crew, characters *dataset.Table) (map[string]struct{}, error) {
	if err := crew.Require("directors", "writers"); err != nil {
		return nil, err
	}
	if err := characters.Require("nconst"); err != nil {
		return nil, err
	}

	people := make(map[string]struct{})
	add := func(id string) {
		id = strings.TrimSpace(id)
		if id == "" || id == dataset.Null {
			return
		}
		people[id] = struct{}{}
	}

	for i := 0; i < crew.Len(); i++ {
		row := crew.Row(i)
		for _, column := range []string{"directors", "writers"} {
			for _, id := range strings.Split(row.Get(column), ",") {
				add(id)
			}
		}
	}
	for i := 0; i < characters.Len(); i++ {
		add(characters.Row(i).Get("nconst"))
	}
	return people, nil
}

// BuildNameLookup projects the names of everyone in the crew and cast tables.
// Each nconst appears once, in name table order.
func BuildNameLookup(crew, characters, names *dataset.Table) (*dataset.Table, error) {
	people, err := PersonSet(crew, characters)
	if err != nil {
		return nil, err
	}
	if err := names.Require(NameColumns...); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(people))
	matched := names.Filter(func(r dataset.Row) bool {
		id := r.Get("nconst")
		if _, ok := people[id]; !ok || seen[id] {
			return false
		}
		seen[id] = true
		return true
	})

	lookup, err := matched.Select(NameColumns...)
	if err != nil {
		return nil, err
	}
	lookup.Name = "name_lookup"
	return lookup, nil
}
