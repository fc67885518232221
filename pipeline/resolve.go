package pipeline

import (
	"log"

	"series-extract/dataset"
)

// ResolveSeries returns the tconst of the first title whose primaryTitle and
// titleType match. Later matches are ignored.
func ResolveSeries(titles *dataset.Table, primaryTitle, titleType string) (string, error) {
	if err := titles.Require("tconst", "titleType", "primaryTitle"); err != nil {
		return "", err
	}

	matches := titles.Filter(func(r dataset.Row) bool {
		return r.Get("primaryTitle") == primaryTitle && r.Get("titleType") == titleType
	})
	if matches.Len() == 0 {
		return "", &NotFoundError{Title: primaryTitle, TitleType: titleType}
	}
	if matches.Len() > 1 {
		log.Printf("Warning: %d titles match %q (%s), using the first", matches.Len(), primaryTitle, titleType)
	}
	return matches.Row(0).Get("tconst"), nil
}
