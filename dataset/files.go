package dataset

import (
	"path/filepath"
	"strings"
)

// Input files of the IMDb non-commercial dataset
const (
	TitleBasics     = "title.basics.tsv.gz"
	TitleEpisode    = "title.episode.tsv.gz"
	TitleRatings    = "title.ratings.tsv.gz"
	TitleCrew       = "title.crew.tsv.gz"
	TitlePrincipals = "title.principals.tsv.gz"
	NameBasics      = "name.basics.tsv.gz"
)

// Files lists every input the extractor reads, in load order
func Files() []string {
	return []string{TitleBasics, TitleEpisode, TitleRatings, TitleCrew, TitlePrincipals, NameBasics}
}

// TableName derives a table name from a dataset file path,
// e.g. "data/title.basics.tsv.gz" -> "title.basics".
func TableName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".tsv")
	return name
}
