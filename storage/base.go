package storage

import "series-extract/dataset"

// Episode is one stored episode row
type Episode struct {
	Tconst         string  `json:"tconst"`
	ParentTconst   string  `json:"parent_tconst"`
	SeasonNumber   *int    `json:"season_number,omitempty"`
	EpisodeNumber  *int    `json:"episode_number,omitempty"`
	EpisodeTitle   *string `json:"episode_title,omitempty"`
	OriginalTitle  *string `json:"original_title,omitempty"`
	RuntimeMinutes *int    `json:"runtime_minutes,omitempty"`
	EpisodeIndex   int     `json:"episode_index"`
}

// SeriesTables are the derived tables of one extraction run
type SeriesTables struct {
	Episodes   *dataset.Table
	Ratings    *dataset.Table
	Crew       *dataset.Table
	Characters *dataset.Table
	Names      *dataset.Table
}
