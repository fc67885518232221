// Package pipeline turns the IMDb bulk tables into the denormalized tables of
// a single series: its episodes, their ratings, crew and cast, and a lookup
// of every person they reference.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"series-extract/dataset"
)

// Result holds the derived tables of one run
type Result struct {
	Summary    Summary
	Episodes   *dataset.Table
	Ratings    *dataset.Table
	Crew       *dataset.Table
	Characters *dataset.Table
	Names      *dataset.Table
}

// Summary describes what a run produced
type Summary struct {
	SeriesTitle  string
	SeriesTconst string
	Episodes     int
	Seasons      int
	Ratings      int
	Crew         int
	Characters   int
	Names        int
	OutputPath   string
	Files        []string
}

// Extractor runs the extraction for one configured series
type Extractor struct {
	cfg        Config
	downloader *dataset.Downloader
}

// NewExtractor creates an extractor. A downloader is attached when missing
// inputs should be fetched.
func NewExtractor(cfg Config) *Extractor {
	e := &Extractor{cfg: cfg}
	if cfg.DownloadMissing {
		e.downloader = dataset.NewDownloader(cfg.DatasetBaseURL)
	}
	return e
}

// Config returns the extractor settings
func (e *Extractor) Config() Config {
	return e.cfg
}

// inputs are the raw tables, loaded completely before any filtering
type inputs struct {
	titles     *dataset.Table
	episodes   *dataset.Table
	ratings    *dataset.Table
	crew       *dataset.Table
	principals *dataset.Table
	names      *dataset.Table
}

// Run executes every stage in order and writes the output files. The first
// error aborts the run.
func (e *Extractor) Run(ctx context.Context) (*Result, error) {
	if e.downloader != nil {
		fetched, err := e.downloader.FetchMissing(ctx, e.cfg.DataPath, dataset.Files())
		if err != nil {
			return nil, &StageError{Stage: "download", Input: e.cfg.DatasetBaseURL, Err: err}
		}
		if len(fetched) > 0 {
			log.Printf("Downloaded %d dataset files into %s", len(fetched), e.cfg.DataPath)
		}
	}

	in, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	seriesID, err := ResolveSeries(in.titles, e.cfg.SeriesTitle, e.cfg.SeriesType)
	if err != nil {
		return nil, &StageError{Stage: "resolve", Input: e.cfg.InputPath(dataset.TitleBasics), Err: err}
	}
	log.Printf("Resolved %s (%s) to %s", e.cfg.SeriesTitle, e.cfg.SeriesType, seriesID)

	res, err := derive(in, seriesID)
	if err != nil {
		return nil, err
	}
	log.Printf("Episodes: %d, ratings: %d, crew: %d, characters: %d, names: %d",
		res.Episodes.Len(), res.Ratings.Len(), res.Crew.Len(), res.Characters.Len(), res.Names.Len())

	files, err := WriteOutputs(e.cfg.OutputPath, e.outputs(res))
	if err != nil {
		return nil, &StageError{Stage: "write", Input: e.cfg.OutputPath, Err: err}
	}

	res.Summary = Summary{
		SeriesTitle:  e.cfg.SeriesTitle,
		SeriesTconst: seriesID,
		Episodes:     res.Episodes.Len(),
		Seasons:      Seasons(res.Episodes),
		Ratings:      res.Ratings.Len(),
		Crew:         res.Crew.Len(),
		Characters:   res.Characters.Len(),
		Names:        res.Names.Len(),
		OutputPath:   e.cfg.OutputPath,
		Files:        files,
	}
	log.Printf("Data processing complete. Files saved to %s.", e.cfg.OutputPath)
	return res, nil
}

func (e *Extractor) load(ctx context.Context) (*inputs, error) {
	in := &inputs{}
	targets := []struct {
		file  string
		table **dataset.Table
	}{
		{dataset.TitleBasics, &in.titles},
		{dataset.TitleEpisode, &in.episodes},
		{dataset.TitleRatings, &in.ratings},
		{dataset.TitleCrew, &in.crew},
		{dataset.TitlePrincipals, &in.principals},
		{dataset.NameBasics, &in.names},
	}

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := e.cfg.InputPath(target.file)
		table, err := dataset.Load(path)
		if err != nil {
			return nil, &StageError{Stage: "load", Input: path, Err: err}
		}
		log.Printf("Loaded %s: %d rows", table.Name, table.Len())
		*target.table = table
	}
	return in, nil
}

func derive(in *inputs, seriesID string) (*Result, error) {
	episodes, err := AssembleEpisodes(in.episodes, in.titles, seriesID)
	if err != nil {
		return nil, &StageError{Stage: "assemble episodes", Input: in.episodes.Name, Err: err}
	}

	ids, err := TitleSet(episodes)
	if err != nil {
		return nil, &StageError{Stage: "assemble episodes", Input: in.episodes.Name, Err: err}
	}

	ratings, err := FilterByTitle(in.ratings, ids)
	if err != nil {
		return nil, &StageError{Stage: "filter", Input: in.ratings.Name, Err: err}
	}
	crew, err := FilterByTitle(in.crew, ids)
	if err != nil {
		return nil, &StageError{Stage: "filter", Input: in.crew.Name, Err: err}
	}
	characters, err := FilterCharacters(in.principals, ids)
	if err != nil {
		return nil, &StageError{Stage: "filter", Input: in.principals.Name, Err: err}
	}

	names, err := BuildNameLookup(crew, characters, in.names)
	if err != nil {
		return nil, &StageError{Stage: "name lookup", Input: in.names.Name, Err: err}
	}

	return &Result{
		Episodes:   episodes,
		Ratings:    ratings,
		Crew:       crew,
		Characters: characters,
		Names:      names,
	}, nil
}

func (e *Extractor) outputs(res *Result) []Output {
	prefix := e.cfg.OutputPrefix
	return []Output{
		{File: fmt.Sprintf("%s_episodes.csv", prefix), Table: res.Episodes},
		{File: fmt.Sprintf("%s_ratings.csv", prefix), Table: res.Ratings},
		{File: fmt.Sprintf("%s_crew.csv", prefix), Table: res.Crew},
		{File: fmt.Sprintf("%s_characters.csv", prefix), Table: res.Characters},
		{File: "name_lookup.csv", Table: res.Names},
	}
}
