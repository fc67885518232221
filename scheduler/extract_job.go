package scheduler

import (
	"context"
	"fmt"
	"log"

	"series-extract/notifier"
	"series-extract/pipeline"
	"series-extract/storage"
)

// ExtractJob runs the series extraction, mirrors the result into storage
// and sends a summary e-mail
type ExtractJob struct {
	extractor     *pipeline.Extractor
	storage       storage.StorageInterface
	emailNotifier *notifier.EmailNotifier
}

// NewExtractJob creates the extraction job. store and emailNotifier are optional.
func NewExtractJob(extractor *pipeline.Extractor, store storage.StorageInterface, emailNotifier *notifier.EmailNotifier) *ExtractJob {
	if emailNotifier == nil {
		log.Println("Email notifications disabled: missing configuration")
	}
	return &ExtractJob{
		extractor:     extractor,
		storage:       store,
		emailNotifier: emailNotifier,
	}
}

// Name returns the name of the job
func (j *ExtractJob) Name() string {
	return "series_extract"
}

// Run executes the job
func (j *ExtractJob) Run(ctx context.Context) error {
	cfg := j.extractor.Config()
	log.Printf("Running series extract job for %s (%s)", cfg.SeriesTitle, cfg.SeriesType)

	res, err := j.extractor.Run(ctx)
	if err != nil {
		return err
	}

	if j.storage != nil {
		err := j.storage.SaveSeries(storage.SeriesTables{
			Episodes:   res.Episodes,
			Ratings:    res.Ratings,
			Crew:       res.Crew,
			Characters: res.Characters,
			Names:      res.Names,
		})
		if err != nil {
			return fmt.Errorf("failed to save series tables: %w", err)
		}
		log.Printf("Saved %d episodes to the series database", res.Summary.Episodes)
	}

	if j.emailNotifier != nil {
		if err := j.emailNotifier.NotifyExtraction(res.Summary); err != nil {
			log.Printf("Failed to send email notification: %v", err)
		}
	}

	log.Printf("Series extract job complete: %d episodes across %d seasons",
		res.Summary.Episodes, res.Summary.Seasons)
	return nil
}
