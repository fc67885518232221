package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"series-extract/notifier"
	"series-extract/pipeline"
	"series-extract/scheduler"
	"series-extract/storage"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting Series Extract...")

	cfg := pipeline.GetConfigFromEnv()
	extractor := pipeline.NewExtractor(cfg)

	// The SQLite mirror lives next to the CSV outputs. It is opened by the
	// first successful extraction.
	var store storage.StorageInterface
	var sqliteStorage *storage.SQLiteStorage
	if cfg.ExportSQLite {
		sqliteStorage = storage.NewSQLiteStorage(cfg.OutputPath, cfg.OutputPrefix)
		defer sqliteStorage.Close()
		store = sqliteStorage
	}

	job := scheduler.NewExtractJob(extractor, store, newEmailNotifier())

	runMode := os.Getenv("RUN_MODE")
	switch runMode {
	case "", "once":
		log.Println("Running in single execution mode")

		if err := job.Run(context.Background()); err != nil {
			log.Fatalf("Extraction failed: %v", err)
		}

		if sqliteStorage != nil {
			displayDatabaseStats(sqliteStorage)
		}

	case "scheduler":
		log.Println("Starting in scheduler mode")

		spec := os.Getenv("SCHEDULE")
		if spec == "" {
			spec = "0 0 4 * * *"
		}

		sched := scheduler.NewScheduler(jobTimeout())
		if err := sched.AddJob(spec, job); err != nil {
			log.Fatalf("Failed to schedule series extract job: %v", err)
		}

		sched.Start()
		log.Printf("Scheduler started. Series tables will be rebuilt on schedule %q", spec)

		if os.Getenv("RUN_AT_STARTUP") == "true" {
			log.Println("Running initial extraction at startup")
			if err := sched.RunJobNow(job.Name()); err != nil {
				log.Printf("Error running initial job: %v", err)
			}
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		log.Println("Application running. Press Ctrl+C to exit")

		sig := <-quit
		log.Printf("Received signal %s, shutting down...", sig)

		sched.Stop()
		logLastResult(sched, job.Name())

	default:
		log.Fatalf("Unknown RUN_MODE %q (expected once or scheduler)", runMode)
	}

	log.Println("Application exiting")
}

// newEmailNotifier returns nil unless SMTP host and recipient are configured
func newEmailNotifier() *notifier.EmailNotifier {
	emailConfig := notifier.GetEmailConfigFromEnv()
	if !emailConfig.Enabled() {
		return nil
	}

	emailNotifier, err := notifier.NewEmailNotifier(emailConfig)
	if err != nil {
		log.Printf("Failed to create email notifier: %v", err)
		return nil
	}
	log.Printf("Email notifications will be sent to: %s", emailConfig.RecipientEmail)
	return emailNotifier
}

// jobTimeout reads JOB_TIMEOUT as a Go duration
func jobTimeout() time.Duration {
	v := os.Getenv("JOB_TIMEOUT")
	if v == "" {
		return scheduler.DefaultJobTimeout
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid JOB_TIMEOUT '%s', using default %s", v, scheduler.DefaultJobTimeout)
		return scheduler.DefaultJobTimeout
	}
	return d
}

// logLastResult reports how the latest run of a job ended
func logLastResult(sched *scheduler.Scheduler, name string) {
	result, ok := sched.LastResult(name)
	if !ok {
		log.Printf("Job %s did not run", name)
		return
	}
	if result.Err != nil {
		log.Printf("Last run of %s started %s failed after %s: %v",
			name, result.StartedAt.Format(time.RFC3339), result.Duration, result.Err)
		return
	}
	log.Printf("Last run of %s started %s succeeded in %s",
		name, result.StartedAt.Format(time.RFC3339), result.Duration)
}

// displayDatabaseStats shows row counts and the first episodes of the mirror
func displayDatabaseStats(db *storage.SQLiteStorage) {
	log.Printf("Database Statistics (%s)", db.Path())

	stats, err := db.GetStats()
	if err != nil {
		log.Printf("Error getting database stats: %v", err)
		return
	}

	log.Printf("Episodes: %d", stats["episodes"])
	log.Printf("Ratings: %d", stats["ratings"])
	log.Printf("Crew: %d", stats["crew"])
	log.Printf("Characters: %d", stats["characters"])
	log.Printf("Names: %d", stats["names"])

	episodes, err := db.GetEpisodes()
	if err != nil {
		log.Printf("Error getting episodes: %v", err)
		return
	}

	limit := 5
	if len(episodes) < limit {
		limit = len(episodes)
	}

	log.Printf("First Episodes (%d):", limit)
	for i := 0; i < limit; i++ {
		e := episodes[i]
		code := ""
		if e.SeasonNumber != nil && e.EpisodeNumber != nil {
			code = fmt.Sprintf(" S%02dE%02d", *e.SeasonNumber, *e.EpisodeNumber)
		}
		title := "(untitled)"
		if e.EpisodeTitle != nil {
			title = *e.EpisodeTitle
		}
		log.Printf("- #%d%s %s [%s]", e.EpisodeIndex, code, title, e.Tconst)
	}
}
