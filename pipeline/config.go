package pipeline

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"series-extract/dataset"
)

// Config holds the extractor settings
type Config struct {
	DataPath        string
	OutputPath      string
	SeriesTitle     string
	SeriesType      string
	OutputPrefix    string
	ExportSQLite    bool
	DownloadMissing bool
	DatasetBaseURL  string
}

// DefaultConfig returns the settings used to extract Fringe from ./data
func DefaultConfig() Config {
	return Config{
		DataPath:       "./data",
		OutputPath:     "./processed_fringe_data",
		SeriesTitle:    "Fringe",
		SeriesType:     "tvSeries",
		OutputPrefix:   "fringe",
		ExportSQLite:   true,
		DatasetBaseURL: dataset.DefaultBaseURL,
	}
}

// GetConfigFromEnv loads the extractor configuration from environment variables
func GetConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("DATA_PATH"); v != "" {
		cfg.DataPath = v
	}
	if v := os.Getenv("OUTPUT_PATH"); v != "" {
		cfg.OutputPath = v
	}
	if v := os.Getenv("SERIES_TITLE"); v != "" {
		cfg.SeriesTitle = v
	}
	if v := os.Getenv("SERIES_TYPE"); v != "" {
		cfg.SeriesType = v
	}
	if v := os.Getenv("OUTPUT_PREFIX"); v != "" {
		cfg.OutputPrefix = v
	}
	if v := os.Getenv("DATASET_BASE_URL"); v != "" {
		cfg.DatasetBaseURL = v
	}
	cfg.ExportSQLite = envBool("EXPORT_SQLITE", cfg.ExportSQLite)
	cfg.DownloadMissing = envBool("DOWNLOAD_MISSING", cfg.DownloadMissing)

	log.Printf("Extract Configuration: Data=%s, Output=%s, Series=%s (%s), Prefix=%s, SQLite=%t, Download=%t",
		cfg.DataPath, cfg.OutputPath, cfg.SeriesTitle, cfg.SeriesType, cfg.OutputPrefix,
		cfg.ExportSQLite, cfg.DownloadMissing)

	return cfg
}

// InputPath returns the location of one dataset file
func (c Config) InputPath(file string) string {
	return filepath.Join(c.DataPath, file)
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Invalid %s '%s', using default %t", key, v, fallback)
		return fallback
	}
	return b
}
