package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"series-extract/dataset"
)

type SQLiteStorage struct {
	db         *sql.DB
	migrations *MigrationManager
	dbPath     string
	dataPath   string
}

type StorageInterface interface {
	Initialize() error
	SaveSeries(tables SeriesTables) error
	GetEpisodes() ([]Episode, error)
	GetStats() (map[string]int, error)
	Close() error
}

type valueKind int

const (
	kindText valueKind = iota
	kindInteger
	kindReal
)

type columnMapping struct {
	name   string
	source string
	kind   valueKind
}

type tableMapping struct {
	name    string
	columns []columnMapping
}

var (
	episodesMapping = tableMapping{"episodes", []columnMapping{
		{"tconst", "tconst", kindText},
		{"parent_tconst", "parentTconst", kindText},
		{"season_number", "seasonNumber", kindInteger},
		{"episode_number", "episodeNumber", kindInteger},
		{"episode_title", "episodeTitle", kindText},
		{"original_title", "originalTitle", kindText},
		{"runtime_minutes", "runtimeMinutes", kindInteger},
		{"episode_index", "episodeIndex", kindInteger},
	}}
	ratingsMapping = tableMapping{"ratings", []columnMapping{
		{"tconst", "tconst", kindText},
		{"average_rating", "averageRating", kindReal},
		{"num_votes", "numVotes", kindInteger},
	}}
	crewMapping = tableMapping{"crew", []columnMapping{
		{"tconst", "tconst", kindText},
		{"directors", "directors", kindText},
		{"writers", "writers", kindText},
	}}
	charactersMapping = tableMapping{"characters", []columnMapping{
		{"tconst", "tconst", kindText},
		{"ordering", "ordering", kindInteger},
		{"nconst", "nconst", kindText},
		{"category", "category", kindText},
		{"characters", "characters", kindText},
	}}
	namesMapping = tableMapping{"names", []columnMapping{
		{"nconst", "nconst", kindText},
		{"primary_name", "primaryName", kindText},
	}}
)

// NewSQLiteStorage points at <dataPath>/<name>.db
func NewSQLiteStorage(dataPath, name string) *SQLiteStorage {
	dbPath := filepath.Join(dataPath, name+".db")
	return &SQLiteStorage{
		dbPath:   dbPath,
		dataPath: dataPath,
	}
}

// Initialize opens the database and applies pending migrations. It runs at
// most once; SaveSeries calls it on first use, so nothing is created on disk
// until there is something to store.
func (s *SQLiteStorage) Initialize() error {
	if s.db != nil {
		return nil
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(s.dataPath, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	migrationManager := NewMigrationManager(db)
	if err := migrationManager.Initialize(); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	if err := migrationManager.Up(context.Background()); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	s.db = db
	s.migrations = migrationManager
	log.Printf("SQLite database initialized at: %s", s.dbPath)
	return nil
}

// Path returns the database file location
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// SaveSeries replaces the stored series tables with the given ones in a
// single transaction, so a rerun leaves the same rows behind.
func (s *SQLiteStorage) SaveSeries(tables SeriesTables) error {
	pairs := []struct {
		mapping tableMapping
		table   *dataset.Table
	}{
		{episodesMapping, tables.Episodes},
		{ratingsMapping, tables.Ratings},
		{crewMapping, tables.Crew},
		{charactersMapping, tables.Characters},
		{namesMapping, tables.Names},
	}

	if err := s.Initialize(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range pairs {
		if p.table == nil {
			return fmt.Errorf("missing %s table", p.mapping.name)
		}
		if err := replaceTable(tx, p.mapping, p.table); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit series tables: %w", err)
	}
	return nil
}

func replaceTable(tx *sql.Tx, m tableMapping, table *dataset.Table) error {
	sources := make([]string, len(m.columns))
	names := make([]string, len(m.columns))
	for i, c := range m.columns {
		sources[i] = c.source
		names[i] = c.name
	}
	if err := table.Require(sources...); err != nil {
		return fmt.Errorf("failed to map %s: %w", m.name, err)
	}

	if _, err := tx.Exec("DELETE FROM " + m.name); err != nil {
		return fmt.Errorf("failed to clear %s: %w", m.name, err)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		m.name, strings.Join(names, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", "))
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare insert into %s: %w", m.name, err)
	}
	defer stmt.Close()

	args := make([]any, len(m.columns))
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		for j, c := range m.columns {
			v, err := sqlValue(row, c)
			if err != nil {
				return fmt.Errorf("failed to convert %s row %d: %w", m.name, i+1, err)
			}
			args[j] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", m.name, err)
		}
	}
	return nil
}

// sqlValue converts a cell to its column type; the null marker becomes NULL
func sqlValue(row dataset.Row, c columnMapping) (any, error) {
	switch c.kind {
	case kindInteger:
		v, ok, err := row.Int(c.source)
		if err != nil || !ok {
			return nil, err
		}
		return v, nil
	case kindReal:
		v, ok, err := row.Float(c.source)
		if err != nil || !ok {
			return nil, err
		}
		return v, nil
	default:
		if row.IsNull(c.source) {
			return nil, nil
		}
		return row.Get(c.source), nil
	}
}

// GetEpisodes returns the stored episodes in episode index order
func (s *SQLiteStorage) GetEpisodes() ([]Episode, error) {
	query := `
	SELECT tconst, parent_tconst, season_number, episode_number, episode_title,
		original_title, runtime_minutes, episode_index
	FROM episodes
	ORDER BY episode_index
	`

	if err := s.Initialize(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query episodes: %w", err)
	}
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		var e Episode
		err := rows.Scan(&e.Tconst, &e.ParentTconst, &e.SeasonNumber, &e.EpisodeNumber,
			&e.EpisodeTitle, &e.OriginalTitle, &e.RuntimeMinutes, &e.EpisodeIndex)
		if err != nil {
			return nil, fmt.Errorf("failed to scan episode: %w", err)
		}
		episodes = append(episodes, e)
	}

	return episodes, rows.Err()
}

func (s *SQLiteStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStorage) GetDB() (*sql.DB, error) {
	if err := s.Initialize(); err != nil {
		return nil, err
	}
	return s.db, nil
}

// GetStats counts the rows of every series table
func (s *SQLiteStorage) GetStats() (map[string]int, error) {
	if err := s.Initialize(); err != nil {
		return nil, err
	}

	stats := make(map[string]int)

	for _, m := range []tableMapping{episodesMapping, ratingsMapping, crewMapping, charactersMapping, namesMapping} {
		var count int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + m.name).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to get %s count: %w", m.name, err)
		}
		stats[m.name] = count
	}

	return stats, nil
}

// Migration management methods
func (s *SQLiteStorage) GetMigrationManager() (*MigrationManager, error) {
	if err := s.Initialize(); err != nil {
		return nil, err
	}
	return s.migrations, nil
}

func (s *SQLiteStorage) GetDatabaseVersion(ctx context.Context) (int64, error) {
	migrationManager, err := s.GetMigrationManager()
	if err != nil {
		return 0, err
	}
	return migrationManager.Version(ctx)
}

func (s *SQLiteStorage) RunMigrations(ctx context.Context) error {
	migrationManager, err := s.GetMigrationManager()
	if err != nil {
		return err
	}
	return migrationManager.Up(ctx)
}

func (s *SQLiteStorage) RollbackMigration(ctx context.Context) error {
	migrationManager, err := s.GetMigrationManager()
	if err != nil {
		return err
	}
	return migrationManager.Down(ctx)
}

func (s *SQLiteStorage) ResetDatabase(ctx context.Context) error {
	migrationManager, err := s.GetMigrationManager()
	if err != nil {
		return err
	}
	return migrationManager.Reset(ctx)
}
