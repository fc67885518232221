package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// MigrationManager applies the embedded series schema to one database. Each
// manager owns its goose provider, so several databases can be migrated in
// the same process.
type MigrationManager struct {
	db       *sql.DB
	provider *goose.Provider
}

func NewMigrationManager(db *sql.DB) *MigrationManager {
	return &MigrationManager{db: db}
}

// Initialize builds the goose provider over the embedded migrations
func (m *MigrationManager) Initialize() error {
	if m.provider != nil {
		return nil
	}

	migrations, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, m.db, migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	m.provider = provider
	return nil
}

func (m *MigrationManager) ready() error {
	if m.provider == nil {
		return errors.New("migration manager not initialized")
	}
	return nil
}

// Up applies every pending migration
func (m *MigrationManager) Up(ctx context.Context) error {
	if err := m.ready(); err != nil {
		return err
	}
	results, err := m.provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		log.Printf("Applied migration %s in %s", filepath.Base(r.Source.Path), r.Duration)
	}
	return nil
}

// Down rolls back the latest applied migration
func (m *MigrationManager) Down(ctx context.Context) error {
	if err := m.ready(); err != nil {
		return err
	}
	result, err := m.provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}
	log.Printf("Rolled back migration %s", filepath.Base(result.Source.Path))
	return nil
}

// Status reports every known migration and whether it is applied
func (m *MigrationManager) Status(ctx context.Context) ([]*goose.MigrationStatus, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	status, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get migration status: %w", err)
	}
	return status, nil
}

func (m *MigrationManager) Version(ctx context.Context) (int64, error) {
	if err := m.ready(); err != nil {
		return 0, err
	}
	version, err := m.provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get database version: %w", err)
	}
	return version, nil
}

// Reset rolls back every applied migration
func (m *MigrationManager) Reset(ctx context.Context) error {
	if err := m.ready(); err != nil {
		return err
	}
	results, err := m.provider.DownTo(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	log.Printf("Database reset: %d migrations rolled back", len(results))
	return nil
}
