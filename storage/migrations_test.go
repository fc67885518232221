package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
)

func openTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to inspect schema: %v", err)
	}
	return count > 0
}

func TestMigrations(t *testing.T) {
	ctx := context.Background()
	tempDir := t.TempDir()

	storage := NewSQLiteStorage(tempDir, "fringe")
	err := storage.Initialize()
	if err != nil {
		t.Fatalf("Failed to initialize storage: %v", err)
	}
	defer storage.Close()

	version, err := storage.GetDatabaseVersion(ctx)
	if err != nil {
		t.Fatalf("Failed to get database version: %v", err)
	}

	if version < 1 {
		t.Errorf("Expected database version >= 1, got %d", version)
	}

	db, err := storage.GetDB()
	if err != nil {
		t.Fatalf("Failed to get database: %v", err)
	}

	// Every series table exists
	for _, table := range []string{"episodes", "ratings", "crew", "characters", "names"} {
		if !tableExists(t, db, table) {
			t.Fatalf("Table %s was not created", table)
		}
	}

	// Running migrations again is a no-op
	err = storage.RunMigrations(ctx)
	if err != nil {
		t.Fatalf("Failed to run migrations again: %v", err)
	}

	newVersion, err := storage.GetDatabaseVersion(ctx)
	if err != nil {
		t.Fatalf("Failed to get database version after re-running migrations: %v", err)
	}

	if newVersion != version {
		t.Errorf("Database version changed on rerun: %d -> %d", version, newVersion)
	}
}

func TestMigrationManager(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t, "migrations.db")

	migrationManager := NewMigrationManager(db)
	err := migrationManager.Initialize()
	if err != nil {
		t.Fatalf("Failed to initialize migration manager: %v", err)
	}

	version, err := migrationManager.Version(ctx)
	if err != nil {
		t.Fatalf("Failed to get initial version: %v", err)
	}

	if version != 0 {
		t.Errorf("Expected initial version 0, got %d", version)
	}

	err = migrationManager.Up(ctx)
	if err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	version, err = migrationManager.Version(ctx)
	if err != nil {
		t.Fatalf("Failed to get version after migrations: %v", err)
	}

	if version < 1 {
		t.Errorf("Expected version >= 1 after migrations, got %d", version)
	}

	status, err := migrationManager.Status(ctx)
	if err != nil {
		t.Fatalf("Failed to get migration status: %v", err)
	}
	for _, st := range status {
		if st.State != goose.StateApplied {
			t.Errorf("Expected %s to be applied, got %s", st.Source.Path, st.State)
		}
	}

	err = migrationManager.Down(ctx)
	if err != nil {
		t.Fatalf("Failed to rollback migration: %v", err)
	}

	newVersion, err := migrationManager.Version(ctx)
	if err != nil {
		t.Fatalf("Failed to get version after rollback: %v", err)
	}

	if newVersion >= version {
		t.Errorf("Expected version to decrease after rollback: %d -> %d", version, newVersion)
	}

	if tableExists(t, db, "episodes") {
		t.Errorf("Expected episodes table to be dropped after rollback")
	}
}

func TestMigrationManagersAreIndependent(t *testing.T) {
	ctx := context.Background()
	first := openTestDB(t, "first.db")
	second := openTestDB(t, "second.db")

	firstManager := NewMigrationManager(first)
	secondManager := NewMigrationManager(second)
	for _, m := range []*MigrationManager{firstManager, secondManager} {
		if err := m.Initialize(); err != nil {
			t.Fatalf("Failed to initialize migration manager: %v", err)
		}
	}

	if err := firstManager.Up(ctx); err != nil {
		t.Fatalf("Failed to migrate first database: %v", err)
	}

	if !tableExists(t, first, "episodes") {
		t.Error("Expected episodes table in the first database")
	}
	if tableExists(t, second, "episodes") {
		t.Error("Migrating one database must not touch another")
	}

	version, err := secondManager.Version(ctx)
	if err != nil {
		t.Fatalf("Failed to get version: %v", err)
	}
	if version != 0 {
		t.Errorf("Expected untouched database at version 0, got %d", version)
	}

	if err := firstManager.Reset(ctx); err != nil {
		t.Fatalf("Failed to reset first database: %v", err)
	}
	if tableExists(t, first, "episodes") {
		t.Error("Expected episodes table to be dropped after reset")
	}
}

func TestMigrationManagerRequiresInitialize(t *testing.T) {
	migrationManager := NewMigrationManager(openTestDB(t, "uninitialized.db"))
	if err := migrationManager.Up(context.Background()); err == nil {
		t.Error("Expected Up to fail before Initialize")
	}
}
