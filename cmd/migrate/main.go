package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"series-extract/storage"
)

func main() {
	var (
		dataPath = flag.String("data", "./processed_fringe_data", "Directory holding the series database")
		name     = flag.String("name", "fringe", "Database name (the output prefix)")
		command  = flag.String("cmd", "up", "Migration command: up, down, status, version, reset, stats")
	)
	flag.Parse()

	sqliteStorage := storage.NewSQLiteStorage(*dataPath, *name)
	if err := sqliteStorage.Initialize(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer sqliteStorage.Close()

	ctx := context.Background()

	switch *command {
	case "up":
		if err := sqliteStorage.RunMigrations(ctx); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations completed successfully")

	case "down":
		if err := sqliteStorage.RollbackMigration(ctx); err != nil {
			log.Fatalf("Failed to rollback migration: %v", err)
		}
		fmt.Println("Migration rolled back successfully")

	case "status":
		migrationManager, err := sqliteStorage.GetMigrationManager()
		if err != nil {
			log.Fatalf("Failed to initialize migration manager: %v", err)
		}
		status, err := migrationManager.Status(ctx)
		if err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
		for _, st := range status {
			appliedAt := "-"
			if !st.AppliedAt.IsZero() {
				appliedAt = st.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%-8s %-40s %s\n", st.State, filepath.Base(st.Source.Path), appliedAt)
		}

	case "version":
		version, err := sqliteStorage.GetDatabaseVersion(ctx)
		if err != nil {
			log.Fatalf("Failed to get database version: %v", err)
		}
		fmt.Printf("Database version: %d\n", version)

	case "reset":
		if err := sqliteStorage.ResetDatabase(ctx); err != nil {
			log.Fatalf("Failed to reset database: %v", err)
		}
		fmt.Println("Database reset completed successfully")

	case "stats":
		stats, err := sqliteStorage.GetStats()
		if err != nil {
			log.Fatalf("Failed to get stats: %v", err)
		}
		for _, table := range []string{"episodes", "ratings", "crew", "characters", "names"} {
			fmt.Printf("%-10s %d\n", table, stats[table])
		}

	default:
		fmt.Printf("Unknown command: %s\n", *command)
		fmt.Println("Available commands: up, down, status, version, reset, stats")
		os.Exit(1)
	}
}
