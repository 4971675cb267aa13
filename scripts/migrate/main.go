package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fast-generic-api/config"
	"fast-generic-api/pkg/log"
	"fast-generic-api/pkg/postgres"
)

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func main() {
	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	// Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize Logger
	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx := context.Background()

	db, err := postgres.Connect(ctx, postgres.Config{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		DBName:   cfg.Postgres.DBName,
		SSLMode:  cfg.Postgres.SSLMode,
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, createVersionTable); err != nil {
		logger.Fatalf(ctx, "Failed to create schema_migrations: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		logger.Fatalf(ctx, "Failed to list migrations: %v", err)
	}
	sort.Strings(files)

	logger.Infof(ctx, "Found %d migrations in %s", len(files), dir)

	applied := 0
	for _, file := range files {
		version := strings.TrimSuffix(filepath.Base(file), ".sql")
		ok, err := apply(ctx, db, version, file)
		if err != nil {
			logger.Fatalf(ctx, "Migration %s failed: %v", version, err)
		}
		if ok {
			logger.Infof(ctx, "Applied %s", version)
			applied++
		}
	}

	logger.Infof(ctx, "Migrate complete! %d new, %d total.", applied, len(files))
}

// apply runs one migration file in a transaction unless already recorded.
func apply(ctx context.Context, db *sql.DB, version, file string) (bool, error) {
	var exists bool
	if err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
	).Scan(&exists); err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	body, err := os.ReadFile(file)
	if err != nil {
		return false, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		return false, err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return false, err
	}
	return true, tx.Commit()
}
