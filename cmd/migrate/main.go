package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/migrations"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   apply pending migrations
  down        roll back every applied migration
  fresh       roll back everything, then apply all migrations`)
	os.Exit(1)
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if cfg.Store.Driver != config.DriverPostgres {
		logging.Fatal("migrate only manages postgres; sqlite creates its schema on startup", "driver", cfg.Store.Driver)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "":
		runUp(ctx, pool)
	case "down":
		runDown(ctx, pool)
	case "fresh":
		runDown(ctx, pool)
		runUp(ctx, pool)
	default:
		usage()
	}
}

func ensureSchemaMigrations(ctx context.Context, pool *pgxpool.Pool) {
	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		logging.Fatal("create schema_migrations failed", "error", err)
	}
}

func isApplied(ctx context.Context, pool *pgxpool.Pool, name string) bool {
	var exists bool
	if err := pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists); err != nil {
		logging.Fatal("check migration failed", "migration", name, "error", err)
	}
	return exists
}

// ---------------------------------------------------------------------------
// up
// ---------------------------------------------------------------------------
func runUp(ctx context.Context, pool *pgxpool.Pool) {
	ensureSchemaMigrations(ctx, pool)

	files, err := migrations.Up()
	if err != nil {
		logging.Fatal("list migrations failed", "error", err)
	}
	applied := 0
	for i, filename := range files {
		name := migrations.Name(filename)
		if isApplied(ctx, pool, name) {
			continue
		}

		sql, err := fs.ReadFile(migrations.FS(), filename)
		if err != nil {
			logging.Fatal("read migration failed", "migration", name, "error", err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			logging.Fatal("migration failed", "migration", name, "error", err)
		}
		if _, err := pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			logging.Fatal("record migration failed", "migration", name, "error", err)
		}
		applied++
		slog.Info("migration completed", "number", i+1, "migration", name)
	}

	if applied == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", applied)
	}
}

// ---------------------------------------------------------------------------
// down
// ---------------------------------------------------------------------------
func runDown(ctx context.Context, pool *pgxpool.Pool) {
	ensureSchemaMigrations(ctx, pool)

	files, err := migrations.Down()
	if err != nil {
		logging.Fatal("list migrations failed", "error", err)
	}
	reverted := 0
	for _, filename := range files {
		name := migrations.Name(filename)
		if !isApplied(ctx, pool, name) {
			continue
		}

		sql, err := fs.ReadFile(migrations.FS(), filename)
		if err != nil {
			logging.Fatal("read migration failed", "migration", name, "error", err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			logging.Fatal("rollback failed", "migration", name, "error", err)
		}
		if _, err := pool.Exec(ctx, "DELETE FROM schema_migrations WHERE name=$1", name); err != nil {
			logging.Fatal("unrecord migration failed", "migration", name, "error", err)
		}
		reverted++
		slog.Info("migration rolled back", "migration", name)
	}
	slog.Info("rollback completed", "count", reverted)
}
