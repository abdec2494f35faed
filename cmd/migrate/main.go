// Command migrate manages the kv_blobs schema used by the postgres backend.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"bookcatalog/internal/blob"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	loadEnvFiles()
	dir := migrationsDir()

	if *command == "create" {
		if *name == "" {
			logger.Fatal("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			logger.Fatal("creating migration failed", zap.Error(err))
		}
		fmt.Printf("Migration created: %s\n", *name)
		return
	}

	dsn := databaseDSN()
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		logger.Fatal("connecting to database failed", zap.String("dsn", blob.RedactDSN(dsn)), zap.Error(err))
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatal("selecting dialect failed", zap.Error(err))
	}

	if err := run(*command, db, dir); err != nil {
		logger.Error("migration failed", zap.String("command", *command), zap.Error(err))
		os.Exit(1)
	}
}

func run(command string, db *sql.DB, dir string) error {
	switch command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			return fmt.Errorf("applying migrations: %w", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := goose.Down(db, dir); err != nil {
			return fmt.Errorf("rolling back migration: %w", err)
		}
		fmt.Println("Migrations rolled back successfully")
	case "status":
		if err := goose.Status(db, dir); err != nil {
			return fmt.Errorf("checking migration status: %w", err)
		}
	default:
		return fmt.Errorf("unknown command %q, use: up, down, status, create", command)
	}
	return nil
}
