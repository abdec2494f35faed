package main

import (
	"os"

	"bookcatalog/internal/config"
)

func loadEnvFiles() {
	config.LoadEnvFiles()
}

func databaseDSN() string {
	if v := os.Getenv("DB_DSN"); v != "" {
		return v
	}
	return config.Default().Catalog.DSN
}

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}
