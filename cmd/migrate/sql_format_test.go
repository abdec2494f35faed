package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLMigrations_HaveGooseDirectives(t *testing.T) {
	dir := repoMigrationsDir(t)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)

		s := string(b)
		assert.Contains(t, s, "-- +goose Up", e.Name())
		assert.Contains(t, s, "-- +goose Down", e.Name())
	}
}

func TestSQLMigrations_CreateBlobTable(t *testing.T) {
	b, err := os.ReadFile(filepath.Join(repoMigrationsDir(t), "00001_create_kv_blobs.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "kv_blobs")
}
