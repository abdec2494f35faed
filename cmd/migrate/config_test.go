package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsDir_EnvOverride(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "/custom/migrations")

	assert.Equal(t, "/custom/migrations", migrationsDir())
}

func TestMigrationsDir_Default(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "")

	assert.Equal(t, "db/migrations", migrationsDir())
}

func TestDatabaseDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	assert.Contains(t, databaseDSN(), "/bookcatalog")

	t.Setenv("DB_DSN", "postgres://u:p@db/other")
	assert.Equal(t, "postgres://u:p@db/other", databaseDSN())
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("DB_DSN=from_file\n"), 0o644))

	t.Setenv("DB_DSN", "from_env")

	cwd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	loadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("DB_DSN"))
}

func TestRun_UnknownCommand(t *testing.T) {
	err := run("sideways", nil, "db/migrations")
	assert.ErrorContains(t, err, "unknown command")
}
