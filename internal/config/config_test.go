package config

import (
	"os"
	"path/filepath"
	"testing"

	"bookcatalog/internal/blob"
	"bookcatalog/internal/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into a fresh directory so stray .env files do not leak in.
func chdir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	return tmp
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)
	t.Setenv("CATALOG_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, book.Options{RatingEnabled: true, TagPolicy: book.DropEmptyTags}, cfg.Catalog.BookOptions())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t)
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("CATALOG_BACKEND", "sqlite")
	t.Setenv("CATALOG_SQLITE_PATH", "/tmp/x.db")
	t.Setenv("CATALOG_RATING_ENABLED", "false")
	t.Setenv("CATALOG_DROP_EMPTY_TAGS", "0")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("MAX_BODY_BYTES", "512")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, blob.Options{
		Backend:    "sqlite",
		DSN:        Default().Catalog.DSN,
		Dir:        "data",
		SQLitePath: "/tmp/x.db",
	}, cfg.Catalog.BlobOptions())
	assert.Equal(t, book.Options{TagPolicy: book.KeepEmptyTags}, cfg.Catalog.BookOptions())
	assert.Equal(t, 2.5, cfg.HTTP.RateLimitRPS)
	assert.Equal(t, int64(512), cfg.HTTP.MaxBodyBytes)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSAllowedOrigins)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":7000"
catalog:
  backend: postgres
  dsn: "postgres://u:${TEST_DB_PASSWORD}@db:5432/books"
  blob_key: shelf
log:
  level: debug
  format: console
`), 0o644))

	t.Setenv("CATALOG_CONFIG", path)
	t.Setenv("TEST_DB_PASSWORD", "s3cret")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "postgres", cfg.Catalog.Backend)
	assert.Equal(t, "postgres://u:s3cret@db:5432/books", cfg.Catalog.DSN)
	assert.Equal(t, "shelf", cfg.Catalog.BlobKey)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	// keys absent from the file keep their defaults
	assert.True(t, cfg.Catalog.RatingEnabled)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"CATALOG_BACKEND": "redis"}},
		{"bad bool", map[string]string{"CATALOG_RATING_ENABLED": "maybe"}},
		{"bad number", map[string]string{"RATE_LIMIT_BURST": "lots"}},
		{"zero rate", map[string]string{"RATE_LIMIT_RPS": "0"}},
		{"bad log level", map[string]string{"LOG_LEVEL": "chatty"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chdir(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	chdir(t)
	t.Setenv("CATALOG_CONFIG", "/does/not/exist.yaml")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_DSN=from_file\n"), 0o644))
	t.Setenv("DB_DSN", "from_env")

	LoadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("DB_DSN"))
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("EXPAND_ME", "value")

	assert.Equal(t, "a value b", expandEnvVars("a ${EXPAND_ME} b"))
	assert.Equal(t, "a  b", expandEnvVars("a ${EXPAND_UNSET_VAR} b"))
	assert.Equal(t, "no vars", expandEnvVars("no vars"))
}
