package blob

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Options select and configure a backend.
type Options struct {
	Backend    string
	DSN        string
	Dir        string
	SQLitePath string
}

// Open returns the configured backend. Postgres is pinged before returning.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile:
		return NewFile(opts.Dir)
	case BackendSQLite:
		return NewSQLite(opts.SQLitePath)
	case BackendPostgres:
		pool, err := pgxpool.New(ctx, opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("creating db pool: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("pinging database (%s): %w", RedactDSN(opts.DSN), err)
		}
		return NewPostgres(pool), nil
	default:
		return nil, fmt.Errorf("unknown blob backend %q", opts.Backend)
	}
}

// RedactDSN hides the credentials part of a connection string.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
