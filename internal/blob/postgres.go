package blob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	dialectPostgres = "postgres"
	tableBlobs      = "kv_blobs"
	colKey          = "key"
	colValue        = "value"
	colUpdatedAt    = "updated_at"
)

// Postgres stores blobs in the kv_blobs table created by db/migrations.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	query, args, err := goqu.Dialect(dialectPostgres).
		From(tableBlobs).
		Select(colValue).
		Where(goqu.C(colKey).Eq(key)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("building select: %w", err)
	}

	var value []byte
	if err := p.db.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("selecting blob %q: %w", key, err)
	}
	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}

	query, args, err := goqu.Dialect(dialectPostgres).
		Insert(tableBlobs).
		Rows(goqu.Record{
			colKey:       key,
			colValue:     value,
			colUpdatedAt: time.Now().UTC(),
		}).
		OnConflict(goqu.DoUpdate(colKey, goqu.Record{
			colValue:     goqu.L("EXCLUDED.value"),
			colUpdatedAt: goqu.L("EXCLUDED.updated_at"),
		})).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("building upsert: %w", err)
	}

	if _, err := p.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting blob %q: %w", key, err)
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}

func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
