// Package blob persists named byte slots. The catalog keeps its whole book
// collection in a single slot and replaces it on every save.
package blob

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no value has been stored under a key.
	ErrNotFound = errors.New("blob not found")

	// ErrInvalidKey is returned for empty keys or keys containing path separators.
	ErrInvalidKey = errors.New("invalid blob key")
)

// Store is a get/set string-blob slot store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return ErrInvalidKey
	}
	return nil
}
