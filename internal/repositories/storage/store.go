package storage

import (
	"context"
	"errors"
	"fmt"

	"weather-app/config"
)

// ErrKeyNotFound is returned by Get when nothing was ever stored under the key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore persists opaque values under string keys.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open returns the store selected by the favorites backend setting.
func Open(ctx context.Context, cfg config.FavoritesConfig) (KeyValueStore, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.Path)
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.Path)
	case config.BackendPostgres:
		return NewPostgresStore(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown favorites backend %q", cfg.Backend)
	}
}
