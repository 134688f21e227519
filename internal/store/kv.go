package store

import (
	"context"
	"fmt"

	"flipdeck/internal/config"
)

// KV is a string key/value store that survives restarts.
type KV interface {
	// Get returns the value for key; ok is false when the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// SetMany writes every entry or none of them.
	SetMany(ctx context.Context, entries map[string]string) error

	Close() error
}

// OpenKV opens the backend selected by cfg for the workspace.
func OpenKV(cfg *config.Config, workspace string) (KV, error) {
	path := cfg.StatePath(workspace)
	switch cfg.State.Backend {
	case config.BackendFile, "":
		return NewFileKV(path), nil
	case config.BackendSQLite:
		return OpenSQLiteKV(cfg.State.Driver, path)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidBackend, cfg.State.Backend)
	}
}
