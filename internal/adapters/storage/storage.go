// Package storage opens the notebook store selected by the configuration.
package storage

import (
	"fmt"
	"log/slog"

	"calcnote/internal/adapters/filesystem"
	"calcnote/internal/adapters/sqlite"
	"calcnote/internal/config"
	"calcnote/internal/ports"
)

// Open returns the configured store and a function that releases it
func Open(cfg *config.Config, logger *slog.Logger) (ports.Store, func() error, error) {
	switch cfg.Store.Backend {
	case config.BackendJSON:
		return filesystem.NewStore(cfg.Store.Path, logger), func() error { return nil }, nil
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.Store.Path, cfg.Store.Notebook, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
