package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcnote/internal/adapters/filesystem"
	"calcnote/internal/adapters/sqlite"
	"calcnote/internal/config"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		backend string
		path    string
		check   func(t *testing.T, store any)
		wantErr bool
	}{
		{
			name:    "json",
			backend: config.BackendJSON,
			path:    filepath.Join(dir, "n.json"),
			check: func(t *testing.T, store any) {
				assert.IsType(t, &filesystem.Store{}, store)
			},
		},
		{
			name:    "sqlite",
			backend: config.BackendSQLite,
			path:    filepath.Join(dir, "n.db"),
			check: func(t *testing.T, store any) {
				assert.IsType(t, &sqlite.Store{}, store)
			},
		},
		{name: "unknown", backend: "redis", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Store.Backend = tt.backend
			cfg.Store.Path = tt.path

			store, closeFn, err := Open(cfg, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer closeFn()
			tt.check(t, store)
		})
	}
}
