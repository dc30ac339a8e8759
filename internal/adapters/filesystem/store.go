// Package filesystem stores a notebook as a JSON document through viant/afs.
package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"

	"calcnote/internal/domain"
	"calcnote/internal/ports"
)

// DefaultFileName is used when the store path is a directory
const DefaultFileName = "notebook.json"

// Store implements ports.Store as one JSON file
type Store struct {
	fs     afs.Service
	path   string
	logger *slog.Logger
}

// Ensure Store implements ports.Store
var _ ports.Store = (*Store)(nil)

// NewStore creates a store for the given path. A leading ~ expands to the
// home directory; an existing directory gets DefaultFileName inside it.
func NewStore(path string, logger *slog.Logger) *Store {
	path = ExpandPath(path)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFileName)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		fs:     afs.New(),
		path:   path,
		logger: logger.With(slog.String("component", "store"), slog.String("path", path)),
	}
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return path
}

// Path returns the file the notebook is stored in
func (s *Store) Path() string {
	return s.path
}

// Load implements ports.Store. A missing file is an empty notebook.
func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	exists, err := s.fs.Exists(ctx, s.path)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Err: err}
	}
	if !exists {
		s.logger.Debug("no stored notebook")
		return domain.EmptySnapshot(), nil
	}

	data, err := s.fs.DownloadWithURL(ctx, s.path)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Err: fmt.Errorf("failed to read %s: %w", s.path, err)}
	}
	return domain.DecodeSnapshot(data)
}

// Save implements ports.Store
func (s *Store) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	data, err := snapshot.Encode()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &domain.PersistenceError{Op: "save", Err: fmt.Errorf("failed to create directory: %w", err)}
	}
	if err := s.fs.Upload(ctx, s.path, 0644, bytes.NewReader(data)); err != nil {
		return &domain.PersistenceError{Op: "save", Err: fmt.Errorf("failed to write %s: %w", s.path, err)}
	}

	s.logger.Debug("notebook saved", slog.Int("bytes", len(data)))
	return nil
}
