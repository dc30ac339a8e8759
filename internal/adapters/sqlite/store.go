// Package sqlite stores notebooks in a SQLite database, one row per notebook.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/minio/highwayhash"

	"calcnote/internal/domain"
	"calcnote/internal/ports"
)

const schemaVersion = "1"

// DefaultNotebook is the name used when none is given
const DefaultNotebook = "default"

// fingerprintKey seeds the snapshot fingerprint; it only has to be stable
var fingerprintKey = []byte("calcnote-snapshot-fingerprint-00")

// Store implements ports.Store on a SQLite database. Several notebooks can
// share one database; each Store reads and writes one of them.
type Store struct {
	db       *sql.DB
	dbPath   string
	notebook string
	logger   *slog.Logger
}

// Ensure Store implements ports.Store
var _ ports.Store = (*Store)(nil)

// Open opens (and if needed creates) the database at dbPath. An empty path
// uses the XDG data directory.
func Open(dbPath, notebook string, logger *slog.Logger) (*Store, error) {
	if dbPath == "" {
		dbPath = DefaultDatabasePath()
	}
	// Expand ~ in path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	if notebook == "" {
		notebook = DefaultNotebook
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL mode lets the CLI read while the TUI writes
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS notebooks (
			name TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			snapshot BLOB NOT NULL,
			fingerprint TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS labels (
			notebook TEXT NOT NULL,
			line_id TEXT NOT NULL,
			label TEXT NOT NULL,
			PRIMARY KEY (notebook, line_id)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &Store{
		db:       db,
		dbPath:   dbPath,
		notebook: notebook,
		logger: logger.With(
			slog.String("component", "store"),
			slog.String("notebook", notebook),
		),
	}, nil
}

// DefaultDatabasePath returns the database location under the XDG data directory
func DefaultDatabasePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "calcnote", "calcnote.db")
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file
func (s *Store) Path() string {
	return s.dbPath
}

// Load implements ports.Store. A notebook that was never saved is empty.
func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM notebooks WHERE name = ?`, s.notebook).Scan(&data)
	if err == sql.ErrNoRows {
		return domain.EmptySnapshot(), nil
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Err: err}
	}
	return domain.DecodeSnapshot(data)
}

// Save implements ports.Store. Saving a snapshot identical to the stored one
// is a no-op.
func (s *Store) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	data, err := snapshot.Encode()
	if err != nil {
		return err
	}
	fingerprint, err := Fingerprint(data)
	if err != nil {
		return &domain.PersistenceError{Op: "save", Err: err}
	}

	var stored string
	err = s.db.QueryRowContext(ctx, `SELECT fingerprint FROM notebooks WHERE name = ?`, s.notebook).Scan(&stored)
	if err == nil && stored == fingerprint {
		s.logger.Debug("snapshot unchanged, skipping save")
		return nil
	}
	if err != nil && err != sql.ErrNoRows {
		return &domain.PersistenceError{Op: "save", Err: err}
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return &domain.PersistenceError{Op: "save", Err: err}
	}
	defer tx.Rollback()

	if err := tx.UpsertNotebook(s.notebook, snapshot.Content, data, fingerprint); err != nil {
		return &domain.PersistenceError{Op: "save", Err: fmt.Errorf("failed to write notebook: %w", err)}
	}
	if err := tx.ReplaceLabels(s.notebook, snapshot.ReferenceLabels); err != nil {
		return &domain.PersistenceError{Op: "save", Err: fmt.Errorf("failed to write labels: %w", err)}
	}
	if err := tx.Commit(); err != nil {
		return &domain.PersistenceError{Op: "save", Err: err}
	}

	s.logger.Debug("notebook saved", slog.Int("bytes", len(data)), slog.Int("labels", len(snapshot.ReferenceLabels)))
	return nil
}

// Labels returns the stored reference labels of the notebook
func (s *Store) Labels(ctx context.Context) (map[domain.LineID]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT line_id, label FROM labels WHERE notebook = ?`, s.notebook)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := map[domain.LineID]string{}
	for rows.Next() {
		var id, label string
		if err := rows.Scan(&id, &label); err != nil {
			return nil, err
		}
		labels[domain.LineID(id)] = label
	}

	return labels, rows.Err()
}

// Notebooks returns the names of every stored notebook
func (s *Store) Notebooks(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM notebooks ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Fingerprint returns a hex HighwayHash-64 of encoded snapshot data
func Fingerprint(data []byte) (string, error) {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return "", err
	}
	if _, err := hash.Write(data); err != nil {
		return "", err
	}
	sum := make([]byte, 8)
	binary.BigEndian.PutUint64(sum, hash.Sum64())
	return hex.EncodeToString(sum), nil
}
