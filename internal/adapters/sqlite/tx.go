package sqlite

import (
	"context"
	"database/sql"
	"time"

	"calcnote/internal/domain"
)

// saveTx groups the writes of one Save
type saveTx struct {
	tx *sql.Tx
}

func (s *Store) beginTx(ctx context.Context) (*saveTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &saveTx{tx: tx}, nil
}

// UpsertNotebook inserts or updates a notebook row
func (t *saveTx) UpsertNotebook(name, content string, snapshot []byte, fingerprint string) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO notebooks (name, content, snapshot, fingerprint, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, name, content, snapshot, fingerprint, time.Now().Unix())
	return err
}

// ReplaceLabels swaps the notebook's labels for the given set
func (t *saveTx) ReplaceLabels(notebook string, labels map[domain.LineID]string) error {
	if _, err := t.tx.Exec(`DELETE FROM labels WHERE notebook = ?`, notebook); err != nil {
		return err
	}

	stmt, err := t.tx.Prepare(`INSERT INTO labels (notebook, line_id, label) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for id, label := range labels {
		if _, err := stmt.Exec(notebook, string(id), label); err != nil {
			return err
		}
	}
	return nil
}

// Commit commits the transaction
func (t *saveTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *saveTx) Rollback() error {
	return t.tx.Rollback()
}
