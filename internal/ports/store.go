package ports

import (
	"context"

	"calcnote/internal/domain"
)

// Store persists a single notebook snapshot
type Store interface {
	// Load returns the stored snapshot, or an empty snapshot if nothing was saved yet
	Load(ctx context.Context) (*domain.Snapshot, error)

	// Save replaces the stored snapshot
	Save(ctx context.Context, snapshot *domain.Snapshot) error
}
