package memory

import (
	"context"
	"sync"

	"calcnote/internal/domain"
)

// Store keeps the encoded snapshot in memory. Saving and loading go through
// the same JSON encoding the file stores use, so a Store never shares maps
// with the engine.
type Store struct {
	mu    sync.Mutex
	data  []byte
	saves int

	// LoadErr and SaveErr, when set, are returned instead of doing the operation
	LoadErr error
	SaveErr error
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Load implements ports.Store
func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return domain.DecodeSnapshot(s.data)
}

// Save implements ports.Store
func (s *Store) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	data, err := snapshot.Encode()
	if err != nil {
		return err
	}
	s.data = data
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Raw returns the stored bytes
func (s *Store) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...)
}

// SetRaw replaces the stored bytes, e.g. with a corrupt document
func (s *Store) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
}
