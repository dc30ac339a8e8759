package domain

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Snapshot is the persisted notebook: raw text plus the identity and label
// state, so a reload keeps every reference stable.
type Snapshot struct {
	Content         string            `json:"content"`
	IDMapping       map[int]LineID    `json:"idMapping"`
	IDCounter       int               `json:"idCounter"`
	ContentToID     map[string]LineID `json:"contentToId"`
	LineHistory     map[int]LineID    `json:"lineHistory"`
	ReferenceLabels map[LineID]string `json:"referenceLabels"`
}

// EmptySnapshot returns the state of a brand new notebook
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		IDMapping:       map[int]LineID{},
		ContentToID:     map[string]LineID{},
		LineHistory:     map[int]LineID{},
		ReferenceLabels: map[LineID]string{},
	}
}

// DecodeSnapshot parses stored notebook data. Empty input is a new notebook;
// malformed input is a PersistenceError.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return EmptySnapshot(), nil
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	s.Normalize()
	return &s, nil
}

// Encode serializes the snapshot as JSON
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, &PersistenceError{Op: "save", Err: err}
	}
	return data, nil
}

// Normalize repairs state that could break identity invariants: nil maps,
// negative positions, an ID held by two positions (the lowest position keeps
// it) and a counter that would mint an ID already in use.
func (s *Snapshot) Normalize() {
	if s.IDMapping == nil {
		s.IDMapping = map[int]LineID{}
	}
	if s.ContentToID == nil {
		s.ContentToID = map[string]LineID{}
	}
	if s.LineHistory == nil {
		s.LineHistory = map[int]LineID{}
	}
	if s.ReferenceLabels == nil {
		s.ReferenceLabels = map[LineID]string{}
	}

	positions := make([]int, 0, len(s.IDMapping))
	for pos := range s.IDMapping {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	seen := map[LineID]bool{}
	for _, pos := range positions {
		id := s.IDMapping[pos]
		if pos < 0 || id == "" || seen[id] {
			delete(s.IDMapping, pos)
			continue
		}
		seen[id] = true
	}
	for pos, id := range s.LineHistory {
		if pos < 0 || id == "" {
			delete(s.LineHistory, pos)
		}
	}

	next := 0
	bump := func(id LineID) {
		if n, ok := id.Number(); ok && n >= next {
			next = n + 1
		}
	}
	for _, id := range s.IDMapping {
		bump(id)
	}
	for _, id := range s.ContentToID {
		bump(id)
	}
	for _, id := range s.LineHistory {
		bump(id)
	}
	if s.IDCounter < next {
		s.IDCounter = next
	}
}
