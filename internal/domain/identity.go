package domain

import "sort"

// Registry assigns stable LineIDs to evaluable lines across update cycles.
//
// Positional continuity wins: every line whose old counterpart held an ID
// (unchanged or modified in place) keeps it before any other rule runs. The
// remaining lines then try the content index, the position history, and
// finally get a freshly minted ID. An ID is never handed to two lines in the
// same cycle, so the resulting mapping is injective.
type Registry struct {
	counter      int
	mapping      IdentityMapping
	contentIndex map[string]LineID
	history      map[int]LineID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		mapping:      IdentityMapping{},
		contentIndex: map[string]LineID{},
		history:      map[int]LineID{},
	}
}

// Restore replaces the registry state, typically from a persisted snapshot
func (r *Registry) Restore(mapping IdentityMapping, counter int, contentIndex map[string]LineID, history map[int]LineID) {
	r.mapping = mapping.Clone()
	r.counter = counter
	r.contentIndex = make(map[string]LineID, len(contentIndex))
	for text, id := range contentIndex {
		r.contentIndex[text] = id
	}
	r.history = make(map[int]LineID, len(history))
	for pos, id := range history {
		r.history[pos] = id
	}
}

// Mapping returns a copy of the current position → ID mapping
func (r *Registry) Mapping() IdentityMapping {
	return r.mapping.Clone()
}

// Counter returns the next counter value to mint
func (r *Registry) Counter() int {
	return r.counter
}

// ContentIndex returns a copy of the normalized content → ID index
func (r *Registry) ContentIndex() map[string]LineID {
	out := make(map[string]LineID, len(r.contentIndex))
	for text, id := range r.contentIndex {
		out[text] = id
	}
	return out
}

// History returns a copy of the position history
func (r *Registry) History() map[int]LineID {
	out := make(map[int]LineID, len(r.history))
	for pos, id := range r.history {
		out[pos] = id
	}
	return out
}

// Assign computes the identity mapping for the new lines and updates the
// content index and position history. It never evaluates anything.
func (r *Registry) Assign(lines []ParsedLine, changes ChangeSet) IdentityMapping {
	oldMapping := r.mapping
	mapping := IdentityMapping{}
	claimed := map[LineID]bool{}

	// Phase one: positional continuity (unchanged, then modified in place)
	for pos, line := range lines {
		if !line.Evaluable() {
			continue
		}
		ch := changes.At(pos)
		if ch.Kind != ChangeUnchanged && ch.Kind != ChangeModified {
			continue
		}
		if id, ok := oldMapping[ch.Old]; ok && !claimed[id] {
			mapping[pos] = id
			claimed[id] = true
		}
	}

	// Phase two: content match, position history, then a new ID
	for pos, line := range lines {
		if !line.Evaluable() {
			continue
		}
		if _, done := mapping[pos]; done {
			continue
		}

		if id, ok := r.contentIndex[NormalizeContent(line.Text)]; ok && !claimed[id] {
			mapping[pos] = id
		} else if id, ok := r.history[pos]; ok && !claimed[id] {
			mapping[pos] = id
		} else {
			mapping[pos] = r.mint(claimed)
		}
		claimed[mapping[pos]] = true
	}

	r.contentIndex = r.nextContentIndex(lines, mapping, claimed)
	r.history = r.nextHistory(mapping, claimed)
	r.mapping = mapping

	return mapping.Clone()
}

// mint issues the next unused ID. IDs still remembered by the content index
// or history belong to a deleted line that may come back, so they are skipped too.
func (r *Registry) mint(claimed map[LineID]bool) LineID {
	for {
		id := NewLineID(r.counter)
		r.counter++
		if !claimed[id] && !r.remembers(id) {
			return id
		}
	}
}

func (r *Registry) remembers(id LineID) bool {
	for _, known := range r.mapping {
		if known == id {
			return true
		}
	}
	for _, known := range r.contentIndex {
		if known == id {
			return true
		}
	}
	for _, known := range r.history {
		if known == id {
			return true
		}
	}
	return false
}

// nextContentIndex keeps entries of lines that no longer exist and
// overwrites the rest with the current lines (last write wins).
func (r *Registry) nextContentIndex(lines []ParsedLine, mapping IdentityMapping, held map[LineID]bool) map[string]LineID {
	next := map[string]LineID{}
	for text, id := range r.contentIndex {
		if !held[id] {
			next[text] = id
		}
	}
	for _, pos := range sortedPositions(mapping) {
		next[NormalizeContent(lines[pos].Text)] = mapping[pos]
	}
	return next
}

func (r *Registry) nextHistory(mapping IdentityMapping, held map[LineID]bool) map[int]LineID {
	next := map[int]LineID{}
	for pos, id := range r.history {
		if !held[id] {
			next[pos] = id
		}
	}
	for pos, id := range mapping {
		next[pos] = id
	}
	return next
}

func sortedPositions(mapping IdentityMapping) []int {
	positions := make([]int, 0, len(mapping))
	for pos := range mapping {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return positions
}
