package domain

import (
	"strconv"
	"strings"
)

const (
	// LineIDPrefix starts every minted line identifier (calc0, calc1, ...)
	LineIDPrefix = "calc"
	// ReferenceSigil turns a LineID into a reference name usable in expressions
	ReferenceSigil = "_"
)

// LineID identifies one logical calculation independent of its line position
type LineID string

// NewLineID returns the identifier for counter value n
func NewLineID(n int) LineID {
	return LineID(LineIDPrefix + strconv.Itoa(n))
}

// Reference returns the name expressions use to read this line's result (e.g. "_calc3")
func (id LineID) Reference() string {
	return ReferenceSigil + string(id)
}

// Number extracts the counter value from a minted identifier
func (id LineID) Number() (int, bool) {
	digits, ok := strings.CutPrefix(string(id), LineIDPrefix)
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// IdentityMapping maps line positions to the identifiers they currently hold
type IdentityMapping map[int]LineID

// Lookup returns the position currently holding id
func (m IdentityMapping) Lookup(id LineID) (int, bool) {
	for pos, held := range m {
		if held == id {
			return pos, true
		}
	}
	return -1, false
}

// Reverse returns the identifier → position view of the mapping
func (m IdentityMapping) Reverse() map[LineID]int {
	rev := make(map[LineID]int, len(m))
	for pos, id := range m {
		rev[id] = pos
	}
	return rev
}

// Clone returns an independent copy
func (m IdentityMapping) Clone() IdentityMapping {
	out := make(IdentityMapping, len(m))
	for pos, id := range m {
		out[pos] = id
	}
	return out
}
