package domain

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ChangeKind classifies a line of the new text relative to the previous text
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeModified
	ChangeUnchanged
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeModified:
		return "modified"
	case ChangeUnchanged:
		return "unchanged"
	default:
		return "added"
	}
}

// LineChange describes one line of the new text
type LineChange struct {
	Kind ChangeKind
	Old  int // Position in the previous text, -1 for added lines
}

// ChangeSet is the line classification for one update cycle
type ChangeSet struct {
	Lines   []LineChange // Indexed by new position
	Removed []int        // Positions in the previous text with no counterpart
}

// Positions returns the new positions with the given classification, ascending
func (c ChangeSet) Positions(kind ChangeKind) []int {
	var out []int
	for pos, ch := range c.Lines {
		if ch.Kind == kind {
			out = append(out, pos)
		}
	}
	return out
}

// At returns the classification of a new position
func (c ChangeSet) At(pos int) LineChange {
	if pos < 0 || pos >= len(c.Lines) {
		return LineChange{Kind: ChangeAdded, Old: -1}
	}
	return c.Lines[pos]
}

// DetectChanges classifies the trimmed lines of the new text against the old.
// When the line count is the same every line is compared with the line at
// the same position, so an edit never moves an ID onto another line with
// equal text. Otherwise the common prefix and suffix are matched by position
// and only the region between them is diffed: equal runs are unchanged and
// keep their old position, lines of a replaced run are paired in order as
// modified and the surplus is added or removed.
func DetectChanges(oldText, newText string) ChangeSet {
	oldLines := trimmedLines(oldText)
	newLines := trimmedLines(newText)

	changes := ChangeSet{Lines: make([]LineChange, len(newLines))}

	if len(oldLines) == len(newLines) {
		for pos := range newLines {
			changes.Lines[pos] = positional(oldLines[pos], newLines[pos], pos)
		}
		return changes
	}

	prefix := 0
	for prefix < len(oldLines) && prefix < len(newLines) && oldLines[prefix] == newLines[prefix] {
		changes.Lines[prefix] = LineChange{Kind: ChangeUnchanged, Old: prefix}
		prefix++
	}
	suffix := 0
	for suffix < len(oldLines)-prefix && suffix < len(newLines)-prefix &&
		oldLines[len(oldLines)-1-suffix] == newLines[len(newLines)-1-suffix] {
		changes.Lines[len(newLines)-1-suffix] = LineChange{Kind: ChangeUnchanged, Old: len(oldLines) - 1 - suffix}
		suffix++
	}

	oldMid := oldLines[prefix : len(oldLines)-suffix]
	newMid := newLines[prefix : len(newLines)-suffix]

	matcher := difflib.NewMatcherWithJunk(oldMid, newMid, false, nil)
	for _, op := range matcher.GetOpCodes() {
		i1, i2 := op.I1+prefix, op.I2+prefix
		j1, j2 := op.J1+prefix, op.J2+prefix
		switch op.Tag {
		case 'e':
			for k := 0; k < j2-j1; k++ {
				changes.Lines[j1+k] = LineChange{Kind: ChangeUnchanged, Old: i1 + k}
			}
		case 'r':
			oldCount, newCount := i2-i1, j2-j1
			for k := 0; k < newCount; k++ {
				if k < oldCount {
					changes.Lines[j1+k] = LineChange{Kind: ChangeModified, Old: i1 + k}
				} else {
					changes.Lines[j1+k] = LineChange{Kind: ChangeAdded, Old: -1}
				}
			}
			for k := newCount; k < oldCount; k++ {
				changes.Removed = append(changes.Removed, i1+k)
			}
		case 'i':
			for j := j1; j < j2; j++ {
				changes.Lines[j] = LineChange{Kind: ChangeAdded, Old: -1}
			}
		case 'd':
			for i := i1; i < i2; i++ {
				changes.Removed = append(changes.Removed, i)
			}
		}
	}

	return changes
}

func positional(oldLine, newLine string, pos int) LineChange {
	if oldLine == newLine {
		return LineChange{Kind: ChangeUnchanged, Old: pos}
	}
	return LineChange{Kind: ChangeModified, Old: pos}
}

func trimmedLines(text string) []string {
	lines := SplitLines(text)
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}
