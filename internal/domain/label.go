package domain

import (
	"fmt"
	"strings"
)

const (
	// MaxResultLength caps the result text shown next to a line
	MaxResultLength = 40
	// MaxLabelPreview caps the source text part of a reference label
	MaxLabelPreview = 20
	// MaxLabelResult caps the result part of a reference label
	MaxLabelResult = 10

	ellipsis = "..."

	// UnknownReferenceLabel is shown for a reference whose target has no label
	UnknownReferenceLabel = "Unknown reference"
)

// Truncate shortens s to at most limit characters, ending in "..." when cut
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	keep := limit - len(ellipsis)
	if keep < 0 {
		keep = 0
	}
	return string(runes[:keep]) + ellipsis
}

// ReferenceLabel summarizes a line as "source = result" for tooltips
func ReferenceLabel(line, result string) string {
	return fmt.Sprintf("%s = %s",
		Truncate(strings.TrimSpace(line), MaxLabelPreview),
		Truncate(result, MaxLabelResult))
}

// Annotation is the inline result shown at the end of a line
type Annotation struct {
	Line      int
	Column    int    // Character offset where the annotation is anchored (end of line)
	Text      string // Truncated result text
	Value     string // Full result text
	IsError   bool
	ID        LineID
	Reference string // Insertion text, e.g. "_calc3"
	Title     string
}

// Highlight marks an identifier reference token inside a line
type Highlight struct {
	Line       int
	Offset     int
	Length     int
	Token      string
	TargetID   LineID
	TargetLine int
	Label      string
}

// Contains reports whether a cursor column falls on the token
func (h Highlight) Contains(line, column int) bool {
	return line == h.Line && column >= h.Offset && column <= h.Offset+h.Length
}
