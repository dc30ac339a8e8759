package ports

import (
	"context"
	"time"

	"calcnote/internal/domain"
)

// Editor is the text surface a notebook session renders into
type Editor interface {
	// Text returns the full document
	Text() string

	// SetText replaces the document without notifying change listeners
	SetText(text string)

	// OnTextChanged registers a listener called with the full text after each user edit
	OnTextChanged(fn func(text string))

	// PlaceAnnotation shows a result at the end of a line
	PlaceAnnotation(a domain.Annotation)

	// PlaceHighlight marks an identifier reference token
	PlaceHighlight(h domain.Highlight)

	// ClearAnnotations removes every annotation and highlight
	ClearAnnotations()

	// ScrollToLine brings a line into view
	ScrollToLine(line int)

	// HighlightLine emphasizes a line for the given duration
	HighlightLine(line int, d time.Duration)

	// SetCursor moves the cursor
	SetCursor(line, column int)

	// ReplaceSelection replaces the selection (or inserts at the cursor) with text.
	// This counts as a user edit.
	ReplaceSelection(text string)
}

// ExternalEditor round-trips text through a program outside the process,
// such as the user's $EDITOR
type ExternalEditor interface {
	// Edit opens text for editing and returns the saved result
	Edit(ctx context.Context, text string) (string, error)
}
