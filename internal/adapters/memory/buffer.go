// Package memory provides in-process implementations of the editor and
// store ports, used by the CLI for one-shot evaluation and by tests.
package memory

import (
	"slices"
	"strings"
	"sync"
	"time"

	"calcnote/internal/domain"
)

// LineHighlight records a HighlightLine call
type LineHighlight struct {
	Line     int
	Duration time.Duration
}

// Buffer is a headless ports.Editor that keeps everything it is asked to show
type Buffer struct {
	mu          sync.Mutex
	text        string
	cursorLine  int
	cursorCol   int
	listeners   []func(string)
	annotations []domain.Annotation
	highlights  []domain.Highlight
	scrolled    []int
	emphasized  []LineHighlight
}

// NewBuffer creates a buffer holding text
func NewBuffer(text string) *Buffer {
	return &Buffer{text: text}
}

func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
}

func (b *Buffer) OnTextChanged(fn func(text string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// Edit replaces the text the way a user would, notifying listeners
func (b *Buffer) Edit(text string) {
	b.mu.Lock()
	b.text = text
	b.mu.Unlock()
	b.notify(text)
}

func (b *Buffer) PlaceAnnotation(a domain.Annotation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.annotations = append(b.annotations, a)
}

func (b *Buffer) PlaceHighlight(h domain.Highlight) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.highlights = append(b.highlights, h)
}

func (b *Buffer) ClearAnnotations() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.annotations = nil
	b.highlights = nil
}

func (b *Buffer) ScrollToLine(line int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scrolled = append(b.scrolled, line)
}

func (b *Buffer) HighlightLine(line int, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.emphasized = append(b.emphasized, LineHighlight{Line: line, Duration: d})
}

func (b *Buffer) SetCursor(line, column int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorLine, b.cursorCol = line, column
}

// ReplaceSelection inserts text at the cursor and moves the cursor past it.
// Positions beyond the document are clamped to its end.
func (b *Buffer) ReplaceSelection(text string) {
	b.mu.Lock()
	lines := strings.Split(b.text, "\n")
	line := clamp(b.cursorLine, 0, len(lines)-1)
	runes := []rune(lines[line])
	col := clamp(b.cursorCol, 0, len(runes))

	lines[line] = string(runes[:col]) + text + string(runes[col:])
	b.text = strings.Join(lines, "\n")
	b.cursorLine, b.cursorCol = line, col+len([]rune(text))
	updated := b.text
	b.mu.Unlock()

	b.notify(updated)
}

// Cursor returns the cursor position
func (b *Buffer) Cursor() (line, column int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorLine, b.cursorCol
}

// Annotations returns the annotations placed since the last clear
func (b *Buffer) Annotations() []domain.Annotation {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Annotation(nil), b.annotations...)
}

// Highlights returns the highlights placed since the last clear
func (b *Buffer) Highlights() []domain.Highlight {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Highlight(nil), b.highlights...)
}

// Annotation returns the annotation placed on a line
func (b *Buffer) Annotation(line int) (domain.Annotation, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, a := range b.annotations {
		if a.Line == line {
			return a, true
		}
	}
	return domain.Annotation{}, false
}

// Scrolled returns every line ScrollToLine was called with
func (b *Buffer) Scrolled() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int(nil), b.scrolled...)
}

// Emphasized returns every HighlightLine call
func (b *Buffer) Emphasized() []LineHighlight {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]LineHighlight(nil), b.emphasized...)
}

func (b *Buffer) notify(text string) {
	b.mu.Lock()
	listeners := slices.Clone(b.listeners)
	b.mu.Unlock()
	for _, fn := range listeners {
		fn(text)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
