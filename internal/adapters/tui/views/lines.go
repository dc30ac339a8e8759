package views

import "strings"

// LineBuffer is the editable document behind the notebook view. Columns are
// rune offsets, matching the offsets the engine reports for annotations and
// highlights.
type LineBuffer struct {
	lines [][]rune
	row   int
	col   int
}

// NewLineBuffer creates a buffer holding text with the cursor at the start
func NewLineBuffer(text string) *LineBuffer {
	b := &LineBuffer{}
	b.SetText(text)
	return b
}

// Text returns the document joined with newlines
func (b *LineBuffer) Text() string {
	parts := make([]string, len(b.lines))
	for i, l := range b.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// SetText replaces the document and keeps the cursor inside it
func (b *LineBuffer) SetText(text string) {
	split := strings.Split(text, "\n")
	b.lines = make([][]rune, len(split))
	for i, l := range split {
		b.lines[i] = []rune(l)
	}
	b.SetCursor(b.row, b.col)
}

// Lines returns the number of lines. An empty document has one empty line.
func (b *LineBuffer) Lines() int {
	return len(b.lines)
}

// Line returns the text of one line
func (b *LineBuffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return string(b.lines[i])
}

// Cursor returns the cursor line and column
func (b *LineBuffer) Cursor() (row, col int) {
	return b.row, b.col
}

// SetCursor moves the cursor, clamped to the document
func (b *LineBuffer) SetCursor(row, col int) {
	b.row = clamp(row, 0, len(b.lines)-1)
	b.col = clamp(col, 0, len(b.lines[b.row]))
}

// Insert types s at the cursor. Newlines in s split the line.
func (b *LineBuffer) Insert(s string) {
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			b.Newline()
		}
		runes := []rune(part)
		line := b.lines[b.row]
		next := make([]rune, 0, len(line)+len(runes))
		next = append(next, line[:b.col]...)
		next = append(next, runes...)
		next = append(next, line[b.col:]...)
		b.lines[b.row] = next
		b.col += len(runes)
	}
}

// Newline splits the current line at the cursor
func (b *LineBuffer) Newline() {
	line := b.lines[b.row]
	head := append([]rune(nil), line[:b.col]...)
	tail := append([]rune(nil), line[b.col:]...)

	lines := make([][]rune, 0, len(b.lines)+1)
	lines = append(lines, b.lines[:b.row]...)
	lines = append(lines, head, tail)
	lines = append(lines, b.lines[b.row+1:]...)
	b.lines = lines
	b.row++
	b.col = 0
}

// Backspace deletes the rune before the cursor, joining lines at column 0.
// It reports whether the document changed.
func (b *LineBuffer) Backspace() bool {
	if b.col > 0 {
		line := b.lines[b.row]
		b.lines[b.row] = append(line[:b.col-1:b.col-1], line[b.col:]...)
		b.col--
		return true
	}
	if b.row == 0 {
		return false
	}
	prev := b.lines[b.row-1]
	b.col = len(prev)
	b.lines[b.row-1] = append(prev[:len(prev):len(prev)], b.lines[b.row]...)
	b.lines = append(b.lines[:b.row], b.lines[b.row+1:]...)
	b.row--
	return true
}

// Delete removes the rune under the cursor, joining the next line at the end
// of a line. It reports whether the document changed.
func (b *LineBuffer) Delete() bool {
	line := b.lines[b.row]
	if b.col < len(line) {
		b.lines[b.row] = append(line[:b.col:b.col], line[b.col+1:]...)
		return true
	}
	if b.row == len(b.lines)-1 {
		return false
	}
	b.lines[b.row] = append(line[:len(line):len(line)], b.lines[b.row+1]...)
	b.lines = append(b.lines[:b.row+1], b.lines[b.row+2:]...)
	return true
}

// Up moves the cursor one line up
func (b *LineBuffer) Up() {
	b.SetCursor(b.row-1, b.col)
}

// Down moves the cursor one line down
func (b *LineBuffer) Down() {
	b.SetCursor(b.row+1, b.col)
}

// Left moves the cursor one rune left, wrapping to the previous line
func (b *LineBuffer) Left() {
	if b.col > 0 {
		b.col--
		return
	}
	if b.row > 0 {
		b.row--
		b.col = len(b.lines[b.row])
	}
}

// Right moves the cursor one rune right, wrapping to the next line
func (b *LineBuffer) Right() {
	if b.col < len(b.lines[b.row]) {
		b.col++
		return
	}
	if b.row < len(b.lines)-1 {
		b.row++
		b.col = 0
	}
}

// Home moves to the start of the line
func (b *LineBuffer) Home() {
	b.col = 0
}

// End moves to the end of the line
func (b *LineBuffer) End() {
	b.col = len(b.lines[b.row])
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
