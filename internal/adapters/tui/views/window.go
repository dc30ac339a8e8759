package views

// Window tracks which slice of a longer list is on screen. Both the notebook
// lines and the reference picker rows scroll through one.
type Window struct {
	size   int
	offset int
	total  int
}

// NewWindow creates a window showing size rows at a time
func NewWindow(size int) *Window {
	if size <= 0 {
		size = 10
	}
	return &Window{size: size}
}

// Resize changes the number of visible rows
func (w *Window) Resize(size int) {
	if size <= 0 {
		size = 1
	}
	w.size = size
	w.clampOffset()
}

// Size returns the number of visible rows
func (w *Window) Size() int {
	return w.size
}

// SetTotal sets how many rows the underlying list has
func (w *Window) SetTotal(total int) {
	w.total = max(total, 0)
	w.clampOffset()
}

// Offset returns the first visible row
func (w *Window) Offset() int {
	return w.offset
}

// Range returns the visible rows as a half-open interval
func (w *Window) Range() (start, end int) {
	return w.offset, min(w.offset+w.size, w.total)
}

// Follow scrolls the minimum amount needed to make row visible
func (w *Window) Follow(row int) {
	switch {
	case row < w.offset:
		w.offset = row
	case row >= w.offset+w.size:
		w.offset = row - w.size + 1
	}
	w.clampOffset()
}

// Center scrolls so row sits in the middle of the window when possible
func (w *Window) Center(row int) {
	w.offset = row - w.size/2
	w.clampOffset()
}

// Visible reports whether row is on screen
func (w *Window) Visible(row int) bool {
	return row >= w.offset && row < w.offset+w.size
}

func (w *Window) clampOffset() {
	w.offset = clamp(w.offset, 0, w.total-w.size)
}
