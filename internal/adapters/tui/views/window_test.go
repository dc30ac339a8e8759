package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow_Follow(t *testing.T) {
	w := NewWindow(3)
	w.SetTotal(10)

	start, end := w.Range()
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	w.Follow(5)
	start, end = w.Range()
	assert.Equal(t, 3, start)
	assert.Equal(t, 6, end)

	w.Follow(4)
	assert.Equal(t, 3, w.Offset(), "visible rows do not scroll")

	w.Follow(1)
	assert.Equal(t, 1, w.Offset())
}

func TestWindow_Center(t *testing.T) {
	w := NewWindow(4)
	w.SetTotal(20)

	w.Center(10)
	assert.Equal(t, 8, w.Offset())
	assert.True(t, w.Visible(10))

	w.Center(19)
	assert.Equal(t, 16, w.Offset(), "clamped to the last page")

	w.Center(0)
	assert.Equal(t, 0, w.Offset())
}

func TestWindow_ShortList(t *testing.T) {
	w := NewWindow(10)
	w.SetTotal(3)
	w.Follow(2)

	start, end := w.Range()
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
}

func TestWindow_ResizeClampsOffset(t *testing.T) {
	w := NewWindow(2)
	w.SetTotal(5)
	w.Follow(4)
	assert.Equal(t, 3, w.Offset())

	w.Resize(5)
	assert.Equal(t, 0, w.Offset())

	w.Resize(0)
	assert.Equal(t, 1, w.Size())
}
