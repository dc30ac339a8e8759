package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcnote/internal/application"
)

func pickerRefs() []application.ReferenceView {
	return []application.ReferenceView{
		{ID: "calc0", Line: 0, Reference: "_calc0", Label: "price = 40 = 40"},
		{ID: "calc1", Line: 1, Reference: "_calc1", Label: "tax = price * 0.2 = 8"},
		{ID: "calc2", Line: 3, Reference: "_calc2", Label: "total = price + tax = 48"},
	}
}

func TestPickerModel_LoadListsEverything(t *testing.T) {
	m := NewPickerModel()
	m.Load(pickerRefs())

	require.Len(t, m.Matches(), 3)
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "_calc0", sel.Reference)
	assert.Contains(t, m.View(), "3 of 3 references")
}

func TestPickerModel_Filter(t *testing.T) {
	m := NewPickerModel()
	m.Load(pickerRefs())

	for _, r := range "total" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	require.NotEmpty(t, m.Matches())
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "_calc2", sel.Reference)
}

func TestPickerModel_Navigate(t *testing.T) {
	m := NewPickerModel()
	m.Load(pickerRefs())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	sel, _ := m.Selected()
	assert.Equal(t, "_calc2", sel.Reference, "cursor stops at the last entry")

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	sel, _ = m.Selected()
	assert.Equal(t, "_calc1", sel.Reference)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, ReferenceChosenMsg{Line: 1}, cmd())
}

func TestPickerModel_Cancel(t *testing.T) {
	m := NewPickerModel()
	m.Load(pickerRefs())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, SwitchToNotebookMsg{}, cmd())
}

func TestPickerModel_Copy(t *testing.T) {
	copied := stubClipboard(t, nil)
	m := NewPickerModel()
	m.Load(pickerRefs())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, []string{"_calc1"}, *copied)
	assert.Equal(t, "Copied _calc1", m.Message)
}

func TestPickerModel_Empty(t *testing.T) {
	m := NewPickerModel()
	m.Load(nil)

	_, ok := m.Selected()
	assert.False(t, ok)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "No lines hold a value yet")
}
