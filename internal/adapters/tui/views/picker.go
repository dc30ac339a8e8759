package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"calcnote/internal/adapters/tui/styles"
	"calcnote/internal/application"
	"calcnote/internal/application/commands"
)

// PickerKeyMap defines key bindings for the reference picker
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Copy   key.Binding
	Cancel key.Binding
}

var PickerKeys = PickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "insert"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// PickerModel lets the user filter the notebook's references and insert one
// at the cursor
type PickerModel struct {
	ViewState

	input   textinput.Model
	refs    []application.ReferenceView
	matches []commands.ReferenceMatch
	cursor  int
	window  *Window
}

// NewPickerModel creates a new reference picker
func NewPickerModel() *PickerModel {
	ti := textinput.New()
	ti.Placeholder = "Filter by reference or label..."
	ti.CharLimit = 100
	ti.Width = 50

	return &PickerModel{
		input:  ti,
		window: NewWindow(10),
	}
}

// Load replaces the listed references and resets the filter
func (m *PickerModel) Load(refs []application.ReferenceView) tea.Cmd {
	m.refs = refs
	m.input.SetValue("")
	m.ClearMessage()
	m.filter()
	return m.input.Focus()
}

func (m *PickerModel) filter() {
	m.matches = commands.FuzzySort(m.refs, m.input.Value())
	m.cursor = 0
	m.window.SetTotal(len(m.matches))
	m.window.Follow(0)
}

// Init initializes the picker
func (m *PickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the picker
func (m *PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, PickerKeys.Cancel):
			m.input.Blur()
			return m, func() tea.Msg {
				return SwitchToNotebookMsg{}
			}

		case key.Matches(msg, PickerKeys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.window.Follow(m.cursor)
			}
			return m, nil

		case key.Matches(msg, PickerKeys.Down):
			if m.cursor < len(m.matches)-1 {
				m.cursor++
				m.window.Follow(m.cursor)
			}
			return m, nil

		case key.Matches(msg, PickerKeys.Select):
			match, ok := m.Selected()
			if !ok {
				return m, nil
			}
			m.input.Blur()
			return m, func() tea.Msg {
				return ReferenceChosenMsg{Line: match.Line}
			}

		case key.Matches(msg, PickerKeys.Copy):
			match, ok := m.Selected()
			if !ok {
				return m, nil
			}
			if err := copyToClipboard(match.Reference); err != nil {
				m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
			} else {
				m.SetMessage("Copied "+match.Reference, false)
			}
			return m, nil
		}
	}

	previous := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != previous {
		m.filter()
	}
	return m, cmd
}

// Selected returns the highlighted entry
func (m *PickerModel) Selected() (commands.ReferenceMatch, bool) {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return commands.ReferenceMatch{}, false
	}
	return m.matches[m.cursor], true
}

// Matches returns the entries passing the current filter
func (m *PickerModel) Matches() []commands.ReferenceMatch {
	return m.matches
}

// SetSize updates the view dimensions
func (m *PickerModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	// Title, input, count and help take the rest
	m.window.Resize(height - 12)
	m.window.Follow(m.cursor)
}

// View renders the picker
func (m *PickerModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Insert Reference"))
	b.WriteString("\n\n")
	b.WriteString(styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n\n")

	switch {
	case len(m.refs) == 0:
		b.WriteString(styles.MutedText.Render("No lines hold a value yet"))
		b.WriteString("\n")
	case len(m.matches) == 0:
		b.WriteString(styles.MutedText.Render("No matching references"))
		b.WriteString("\n")
	default:
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d of %d references", len(m.matches), len(m.refs))))
		b.WriteString("\n\n")

		start, end := m.window.Range()
		for i := start; i < end; i++ {
			b.WriteString(m.renderMatch(m.matches[i], i == m.cursor))
			b.WriteString("\n")
		}
		if end < len(m.matches) {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("... and %d more", len(m.matches)-end)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n\n")
	}
	b.WriteString(RenderHelpLine(PickerKeys.Up, PickerKeys.Down, PickerKeys.Select, PickerKeys.Copy, PickerKeys.Cancel))

	return styles.App.Render(b.String())
}

func (m *PickerModel) renderMatch(match commands.ReferenceMatch, selected bool) string {
	text := fmt.Sprintf("%-9s line %-4d %s", match.Reference, match.Line+1, match.Label)
	if selected {
		return styles.NodeSelected.Render(text)
	}
	return text
}
