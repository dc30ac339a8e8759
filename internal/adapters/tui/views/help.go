package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"calcnote/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "f1"),
		key.WithHelp("esc/q/f1", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToNotebookMsg{}
			}
		}
	}

	return m, nil
}

type helpSection struct {
	title string
	rows  [][2]string
}

var helpSections = []helpSection{
	{"Writing", [][2]string{
		{"price = 40", "Assign a variable"},
		{"price * 1.2", "Evaluate an expression"},
		{"_calc0 + 1", "Use another line's result"},
		{"// note", "Comment, never evaluated"},
	}},
	{"References", [][2]string{
		{"Ctrl+R", "Pick a line and insert its reference"},
		{"Ctrl+G", "Jump to the line the reference under the cursor names"},
		{"Ctrl+Y", "Copy the current line's reference"},
	}},
	{"General", [][2]string{
		{"Ctrl+E", "Edit the notebook in $EDITOR"},
		{"Ctrl+S", "Recalculate and save now"},
		{"F1", "Toggle help"},
		{"Ctrl+Q / Ctrl+C", "Quit"},
	}},
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("calcnote Help"))
	b.WriteString("\n\n")
	b.WriteString(styles.Subtitle.Render("A notebook where every line is a calculation"))
	b.WriteString("\n\n")

	for _, section := range helpSections {
		b.WriteString(styles.InputLabel.Render(section.title))
		b.WriteString("\n")
		for _, row := range section.rows {
			b.WriteString("  " + styles.HelpKey.Render(padRight(row[0], 20)) + styles.HelpDesc.Render(row[1]) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.InputLabel.Render("Functions"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  " + strings.Join(functionNames, " ")))
	b.WriteString("\n\n")

	b.WriteString(RenderHelpLine(HelpKeys.Close))

	return styles.App.Render(b.String())
}

var functionNames = []string{
	"sin", "cos", "tan", "exp", "sqrt", "abs", "ceil", "floor", "round", "log", "max", "min", "pi", "e",
}

func padRight(s string, length int) string {
	if n := len([]rune(s)); n < length {
		return s + strings.Repeat(" ", length-n)
	}
	return s
}
