package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"calcnote/internal/adapters/tui/styles"
	"calcnote/internal/domain"
	"calcnote/internal/ports"
)

// copyToClipboard is swapped out in tests
var copyToClipboard = clipboard.WriteAll

const gutterWidth = 5

// NotebookKeyMap defines key bindings for the notebook editor
type NotebookKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Home      key.Binding
	End       key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Newline   key.Binding
	Backspace key.Binding
	Delete    key.Binding
	Tab       key.Binding
	Pick      key.Binding
	Follow    key.Binding
	Copy      key.Binding
	Edit      key.Binding
	Recalc    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var NotebookKeys = NotebookKeyMap{
	Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
	Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
	Home:      key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "line start")),
	End:       key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "line end")),
	PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Newline:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "new line")),
	Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete back")),
	Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "indent")),
	Pick: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "insert reference"),
	),
	Follow: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "go to reference"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy reference"),
	),
	Edit: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "open in $EDITOR"),
	),
	Recalc: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "recalculate"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+q"),
		key.WithHelp("ctrl+q", "quit"),
	),
}

// ShortHelp implements help.KeyMap
func (k NotebookKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pick, k.Follow, k.Copy, k.Edit, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k NotebookKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Home, k.End, k.PageUp, k.PageDown},
		{k.Newline, k.Backspace, k.Delete, k.Tab},
		{k.Pick, k.Follow, k.Copy, k.Edit, k.Recalc},
		{k.Help, k.Quit},
	}
}

// FollowReferenceMsg asks the app to jump to the target of the reference
// token at a cursor position
type FollowReferenceMsg struct {
	Line   int
	Column int
}

// RecalculateMsg asks the app to run an update cycle now
type RecalculateMsg struct{}

type clearEmphasisMsg struct {
	seq int
}

// NotebookModel is the notebook editor. It is the ports.Editor a session
// renders into, showing each line's result in a column on the right.
type NotebookModel struct {
	ViewState

	title  string
	buf    *LineBuffer
	window *Window
	keys   NotebookKeyMap
	help   help.Model

	listeners   []func(string)
	annotations map[int]domain.Annotation
	highlights  map[int][]domain.Highlight

	emphasized  int
	emphasisSeq int
	pending     []tea.Cmd
}

// Ensure NotebookModel implements Editor
var _ ports.Editor = (*NotebookModel)(nil)

// NewNotebookModel creates the editor view. title names the notebook in the status bar.
func NewNotebookModel(title string) *NotebookModel {
	m := &NotebookModel{
		title:       title,
		buf:         NewLineBuffer(""),
		window:      NewWindow(20),
		keys:        NotebookKeys,
		help:        help.New(),
		annotations: make(map[int]domain.Annotation),
		highlights:  make(map[int][]domain.Highlight),
		emphasized:  -1,
	}
	m.window.SetTotal(m.buf.Lines())
	return m
}

// Init initializes the notebook view
func (m *NotebookModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the notebook view
func (m *NotebookModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case clearEmphasisMsg:
		// A newer highlight owns the emphasis
		if msg.seq == m.emphasisSeq {
			m.emphasized = -1
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *NotebookModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.ClearMessage()
	row, col := m.buf.Cursor()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }

	case key.Matches(msg, m.keys.Pick):
		return func() tea.Msg { return SwitchToPickerMsg{} }

	case key.Matches(msg, m.keys.Edit):
		return func() tea.Msg { return OpenEditorMsg{} }

	case key.Matches(msg, m.keys.Recalc):
		return func() tea.Msg { return RecalculateMsg{} }

	case key.Matches(msg, m.keys.Follow):
		return func() tea.Msg { return FollowReferenceMsg{Line: row, Column: col} }

	case key.Matches(msg, m.keys.Copy):
		m.copyReference(row)

	case key.Matches(msg, m.keys.Up):
		m.buf.Up()
	case key.Matches(msg, m.keys.Down):
		m.buf.Down()
	case key.Matches(msg, m.keys.Left):
		m.buf.Left()
	case key.Matches(msg, m.keys.Right):
		m.buf.Right()
	case key.Matches(msg, m.keys.Home):
		m.buf.Home()
	case key.Matches(msg, m.keys.End):
		m.buf.End()
	case key.Matches(msg, m.keys.PageUp):
		m.buf.SetCursor(row-m.window.Size(), col)
	case key.Matches(msg, m.keys.PageDown):
		m.buf.SetCursor(row+m.window.Size(), col)

	case key.Matches(msg, m.keys.Newline):
		m.buf.Newline()
		m.changed()
	case key.Matches(msg, m.keys.Backspace):
		if m.buf.Backspace() {
			m.changed()
		}
	case key.Matches(msg, m.keys.Delete):
		if m.buf.Delete() {
			m.changed()
		}
	case key.Matches(msg, m.keys.Tab):
		m.buf.Insert("  ")
		m.changed()

	case msg.Type == tea.KeySpace:
		m.buf.Insert(" ")
		m.changed()
	case msg.Type == tea.KeyRunes:
		m.buf.Insert(string(msg.Runes))
		m.changed()
	}

	m.followCursor()
	return nil
}

func (m *NotebookModel) copyReference(row int) {
	a, ok := m.annotations[row]
	if !ok || a.Reference == "" {
		m.SetMessage("This line has no reference", true)
		return
	}
	if err := copyToClipboard(a.Reference); err != nil {
		m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	m.SetMessage("Copied "+a.Reference, false)
}

// changed notifies listeners after a user edit
func (m *NotebookModel) changed() {
	m.window.SetTotal(m.buf.Lines())
	text := m.buf.Text()
	for _, fn := range m.listeners {
		fn(text)
	}
}

func (m *NotebookModel) followCursor() {
	row, _ := m.buf.Cursor()
	m.window.SetTotal(m.buf.Lines())
	m.window.Follow(row)
}

// Text implements ports.Editor
func (m *NotebookModel) Text() string {
	return m.buf.Text()
}

// SetText implements ports.Editor
func (m *NotebookModel) SetText(text string) {
	m.buf.SetText(text)
	m.followCursor()
}

// Replace swaps the whole document as a user edit, as when the notebook
// comes back from an external editor
func (m *NotebookModel) Replace(text string) {
	m.buf.SetText(text)
	m.changed()
	m.followCursor()
}

// OnTextChanged implements ports.Editor
func (m *NotebookModel) OnTextChanged(fn func(text string)) {
	m.listeners = append(m.listeners, fn)
}

// PlaceAnnotation implements ports.Editor
func (m *NotebookModel) PlaceAnnotation(a domain.Annotation) {
	m.annotations[a.Line] = a
}

// PlaceHighlight implements ports.Editor
func (m *NotebookModel) PlaceHighlight(h domain.Highlight) {
	m.highlights[h.Line] = append(m.highlights[h.Line], h)
}

// ClearAnnotations implements ports.Editor
func (m *NotebookModel) ClearAnnotations() {
	clear(m.annotations)
	clear(m.highlights)
}

// ScrollToLine implements ports.Editor
func (m *NotebookModel) ScrollToLine(line int) {
	m.window.SetTotal(m.buf.Lines())
	if !m.window.Visible(line) {
		m.window.Center(line)
	}
}

// HighlightLine implements ports.Editor. The emphasis is cleared by a tick
// collected through TakePending.
func (m *NotebookModel) HighlightLine(line int, d time.Duration) {
	m.emphasisSeq++
	seq := m.emphasisSeq
	m.emphasized = line
	m.pending = append(m.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return clearEmphasisMsg{seq: seq}
	}))
}

// SetCursor implements ports.Editor
func (m *NotebookModel) SetCursor(line, column int) {
	m.buf.SetCursor(line, column)
	m.followCursor()
}

// ReplaceSelection implements ports.Editor. There is no selection, so text
// is inserted at the cursor.
func (m *NotebookModel) ReplaceSelection(text string) {
	m.buf.Insert(text)
	m.changed()
	m.followCursor()
}

// TakePending returns commands queued by editor calls made outside Update
func (m *NotebookModel) TakePending() tea.Cmd {
	cmds := m.pending
	m.pending = nil
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Cursor returns the cursor line and column
func (m *NotebookModel) Cursor() (line, column int) {
	return m.buf.Cursor()
}

// Annotation returns the annotation placed on a line
func (m *NotebookModel) Annotation(line int) (domain.Annotation, bool) {
	a, ok := m.annotations[line]
	return a, ok
}

// Emphasized returns the emphasized line, or -1
func (m *NotebookModel) Emphasized() int {
	return m.emphasized
}

// SetSize updates the view dimensions
func (m *NotebookModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.help.Width = width
	m.window.Resize(height - 2)
	m.followCursor()
}

// View renders the notebook
func (m *NotebookModel) View() string {
	var b strings.Builder

	textWidth, resultWidth := m.columns()
	row, col := m.buf.Cursor()
	start, end := m.window.Range()

	for i := start; i < end; i++ {
		b.WriteString(m.renderLine(i, row, col, textWidth, resultWidth))
		b.WriteString("\n")
	}
	for i := end - start; i < m.window.Size(); i++ {
		b.WriteString(styles.Gutter.Render("   ~"))
		b.WriteString("\n")
	}

	b.WriteString(m.statusBar(row, col))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// columns splits the width between the text and the result column
func (m *NotebookModel) columns() (text, result int) {
	width := m.Width
	if width <= 0 {
		width = 80
	}
	result = min(domain.MaxResultLength, width/3)
	text = width - gutterWidth - lipgloss.Width(styles.ResultSeparator.String()) - result
	return max(text, 10), result
}

func (m *NotebookModel) renderLine(row, cursorRow, cursorCol, textWidth, resultWidth int) string {
	current := row == cursorRow

	gutter := fmt.Sprintf("%4d ", row+1)
	if current {
		gutter = styles.GutterCurrent.Render(gutter)
	} else {
		gutter = styles.Gutter.Render(gutter)
	}

	col := -1
	if current {
		col = cursorCol
	}
	text := m.renderText(row, col, textWidth)

	result := ""
	if a, ok := m.annotations[row]; ok {
		a.Text = domain.Truncate(a.Text, resultWidth)
		result = RenderResult(a)
	}

	return gutter + text + styles.ResultSeparator.String() + result
}

type runeStyle int

const (
	runePlain runeStyle = iota
	runeComment
	runeReference
	runeEmphasis
	runeCursor
)

func (s runeStyle) render(text string) string {
	switch s {
	case runeComment:
		return styles.Comment.Render(text)
	case runeReference:
		return styles.Reference.Render(text)
	case runeEmphasis:
		return styles.Emphasis.Render(text)
	case runeCursor:
		return styles.Cursor.Render(text)
	default:
		return text
	}
}

// renderText draws one line padded to width. col is the cursor column on
// the current line and -1 elsewhere; the line scrolls horizontally to keep
// the cursor in view.
func (m *NotebookModel) renderText(row, col, width int) string {
	runes := []rune(m.buf.Line(row))
	comment := strings.HasPrefix(strings.TrimSpace(string(runes)), domain.CommentMarker)

	first := 0
	if col >= width {
		first = col - width + 1
	}
	last := min(len(runes), first+width)

	styleAt := func(i int) runeStyle {
		switch {
		case i == col:
			return runeCursor
		case row == m.emphasized:
			return runeEmphasis
		case m.inReference(row, i):
			return runeReference
		case comment:
			return runeComment
		}
		return runePlain
	}

	var b strings.Builder
	for i := first; i < last; {
		style := styleAt(i)
		j := i + 1
		for j < last && styleAt(j) == style {
			j++
		}
		b.WriteString(style.render(string(runes[i:j])))
		i = j
	}

	used := last - first
	if col >= last {
		b.WriteString(runeCursor.render(" "))
		used++
	}
	if used < width {
		pad := strings.Repeat(" ", width-used)
		if row == m.emphasized {
			pad = runeEmphasis.render(pad)
		}
		b.WriteString(pad)
	}
	return b.String()
}

func (m *NotebookModel) inReference(row, col int) bool {
	for _, h := range m.highlights[row] {
		if col >= h.Offset && col < h.Offset+h.Length {
			return true
		}
	}
	return false
}

func (m *NotebookModel) statusBar(row, col int) string {
	left := m.title
	switch {
	case m.Message != "":
		left = RenderMessage(m.Message, m.MessageErr)
	default:
		if h, ok := m.highlightAt(row, col); ok {
			left = fmt.Sprintf("%s → %s", h.Token, h.Label)
		} else if a, ok := m.annotations[row]; ok && a.Title != "" {
			left = a.Title
		}
	}

	right := styles.StatusText.Render(fmt.Sprintf("Ln %d, Col %d", row+1, col+1))
	width := m.Width
	if width <= 0 {
		width = 80
	}
	return RenderStatusBar(left, right, width)
}

func (m *NotebookModel) highlightAt(row, col int) (domain.Highlight, bool) {
	for _, h := range m.highlights[row] {
		if h.Contains(row, col) {
			return h, true
		}
	}
	return domain.Highlight{}, false
}
