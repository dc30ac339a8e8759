package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"calcnote/internal/adapters/clock"
	"calcnote/internal/adapters/editor"
	"calcnote/internal/adapters/tui/views"
	"calcnote/internal/application"
	"calcnote/internal/application/commands"
	"calcnote/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewNotebook ViewState = iota
	ViewPicker
	ViewHelp
)

// App is the main TUI application model
type App struct {
	ctx     context.Context
	session *application.Session
	editor  *editor.Opener
	logger  *slog.Logger
	program *tea.Program

	state    ViewState
	notebook *views.NotebookModel
	picker   *views.PickerModel
	help     *views.HelpModel

	width  int
	height int
}

// Option configures an App
type Option func(*options)

type options struct {
	title  string
	clock  ports.Clock
	delay  time.Duration
	editor *editor.Opener
	logger *slog.Logger
}

// WithTitle names the notebook in the status bar
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// WithDebounce sets how long typing must pause before a recalculation
func WithDebounce(c ports.Clock, delay time.Duration) Option {
	return func(o *options) {
		o.clock = c
		o.delay = delay
	}
}

// WithEditor enables handing the notebook to an external editor
func WithEditor(ed *editor.Opener) Option {
	return func(o *options) {
		o.editor = ed
	}
}

// WithLogger sets the logger for the app and its session
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewApp creates a new TUI application editing the notebook held by store
func NewApp(engine *application.Engine, store ports.Store, opts ...Option) *App {
	o := options{
		title:  "calcnote",
		clock:  clock.System{},
		delay:  100 * time.Millisecond,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		ctx:      context.Background(),
		editor:   o.editor,
		logger:   o.logger.With(slog.String("component", "tui")),
		state:    ViewNotebook,
		notebook: views.NewNotebookModel(o.title),
		picker:   views.NewPickerModel(),
		help:     views.NewHelpModel(),
	}
	a.session = application.NewSession(engine, a.notebook, store,
		application.WithDebouncer(application.NewDebouncer(o.clock, o.delay)),
		application.WithDispatcher(a.dispatch),
		application.WithSessionLogger(o.logger),
	)
	return a
}

// Session returns the app's notebook session
func (a *App) Session() *application.Session {
	return a.session
}

// Notebook returns the editor view
func (a *App) Notebook() *views.NotebookModel {
	return a.notebook
}

// State returns the current view
func (a *App) State() ViewState {
	return a.state
}

// Open loads the notebook into the editor without starting the terminal UI
func (a *App) Open(ctx context.Context) {
	a.ctx = ctx
	report := a.session.Open(ctx)
	a.logger.Info("notebook opened",
		slog.Int("lines", report.Lines),
		slog.Int("errors", report.Errors),
	)
}

// Run opens the notebook, runs the terminal UI until the user quits and
// flushes the last edits to the store
func (a *App) Run(ctx context.Context) error {
	a.Open(ctx)
	a.program = tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := a.program.Run()
	a.session.Close(context.WithoutCancel(ctx))
	return err
}

// dispatch runs a debounced cycle on the bubbletea loop so the editor view
// is only touched from one goroutine
func (a *App) dispatch(fn func()) {
	if a.program == nil {
		fn()
		return
	}
	a.program.Send(views.RunMsg{Fn: fn})
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.notebook.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.notebook.SetSize(msg.Width, msg.Height)
		a.picker.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

	case views.RunMsg:
		msg.Fn()
		return a, a.notebook.TakePending()

	// View switching messages
	case views.SwitchToNotebookMsg:
		a.state = ViewNotebook
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToPickerMsg:
		a.flush()
		a.state = ViewPicker
		return a, a.picker.Load(a.session.Engine().References())

	// Notebook actions
	case views.ReferenceChosenMsg:
		a.state = ViewNotebook
		ref, err := a.session.InsertReference(msg.Line)
		if err != nil {
			a.notebook.SetMessage(err.Error(), true)
			return a, nil
		}
		a.notebook.SetMessage("Inserted "+ref, false)
		return a, nil

	case views.FollowReferenceMsg:
		a.flush()
		if _, err := a.session.FollowReference(msg.Line, msg.Column); err != nil {
			a.notebook.SetMessage("No reference under the cursor", true)
			return a, nil
		}
		return a, a.notebook.TakePending()

	case views.RecalculateMsg:
		report := a.session.Recalculate(a.ctx)
		a.notebook.SetMessage(fmt.Sprintf("Recalculated %d line(s), %d error(s)", report.Lines, report.Errors), report.Errors > 0)
		return a, nil

	case views.OpenEditorMsg:
		return a, a.openEditor()

	case editorFinishedMsg:
		a.finishEditor(msg)
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewNotebook:
		_, cmd = a.notebook.Update(msg)
	case ViewPicker:
		_, cmd = a.picker.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	if pending := a.notebook.TakePending(); pending != nil {
		return a, tea.Batch(cmd, pending)
	}
	return a, cmd
}

// flush runs a cycle now when the engine lags behind the editor, so
// reference lookups see the text on screen
func (a *App) flush() {
	if a.notebook.Text() != a.session.Engine().Text() {
		a.session.Recalculate(a.ctx)
	}
}

type editorFinishedMsg struct {
	path string
	err  error
}

func (a *App) openEditor() tea.Cmd {
	if a.editor == nil {
		a.notebook.SetMessage("No external editor configured", true)
		return nil
	}

	path, err := editor.WriteTemp(a.notebook.Text())
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	cmd, err := a.editor.Command(a.ctx, path)
	if err != nil {
		os.Remove(path)
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{path: path, err: err}
	})
}

func (a *App) finishEditor(msg editorFinishedMsg) {
	if msg.path == "" {
		a.notebook.SetMessage(msg.err.Error(), true)
		return
	}

	text, err := editor.ReadBack(msg.path)
	if msg.err != nil {
		a.logger.Warn("editor exited with error", slog.String("error", msg.err.Error()))
		a.notebook.SetMessage("Edit aborted, notebook unchanged", true)
		return
	}
	if err != nil {
		a.notebook.SetMessage(err.Error(), true)
		return
	}

	before := a.notebook.Text()
	text = commands.TrimEditorNewline(before, text)
	if text == before {
		a.notebook.SetMessage("No changes", false)
		return
	}

	a.notebook.Replace(text)
	a.session.Recalculate(a.ctx)
	a.notebook.SetMessage("Notebook updated from editor", false)
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewPicker:
		return a.picker.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.notebook.View()
	}
}
