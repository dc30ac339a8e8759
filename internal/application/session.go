package application

import (
	"context"
	"io"
	"log/slog"
	"time"

	"calcnote/internal/domain"
	"calcnote/internal/ports"
)

// FollowHighlightDuration is how long a followed reference target stays emphasized
const FollowHighlightDuration = 1500 * time.Millisecond

// Session connects one open notebook to its editor and store. Edits are
// debounced into update cycles; each cycle re-renders the editor and saves.
type Session struct {
	engine    *Engine
	editor    ports.Editor
	store     ports.Store
	debouncer *Debouncer
	dispatch  func(func())
	logger    *slog.Logger
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithDebouncer coalesces edit notifications. Without one, every edit
// recalculates immediately.
func WithDebouncer(d *Debouncer) SessionOption {
	return func(s *Session) {
		s.debouncer = d
	}
}

// WithDispatcher sets how a debounced cycle is handed back to the host event
// loop. The default runs it on the timer's goroutine.
func WithDispatcher(dispatch func(func())) SessionOption {
	return func(s *Session) {
		s.dispatch = dispatch
	}
}

// WithSessionLogger sets the session's logger
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger.With(slog.String("component", "session"))
	}
}

// NewSession creates a session. store may be nil for a notebook that is never saved.
func NewSession(engine *Engine, editor ports.Editor, store ports.Store, opts ...SessionOption) *Session {
	s := &Session{
		engine:   engine,
		editor:   editor,
		store:    store,
		dispatch: func(fn func()) { fn() },
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine returns the session's engine
func (s *Session) Engine() *Engine {
	return s.engine
}

// Open restores the stored notebook into the editor and runs the first cycle.
// A missing or unreadable snapshot opens an empty notebook instead of failing.
func (s *Session) Open(ctx context.Context) *CycleReport {
	snapshot := LoadSnapshot(ctx, s.store, s.logger)

	s.engine.Restore(snapshot)
	s.editor.SetText(snapshot.Content)
	s.editor.OnTextChanged(func(string) {
		s.schedule(ctx)
	})

	return s.Recalculate(ctx)
}

// Recalculate runs one cycle on the editor's current text, renders it and saves
func (s *Session) Recalculate(ctx context.Context) *CycleReport {
	report := s.engine.Update(s.editor.Text())
	s.render()
	s.save(ctx)
	return report
}

// InsertReference puts the reference name of a line at the editor's cursor
func (s *Session) InsertReference(line int) (string, error) {
	if err := ValidateLine("line", line, s.engine.LineCount()); err != nil {
		return "", err
	}
	id, ok := s.engine.LineID(line)
	if !ok {
		return "", &LineError{Line: line, Reason: "blank and comment lines cannot be referenced", Err: domain.ErrNoReference}
	}
	ref := id.Reference()
	s.editor.ReplaceSelection(ref)
	return ref, nil
}

// FollowReference scrolls to and briefly highlights the line referenced by
// the token under the cursor. It returns the target line.
func (s *Session) FollowReference(line, column int) (int, error) {
	h, ok := s.engine.HighlightAt(line, column)
	if !ok {
		return -1, domain.ErrNotFound
	}
	s.editor.ScrollToLine(h.TargetLine)
	s.editor.HighlightLine(h.TargetLine, FollowHighlightDuration)
	return h.TargetLine, nil
}

// Close drops a pending debounced cycle and, if the text moved on since the
// last cycle, runs one final cycle so the store holds the latest state.
func (s *Session) Close(ctx context.Context) {
	pending := false
	if s.debouncer != nil {
		pending = s.debouncer.Cancel()
	}
	if pending || s.editor.Text() != s.engine.Text() {
		s.Recalculate(ctx)
	}
}

func (s *Session) schedule(ctx context.Context) {
	run := func() {
		s.Recalculate(ctx)
	}
	if s.debouncer == nil {
		run()
		return
	}
	s.debouncer.Trigger(func() {
		s.dispatch(run)
	})
}

func (s *Session) render() {
	s.editor.ClearAnnotations()
	for _, a := range s.engine.Annotations() {
		s.editor.PlaceAnnotation(a)
	}
	for _, h := range s.engine.Highlights() {
		s.editor.PlaceHighlight(h)
	}
}

func (s *Session) save(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, s.engine.Snapshot()); err != nil {
		s.logger.Error("failed to save notebook", slog.String("error", err.Error()))
	}
}

// LoadSnapshot reads the stored notebook, falling back to an empty one when
// the store is nil, empty or unreadable.
func LoadSnapshot(ctx context.Context, store ports.Store, logger *slog.Logger) *domain.Snapshot {
	if store == nil {
		return domain.EmptySnapshot()
	}
	snapshot, err := store.Load(ctx)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to load notebook, starting empty", slog.String("error", err.Error()))
		}
		return domain.EmptySnapshot()
	}
	if snapshot == nil {
		return domain.EmptySnapshot()
	}
	return snapshot
}
