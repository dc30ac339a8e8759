package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcnote/internal/adapters/clock"
	"calcnote/internal/adapters/evaluator"
	"calcnote/internal/adapters/memory"
	"calcnote/internal/domain"
	"calcnote/internal/ports"
)

func newTestSession(t *testing.T, store ports.Store, opts ...SessionOption) (*Session, *memory.Buffer) {
	t.Helper()
	buf := memory.NewBuffer("")
	s := NewSession(NewEngine(evaluator.New()), buf, store, opts...)
	return s, buf
}

func TestSession_OpenEmptyStore(t *testing.T) {
	store := memory.NewStore()
	s, buf := newTestSession(t, store)

	report := s.Open(context.Background())

	assert.Equal(t, "", buf.Text())
	assert.Equal(t, 1, report.Lines)
	assert.Equal(t, 1, store.Saves())
}

func TestSession_EditRecalculatesAndSaves(t *testing.T) {
	store := memory.NewStore()
	s, buf := newTestSession(t, store)
	s.Open(context.Background())

	buf.Edit("a = 2\nb = a * 3")

	a, ok := buf.Annotation(1)
	require.True(t, ok)
	assert.Equal(t, "6", a.Text)
	assert.Equal(t, "_calc1", a.Reference)
	assert.Equal(t, "Reference this as: _calc1", a.Title)

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a = 2\nb = a * 3", saved.Content)
	assert.Equal(t, domain.LineID("calc1"), saved.IDMapping[1])
	assert.Equal(t, "b = a * 3 = 6", saved.ReferenceLabels["calc1"])
}

func TestSession_ReopenKeepsIDs(t *testing.T) {
	store := memory.NewStore()
	s, buf := newTestSession(t, store)
	s.Open(context.Background())
	buf.Edit("x = 1\ny = 2\n_calc1 + x")

	again, buf2 := newTestSession(t, store)
	again.Open(context.Background())

	assert.Equal(t, "x = 1\ny = 2\n_calc1 + x", buf2.Text())
	a, ok := buf2.Annotation(2)
	require.True(t, ok)
	assert.Equal(t, "3", a.Text)

	hs := buf2.Highlights()
	require.Len(t, hs, 1)
	assert.Equal(t, 1, hs[0].TargetLine)
	assert.Equal(t, "y = 2 = 2", hs[0].Label)
}

func TestSession_CorruptStoreOpensEmpty(t *testing.T) {
	store := memory.NewStore()
	store.SetRaw([]byte("{broken"))
	s, buf := newTestSession(t, store)

	s.Open(context.Background())
	assert.Equal(t, "", buf.Text())
}

func TestSession_LoadErrorOpensEmpty(t *testing.T) {
	store := memory.NewStore()
	store.LoadErr = errors.New("disk gone")
	s, buf := newTestSession(t, store)

	s.Open(context.Background())
	assert.Equal(t, "", buf.Text())
}

func TestSession_SaveErrorIsNotFatal(t *testing.T) {
	store := memory.NewStore()
	store.SaveErr = errors.New("read-only")
	s, buf := newTestSession(t, store)
	s.Open(context.Background())

	buf.Edit("1 + 1")
	a, ok := buf.Annotation(0)
	require.True(t, ok)
	assert.Equal(t, "2", a.Text)
}

func TestSession_NilStore(t *testing.T) {
	s, buf := newTestSession(t, nil)
	report := s.Open(context.Background())
	assert.Equal(t, 1, report.Lines)

	buf.Edit("2 * 21")

	a, ok := buf.Annotation(0)
	require.True(t, ok)
	assert.Equal(t, "42", a.Text)
	assert.NotPanics(t, func() { s.Close(context.Background()) })
}

func TestLoadSnapshot_NilStore(t *testing.T) {
	snapshot := LoadSnapshot(context.Background(), nil, nil)
	assert.Equal(t, domain.EmptySnapshot(), snapshot)
}

func TestSession_DebouncedEdits(t *testing.T) {
	c := clock.NewManual()
	store := memory.NewStore()
	s, buf := newTestSession(t, store, WithDebouncer(NewDebouncer(c, DefaultDebounceDelay)))
	s.Open(context.Background())
	saves := store.Saves()

	buf.Edit("1")
	buf.Edit("12")
	buf.Edit("12 + 1")
	assert.Equal(t, saves, store.Saves(), "nothing runs before the quiet period")

	c.Advance(DefaultDebounceDelay)
	assert.Equal(t, saves+1, store.Saves())

	a, ok := buf.Annotation(0)
	require.True(t, ok)
	assert.Equal(t, "13", a.Text)
}

func TestSession_Dispatcher(t *testing.T) {
	c := clock.NewManual()
	var queued []func()
	s, buf := newTestSession(t, nil,
		WithDebouncer(NewDebouncer(c, DefaultDebounceDelay)),
		WithDispatcher(func(fn func()) { queued = append(queued, fn) }),
	)
	s.Open(context.Background())

	buf.Edit("5 * 5")
	c.Advance(DefaultDebounceDelay)
	require.Len(t, queued, 1)
	_, ok := buf.Annotation(0)
	assert.False(t, ok, "cycle waits for the host loop")

	queued[0]()
	a, ok := buf.Annotation(0)
	require.True(t, ok)
	assert.Equal(t, "25", a.Text)
}

func TestSession_CloseFlushesPendingCycle(t *testing.T) {
	c := clock.NewManual()
	store := memory.NewStore()
	s, buf := newTestSession(t, store, WithDebouncer(NewDebouncer(c, DefaultDebounceDelay)))
	s.Open(context.Background())

	buf.Edit("a = 9")
	s.Close(context.Background())

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a = 9", saved.Content)

	saves := store.Saves()
	c.Advance(time.Second)
	assert.Equal(t, saves, store.Saves(), "cancelled run does not fire")
}

func TestSession_InsertReference(t *testing.T) {
	s, buf := newTestSession(t, nil)
	s.Open(context.Background())
	buf.Edit("price = 40\n")

	buf.SetCursor(1, 0)
	ref, err := s.InsertReference(0)
	require.NoError(t, err)
	assert.Equal(t, "_calc0", ref)
	assert.Equal(t, "price = 40\n_calc0", buf.Text())

	a, ok := buf.Annotation(1)
	require.True(t, ok)
	assert.Equal(t, "40", a.Text)
}

func TestSession_InsertReferenceWithoutID(t *testing.T) {
	s, buf := newTestSession(t, nil)
	s.Open(context.Background())
	buf.Edit("// note\n1")

	_, err := s.InsertReference(0)
	assert.ErrorIs(t, err, ErrNoReference)
	var lineErr *LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 0, lineErr.Line)
	assert.Equal(t, "line 1: blank and comment lines cannot be referenced", err.Error())

	_, err = s.InsertReference(5)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestSession_FollowReference(t *testing.T) {
	s, buf := newTestSession(t, nil)
	s.Open(context.Background())
	buf.Edit("3+4\n\n_calc0*2")

	target, err := s.FollowReference(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, target)
	assert.Equal(t, []int{0}, buf.Scrolled())
	assert.Equal(t, []memory.LineHighlight{{Line: 0, Duration: FollowHighlightDuration}}, buf.Emphasized())

	_, err = s.FollowReference(0, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
