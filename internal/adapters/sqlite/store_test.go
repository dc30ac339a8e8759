package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcnote/internal/domain"
)

func openTestStore(t *testing.T, dbPath, notebook string) *Store {
	t.Helper()
	store, err := Open(dbPath, notebook, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return store
}

func testSnapshot(content string) *domain.Snapshot {
	s := domain.EmptySnapshot()
	s.Content = content
	s.IDMapping[0] = "calc0"
	s.IDCounter = 1
	s.ContentToID[content] = "calc0"
	s.LineHistory[0] = "calc0"
	s.ReferenceLabels["calc0"] = content + " = 7"
	return s
}

func TestStore_LoadUnsaved(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "notes.db"), "")

	s, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", s.Content)
}

func TestStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "notes.db")
	store := openTestStore(t, dbPath, "work")

	require.NoError(t, store.Save(ctx, testSnapshot("3+4")))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSnapshot("3+4"), loaded)

	labels, err := store.Labels(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.LineID]string{"calc0": "3+4 = 7"}, labels)
}

func TestStore_SaveReplacesLabels(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, filepath.Join(t.TempDir(), "notes.db"), "")

	require.NoError(t, store.Save(ctx, testSnapshot("3+4")))

	next := testSnapshot("3+4")
	next.ReferenceLabels = map[domain.LineID]string{"calc5": "x = 1"}
	require.NoError(t, store.Save(ctx, next))

	labels, err := store.Labels(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.LineID]string{"calc5": "x = 1"}, labels)
}

func TestStore_NotebooksAreSeparate(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "notes.db")
	a := openTestStore(t, dbPath, "a")
	b := openTestStore(t, dbPath, "b")

	require.NoError(t, a.Save(ctx, testSnapshot("1+1")))
	require.NoError(t, b.Save(ctx, testSnapshot("2+2")))

	got, err := a.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1+1", got.Content)

	names, err := a.Notebooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestStore_Reopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "notes.db")

	first, err := Open(dbPath, "", nil)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, testSnapshot("5*5")))
	require.NoError(t, first.Close())

	second := openTestStore(t, dbPath, "")
	got, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "5*5", got.Content)
}

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint([]byte("one"))
	require.NoError(t, err)
	b, err := Fingerprint([]byte("one"))
	require.NoError(t, err)
	c, err := Fingerprint([]byte("two"))
	require.NoError(t, err)

	assert.Len(t, a, 16)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
