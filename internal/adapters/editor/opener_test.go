package editor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcnote/internal/application"
)

// writeScript creates an executable shell script acting as the editor
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	path := filepath.Join(t.TempDir(), "fake-editor")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func TestOpener_Edit(t *testing.T) {
	script := writeScript(t, `printf '\nb = a + 1' >> "$1"`)
	o := &Opener{Editor: script}

	got, err := o.Edit(context.Background(), "a = 1")
	require.NoError(t, err)
	assert.Equal(t, "a = 1\nb = a + 1", got)
}

func TestOpener_EditorFails(t *testing.T) {
	script := writeScript(t, `exit 1`)
	o := &Opener{Editor: script}

	_, err := o.Edit(context.Background(), "a = 1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, application.ErrEditorAborted))
}

func TestOpener_FindEditor(t *testing.T) {
	t.Setenv("EDITOR", "my-editor")
	t.Setenv("VISUAL", "other")
	assert.Equal(t, "my-editor", (&Opener{}).findEditor())
	assert.Equal(t, "explicit", (&Opener{Editor: "explicit"}).findEditor())

	t.Setenv("EDITOR", "")
	assert.Equal(t, "other", (&Opener{}).findEditor())
}

func TestWriteTempReadBack(t *testing.T) {
	path, err := WriteTemp("a = 1\nb = a * 2")
	require.NoError(t, err)
	assert.Equal(t, ".calc", filepath.Ext(path))

	text, err := ReadBack(path)
	require.NoError(t, err)
	assert.Equal(t, "a = 1\nb = a * 2", text)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestReadBack_Missing(t *testing.T) {
	_, err := ReadBack(filepath.Join(t.TempDir(), "gone.calc"))
	assert.Error(t, err)
}
