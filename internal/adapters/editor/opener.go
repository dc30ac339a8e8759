// Package editor round-trips notebook text through the user's editor.
package editor

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"calcnote/internal/application"
	"calcnote/internal/ports"
)

// Opener implements ports.ExternalEditor
type Opener struct {
	// Editor overrides $EDITOR / $VISUAL lookup when set
	Editor string
}

// Ensure Opener implements ExternalEditor
var _ ports.ExternalEditor = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{}
}

// Edit writes text to a temporary file, opens it in the editor and returns
// the saved content
func (o *Opener) Edit(ctx context.Context, text string) (string, error) {
	path, err := WriteTemp(text)
	if err != nil {
		return "", err
	}
	defer os.Remove(path)

	cmd, err := o.Command(ctx, path)
	if err != nil {
		return "", err
	}
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %v", application.ErrEditorAborted, err)
	}

	return ReadBack(path)
}

// WriteTemp stores text in a new temporary notebook file and returns its path
func WriteTemp(text string) (string, error) {
	f, err := os.CreateTemp("", "calcnote-*.calc")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	return path, nil
}

// ReadBack returns the content of a file written by WriteTemp and removes it
func ReadBack(path string) (string, error) {
	defer os.Remove(path)

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(edited), nil
}

// Command returns an exec.Cmd for opening a file in the editor
// This is useful for integrating with bubbletea's ExecProcess
func (o *Opener) Command(ctx context.Context, path string) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	if o.Editor != "" {
		return o.Editor
	}

	// Check $EDITOR first
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}

	// Check $VISUAL
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	// Try common editors
	editors := []string{"nvim", "vim", "vi", "nano"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
