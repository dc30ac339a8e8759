package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"calcnote/internal/application"
	"calcnote/internal/ports"
)

// EditNotebookCommand round-trips the stored notebook through an external
// editor and saves the result
type EditNotebookCommand struct {
	store     ports.Store
	evaluator ports.Evaluator
	editor    ports.ExternalEditor
	logger    *slog.Logger
}

// NewEditNotebookCommand creates a new EditNotebookCommand
func NewEditNotebookCommand(store ports.Store, evaluator ports.Evaluator, editor ports.ExternalEditor) *EditNotebookCommand {
	return &EditNotebookCommand{
		store:     store,
		evaluator: evaluator,
		editor:    editor,
	}
}

// WithLogger sets the logger used while loading the notebook
func (c *EditNotebookCommand) WithLogger(logger *slog.Logger) *EditNotebookCommand {
	c.logger = logger
	return c
}

// Execute opens the notebook text in the editor. An unchanged text is not saved again.
func (c *EditNotebookCommand) Execute(ctx context.Context) (*NotebookResult, error) {
	engine, report := loadEngine(ctx, c.store, c.evaluator, c.logger)

	before := engine.Text()
	after, err := c.editor.Edit(ctx, before)
	if err != nil {
		if errors.Is(err, application.ErrEditorAborted) {
			return newNotebookResult(engine, report, "Edit aborted, notebook unchanged"), nil
		}
		return nil, fmt.Errorf("failed to edit notebook: %w", err)
	}

	after = TrimEditorNewline(before, after)
	if after == before {
		return newNotebookResult(engine, report, "No changes"), nil
	}

	report = engine.Update(after)
	if err := c.store.Save(ctx, engine.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to save notebook: %w", err)
	}

	return newNotebookResult(engine, report, fmt.Sprintf("Saved notebook (%d lines)", report.Lines)), nil
}

// TrimEditorNewline drops the final newline most editors append on save,
// unless the text had one before editing
func TrimEditorNewline(before, after string) string {
	if strings.HasSuffix(before, "\n") {
		return after
	}
	return strings.TrimSuffix(after, "\n")
}
