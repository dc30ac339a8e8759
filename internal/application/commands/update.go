package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"calcnote/internal/application"
	"calcnote/internal/ports"
)

// UpdateMode selects how new text is combined with the stored notebook
type UpdateMode int

const (
	UpdateModeReplace UpdateMode = iota
	UpdateModeAppend
)

func (m UpdateMode) String() string {
	switch m {
	case UpdateModeAppend:
		return "append"
	default:
		return "replace"
	}
}

// ParseUpdateMode maps "replace" or "append" to an UpdateMode
func ParseUpdateMode(s string) (UpdateMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "replace", "set":
		return UpdateModeReplace, nil
	case "append":
		return UpdateModeAppend, nil
	default:
		return 0, &application.ValidationError{
			Field:   "mode",
			Message: fmt.Sprintf("%v: %q (expected replace or append)", application.ErrInvalidMode, s),
		}
	}
}

// UpdateNotebookCommand changes the stored notebook and recalculates it
type UpdateNotebookCommand struct {
	store     ports.Store
	evaluator ports.Evaluator
	logger    *slog.Logger
	Text      string
	Mode      UpdateMode
}

// NewUpdateNotebookCommand creates a new UpdateNotebookCommand
func NewUpdateNotebookCommand(store ports.Store, evaluator ports.Evaluator, text string, mode UpdateMode) *UpdateNotebookCommand {
	return &UpdateNotebookCommand{
		store:     store,
		evaluator: evaluator,
		Text:      text,
		Mode:      mode,
	}
}

// WithLogger sets the logger used while loading and recalculating
func (c *UpdateNotebookCommand) WithLogger(logger *slog.Logger) *UpdateNotebookCommand {
	c.logger = logger
	return c
}

// Validate checks if the update is valid. Replacing with an empty text
// clears the notebook; appending nothing is an error.
func (c *UpdateNotebookCommand) Validate() error {
	switch c.Mode {
	case UpdateModeReplace:
		return nil
	case UpdateModeAppend:
		return application.ValidateRequired("text", c.Text)
	default:
		return &application.ValidationError{
			Field:   "mode",
			Message: application.ErrInvalidMode.Error(),
		}
	}
}

// Execute loads the notebook, applies the text, recalculates and saves
func (c *UpdateNotebookCommand) Execute(ctx context.Context) (*NotebookResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	engine, _ := loadEngine(ctx, c.store, c.evaluator, c.logger)

	text := c.Text
	if c.Mode == UpdateModeAppend {
		text = appendText(engine.Text(), c.Text)
	}

	report := engine.Update(text)
	if err := c.store.Save(ctx, engine.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to save notebook: %w", err)
	}

	lines := strings.Count(c.Text, "\n") + 1
	message := fmt.Sprintf("Replaced notebook (%d lines)", report.Lines)
	if c.Mode == UpdateModeAppend {
		message = fmt.Sprintf("Appended %d line(s)", lines)
	}
	return newNotebookResult(engine, report, message), nil
}

// appendText adds text on new lines after existing, reusing a trailing
// empty line instead of leaving a gap
func appendText(existing, text string) string {
	switch {
	case existing == "":
		return text
	case strings.HasSuffix(existing, "\n"):
		return existing + text
	default:
		return existing + "\n" + text
	}
}
