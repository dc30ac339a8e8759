package commands

import (
	"context"
	"log/slog"

	"calcnote/internal/ports"
)

// ShowNotebookCommand recalculates the stored notebook without changing it
type ShowNotebookCommand struct {
	store     ports.Store
	evaluator ports.Evaluator
	logger    *slog.Logger
}

// NewShowNotebookCommand creates a new ShowNotebookCommand
func NewShowNotebookCommand(store ports.Store, evaluator ports.Evaluator) *ShowNotebookCommand {
	return &ShowNotebookCommand{
		store:     store,
		evaluator: evaluator,
	}
}

// WithLogger sets the logger used while loading the notebook
func (c *ShowNotebookCommand) WithLogger(logger *slog.Logger) *ShowNotebookCommand {
	c.logger = logger
	return c
}

// Execute loads and evaluates the notebook
func (c *ShowNotebookCommand) Execute(ctx context.Context) (*NotebookResult, error) {
	engine, report := loadEngine(ctx, c.store, c.evaluator, c.logger)
	return newNotebookResult(engine, report, ""), nil
}
