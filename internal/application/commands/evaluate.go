package commands

import (
	"context"

	"calcnote/internal/application"
	"calcnote/internal/domain"
	"calcnote/internal/ports"
)

// EvaluateResult contains the outcome of evaluating a text
type EvaluateResult struct {
	Lines       []application.LineView
	Annotations []domain.Annotation
	Report      *application.CycleReport
}

// EvaluateCommand evaluates a notebook text without touching any store
type EvaluateCommand struct {
	evaluator ports.Evaluator
	Text      string
}

// NewEvaluateCommand creates a new EvaluateCommand
func NewEvaluateCommand(evaluator ports.Evaluator, text string) *EvaluateCommand {
	return &EvaluateCommand{
		evaluator: evaluator,
		Text:      text,
	}
}

// Validate checks if the evaluation is valid
func (c *EvaluateCommand) Validate() error {
	return application.ValidateRequired("text", c.Text)
}

// Execute runs one cycle over the text
func (c *EvaluateCommand) Execute(ctx context.Context) (*EvaluateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	engine := application.NewEngine(c.evaluator)
	report := engine.Update(c.Text)

	return &EvaluateResult{
		Lines:       engine.View(),
		Annotations: engine.Annotations(),
		Report:      report,
	}, nil
}
