package commands

import (
	"context"
	"log/slog"

	"calcnote/internal/application"
	"calcnote/internal/ports"
)

// NotebookResult is the state of a stored notebook after a command ran
type NotebookResult struct {
	Text       string
	Lines      []application.LineView
	References []application.ReferenceView
	Report     *application.CycleReport
	Message    string
}

// loadEngine restores the stored notebook into a fresh engine and runs one
// cycle on its content, so results are available without any edit
func loadEngine(ctx context.Context, store ports.Store, evaluator ports.Evaluator, logger *slog.Logger) (*application.Engine, *application.CycleReport) {
	var opts []application.EngineOption
	if logger != nil {
		opts = append(opts, application.WithLogger(logger))
	}
	engine := application.NewEngine(evaluator, opts...)

	snapshot := application.LoadSnapshot(ctx, store, logger)
	engine.Restore(snapshot)
	report := engine.Update(snapshot.Content)
	return engine, report
}

func newNotebookResult(engine *application.Engine, report *application.CycleReport, message string) *NotebookResult {
	return &NotebookResult{
		Text:       engine.Text(),
		Lines:      engine.View(),
		References: engine.References(),
		Report:     report,
		Message:    message,
	}
}
