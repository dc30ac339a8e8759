package commands

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"calcnote/internal/application"
	"calcnote/internal/ports"
)

// ReferenceMatch wraps a reference with its relevance score
type ReferenceMatch struct {
	application.ReferenceView
	Score int
}

// ListReferencesCommand lists every line of the stored notebook that can be
// referenced, optionally filtered by a fuzzy query
type ListReferencesCommand struct {
	store     ports.Store
	evaluator ports.Evaluator
	logger    *slog.Logger
	Query     string
}

// NewListReferencesCommand creates a new ListReferencesCommand
func NewListReferencesCommand(store ports.Store, evaluator ports.Evaluator, query string) *ListReferencesCommand {
	return &ListReferencesCommand{
		store:     store,
		evaluator: evaluator,
		Query:     query,
	}
}

// WithLogger sets the logger used while loading the notebook
func (c *ListReferencesCommand) WithLogger(logger *slog.Logger) *ListReferencesCommand {
	c.logger = logger
	return c
}

// Execute returns the references in document order, or by relevance when a query is set
func (c *ListReferencesCommand) Execute(ctx context.Context) ([]ReferenceMatch, error) {
	engine, _ := loadEngine(ctx, c.store, c.evaluator, c.logger)
	return FuzzySort(engine.References(), c.Query), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '=' || target[i-1] == '_') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort keeps the references matching query, best first. An empty query
// keeps everything in document order.
func FuzzySort(refs []application.ReferenceView, query string) []ReferenceMatch {
	scored := make([]ReferenceMatch, 0, len(refs))

	for _, r := range refs {
		if query == "" {
			scored = append(scored, ReferenceMatch{ReferenceView: r})
			continue
		}

		best := max(FuzzyScore(r.Label, query), FuzzyScore(r.Reference, query))
		if best > 0 {
			scored = append(scored, ReferenceMatch{
				ReferenceView: r,
				Score:         best,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
