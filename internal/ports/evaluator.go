package ports

import "calcnote/internal/domain"

// Evaluator computes the value of a single expression
type Evaluator interface {
	// Evaluate parses expression and evaluates it against scope. It fails with a
	// *domain.EvaluationError for malformed input, unknown symbols or type errors,
	// and must return the same result for the same expression and scope.
	Evaluate(expression string, scope map[string]domain.Value) (domain.Value, error)
}
