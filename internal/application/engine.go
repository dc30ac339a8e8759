package application

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"calcnote/internal/domain"
	"calcnote/internal/ports"
)

// CycleReport describes one update cycle
type CycleReport struct {
	Lines       int   // Lines in the document
	Evaluated   int   // Lines evaluated in the full pass
	Changed     []int // Positions whose result differs from the previous cycle
	Reevaluated []int // Positions re-evaluated by the propagation pass, in visit order
	Errors      int   // Lines holding the error marker after the cycle
	Duration    time.Duration
}

// Engine is the recalculation engine for one open document. It owns the
// identity registry, the reference labels and the last results; the graph
// and variable table are rebuilt from the text on every cycle.
//
// Engine is not safe for concurrent use: callers run one cycle at a time.
type Engine struct {
	evaluator ports.Evaluator
	logger    *slog.Logger

	registry *domain.Registry
	text     string
	lines    []domain.ParsedLine
	mapping  domain.IdentityMapping
	vars     map[string]int
	graph    *domain.Graph
	results  map[int]domain.Result
	prior    map[domain.LineID]domain.Result
	labels   map[domain.LineID]string
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithLogger sets the engine's logger
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger.With(slog.String("component", "engine"))
	}
}

// NewEngine creates an engine for an empty document
func NewEngine(evaluator ports.Evaluator, opts ...EngineOption) *Engine {
	e := &Engine{
		evaluator: evaluator,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		registry:  domain.NewRegistry(),
		mapping:   domain.IdentityMapping{},
		vars:      map[string]int{},
		graph:     domain.BuildGraph(nil, nil, nil),
		results:   map[int]domain.Result{},
		prior:     map[domain.LineID]domain.Result{},
		labels:    map[domain.LineID]string{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Restore loads persisted identity and label state. The next Update diffs
// against the restored text, so unchanged lines keep their IDs.
func (e *Engine) Restore(s *domain.Snapshot) {
	s.Normalize()
	e.registry.Restore(s.IDMapping, s.IDCounter, s.ContentToID, s.LineHistory)
	e.text = s.Content
	e.lines = domain.ParseLines(s.Content)
	e.mapping = domain.IdentityMapping(s.IDMapping).Clone()
	e.vars = domain.VariableTable(e.lines)
	e.graph = domain.BuildGraph(e.lines, e.vars, e.mapping)
	e.results = map[int]domain.Result{}
	e.prior = map[domain.LineID]domain.Result{}
	e.labels = make(map[domain.LineID]string, len(s.ReferenceLabels))
	for id, label := range s.ReferenceLabels {
		e.labels[id] = label
	}
}

// Snapshot captures the state that must survive a reload
func (e *Engine) Snapshot() *domain.Snapshot {
	s := &domain.Snapshot{
		Content:         e.text,
		IDMapping:       e.registry.Mapping(),
		IDCounter:       e.registry.Counter(),
		ContentToID:     e.registry.ContentIndex(),
		LineHistory:     e.registry.History(),
		ReferenceLabels: make(map[domain.LineID]string, len(e.labels)),
	}
	for id, label := range e.labels {
		s.ReferenceLabels[id] = label
	}
	return s
}

// Update runs one full cycle for the new text: change detection, identity
// assignment, graph rebuild, full evaluation pass and propagation pass.
func (e *Engine) Update(text string) *CycleReport {
	start := time.Now()

	lines := domain.ParseLines(text)
	changes := domain.DetectChanges(e.text, text)
	mapping := e.registry.Assign(lines, changes)
	vars := domain.VariableTable(lines)
	graph := domain.BuildGraph(lines, vars, mapping)

	// Previous results follow their line's identity, not its position
	previous := map[int]domain.Result{}
	for pos, id := range mapping {
		if r, ok := e.prior[id]; ok {
			previous[pos] = r
		}
	}

	c := &cycle{
		engine:  e,
		lines:   lines,
		mapping: mapping,
		vars:    vars,
		results: make(map[int]domain.Result, len(lines)),
		labels:  map[domain.LineID]string{},
	}
	for pos, r := range previous {
		c.results[pos] = r
	}

	report := &CycleReport{Lines: len(lines)}

	// Full pass
	for pos, line := range lines {
		if !line.Evaluable() {
			c.results[pos] = domain.EmptyResult()
			continue
		}
		c.evaluate(pos)
		report.Evaluated++
	}

	// Propagation pass
	for pos, line := range lines {
		if !line.Evaluable() {
			continue
		}
		prev, ok := previous[pos]
		if !ok || !prev.Equal(c.results[pos]) {
			report.Changed = append(report.Changed, pos)
		}
	}
	report.Reevaluated = c.propagate(graph, report.Changed)

	for _, r := range c.results {
		if r.IsError() {
			report.Errors++
		}
	}

	e.text = text
	e.lines = lines
	e.mapping = mapping
	e.vars = vars
	e.graph = graph
	e.results = c.results
	e.labels = c.labels
	e.prior = make(map[domain.LineID]domain.Result, len(mapping))
	for pos, id := range mapping {
		e.prior[id] = c.results[pos]
	}

	report.Duration = time.Since(start)
	e.logger.Debug("cycle complete",
		slog.Int("lines", report.Lines),
		slog.Int("evaluated", report.Evaluated),
		slog.Int("changed", len(report.Changed)),
		slog.Int("reevaluated", len(report.Reevaluated)),
		slog.Int("errors", report.Errors),
		slog.Int("edges", graph.Edges()),
		slog.Duration("duration", report.Duration),
	)

	return report
}

// cycle is the working state of a single Update call
type cycle struct {
	engine  *Engine
	lines   []domain.ParsedLine
	mapping domain.IdentityMapping
	vars    map[string]int
	results map[int]domain.Result
	labels  map[domain.LineID]string
}

// propagate re-evaluates everything transitively dependent on the changed
// lines, breadth first. Each line is re-evaluated at most once, which also
// bounds the walk when references form a cycle.
func (c *cycle) propagate(graph *domain.Graph, changed []int) []int {
	visited := map[int]bool{}
	var order []int

	queue := append([]int(nil), changed...)
	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]

		for _, dep := range graph.Dependents(pos) {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			c.evaluate(dep)
			order = append(order, dep)
			queue = append(queue, dep)
		}
	}

	return order
}

// evaluate computes one line against a fresh scope and records the result
// and label. Failures stay local to the line.
func (c *cycle) evaluate(pos int) {
	line := c.lines[pos]
	id, hasID := c.mapping[pos]

	value, err := c.run(line.EvalExpression(), c.scope(pos))
	if err != nil {
		c.results[pos] = domain.ErrorResult(err)
		if hasID {
			delete(c.labels, id)
		}
		c.engine.logger.Debug("line failed",
			slog.Int("line", pos),
			slog.String("error", err.Error()),
		)
		return
	}

	c.results[pos] = domain.ValueResult(value)
	if hasID {
		c.labels[id] = domain.ReferenceLabel(line.Text, value.String())
	}
}

// run calls the evaluator, turning a panic into an EvaluationError so that
// a misbehaving evaluator can never abort the cycle.
func (c *cycle) run(expression string, scope map[string]domain.Value) (v domain.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domain.EvaluationError{Expression: expression, Err: fmt.Errorf("evaluator panic: %v", r)}
		}
	}()
	return c.engine.evaluator.Evaluate(expression, scope)
}

// scope exposes every successfully computed variable and identifier
// reference, except the line's own, so a self reference stays unresolved.
func (c *cycle) scope(self int) map[string]domain.Value {
	scope := make(map[string]domain.Value, len(c.vars)+len(c.mapping))
	for name, pos := range c.vars {
		if pos == self {
			continue
		}
		if r, ok := c.results[pos]; ok && r.OK() {
			scope[name] = r.Value
		}
	}
	for pos, id := range c.mapping {
		if pos == self {
			continue
		}
		if r, ok := c.results[pos]; ok && r.OK() {
			scope[id.Reference()] = r.Value
		}
	}
	return scope
}

// Text returns the document text of the last cycle
func (e *Engine) Text() string {
	return e.text
}

// LineCount returns the number of lines in the last cycle's document
func (e *Engine) LineCount() int {
	return len(e.lines)
}

// Line returns the parsed line at a position
func (e *Engine) Line(pos int) (domain.ParsedLine, bool) {
	if pos < 0 || pos >= len(e.lines) {
		return domain.ParsedLine{}, false
	}
	return e.lines[pos], true
}

// Result returns the result stored for a position
func (e *Engine) Result(pos int) (domain.Result, bool) {
	r, ok := e.results[pos]
	return r, ok
}

// Results returns a copy of all results keyed by position
func (e *Engine) Results() map[int]domain.Result {
	out := make(map[int]domain.Result, len(e.results))
	for pos, r := range e.results {
		out[pos] = r
	}
	return out
}

// LineID returns the identifier held by a position
func (e *Engine) LineID(pos int) (domain.LineID, bool) {
	id, ok := e.mapping[pos]
	return id, ok
}

// Position returns the position currently holding id
func (e *Engine) Position(id domain.LineID) (int, bool) {
	return e.mapping.Lookup(id)
}

// IdentityMapping returns a copy of the position → ID mapping
func (e *Engine) IdentityMapping() domain.IdentityMapping {
	return e.mapping.Clone()
}

// Reference returns the reference name for a position, or "" if it has no ID
func (e *Engine) Reference(pos int) string {
	if id, ok := e.mapping[pos]; ok {
		return id.Reference()
	}
	return ""
}

// Label returns the reference label for an identifier
func (e *Engine) Label(id domain.LineID) (string, bool) {
	label, ok := e.labels[id]
	return label, ok
}

// Graph returns the dependency graph of the last cycle
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// Variables returns a copy of the variable table of the last cycle
func (e *Engine) Variables() map[string]int {
	out := make(map[string]int, len(e.vars))
	for name, pos := range e.vars {
		out[name] = pos
	}
	return out
}

// Positions returns every position holding an ID, ascending
func (e *Engine) Positions() []int {
	positions := make([]int, 0, len(e.mapping))
	for pos := range e.mapping {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return positions
}
