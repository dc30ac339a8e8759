// Package evaluator implements ports.Evaluator on top of expr-lang/expr.
package evaluator

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"calcnote/internal/domain"
)

// builtins that expr ships and this evaluator replaces with float versions
var overridden = []string{"abs", "ceil", "floor", "round", "max", "min"}

type mathFunc struct {
	name  string
	arity [2]int // min, max argument count
	fn    func(args []float64) float64
}

var functions = []mathFunc{
	{"sin", [2]int{1, 1}, func(a []float64) float64 { return math.Sin(a[0]) }},
	{"cos", [2]int{1, 1}, func(a []float64) float64 { return math.Cos(a[0]) }},
	{"tan", [2]int{1, 1}, func(a []float64) float64 { return math.Tan(a[0]) }},
	{"exp", [2]int{1, 1}, func(a []float64) float64 { return math.Exp(a[0]) }},
	{"sqrt", [2]int{1, 1}, func(a []float64) float64 { return math.Sqrt(a[0]) }},
	{"abs", [2]int{1, 1}, func(a []float64) float64 { return math.Abs(a[0]) }},
	{"ceil", [2]int{1, 1}, func(a []float64) float64 { return math.Ceil(a[0]) }},
	{"floor", [2]int{1, 1}, func(a []float64) float64 { return math.Floor(a[0]) }},
	{"round", [2]int{1, 1}, func(a []float64) float64 { return math.Floor(a[0] + 0.5) }},
	{"log", [2]int{1, 2}, func(a []float64) float64 {
		if len(a) == 2 {
			return math.Log(a[0]) / math.Log(a[1])
		}
		return math.Log(a[0])
	}},
	{"max", [2]int{1, -1}, func(a []float64) float64 {
		m := a[0]
		for _, v := range a[1:] {
			m = math.Max(m, v)
		}
		return m
	}},
	{"min", [2]int{1, -1}, func(a []float64) float64 {
		m := a[0]
		for _, v := range a[1:] {
			m = math.Min(m, v)
		}
		return m
	}},
}

// Expr evaluates arithmetic and comparison expressions with the math
// functions and constants the notebook reserves. It is safe for concurrent use.
type Expr struct {
	options []expr.Option

	mu    sync.Mutex
	cache map[string]*vm.Program
}

// New creates an Expr evaluator
func New() *Expr {
	options := make([]expr.Option, 0, len(overridden)+len(functions))
	for _, name := range overridden {
		options = append(options, expr.DisableBuiltin(name))
	}
	for _, f := range functions {
		options = append(options, expr.Function(f.name, f.call))
	}
	return &Expr{
		options: options,
		cache:   map[string]*vm.Program{},
	}
}

// Evaluate implements ports.Evaluator
func (e *Expr) Evaluate(expression string, scope map[string]domain.Value) (domain.Value, error) {
	env := environment(scope)

	program, err := e.compile(expression, env, scope)
	if err != nil {
		return domain.Value{}, &domain.EvaluationError{Expression: expression, Err: classify(err)}
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return domain.Value{}, &domain.EvaluationError{Expression: expression, Err: err}
	}

	v, err := toValue(out)
	if err != nil {
		return domain.Value{}, &domain.EvaluationError{Expression: expression, Err: err}
	}
	return v, nil
}

// compile reuses programs for the same expression over the same set of typed names
func (e *Expr) compile(expression string, env map[string]any, scope map[string]domain.Value) (*vm.Program, error) {
	key := cacheKey(expression, scope)

	e.mu.Lock()
	program, ok := e.cache[key]
	e.mu.Unlock()
	if ok {
		return program, nil
	}

	options := append([]expr.Option{expr.Env(env)}, e.options...)
	program, err := expr.Compile(expression, options...)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cache[key] = program
	e.mu.Unlock()
	return program, nil
}

func cacheKey(expression string, scope map[string]domain.Value) string {
	names := make([]string, 0, len(scope))
	for name, v := range scope {
		names = append(names, name+":"+v.Kind.String())
	}
	sort.Strings(names)
	return expression + "\x00" + strings.Join(names, ",")
}

func environment(scope map[string]domain.Value) map[string]any {
	env := make(map[string]any, len(scope)+2)
	env["pi"] = math.Pi
	env["e"] = math.E
	for name, v := range scope {
		env[name] = v.Interface()
	}
	return env
}

func (f mathFunc) call(params ...any) (any, error) {
	if len(params) < f.arity[0] || (f.arity[1] >= 0 && len(params) > f.arity[1]) {
		return nil, fmt.Errorf("%s: wrong number of arguments (%d)", f.name, len(params))
	}
	args := make([]float64, len(params))
	for i, p := range params {
		n, ok := toFloat(p)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d is not a number", f.name, i+1)
		}
		args[i] = n
	}
	return f.fn(args), nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func toValue(out any) (domain.Value, error) {
	if b, ok := out.(bool); ok {
		return domain.Bool(b), nil
	}
	if n, ok := toFloat(out); ok {
		return domain.Number(n), nil
	}
	return domain.Value{}, fmt.Errorf("unsupported result type %T", out)
}

// classify marks compile errors caused by names missing from the scope
func classify(err error) error {
	if strings.Contains(err.Error(), "unknown name") {
		return fmt.Errorf("%w: %v", domain.ErrUnknownSymbol, err)
	}
	return err
}

// IsUnknownSymbol reports whether err came from a name the scope did not provide
func IsUnknownSymbol(err error) bool {
	return errors.Is(err, domain.ErrUnknownSymbol)
}
