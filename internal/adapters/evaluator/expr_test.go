package evaluator

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcnote/internal/domain"
)

func TestExpr_Evaluate(t *testing.T) {
	ev := New()

	tests := []struct {
		name       string
		expression string
		scope      map[string]domain.Value
		want       domain.Value
	}{
		{name: "integer arithmetic", expression: "2 + 3", want: domain.Number(5)},
		{name: "float division", expression: "7 / 2", want: domain.Number(3.5)},
		{name: "precedence", expression: "2 + 3 * 4", want: domain.Number(14)},
		{name: "parentheses", expression: "(2 + 3) * 4", want: domain.Number(20)},
		{name: "variable", expression: "a * 2", scope: map[string]domain.Value{"a": domain.Number(21)}, want: domain.Number(42)},
		{name: "identifier reference", expression: "_calc1 + 1", scope: map[string]domain.Value{"_calc1": domain.Number(9)}, want: domain.Number(10)},
		{name: "comparison", expression: "a > 3", scope: map[string]domain.Value{"a": domain.Number(5)}, want: domain.Bool(true)},
		{name: "sqrt", expression: "sqrt(16)", want: domain.Number(4)},
		{name: "abs", expression: "abs(-2.5)", want: domain.Number(2.5)},
		{name: "round half up", expression: "round(2.5)", want: domain.Number(3)},
		{name: "round negative half", expression: "round(-2.5)", want: domain.Number(-2)},
		{name: "floor", expression: "floor(2.7)", want: domain.Number(2)},
		{name: "ceil", expression: "ceil(2.1)", want: domain.Number(3)},
		{name: "max variadic", expression: "max(1, 7, 3)", want: domain.Number(7)},
		{name: "min variadic", expression: "min(4, 2, 8)", want: domain.Number(2)},
		{name: "log natural", expression: "log(e)", want: domain.Number(1)},
		{name: "log base", expression: "log(8, 2)", want: domain.Number(3)},
		{name: "pi", expression: "pi", want: domain.Number(math.Pi)},
		{name: "exponent", expression: "2 ^ 10", want: domain.Number(1024)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ev.Evaluate(tt.expression, tt.scope)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Kind, got.Kind)
			if tt.want.Kind == domain.KindNumber {
				assert.InDelta(t, tt.want.Number, got.Number, 1e-9)
			} else {
				assert.Equal(t, tt.want.Bool, got.Bool)
			}
		})
	}
}

func TestExpr_EvaluateErrors(t *testing.T) {
	ev := New()

	tests := []struct {
		name       string
		expression string
		unknown    bool
	}{
		{name: "unknown variable", expression: "x + 1", unknown: true},
		{name: "unresolved reference", expression: "_calc99 * 2", unknown: true},
		{name: "syntax error", expression: "2 +"},
		{name: "string result", expression: `"text"`},
		{name: "wrong arity", expression: "sqrt(1, 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ev.Evaluate(tt.expression, nil)
			require.Error(t, err)

			var evalErr *domain.EvaluationError
			require.True(t, errors.As(err, &evalErr))
			assert.Equal(t, tt.expression, evalErr.Expression)
			if tt.unknown {
				assert.True(t, IsUnknownSymbol(err))
			}
		})
	}
}

func TestExpr_CacheKeepsScopesApart(t *testing.T) {
	ev := New()

	got, err := ev.Evaluate("a + 1", map[string]domain.Value{"a": domain.Number(1)})
	require.NoError(t, err)
	assert.Equal(t, domain.Number(2), got)

	got, err = ev.Evaluate("a + 1", map[string]domain.Value{"a": domain.Number(41)})
	require.NoError(t, err)
	assert.Equal(t, domain.Number(42), got)

	_, err = ev.Evaluate("a + 1", nil)
	assert.Error(t, err)
}

func TestExpr_Deterministic(t *testing.T) {
	ev := New()
	scope := map[string]domain.Value{"a": domain.Number(3), "b": domain.Number(4)}

	first, err := ev.Evaluate("sqrt(a^2 + b^2)", scope)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := ev.Evaluate("sqrt(a^2 + b^2)", scope)
		require.NoError(t, err)
		assert.True(t, first.Equal(again))
	}
}
