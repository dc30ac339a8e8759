package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		kind       LineKind
		variable   string
		expression string
		varRefs    []string
	}{
		{name: "blank", text: "   ", kind: LineBlank},
		{name: "empty", text: "", kind: LineBlank},
		{name: "comment", text: "// groceries", kind: LineComment},
		{name: "indented comment", text: "   // note", kind: LineComment},
		{name: "expression", text: "3 + 4", kind: LineExpression},
		{name: "assignment", text: "total = a + b", kind: LineAssignment, variable: "total", expression: "a + b", varRefs: []string{"total", "a", "b"}},
		{name: "assignment without spaces", text: "x=2", kind: LineAssignment, variable: "x", expression: "2", varRefs: []string{"x"}},
		{name: "equality is not assignment", text: "a == b", kind: LineExpression, varRefs: []string{"a", "b"}},
		{name: "less or equal is not assignment", text: "a <= b", kind: LineExpression, varRefs: []string{"a", "b"}},
		{name: "not equal is not assignment", text: "a != b", kind: LineExpression, varRefs: []string{"a", "b"}},
		{name: "reserved names skipped", text: "sqrt(x) * pi", kind: LineExpression, varRefs: []string{"x"}},
		{name: "identifier references skipped", text: "_calc0 * rate", kind: LineExpression, varRefs: []string{"rate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.text)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.variable, got.Variable)
			assert.Equal(t, tt.expression, got.Expression)
			assert.Equal(t, tt.varRefs, got.VariableRefs)
		})
	}
}

func TestParsedLine_EvalExpression(t *testing.T) {
	assert.Equal(t, "a + 1", ParseLine("b = a + 1").EvalExpression())
	assert.Equal(t, "a + 1", ParseLine("a + 1").EvalExpression())
	assert.False(t, ParseLine("// a = 1").Evaluable())
	assert.False(t, ParseLine("").Evaluable())
	assert.True(t, ParseLine("1").Evaluable())
}

func TestFindVariableReferences_Distinct(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, FindVariableReferences("a + b * a - 2b"))
}

func TestFindIDReferences(t *testing.T) {
	refs := FindIDReferences("_calc0 + _calc12 * 2")
	require.Len(t, refs, 2)

	assert.Equal(t, IDReference{Token: "_calc0", ID: "calc0", Offset: 0, Length: 6}, refs[0])
	assert.Equal(t, IDReference{Token: "_calc12", ID: "calc12", Offset: 9, Length: 7}, refs[1])
}

func TestFindIDReferences_RuneOffsets(t *testing.T) {
	refs := FindIDReferences("€ + _calc1")
	require.Len(t, refs, 1)
	assert.Equal(t, 4, refs[0].Offset)
}

func TestFindIDReferences_None(t *testing.T) {
	assert.Empty(t, FindIDReferences("calc1 + _total"))
}

func TestParseLines(t *testing.T) {
	lines := ParseLines("a = 1\n\n// c\na + 1")
	require.Len(t, lines, 4)
	assert.Equal(t, LineAssignment, lines[0].Kind)
	assert.Equal(t, LineBlank, lines[1].Kind)
	assert.Equal(t, LineComment, lines[2].Kind)
	assert.Equal(t, LineExpression, lines[3].Kind)
}

func TestNormalizeContent(t *testing.T) {
	assert.Equal(t, "a = 1 + 2", NormalizeContent("  a  =\t1 +   2 "))
}
