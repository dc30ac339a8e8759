package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"calcnote/internal/application"
	"calcnote/internal/domain"
)

func TestReadText_Args(t *testing.T) {
	text, err := readText([]string{"2", "+", "3"})
	assert.NoError(t, err)
	assert.Equal(t, "2 + 3", text)
}

func TestPrintLines(t *testing.T) {
	lines := []application.LineView{
		{Line: 0, Text: "a = 2", Kind: domain.LineAssignment, ID: "calc0", Reference: "_calc0", Result: "2"},
		{Line: 1, Text: "// note", Kind: domain.LineComment},
		{Line: 2, Text: "a / b", Kind: domain.LineExpression, ID: "calc1", Reference: "_calc1", Result: domain.ErrorMarker, Error: "unknown name b"},
	}

	var buf bytes.Buffer
	printLines(&buf, lines)

	want := "  1  a = 2    = 2  [_calc0]\n" +
		"  2  // note\n" +
		"  3  a / b    = ... (unknown name b)  [_calc1]\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintResults(t *testing.T) {
	lines := []application.LineView{
		{Line: 0, Text: "1 + 1", Result: "2"},
		{Line: 1, Text: ""},
		{Line: 2, Text: "2 * 3", Result: "6"},
	}

	var buf bytes.Buffer
	printResults(&buf, lines)
	assert.Equal(t, "2\n6\n", buf.String())
}
