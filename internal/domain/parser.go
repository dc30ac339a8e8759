package domain

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// LineKind classifies a line once so later passes never re-match patterns
type LineKind int

const (
	LineBlank LineKind = iota
	LineComment
	LineAssignment
	LineExpression
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineComment:
		return "comment"
	case LineAssignment:
		return "assignment"
	default:
		return "expression"
	}
}

// CommentMarker starts a line that is kept as prose and never evaluated
const CommentMarker = "//"

var (
	assignmentPattern  = regexp.MustCompile(`^\s*([a-zA-Z][a-zA-Z0-9_]*)\s*=\s*(.+)$`)
	wordPattern        = regexp.MustCompile(`[a-zA-Z0-9_]+`)
	idReferencePattern = regexp.MustCompile(ReferenceSigil + LineIDPrefix + `(\d+)`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// reservedNames are math functions and constants the evaluator provides
var reservedNames = map[string]bool{
	"sin": true, "cos": true, "tan": true, "log": true, "exp": true, "sqrt": true,
	"abs": true, "ceil": true, "floor": true, "round": true, "max": true, "min": true,
	"pi": true, "e": true,
}

// IsReservedName reports whether name is a built-in function or constant
func IsReservedName(name string) bool {
	return reservedNames[name]
}

// IDReference is an explicit `_calc<N>` token found in a line
type IDReference struct {
	Token  string // e.g. "_calc3"
	ID     LineID // e.g. "calc3"
	Offset int    // Character offset in the line
	Length int    // Length in characters
}

// ParsedLine is everything the engine needs to know about one line of text
type ParsedLine struct {
	Text         string
	Kind         LineKind
	Variable     string // Assignment target (LineAssignment only)
	Expression   string // Right-hand side (LineAssignment only)
	VariableRefs []string
	IDRefs       []IDReference
}

// Evaluable reports whether the line takes part in identity, graph and evaluation passes
func (p ParsedLine) Evaluable() bool {
	return p.Kind == LineAssignment || p.Kind == LineExpression
}

// EvalExpression returns the text handed to the evaluator
func (p ParsedLine) EvalExpression() string {
	if p.Kind == LineAssignment {
		return p.Expression
	}
	return p.Text
}

// ParseLine classifies a line and extracts its references. It never fails:
// anything that is not blank, a comment or an assignment is an expression.
func ParseLine(text string) ParsedLine {
	line := ParsedLine{Text: text}

	switch {
	case strings.TrimSpace(text) == "":
		line.Kind = LineBlank
		return line
	case IsComment(text):
		line.Kind = LineComment
		return line
	}

	if variable, expression, ok := ParseAssignment(text); ok {
		line.Kind = LineAssignment
		line.Variable = variable
		line.Expression = expression
	} else {
		line.Kind = LineExpression
	}

	line.VariableRefs = FindVariableReferences(text)
	line.IDRefs = FindIDReferences(text)
	return line
}

// ParseLines splits text on newlines and parses every line
func ParseLines(text string) []ParsedLine {
	raw := SplitLines(text)
	lines := make([]ParsedLine, len(raw))
	for i, l := range raw {
		lines[i] = ParseLine(l)
	}
	return lines
}

// SplitLines splits a document into lines. An empty document is one blank line.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// IsComment reports whether the line is a comment
func IsComment(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), CommentMarker)
}

// ParseAssignment matches `name = expression`. An equality test such as
// `a == b` is not an assignment.
func ParseAssignment(text string) (variable, expression string, ok bool) {
	m := assignmentPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	if strings.HasPrefix(m[2], "=") {
		return "", "", false
	}
	return m[1], m[2], true
}

// FindVariableReferences returns the distinct bare names in text, in order of
// first appearance, skipping reserved names and `_`-prefixed identifier references.
func FindVariableReferences(text string) []string {
	var names []string
	for _, word := range wordPattern.FindAllString(text, -1) {
		first := word[0]
		isLetter := (first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z')
		if !isLetter || IsReservedName(word) {
			continue
		}
		if !slices.Contains(names, word) {
			names = append(names, word)
		}
	}
	return names
}

// FindIDReferences returns every non-overlapping `_calc<N>` token with its position
func FindIDReferences(text string) []IDReference {
	var refs []IDReference
	for _, loc := range idReferencePattern.FindAllStringSubmatchIndex(text, -1) {
		token := text[loc[0]:loc[1]]
		refs = append(refs, IDReference{
			Token:  token,
			ID:     LineID(LineIDPrefix + text[loc[2]:loc[3]]),
			Offset: utf8.RuneCountInString(text[:loc[0]]),
			Length: utf8.RuneCountInString(token),
		})
	}
	return refs
}

// NormalizeContent trims a line and collapses internal whitespace runs to one space
func NormalizeContent(text string) string {
	return whitespacePattern.ReplaceAllString(strings.TrimSpace(text), " ")
}
