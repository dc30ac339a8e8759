package application

import (
	"fmt"
	"unicode/utf8"

	"calcnote/internal/domain"
)

// LineView is a read-only summary of one line for listings and tools
type LineView struct {
	Line      int
	Text      string
	Kind      domain.LineKind
	ID        domain.LineID
	Reference string
	Result    string
	Error     string
}

// ReferenceView describes one referencable line
type ReferenceView struct {
	ID        domain.LineID
	Line      int
	Reference string
	Label     string
}

// Annotations returns the inline result for every line with a non-empty result
func (e *Engine) Annotations() []domain.Annotation {
	var out []domain.Annotation
	for pos, line := range e.lines {
		if !line.Evaluable() {
			continue
		}
		r, ok := e.results[pos]
		if !ok || r.String() == "" {
			continue
		}

		a := domain.Annotation{
			Line:    pos,
			Column:  utf8.RuneCountInString(line.Text),
			Text:    domain.Truncate(r.String(), domain.MaxResultLength),
			Value:   r.String(),
			IsError: r.IsError(),
		}
		if id, ok := e.mapping[pos]; ok {
			a.ID = id
			a.Reference = id.Reference()
			a.Title = fmt.Sprintf("Reference this as: %s", a.Reference)
		}
		out = append(out, a)
	}
	return out
}

// Highlights returns a marker for every identifier reference whose target
// line still exists
func (e *Engine) Highlights() []domain.Highlight {
	positions := e.mapping.Reverse()

	var out []domain.Highlight
	for pos, line := range e.lines {
		if !line.Evaluable() {
			continue
		}
		for _, ref := range line.IDRefs {
			target, ok := positions[ref.ID]
			if !ok {
				continue
			}
			label, ok := e.labels[ref.ID]
			if !ok {
				label = domain.UnknownReferenceLabel
			}
			out = append(out, domain.Highlight{
				Line:       pos,
				Offset:     ref.Offset,
				Length:     ref.Length,
				Token:      ref.Token,
				TargetID:   ref.ID,
				TargetLine: target,
				Label:      label,
			})
		}
	}
	return out
}

// HighlightAt returns the reference token under a cursor position
func (e *Engine) HighlightAt(line, column int) (domain.Highlight, bool) {
	for _, h := range e.Highlights() {
		if h.Contains(line, column) {
			return h, true
		}
	}
	return domain.Highlight{}, false
}

// View summarizes every line of the document
func (e *Engine) View() []LineView {
	views := make([]LineView, 0, len(e.lines))
	for pos, line := range e.lines {
		v := LineView{Line: pos, Text: line.Text, Kind: line.Kind}
		if id, ok := e.mapping[pos]; ok {
			v.ID = id
			v.Reference = id.Reference()
		}
		if r, ok := e.results[pos]; ok {
			v.Result = r.String()
			if r.Err != nil {
				v.Error = r.Err.Error()
			}
		}
		views = append(views, v)
	}
	return views
}

// References lists every line that holds an ID, in document order
func (e *Engine) References() []ReferenceView {
	var refs []ReferenceView
	for _, pos := range e.Positions() {
		id := e.mapping[pos]
		label, ok := e.labels[id]
		if !ok {
			label = domain.UnknownReferenceLabel
		}
		refs = append(refs, ReferenceView{
			ID:        id,
			Line:      pos,
			Reference: id.Reference(),
			Label:     label,
		})
	}
	return refs
}
