package application

import "calcnote/internal/domain"

// Re-export domain types for use by adapters
type (
	LineID     = domain.LineID
	Annotation = domain.Annotation
	Highlight  = domain.Highlight
	Snapshot   = domain.Snapshot
	Result     = domain.Result
	Value      = domain.Value
)

// ParseReference extracts the LineID from a reference name such as "_calc3"
func ParseReference(ref string) (LineID, bool) {
	refs := domain.FindIDReferences(ref)
	if len(refs) != 1 || refs[0].Token != ref {
		return "", false
	}
	return refs[0].ID, true
}
