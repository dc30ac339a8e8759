package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assign runs one registry cycle from oldText to newText
func assign(r *Registry, oldText, newText string) IdentityMapping {
	return r.Assign(ParseLines(newText), DetectChanges(oldText, newText))
}

func assertInjective(t *testing.T, m IdentityMapping) {
	t.Helper()
	seen := map[LineID]int{}
	for pos, id := range m {
		if other, dup := seen[id]; dup {
			t.Fatalf("%s held by positions %d and %d", id, other, pos)
		}
		seen[id] = pos
	}
}

func TestRegistry_MintsInDocumentOrder(t *testing.T) {
	r := NewRegistry()
	m := assign(r, "", "a = 1\n\n// note\nb = a + 1")

	assert.Equal(t, IdentityMapping{0: "calc0", 3: "calc1"}, m)
	assert.Equal(t, 2, r.Counter())
}

func TestRegistry_UnchangedLinesKeepIDs(t *testing.T) {
	r := NewRegistry()
	assign(r, "", "a = 1\nb = 2")
	m := assign(r, "a = 1\nb = 2", "a = 1\nb = 2")

	assert.Equal(t, IdentityMapping{0: "calc0", 1: "calc1"}, m)
}

func TestRegistry_ModifiedLineKeepsID(t *testing.T) {
	r := NewRegistry()
	assign(r, "", "3+4\n_calc0*2")
	m := assign(r, "3+4\n_calc0*2", "3+5\n_calc0*2")

	assert.Equal(t, IdentityMapping{0: "calc0", 1: "calc1"}, m)
}

func TestRegistry_InPlaceEditOfRepeatedText(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
	}{
		{"edit into a copy of the next line", "1\na = 1\n2", "1\n2\n2"},
		{"edit into a copy of the previous line", "3\n1\n3\n1", "3\n3\n3\n1"},
		{"edit into a copy of the first line", "x + 1\ny\nz", "x + 1\nx + 1\nz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			before := assign(r, "", tt.before)
			after := assign(r, tt.before, tt.after)

			assert.Equal(t, before, after)
			assertInjective(t, after)
		})
	}
}

func TestRegistry_InsertAboveShiftsIDs(t *testing.T) {
	r := NewRegistry()
	assign(r, "", "a = 1\nb = 2")
	m := assign(r, "a = 1\nb = 2", "c = 3\na = 1\nb = 2")

	assert.Equal(t, LineID("calc0"), m[1])
	assert.Equal(t, LineID("calc1"), m[2])
	assert.Equal(t, LineID("calc2"), m[0])
	assertInjective(t, m)
}

func TestRegistry_BlankLineInsertIsIgnored(t *testing.T) {
	r := NewRegistry()
	assign(r, "", "a = 1\nb = a")
	m := assign(r, "a = 1\nb = a", "\na = 1\nb = a")

	assert.Equal(t, IdentityMapping{1: "calc0", 2: "calc1"}, m)
	assert.Equal(t, 2, r.Counter())
}

func TestRegistry_ContentReassociation(t *testing.T) {
	r := NewRegistry()
	assign(r, "", "a = 1\nprice = 40")

	// Delete the second line, then type it back somewhere else
	assign(r, "a = 1\nprice = 40", "a = 1")
	assign(r, "a = 1", "a = 1\n\n")
	m := assign(r, "a = 1\n\n", "a = 1\n\nprice  =  40")

	assert.Equal(t, LineID("calc1"), m[2])
	assert.Equal(t, 2, r.Counter())
}

func TestRegistry_PositionHistory(t *testing.T) {
	r := NewRegistry()
	assign(r, "", "a = 1\nb = 2")
	assign(r, "a = 1\nb = 2", "a = 1")

	// A different line at the old position gets the old ID back
	m := assign(r, "a = 1", "a = 1\n\n").Clone()
	assert.Len(t, m, 1)

	m = assign(r, "a = 1\n\n", "a = 1\nq = 9\n")
	assert.Equal(t, LineID("calc1"), m[1])
}

func TestRegistry_ContentMatchClaimedByPosition(t *testing.T) {
	r := NewRegistry()
	assign(r, "", "x = 1\ny = 5\nz = 6")

	// The first line is modified in place and keeps calc0; a new copy of its
	// old content must not receive calc0 as well.
	m := assign(r, "x = 1\ny = 5\nz = 6", "x = 2\ny = 5\nz = 6\nx = 1")

	assertInjective(t, m)
	assert.Equal(t, LineID("calc0"), m[0])
	assert.Equal(t, LineID("calc3"), m[3])
}

func TestRegistry_DuplicateContentStaysInjective(t *testing.T) {
	r := NewRegistry()
	assign(r, "", "x = 1")
	assign(r, "x = 1", "")

	m := assign(r, "", "x = 1\nx = 1\nx = 1")
	assertInjective(t, m)
	assert.Len(t, m, 3)
}

func TestRegistry_MintSkipsRememberedIDs(t *testing.T) {
	r := NewRegistry()
	r.Restore(IdentityMapping{}, 0, map[string]LineID{"old = 1": "calc0"}, map[int]LineID{5: "calc1"})

	m := assign(r, "", "fresh = 2")
	assert.Equal(t, IdentityMapping{0: "calc2"}, m)
}

func TestRegistry_RestoreKeepsIDs(t *testing.T) {
	first := NewRegistry()
	assign(first, "", "a = 1\nb = a * 2")

	restored := NewRegistry()
	restored.Restore(first.Mapping(), first.Counter(), first.ContentIndex(), first.History())

	m := assign(restored, "a = 1\nb = a * 2", "a = 1\nb = a * 2\nc = b")
	assert.Equal(t, LineID("calc0"), m[0])
	assert.Equal(t, LineID("calc1"), m[1])
	assert.Equal(t, LineID("calc2"), m[2])
}

func TestRegistry_GettersReturnCopies(t *testing.T) {
	r := NewRegistry()
	assign(r, "", "a = 1")

	r.Mapping()[0] = "calc99"
	r.ContentIndex()["a = 1"] = "calc99"
	r.History()[0] = "calc99"

	require.Equal(t, LineID("calc0"), r.Mapping()[0])
	assert.Equal(t, LineID("calc0"), r.ContentIndex()["a = 1"])
	assert.Equal(t, LineID("calc0"), r.History()[0])
}
