package domain

import "sort"

// VariableTable maps each assigned name to the position of its last assignment
func VariableTable(lines []ParsedLine) map[string]int {
	variables := map[string]int{}
	for pos, line := range lines {
		if line.Kind == LineAssignment {
			variables[line.Variable] = pos
		}
	}
	return variables
}

// Graph holds line-to-line dependencies keyed by position.
// dependents is always the exact transpose of dependencies.
type Graph struct {
	dependencies map[int][]int
	dependents   map[int][]int
}

// BuildGraph resolves every line's references into edges. Variable references
// resolve through the variable table, identifier references through the
// identity mapping. Self references and unresolved references add no edge.
func BuildGraph(lines []ParsedLine, variables map[string]int, ids IdentityMapping) *Graph {
	positions := ids.Reverse()
	deps := map[int]map[int]bool{}

	addEdge := func(from, to int) {
		if from == to {
			return
		}
		if deps[from] == nil {
			deps[from] = map[int]bool{}
		}
		deps[from][to] = true
	}

	for pos, line := range lines {
		if !line.Evaluable() {
			continue
		}
		for _, name := range line.VariableRefs {
			if target, ok := variables[name]; ok {
				addEdge(pos, target)
			}
		}
		for _, ref := range line.IDRefs {
			if target, ok := positions[ref.ID]; ok {
				addEdge(pos, target)
			}
		}
	}

	g := &Graph{
		dependencies: map[int][]int{},
		dependents:   map[int][]int{},
	}
	for from, targets := range deps {
		for to := range targets {
			g.dependencies[from] = append(g.dependencies[from], to)
			g.dependents[to] = append(g.dependents[to], from)
		}
	}
	for _, m := range []map[int][]int{g.dependencies, g.dependents} {
		for k := range m {
			sort.Ints(m[k])
		}
	}

	return g
}

// Dependencies returns the positions the line reads, ascending
func (g *Graph) Dependencies(line int) []int {
	return append([]int(nil), g.dependencies[line]...)
}

// Dependents returns the positions that read the line, ascending
func (g *Graph) Dependents(line int) []int {
	return append([]int(nil), g.dependents[line]...)
}

// DependsOn reports whether from has a direct edge to to
func (g *Graph) DependsOn(from, to int) bool {
	for _, d := range g.dependencies[from] {
		if d == to {
			return true
		}
	}
	return false
}

// Edges returns the number of distinct edges
func (g *Graph) Edges() int {
	n := 0
	for _, targets := range g.dependencies {
		n += len(targets)
	}
	return n
}

// Lines returns every position that has at least one edge, ascending
func (g *Graph) Lines() []int {
	seen := map[int]bool{}
	for k := range g.dependencies {
		seen[k] = true
	}
	for k := range g.dependents {
		seen[k] = true
	}
	out := make([]int, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
