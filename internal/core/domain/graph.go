// Package domain contains the core domain models of the capability resolution engine.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph is the per-request dependency graph over included capabilities.
// Edges run from a dependency to the capabilities that depend on it.
type Graph struct {
	nodes          map[InternedString][]InternedString // name -> dependencies
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[InternedString][]InternedString),
	}
}

// AddNode adds a capability to the graph.
// It returns an error if a capability with the same name already exists.
func (g *Graph) AddNode(name string) error {
	key := NewInternedString(name)
	if _, exists := g.nodes[key]; exists {
		return zerr.With(ErrCapabilityExists, "capability", name)
	}
	g.nodes[key] = nil
	return nil
}

// AddEdge records that dependent must be emitted after dependency.
// Both nodes must already be present.
func (g *Graph) AddEdge(dependency, dependent string) error {
	from := NewInternedString(dependency)
	to := NewInternedString(dependent)
	if _, ok := g.nodes[from]; !ok {
		return zerr.With(ErrMissingDependency, "dependency", dependency)
	}
	if _, ok := g.nodes[to]; !ok {
		return zerr.With(ErrMissingDependency, "dependency", dependent)
	}
	if slices.Contains(g.nodes[to], from) {
		return nil
	}
	g.nodes[to] = append(g.nodes[to], from)
	return nil
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Validate checks for cycles using a depth-first topological sort and
// populates the emission order if successful.
// Nodes are visited in name order so the result is deterministic.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.nodes))
	visited := make(map[InternedString]int, len(g.nodes)) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		for _, dep := range g.nodes[u] {
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for _, name := range g.sortedNames() {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				g.executionOrder = nil
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	startIdx := slices.Index(path, dep)
	parts := make([]string, 0, len(path)-startIdx+1)
	for _, node := range path[startIdx:] {
		parts = append(parts, node.String())
	}
	parts = append(parts, dep.String())
	return zerr.With(ErrCycleDetected, "cycle", strings.Join(parts, " -> "))
}

// Walk returns an iterator that yields capability names in emission order,
// dependencies before their dependents.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range g.executionOrder {
			if !yield(name.String()) {
				return
			}
		}
	}
}

func (g *Graph) sortedNames() []InternedString {
	names := make([]InternedString, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b InternedString) int {
		return strings.Compare(a.String(), b.String())
	})
	return names
}
