package quilt

import (
	"maps"
	"slices"
)

// Adjacency is a neighbor-set mapping derived from the edge list.
// It is a snapshot: edges added or removed after it is built are not
// reflected, which the repairers rely on for within-pass stability.
type Adjacency map[string]map[string]struct{}

// Adjacency rebuilds the neighbor-set mapping from the current edge list.
// Every vertex appears as a key, so isolated vertices map to empty sets.
// The mapping is rebuilt from scratch on every call - simplicity over
// incremental maintenance.
func (g *Graph) Adjacency() Adjacency {
	adj := make(Adjacency, len(g.vertices))
	for id := range g.vertices {
		adj[id] = make(map[string]struct{})
	}
	for _, e := range g.edges {
		adj[e.U][e.V] = struct{}{}
		adj[e.V][e.U] = struct{}{}
	}
	return adj
}

// Degree returns the number of neighbors of id in the snapshot.
func (a Adjacency) Degree(id string) int { return len(a[id]) }

// Neighbors returns the neighbor IDs of id in sorted order.
func (a Adjacency) Neighbors(id string) []string {
	return slices.Sorted(maps.Keys(a[id]))
}

// vertexIDs returns all vertex IDs in sorted order. Repairers iterate sorted
// IDs so that equal-distance ties resolve the same way on every run.
func (g *Graph) vertexIDs() []string {
	return slices.Sorted(maps.Keys(g.vertices))
}
