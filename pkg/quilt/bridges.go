package quilt

import (
	"cmp"
	"slices"
)

// Bridges finds every bridge in the graph using Tarjan's low-link algorithm:
// a depth-first search tracking discovery time (tin) and the lowest discovery
// time reachable without the tree edge (low). A tree edge (u,v) is a bridge
// iff low[v] > tin[u].
//
// The search runs from every unvisited vertex, so bridges are found across
// all components. The DFS uses an explicit frame stack rather than recursion;
// path-like graphs would otherwise nest as deep as the vertex count. The
// returned edges are normalized, de-duplicated, and sorted.
func (g *Graph) Bridges(adj Adjacency) []Edge {
	tin := make(map[string]int, len(g.vertices))
	low := make(map[string]int, len(g.vertices))
	timer := 0
	seen := make(map[Edge]struct{})
	var bridges []Edge

	type frame struct {
		v         string
		parent    string
		neighbors []string
		idx       int
	}

	for _, root := range g.vertexIDs() {
		if _, visited := tin[root]; visited {
			continue
		}
		tin[root] = timer
		low[root] = timer
		timer++
		stack := []*frame{{v: root, neighbors: adj.Neighbors(root)}}

		for len(stack) > 0 {
			f := stack[len(stack)-1]
			if f.idx < len(f.neighbors) {
				to := f.neighbors[f.idx]
				f.idx++
				if to == f.parent {
					continue
				}
				if t, visited := tin[to]; visited {
					// Back edge: reachable without the tree edge.
					if t < low[f.v] {
						low[f.v] = t
					}
					continue
				}
				tin[to] = timer
				low[to] = timer
				timer++
				stack = append(stack, &frame{v: to, parent: f.v, neighbors: adj.Neighbors(to)})
				continue
			}

			// Frame exhausted: propagate low-link to the parent and test
			// the tree edge for bridge-ness.
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				continue
			}
			p := stack[len(stack)-1]
			if low[f.v] < low[p.v] {
				low[p.v] = low[f.v]
			}
			if low[f.v] > tin[p.v] {
				e := NewEdge(p.v, f.v)
				if _, dup := seen[e]; !dup {
					seen[e] = struct{}{}
					bridges = append(bridges, e)
				}
			}
		}
	}

	slices.SortFunc(bridges, func(a, b Edge) int {
		if c := cmp.Compare(a.U, b.U); c != 0 {
			return c
		}
		return cmp.Compare(a.V, b.V)
	})
	return bridges
}

// repairBridge attempts to remove the first bridge by closing a cycle around
// it: the two vertex sets separated by the bridge are reconnected through
// their closest vertex pair other than the bridge's own endpoints.
//
// The reference behavior inserted the bridge's endpoint pair into the
// de-duplicated edge set, which is always a no-op and leaves the bridge in
// place until the iteration cap fires. Closing a real cycle instead makes
// repair converge; when no other pair exists (each side is a single vertex,
// as in a 2-vertex graph) the faithful no-op insertion remains and the input
// stays irreparable.
func (g *Graph) repairBridge(adj Adjacency, bridge Edge) {
	uSide := g.sideOf(adj, bridge.U, bridge)
	vSide := g.sideOf(adj, bridge.V, bridge)

	a, b, ok := g.closestPair(uSide, vSide, func(a, b string) bool {
		if NewEdge(a, b) == bridge {
			return true
		}
		return g.HasEdge(a, b)
	})
	if !ok {
		_ = g.AddEdge(bridge.U, bridge.V)
		return
	}
	_ = g.AddEdge(a, b)
}

// sideOf returns the vertices reachable from start without crossing the
// excluded edge. For a bridge this is exactly one side of the split.
func (g *Graph) sideOf(adj Adjacency, start string, excluded Edge) []string {
	visited := map[string]struct{}{start: {}}
	side := []string{start}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj.Neighbors(cur) {
			if NewEdge(cur, next) == excluded {
				continue
			}
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			side = append(side, next)
			queue = append(queue, next)
		}
	}
	return side
}
