package quilt

// Legal reports whether the graph is a legal quilt: at least two vertices,
// every vertex degree >= 2, one connected component, no bridges, and no
// crossing edge pairs. It is read-only and safe to call at any point,
// including between correction passes, for diagnostics.
//
// Legal is the only signal that [Correct] did not fully succeed; correction
// itself never fails.
func Legal(g *Graph) bool {
	if g.VertexCount() < 2 {
		return false
	}

	adj := g.Adjacency()
	if len(g.lowDegreeVertices(adj)) > 0 {
		return false
	}
	if len(g.components(adj)) > 1 {
		return false
	}
	if len(g.Bridges(adj)) > 0 {
		return false
	}
	if _, ok := g.findCrossing(); ok {
		return false
	}
	return true
}
