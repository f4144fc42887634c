package quilt

// passCapFactor bounds the correction loop at passCapFactor x vertex count
// passes. Some inputs are irreparable (a 2-vertex graph can never reach
// degree 2 without parallel edges) and would otherwise loop forever.
const passCapFactor = 2

// Stats reports how a correction run ended.
type Stats struct {
	// Passes is the number of passes that applied a fix.
	Passes int `json:"passes" bson:"passes"`
	// Stable is true when the loop ended because a pass found nothing to
	// fix, false when the iteration cap stopped it. A stable graph is not
	// necessarily legal - check [Legal].
	Stable bool `json:"stable" bson:"stable"`
}

// Correct repairs the graph toward a legal state and decomposes it into
// faces. It runs a fixed-point loop over four repair categories in priority
// order:
//
//  1. Degree: every vertex with degree < 2 is connected to its nearest
//     non-neighbor (all such vertices in one pass, from one snapshot).
//  2. Components: the first two components are joined by their closest
//     vertex pair (one edge).
//  3. Bridges: the first bridge is bypassed with a cycle-closing edge.
//  4. Crossings: the first crossing edge pair is split at the intersection.
//
// The first category that finds work acts, the pass ends, and the next pass
// restarts from the top. A pass that finds nothing terminates the loop. A
// safety cap of 2x the vertex count stops runaway inputs without error;
// callers must use [Legal] to learn whether correction fully succeeded.
//
// Regardless of the outcome, faces are decomposed from whatever graph state
// remains, sampling fill colors from colors when it is non-nil.
func Correct(g *Graph, colors ColorSource) Stats {
	stats := Stats{}
	for {
		if !g.repairPass() {
			stats.Stable = true
			break
		}
		stats.Passes++
		if stats.Passes >= passCapFactor*g.VertexCount() {
			break
		}
	}

	DecomposeFaces(g, colors)
	return stats
}

// repairPass applies the highest-priority fix available and reports whether
// it found one. Adjacency is rebuilt for each category so every check sees
// the edges added by earlier passes.
func (g *Graph) repairPass() bool {
	adj := g.Adjacency()
	if low := g.lowDegreeVertices(adj); len(low) > 0 {
		g.repairDegrees(adj, low)
		return true
	}

	if comps := g.components(adj); len(comps) > 1 {
		g.connectComponents(comps)
		return true
	}

	if bridges := g.Bridges(adj); len(bridges) > 0 {
		g.repairBridge(adj, bridges[0])
		return true
	}

	if c, ok := g.findCrossing(); ok {
		g.resolveCrossing(c)
		return true
	}

	return false
}
