package quilt

// minDegree is the smallest legal vertex degree in a quilt graph.
const minDegree = 2

// lowDegreeVertices returns the IDs of vertices whose degree in the snapshot
// is below minDegree, in sorted order.
func (g *Graph) lowDegreeVertices(adj Adjacency) []string {
	var low []string
	for _, id := range g.vertexIDs() {
		if adj.Degree(id) < minDegree {
			low = append(low, id)
		}
	}
	return low
}

// repairDegrees connects every low-degree vertex to its nearest eligible
// partner: the closest other vertex, by squared distance, that is not already
// a neighbor in the snapshot. All fixes in one pass use the same snapshot, so
// they do not see each other's new edges; the orchestrator rebuilds adjacency
// before the next check. A vertex with no eligible partner (e.g. the only
// other vertex is already connected to it) is left alone for this pass.
func (g *Graph) repairDegrees(adj Adjacency, low []string) {
	for _, id := range low {
		target, ok := g.nearestNonNeighbor(adj, id)
		if !ok {
			continue
		}
		_ = g.AddEdge(id, target)
	}
}

// nearestNonNeighbor finds the closest vertex to id that is neither id itself
// nor already adjacent to it in the snapshot.
func (g *Graph) nearestNonNeighbor(adj Adjacency, id string) (string, bool) {
	p := g.vertices[id]
	best := ""
	bestDist := 0.0
	for _, cand := range g.vertexIDs() {
		if cand == id {
			continue
		}
		if _, linked := adj[id][cand]; linked {
			continue
		}
		d := p.DistSq(g.vertices[cand])
		if best == "" || d < bestDist {
			best = cand
			bestDist = d
		}
	}
	return best, best != ""
}
