package quilt

// components returns the connected components of the graph as vertex ID
// slices, using breadth-first search over the snapshot. Components are
// discovered in sorted-vertex-ID order and each component lists its vertices
// in BFS visit order.
func (g *Graph) components(adj Adjacency) [][]string {
	visited := make(map[string]struct{}, len(g.vertices))
	var comps [][]string

	for _, start := range g.vertexIDs() {
		if _, seen := visited[start]; seen {
			continue
		}
		var comp []string
		queue := []string{start}
		visited[start] = struct{}{}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, next := range adj.Neighbors(cur) {
				if _, seen := visited[next]; seen {
					continue
				}
				visited[next] = struct{}{}
				queue = append(queue, next)
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// connectComponents merges the first two components by adding one edge
// between their closest vertex pair (brute force over the cross product,
// minimizing squared distance). Additional components are left alone: the
// correction loop restarts after every fix, so merging k components takes
// k-1 passes.
func (g *Graph) connectComponents(comps [][]string) {
	u, v, ok := g.closestPair(comps[0], comps[1], func(a, b string) bool { return false })
	if !ok {
		return
	}
	_ = g.AddEdge(u, v)
}

// closestPair finds the closest pair (a, b) with a in left and b in right,
// skipping pairs for which exclude returns true. Returns false when every
// pair is excluded.
func (g *Graph) closestPair(left, right []string, exclude func(a, b string) bool) (string, string, bool) {
	bestU, bestV := "", ""
	bestDist := 0.0
	for _, a := range left {
		pa := g.vertices[a]
		for _, b := range right {
			if exclude(a, b) {
				continue
			}
			d := pa.DistSq(g.vertices[b])
			if bestU == "" || d < bestDist {
				bestU, bestV = a, b
				bestDist = d
			}
		}
	}
	return bestU, bestV, bestU != ""
}
