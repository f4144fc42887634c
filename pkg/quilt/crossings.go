package quilt

import "github.com/patchworklabs/patchwork/pkg/geom"

// crossing describes an interior intersection between two edges.
type crossing struct {
	i, j int // indices into the edge list, i < j
	at   geom.Point
}

// findCrossing scans edge pairs in list order (i < j) and returns the first
// pair with an interior intersection. Pairs sharing an endpoint are skipped:
// edges meeting at a vertex are not crossings. Exactly parallel segments
// (zero determinant) never intersect; see geom.SegmentIntersection for the
// interior-parameter test.
func (g *Graph) findCrossing() (crossing, bool) {
	for i := 0; i < len(g.edges); i++ {
		a := g.edges[i]
		p1 := g.vertices[a.U]
		p2 := g.vertices[a.V]
		for j := i + 1; j < len(g.edges); j++ {
			b := g.edges[j]
			if a.U == b.U || a.U == b.V || a.V == b.U || a.V == b.V {
				continue
			}
			pt, ok := geom.SegmentIntersection(p1, p2, g.vertices[b.U], g.vertices[b.V])
			if !ok {
				continue
			}
			return crossing{i: i, j: j, at: pt}, true
		}
	}
	return crossing{}, false
}

// resolveCrossing splits one crossing: both edges are removed, a new vertex
// is minted at the intersection point, and four edges connect it to the four
// original endpoints. Only one crossing is resolved per invocation; the
// correction loop rescans from the top afterwards.
func (g *Graph) resolveCrossing(c crossing) {
	a := g.edges[c.i]
	b := g.edges[c.j]

	g.RemoveEdge(a.U, a.V)
	g.RemoveEdge(b.U, b.V)

	split := g.MintVertex(c.at)
	for _, end := range []string{a.U, a.V, b.U, b.V} {
		_ = g.AddEdge(split, end)
	}
}
