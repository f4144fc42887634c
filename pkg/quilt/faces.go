package quilt

import (
	"slices"

	"github.com/patchworklabs/patchwork/pkg/geom"
)

// ColorSource supplies fill colors for face centroids. The segment package
// implements it over a raster segmentation; a nil ColorSource leaves faces
// uncolored.
type ColorSource interface {
	// ColorAt returns the color under the given point, or false when the
	// point maps to background or no color is known.
	ColorAt(p geom.Point) (Color, bool)
}

// directedEdge is one of the two orientations of an undirected edge.
type directedEdge struct {
	from, to string
}

// DecomposeFaces traces the polygonal faces of the graph's planar embedding
// and stores them on the graph, replacing any previous decomposition.
//
// Each vertex's neighbors are sorted by polar angle. A trace starts at an
// unvisited directed edge (u0,v0); arriving at c from p, it leaves through
// the neighbor cyclically after p in c's angular order, appending c to the
// face and marking the departing directed edge visited. The trace ends when
// the departing edge equals the start edge, or - defensively, for malformed
// or non-planar input - when the face grows past the total vertex count.
//
// Every directed edge is consumed at most once, so a connected, bridge-free
// planar graph yields E - V + 2 faces. The trace of the unbounded exterior
// region is kept like any bounded face; callers that need to tell them apart
// can compare signed areas.
//
// When colors is non-nil, each face is filled with the color under its
// centroid.
func DecomposeFaces(g *Graph, colors ColorSource) {
	g.faces = make(map[string]Face)
	g.nextFace = 0

	sorted := g.angularNeighbors()
	visited := make(map[directedEdge]struct{}, 2*len(g.edges))

	for _, e := range g.edges {
		for _, start := range []directedEdge{{e.U, e.V}, {e.V, e.U}} {
			if _, seen := visited[start]; seen {
				continue
			}
			face := g.traceFace(start, sorted, visited)
			if len(face) == 0 {
				continue
			}
			g.faces[g.mintFaceID()] = Face{
				Vertices: face,
				Color:    g.sampleColor(face, colors),
			}
		}
	}
}

// traceFace walks one face boundary starting at the given directed edge.
func (g *Graph) traceFace(start directedEdge, sorted map[string][]string, visited map[directedEdge]struct{}) []string {
	visited[start] = struct{}{}

	var face []string
	prev, cur := start.from, start.to
	for {
		ring := sorted[cur]
		idx := slices.Index(ring, prev)
		if idx < 0 {
			// Stale neighbor list would mean the graph mutated mid-trace.
			return face
		}
		next := ring[(idx+1)%len(ring)]

		face = append(face, cur)
		if (directedEdge{cur, next}) == start {
			return face
		}
		visited[directedEdge{cur, next}] = struct{}{}
		prev, cur = cur, next

		if len(face) > g.VertexCount() {
			// Malformed or non-planar input; abort rather than spin.
			return face
		}
	}
}

// angularNeighbors returns each vertex's neighbors sorted ascending by the
// polar angle from the vertex to the neighbor.
func (g *Graph) angularNeighbors() map[string][]string {
	adj := g.Adjacency()
	out := make(map[string][]string, len(adj))
	for id, set := range adj {
		p := g.vertices[id]
		ring := make([]string, 0, len(set))
		for n := range set {
			ring = append(ring, n)
		}
		slices.SortFunc(ring, func(a, b string) int {
			aa := p.AngleTo(g.vertices[a])
			ab := p.AngleTo(g.vertices[b])
			switch {
			case aa < ab:
				return -1
			case aa > ab:
				return 1
			default:
				return 0
			}
		})
		out[id] = ring
	}
	return out
}

// sampleColor looks up the color under the face's centroid.
func (g *Graph) sampleColor(face []string, colors ColorSource) *Color {
	if colors == nil {
		return nil
	}
	pts := make([]geom.Point, len(face))
	for i, id := range face {
		pts[i] = g.vertices[id]
	}
	c, ok := colors.ColorAt(geom.Centroid(pts))
	if !ok {
		return nil
	}
	return &c
}
