// Package quilt implements the planar-graph correction and face-decomposition
// engine at the heart of Patchwork.
//
// A quilt graph is a planar straight-line graph: vertices with 2D coordinates
// joined by undirected edges. Raw graphs extracted from raster segmentations
// are usually defective - dangling vertices, disconnected fragments, bridges,
// crossing edges. [Correct] repairs them into a "legal" state (every vertex
// degree >= 2, connected, 2-edge-connected, no pairwise crossings) and then
// decomposes the result into its polygonal faces.
//
// # Correction loop
//
// [Correct] drives four repairers under one fixed-point loop, in priority
// order: degree repair, component merging, bridge repair, crossing
// resolution. Each pass applies the first category that finds work, then
// restarts from the top. The loop ends when a pass finds nothing or a safety
// cap of 2x the vertex count is hit. Correction is not guaranteed to succeed
// (a 2-vertex graph is provably irreparable); [Legal] is the only way a
// caller learns whether it did.
//
// # Faces
//
// Face decomposition walks directed edges with an angular-sort rule: arriving
// at a vertex, the walk leaves through the neighbor cyclically after the one
// it came from. Each undirected edge yields two directed edges, so a
// connected, bridge-free planar graph with V vertices and E edges produces
// E - V + 2 faces, one of which traces the unbounded exterior.
//
// The package performs no I/O and holds no global state. A Graph is not safe
// for concurrent use without external synchronization.
package quilt

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/patchworklabs/patchwork/pkg/geom"
)

var (
	// ErrInvalidVertexID is returned by [Graph.AddVertex] when the vertex ID
	// is empty. All vertices must have non-empty identifiers.
	ErrInvalidVertexID = errors.New("vertex ID must not be empty")

	// ErrDuplicateVertexID is returned by [Graph.AddVertex] when a vertex
	// with the same ID already exists. Vertex IDs must be unique.
	ErrDuplicateVertexID = errors.New("duplicate vertex ID")

	// ErrUnknownVertex is returned by [Graph.AddEdge] when either endpoint
	// does not exist in the vertex mapping.
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are the
	// same vertex. Quilt graphs have no self-loops.
	ErrSelfLoop = errors.New("self-loop edge")
)

// Color is an RGB fill color sampled from a source segmentation.
type Color struct {
	R uint8 `json:"r" bson:"r"`
	G uint8 `json:"g" bson:"g"`
	B uint8 `json:"b" bson:"b"`
}

// Edge is an unordered pair of distinct vertex IDs. Edges are stored
// normalized (U < V) so that (u,v) and (v,u) compare equal.
type Edge struct {
	U string
	V string
}

// NewEdge returns the normalized edge between u and v.
func NewEdge(u, v string) Edge {
	if v < u {
		u, v = v, u
	}
	return Edge{U: u, V: v}
}

// Other returns the endpoint opposite to id, assuming id is an endpoint.
func (e Edge) Other(id string) string {
	if e.U == id {
		return e.V
	}
	return e.U
}

// Face is one traversal boundary of the corrected graph: an ordered, cyclic
// sequence of vertex IDs, plus an optional fill color. Faces are derived
// data - the vertex and edge sets remain the source of truth.
type Face struct {
	Vertices []string
	Color    *Color
}

// Graph is a mutable planar straight-line graph with de-duplicated edges and
// an ID allocator for vertices minted during crossing resolution.
//
// The zero value is not usable - use [New] to create a Graph.
type Graph struct {
	vertices map[string]geom.Point
	edges    []Edge // insertion order is significant for crossing scans
	edgeSet  map[Edge]struct{}
	faces    map[string]Face

	nextVertex int // max numeric suffix seen among vertex IDs
	nextFace   int
}

// New creates an empty quilt graph.
func New() *Graph {
	return &Graph{
		vertices: make(map[string]geom.Point),
		edgeSet:  make(map[Edge]struct{}),
		faces:    make(map[string]Face),
	}
}

// AddVertex adds a vertex with the given ID and position.
// Returns ErrInvalidVertexID for an empty ID or ErrDuplicateVertexID if the
// ID is already present. The allocator is advanced past any numeric suffix in
// the ID so that minted vertices never collide with input vertices.
func (g *Graph) AddVertex(id string, p geom.Point) error {
	if id == "" {
		return ErrInvalidVertexID
	}
	if _, exists := g.vertices[id]; exists {
		return ErrDuplicateVertexID
	}
	g.vertices[id] = p
	if n, ok := numericSuffix(id); ok && n > g.nextVertex {
		g.nextVertex = n
	}
	return nil
}

// MintVertex creates a vertex at p with a freshly allocated ID and returns
// the ID. Allocated IDs are "v<n>" where n is one past the largest numeric
// suffix seen so far.
func (g *Graph) MintVertex(p geom.Point) string {
	g.nextVertex++
	id := fmt.Sprintf("v%d", g.nextVertex)
	g.vertices[id] = p
	return id
}

// AddEdge adds the undirected edge u-v. Returns ErrUnknownVertex if either
// endpoint is missing or ErrSelfLoop if u == v. Adding an edge that already
// exists is a no-op: the edge set is de-duplicated and carries no
// multiplicity.
func (g *Graph) AddEdge(u, v string) error {
	if u == v {
		return ErrSelfLoop
	}
	if _, ok := g.vertices[u]; !ok {
		return ErrUnknownVertex
	}
	if _, ok := g.vertices[v]; !ok {
		return ErrUnknownVertex
	}
	e := NewEdge(u, v)
	if _, dup := g.edgeSet[e]; dup {
		return nil
	}
	g.edges = append(g.edges, e)
	g.edgeSet[e] = struct{}{}
	return nil
}

// RemoveEdge removes the undirected edge u-v if it exists.
func (g *Graph) RemoveEdge(u, v string) {
	e := NewEdge(u, v)
	if _, ok := g.edgeSet[e]; !ok {
		return
	}
	delete(g.edgeSet, e)
	for i, cur := range g.edges {
		if cur == e {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			break
		}
	}
}

// HasEdge reports whether the undirected edge u-v exists.
func (g *Graph) HasEdge(u, v string) bool {
	_, ok := g.edgeSet[NewEdge(u, v)]
	return ok
}

// Vertex returns the position of the vertex with the given ID and true, or
// the zero point and false if it does not exist.
func (g *Graph) Vertex(id string) (geom.Point, bool) {
	p, ok := g.vertices[id]
	return p, ok
}

// Vertices returns a copy of the vertex mapping.
func (g *Graph) Vertices() map[string]geom.Point {
	out := make(map[string]geom.Point, len(g.vertices))
	for id, p := range g.vertices {
		out[id] = p
	}
	return out
}

// Edges returns a copy of the edge list in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Faces returns the face mapping computed by the last decomposition.
// Empty until [Correct] or [DecomposeFaces] has run.
func (g *Graph) Faces() map[string]Face {
	return g.faces
}

// RestoreFaces replaces the face mapping with a deep copy of faces,
// advancing the face ID allocator past any restored "f<n>" IDs. Used
// when loading a graph whose decomposition was already computed.
func (g *Graph) RestoreFaces(faces map[string]Face) {
	g.faces = make(map[string]Face, len(faces))
	g.nextFace = 0
	for id, f := range faces {
		cf := Face{Vertices: append([]string(nil), f.Vertices...)}
		if f.Color != nil {
			col := *f.Color
			cf.Color = &col
		}
		g.faces[id] = cf
		if n, ok := numericSuffix(id); ok && n > g.nextFace {
			g.nextFace = n
		}
	}
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Clone returns a deep copy of the graph, including faces and allocator
// state.
func (g *Graph) Clone() *Graph {
	c := New()
	for id, p := range g.vertices {
		c.vertices[id] = p
	}
	c.edges = make([]Edge, len(g.edges))
	copy(c.edges, g.edges)
	for e := range g.edgeSet {
		c.edgeSet[e] = struct{}{}
	}
	for id, f := range g.faces {
		cf := Face{Vertices: append([]string(nil), f.Vertices...)}
		if f.Color != nil {
			col := *f.Color
			cf.Color = &col
		}
		c.faces[id] = cf
	}
	c.nextVertex = g.nextVertex
	c.nextFace = g.nextFace
	return c
}

// mintFaceID allocates the next face ID ("f<n>").
func (g *Graph) mintFaceID() string {
	g.nextFace++
	return fmt.Sprintf("f%d", g.nextFace)
}

// numericSuffix extracts the trailing decimal digits of id.
// Returns false when id has no trailing digits or they overflow an int.
func numericSuffix(id string) (int, bool) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	if i == len(id) {
		return 0, false
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil {
		return 0, false
	}
	return n, true
}
