package quilt

import (
	"testing"

	"github.com/patchworklabs/patchwork/pkg/geom"
)

// snapshotSets captures the vertex and edge sets for before/after comparison.
func snapshotSets(g *Graph) (map[string]geom.Point, map[Edge]struct{}) {
	edges := make(map[Edge]struct{}, g.EdgeCount())
	for _, e := range g.Edges() {
		edges[e] = struct{}{}
	}
	return g.Vertices(), edges
}

func sameSets(t *testing.T, g *Graph, vertices map[string]geom.Point, edges map[Edge]struct{}) {
	t.Helper()
	if g.VertexCount() != len(vertices) {
		t.Errorf("VertexCount = %d, want %d", g.VertexCount(), len(vertices))
	}
	for id, p := range vertices {
		if got, ok := g.Vertex(id); !ok || got != p {
			t.Errorf("vertex %s = %v, %v; want %v, true", id, got, ok, p)
		}
	}
	if g.EdgeCount() != len(edges) {
		t.Errorf("EdgeCount = %d, want %d", g.EdgeCount(), len(edges))
	}
	for e := range edges {
		if !g.HasEdge(e.U, e.V) {
			t.Errorf("edge %v missing", e)
		}
	}
}

func TestLegalTriangle(t *testing.T) {
	if !Legal(triangle(t)) {
		t.Error("Legal(triangle) = false, want true")
	}
}

func TestLegalRejects(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) *Graph
	}{
		{"Empty", func(t *testing.T) *Graph { return New() }},
		{
			"SingleVertex",
			func(t *testing.T) *Graph {
				return build(t, map[string]geom.Point{"a": geom.Pt(0, 0)}, nil)
			},
		},
		{
			"LowDegree",
			func(t *testing.T) *Graph {
				g := triangle(t)
				g.RemoveEdge("a", "b")
				return g
			},
		},
		{
			"Disconnected",
			func(t *testing.T) *Graph {
				g := triangle(t)
				if err := g.AddVertex("d", geom.Pt(100, 0)); err != nil {
					t.Fatal(err)
				}
				if err := g.AddVertex("e", geom.Pt(110, 0)); err != nil {
					t.Fatal(err)
				}
				if err := g.AddVertex("f", geom.Pt(105, 10)); err != nil {
					t.Fatal(err)
				}
				for _, e := range [][2]string{{"d", "e"}, {"e", "f"}, {"f", "d"}} {
					if err := g.AddEdge(e[0], e[1]); err != nil {
						t.Fatal(err)
					}
				}
				return g
			},
		},
		{
			"Bridge",
			func(t *testing.T) *Graph {
				return build(t, map[string]geom.Point{
					"a": geom.Pt(0, 0), "b": geom.Pt(10, 0), "c": geom.Pt(5, 10),
					"d": geom.Pt(100, 0), "e": geom.Pt(110, 0), "f": geom.Pt(105, 10),
				}, [][2]string{
					{"a", "b"}, {"b", "c"}, {"c", "a"},
					{"d", "e"}, {"e", "f"}, {"f", "d"},
					{"b", "d"},
				})
			},
		},
		{
			"Crossing",
			func(t *testing.T) *Graph {
				// A 4-cycle whose straight-line embedding self-crosses:
				// degrees and connectivity pass, only the crossing trips it.
				return build(t, map[string]geom.Point{
					"a": geom.Pt(0, 10), "b": geom.Pt(0, 0),
					"c": geom.Pt(10, 10), "d": geom.Pt(10, 0),
				}, [][2]string{
					{"a", "b"}, {"c", "d"}, {"a", "d"}, {"b", "c"},
				})
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Legal(tt.build(t)) {
				t.Error("Legal = true, want false")
			}
		})
	}
}

// A legal graph is a fixed point: correction must change neither vertices nor
// edges and the result stays legal.
func TestCorrectIdempotentOnLegalInput(t *testing.T) {
	g := triangle(t)
	vertices, edges := snapshotSets(g)

	stats := Correct(g, nil)

	if !stats.Stable {
		t.Error("Stable = false, want true")
	}
	if stats.Passes != 0 {
		t.Errorf("Passes = %d, want 0", stats.Passes)
	}
	sameSets(t, g, vertices, edges)
	if !Legal(g) {
		t.Error("Legal after Correct = false, want true")
	}
}

func TestCorrectResolvesCrossing(t *testing.T) {
	g := build(t, map[string]geom.Point{
		"a": geom.Pt(0, 10), "b": geom.Pt(0, 0),
		"c": geom.Pt(10, 10), "d": geom.Pt(10, 0),
	}, [][2]string{{"a", "d"}, {"b", "c"}})

	Correct(g, nil)

	if g.HasEdge("a", "d") || g.HasEdge("b", "c") {
		t.Error("crossing edges a-d, b-c survived correction")
	}

	var split string
	for id, p := range g.Vertices() {
		if id == "a" || id == "b" || id == "c" || id == "d" {
			continue
		}
		if p.DistSq(geom.Pt(5, 5)) < 1e-6*1e-6 {
			split = id
		}
	}
	if split == "" {
		t.Fatal("no split vertex near (5, 5)")
	}
	for _, end := range []string{"a", "b", "c", "d"} {
		if !g.HasEdge(split, end) {
			t.Errorf("missing edge %s-%s", split, end)
		}
	}
	if !Legal(g) {
		t.Error("Legal after Correct = false, want true")
	}
}

func TestCorrectPathGraph(t *testing.T) {
	g := build(t, map[string]geom.Point{
		"a": geom.Pt(0, 0), "b": geom.Pt(10, 0),
		"c": geom.Pt(20, 0), "d": geom.Pt(30, 0),
	}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}})

	Correct(g, nil)

	if !Legal(g) {
		t.Error("Legal after Correct = false, want true")
	}
	adj := g.Adjacency()
	for _, id := range []string{"a", "b", "c", "d"} {
		if adj.Degree(id) < 2 {
			t.Errorf("degree(%s) = %d, want >= 2", id, adj.Degree(id))
		}
	}
}

func TestCorrectMergesComponents(t *testing.T) {
	g := build(t, map[string]geom.Point{
		"a": geom.Pt(0, 0), "b": geom.Pt(10, 0), "c": geom.Pt(5, 10),
		"d": geom.Pt(100, 0), "e": geom.Pt(110, 0), "f": geom.Pt(105, 10),
	}, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"},
		{"d", "e"}, {"e", "f"}, {"f", "d"},
	})

	if Legal(g) {
		t.Fatal("Legal before Correct = true, want false (two components)")
	}

	Correct(g, nil)

	if got := len(g.components(g.Adjacency())); got != 1 {
		t.Errorf("components = %d, want 1", got)
	}
	if !Legal(g) {
		t.Error("Legal after Correct = false, want true")
	}
}

func TestCorrectDegenerateInputs(t *testing.T) {
	tests := []struct {
		name     string
		vertices map[string]geom.Point
	}{
		{"Empty", nil},
		{"SingleVertex", map[string]geom.Point{"a": geom.Pt(0, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.vertices, nil)
			vertices, edges := snapshotSets(g)

			Correct(g, nil)

			sameSets(t, g, vertices, edges)
			if Legal(g) {
				t.Error("Legal = true, want false")
			}
		})
	}
}

// A 2-vertex graph is provably irreparable: degree repair finds work every
// pass but can never add a second edge, so the iteration cap stops the loop.
func TestCorrectIrreparablePair(t *testing.T) {
	g := build(t, map[string]geom.Point{
		"a": geom.Pt(0, 0), "b": geom.Pt(10, 0),
	}, [][2]string{{"a", "b"}})
	vertices, edges := snapshotSets(g)

	stats := Correct(g, nil)

	if stats.Stable {
		t.Error("Stable = true, want false (cap exhausted)")
	}
	sameSets(t, g, vertices, edges)
	if Legal(g) {
		t.Error("Legal = true, want false")
	}
}

func TestCorrectComputesFaces(t *testing.T) {
	g := triangle(t)
	Correct(g, nil)
	// E - V + 2 = 3 - 3 + 2.
	if got := len(g.Faces()); got != 2 {
		t.Errorf("faces = %d, want 2", got)
	}
}

func TestCorrectDegreeRepairUsesNearest(t *testing.T) {
	// d dangles off the triangle; its nearest non-neighbor is b.
	g := build(t, map[string]geom.Point{
		"a": geom.Pt(0, 0), "b": geom.Pt(10, 0), "c": geom.Pt(5, 10),
		"d": geom.Pt(12, 1),
	}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"a", "d"}})

	adj := g.Adjacency()
	low := g.lowDegreeVertices(adj)
	if len(low) != 1 || low[0] != "d" {
		t.Fatalf("lowDegreeVertices = %v, want [d]", low)
	}
	g.repairDegrees(adj, low)

	if !g.HasEdge("d", "b") {
		t.Error("expected repair edge d-b")
	}
	if g.EdgeCount() != 5 {
		t.Errorf("EdgeCount = %d, want 5", g.EdgeCount())
	}
}
