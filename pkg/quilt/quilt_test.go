package quilt

import (
	"errors"
	"testing"

	"github.com/patchworklabs/patchwork/pkg/geom"
)

// build constructs a graph from vertex positions and edges, failing the test
// on any construction error.
func build(t *testing.T, vertices map[string]geom.Point, edges [][2]string) *Graph {
	t.Helper()
	g := New()
	for id, p := range vertices {
		if err := g.AddVertex(id, p); err != nil {
			t.Fatalf("AddVertex(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%s, %s): %v", e[0], e[1], err)
		}
	}
	return g
}

// triangle returns the legal triangle fixture a(0,0), b(10,0), c(5,10).
func triangle(t *testing.T) *Graph {
	t.Helper()
	return build(t, map[string]geom.Point{
		"a": geom.Pt(0, 0),
		"b": geom.Pt(10, 0),
		"c": geom.Pt(5, 10),
	}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
}

func TestAddVertex(t *testing.T) {
	g := New()
	if err := g.AddVertex("", geom.Pt(0, 0)); !errors.Is(err, ErrInvalidVertexID) {
		t.Errorf("empty ID: err = %v, want ErrInvalidVertexID", err)
	}
	if err := g.AddVertex("a", geom.Pt(0, 0)); err != nil {
		t.Fatalf("AddVertex: %v", err)
	}
	if err := g.AddVertex("a", geom.Pt(1, 1)); !errors.Is(err, ErrDuplicateVertexID) {
		t.Errorf("duplicate ID: err = %v, want ErrDuplicateVertexID", err)
	}
}

func TestAddEdge(t *testing.T) {
	g := build(t, map[string]geom.Point{
		"a": geom.Pt(0, 0),
		"b": geom.Pt(1, 0),
	}, nil)

	if err := g.AddEdge("a", "a"); !errors.Is(err, ErrSelfLoop) {
		t.Errorf("self-loop: err = %v, want ErrSelfLoop", err)
	}
	if err := g.AddEdge("a", "missing"); !errors.Is(err, ErrUnknownVertex) {
		t.Errorf("unknown endpoint: err = %v, want ErrUnknownVertex", err)
	}

	if err := g.AddEdge("a", "b"); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	// Both orientations de-duplicate to the same edge.
	if err := g.AddEdge("b", "a"); err != nil {
		t.Fatalf("AddEdge reversed: %v", err)
	}
	if got := g.EdgeCount(); got != 1 {
		t.Errorf("EdgeCount = %d, want 1", got)
	}
	if !g.HasEdge("b", "a") {
		t.Error("HasEdge(b, a) = false, want true")
	}
}

func TestRemoveEdge(t *testing.T) {
	g := triangle(t)
	g.RemoveEdge("c", "b") // reversed orientation
	if g.HasEdge("b", "c") {
		t.Error("edge b-c still present after RemoveEdge")
	}
	if got := g.EdgeCount(); got != 2 {
		t.Errorf("EdgeCount = %d, want 2", got)
	}
	g.RemoveEdge("b", "c") // removing again is a no-op
	if got := g.EdgeCount(); got != 2 {
		t.Errorf("EdgeCount after double remove = %d, want 2", got)
	}
}

func TestMintVertex(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{"Empty", nil, "v1"},
		{"NoSuffix", []string{"a", "b"}, "v1"},
		{"Suffixed", []string{"v3", "v7"}, "v8"},
		{"Mixed", []string{"a", "junction12", "v4"}, "v13"},
		{"BareNumbers", []string{"3", "9"}, "v10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			for i, id := range tt.ids {
				if err := g.AddVertex(id, geom.Pt(float64(i), 0)); err != nil {
					t.Fatalf("AddVertex(%s): %v", id, err)
				}
			}
			if got := g.MintVertex(geom.Pt(0, 0)); got != tt.want {
				t.Errorf("MintVertex = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMintVertexNeverCollides(t *testing.T) {
	g := New()
	if err := g.AddVertex("v2", geom.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	first := g.MintVertex(geom.Pt(1, 0))
	second := g.MintVertex(geom.Pt(2, 0))
	if first == second || first == "v2" || second == "v2" {
		t.Errorf("minted IDs collide: %s, %s", first, second)
	}
}

func TestAdjacency(t *testing.T) {
	g := triangle(t)
	if err := g.AddVertex("lone", geom.Pt(50, 50)); err != nil {
		t.Fatal(err)
	}

	adj := g.Adjacency()
	if got := adj.Degree("a"); got != 2 {
		t.Errorf("Degree(a) = %d, want 2", got)
	}
	if got := adj.Degree("lone"); got != 0 {
		t.Errorf("Degree(lone) = %d, want 0", got)
	}
	if _, ok := adj["lone"]; !ok {
		t.Error("isolated vertex missing from adjacency")
	}
	if got := adj.Neighbors("b"); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("Neighbors(b) = %v, want [a c]", got)
	}

	// The snapshot does not track later mutations.
	g.RemoveEdge("a", "b")
	if got := adj.Degree("a"); got != 2 {
		t.Errorf("snapshot Degree(a) after removal = %d, want 2", got)
	}
}

func TestClone(t *testing.T) {
	g := triangle(t)
	DecomposeFaces(g, nil)

	c := g.Clone()
	c.RemoveEdge("a", "b")
	if err := c.AddVertex("d", geom.Pt(99, 99)); err != nil {
		t.Fatal(err)
	}

	if g.EdgeCount() != 3 {
		t.Errorf("original EdgeCount = %d, want 3", g.EdgeCount())
	}
	if g.VertexCount() != 3 {
		t.Errorf("original VertexCount = %d, want 3", g.VertexCount())
	}
	if len(c.Faces()) != len(g.Faces()) {
		t.Errorf("clone faces = %d, want %d", len(c.Faces()), len(g.Faces()))
	}
}

func TestComponents(t *testing.T) {
	tests := []struct {
		name     string
		vertices map[string]geom.Point
		edges    [][2]string
		want     int
	}{
		{
			name:     "Empty",
			vertices: nil,
			want:     0,
		},
		{
			name:     "Single",
			vertices: map[string]geom.Point{"a": geom.Pt(0, 0)},
			want:     1,
		},
		{
			name: "Connected",
			vertices: map[string]geom.Point{
				"a": geom.Pt(0, 0), "b": geom.Pt(1, 0), "c": geom.Pt(2, 0),
			},
			edges: [][2]string{{"a", "b"}, {"b", "c"}},
			want:  1,
		},
		{
			name: "TwoPieces",
			vertices: map[string]geom.Point{
				"a": geom.Pt(0, 0), "b": geom.Pt(1, 0),
				"c": geom.Pt(10, 0), "d": geom.Pt(11, 0),
			},
			edges: [][2]string{{"a", "b"}, {"c", "d"}},
			want:  2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.vertices, tt.edges)
			if got := len(g.components(g.Adjacency())); got != tt.want {
				t.Errorf("components = %d, want %d", got, tt.want)
			}
		})
	}
}
