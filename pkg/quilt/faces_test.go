package quilt

import (
	"testing"

	"github.com/patchworklabs/patchwork/pkg/geom"
)

// square returns the 4-cycle a(0,0) b(10,0) c(10,10) d(0,10).
func square(t *testing.T) *Graph {
	t.Helper()
	return build(t, map[string]geom.Point{
		"a": geom.Pt(0, 0), "b": geom.Pt(10, 0),
		"c": geom.Pt(10, 10), "d": geom.Pt(0, 10),
	}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"}})
}

func TestDecomposeFacesSquare(t *testing.T) {
	g := square(t)
	DecomposeFaces(g, nil)

	// E - V + 2 = 4 - 4 + 2.
	faces := g.Faces()
	if len(faces) != 2 {
		t.Fatalf("faces = %d, want 2", len(faces))
	}
	for id, f := range faces {
		if len(f.Vertices) != 4 {
			t.Errorf("face %s has %d vertices, want 4", id, len(f.Vertices))
		}
		if f.Color != nil {
			t.Errorf("face %s has color without a source", id)
		}
	}
}

func TestDecomposeFacesTriangulatedSquare(t *testing.T) {
	g := square(t)
	if err := g.AddEdge("a", "c"); err != nil {
		t.Fatal(err)
	}
	DecomposeFaces(g, nil)

	// E - V + 2 = 5 - 4 + 2: two bounded triangles and the exterior.
	faces := g.Faces()
	if len(faces) != 3 {
		t.Fatalf("faces = %d, want 3", len(faces))
	}
	triangles, quads := 0, 0
	for _, f := range faces {
		switch len(f.Vertices) {
		case 3:
			triangles++
		case 4:
			quads++
		}
	}
	if triangles != 2 || quads != 1 {
		t.Errorf("got %d triangles and %d quads, want 2 and 1", triangles, quads)
	}
}

// Each walk step consumes exactly one directed edge, so the face vertex
// sequences partition the 2E directed edges.
func TestDecomposeFacesCoversDirectedEdges(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) *Graph
	}{
		{"Triangle", triangle},
		{"Square", square},
		{
			"TriangulatedSquare",
			func(t *testing.T) *Graph {
				g := square(t)
				if err := g.AddEdge("a", "c"); err != nil {
					t.Fatal(err)
				}
				return g
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.build(t)
			DecomposeFaces(g, nil)

			total := 0
			for _, f := range g.Faces() {
				total += len(f.Vertices)
			}
			if want := 2 * g.EdgeCount(); total != want {
				t.Errorf("total face vertices = %d, want %d", total, want)
			}
		})
	}
}

func TestDecomposeFacesEmptyGraph(t *testing.T) {
	g := New()
	DecomposeFaces(g, nil)
	if len(g.Faces()) != 0 {
		t.Errorf("faces = %d, want 0", len(g.Faces()))
	}
}

func TestDecomposeFacesReplacesPrevious(t *testing.T) {
	g := triangle(t)
	DecomposeFaces(g, nil)
	first := len(g.Faces())
	DecomposeFaces(g, nil)
	if len(g.Faces()) != first {
		t.Errorf("faces after rerun = %d, want %d", len(g.Faces()), first)
	}
}

// colorAtFunc adapts a function to the ColorSource interface.
type colorAtFunc func(p geom.Point) (Color, bool)

func (f colorAtFunc) ColorAt(p geom.Point) (Color, bool) { return f(p) }

func TestDecomposeFacesSamplesColors(t *testing.T) {
	g := square(t)

	red := Color{R: 200, G: 30, B: 30}
	var sampled []geom.Point
	// Both traces of the square visit the same four vertices, so both
	// centroids land on (5, 5) - the exterior face is sampled like any other.
	src := colorAtFunc(func(p geom.Point) (Color, bool) {
		sampled = append(sampled, p)
		if p.DistSq(geom.Pt(5, 5)) < 1e-12 {
			return red, true
		}
		return Color{}, false
	})

	DecomposeFaces(g, src)

	if len(sampled) != len(g.Faces()) {
		t.Errorf("sampled %d centroids, want %d", len(sampled), len(g.Faces()))
	}
	colored := 0
	for _, f := range g.Faces() {
		if f.Color != nil {
			colored++
			if *f.Color != red {
				t.Errorf("face color = %v, want %v", *f.Color, red)
			}
		}
	}
	if colored != 2 {
		t.Errorf("colored faces = %d, want 2", colored)
	}
}
