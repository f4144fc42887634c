package quilt

import (
	"fmt"
	"testing"

	"github.com/patchworklabs/patchwork/pkg/geom"
)

func TestBridges(t *testing.T) {
	tests := []struct {
		name     string
		vertices map[string]geom.Point
		edges    [][2]string
		want     []Edge
	}{
		{
			name: "Triangle",
			vertices: map[string]geom.Point{
				"a": geom.Pt(0, 0), "b": geom.Pt(10, 0), "c": geom.Pt(5, 10),
			},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}},
			want:  nil,
		},
		{
			name: "Path",
			vertices: map[string]geom.Point{
				"a": geom.Pt(0, 0), "b": geom.Pt(10, 0), "c": geom.Pt(20, 0),
			},
			edges: [][2]string{{"a", "b"}, {"b", "c"}},
			want:  []Edge{{U: "a", V: "b"}, {U: "b", V: "c"}},
		},
		{
			name: "TrianglesJoinedByOneEdge",
			vertices: map[string]geom.Point{
				"a": geom.Pt(0, 0), "b": geom.Pt(10, 0), "c": geom.Pt(5, 10),
				"d": geom.Pt(100, 0), "e": geom.Pt(110, 0), "f": geom.Pt(105, 10),
			},
			edges: [][2]string{
				{"a", "b"}, {"b", "c"}, {"c", "a"},
				{"d", "e"}, {"e", "f"}, {"f", "d"},
				{"b", "d"},
			},
			want: []Edge{{U: "b", V: "d"}},
		},
		{
			name: "TwoDisconnectedPaths",
			vertices: map[string]geom.Point{
				"a": geom.Pt(0, 0), "b": geom.Pt(1, 0),
				"c": geom.Pt(10, 0), "d": geom.Pt(11, 0),
			},
			edges: [][2]string{{"a", "b"}, {"c", "d"}},
			want:  []Edge{{U: "a", V: "b"}, {U: "c", V: "d"}},
		},
		{
			name: "Square",
			vertices: map[string]geom.Point{
				"a": geom.Pt(0, 0), "b": geom.Pt(10, 0),
				"c": geom.Pt(10, 10), "d": geom.Pt(0, 10),
			},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"}},
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.vertices, tt.edges)
			got := g.Bridges(g.Adjacency())
			if len(got) != len(tt.want) {
				t.Fatalf("Bridges = %v, want %v", got, tt.want)
			}
			for i, e := range got {
				if e != tt.want[i] {
					t.Errorf("Bridges[%d] = %v, want %v", i, e, tt.want[i])
				}
			}
		})
	}
}

// A long chain would overflow the call stack with a recursive DFS; the
// explicit frame stack must handle it and report every edge as a bridge.
func TestBridgesLongChain(t *testing.T) {
	const n = 5000
	g := New()
	for i := 0; i < n; i++ {
		if err := g.AddVertex(fmt.Sprintf("n%d", i), geom.Pt(float64(i), 0)); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < n-1; i++ {
		if err := g.AddEdge(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", i+1)); err != nil {
			t.Fatal(err)
		}
	}

	got := g.Bridges(g.Adjacency())
	if len(got) != n-1 {
		t.Errorf("bridge count = %d, want %d", len(got), n-1)
	}
}

func TestRepairBridgeClosesCycle(t *testing.T) {
	g := build(t, map[string]geom.Point{
		"a": geom.Pt(0, 0), "b": geom.Pt(10, 0), "c": geom.Pt(5, 10),
		"d": geom.Pt(100, 0), "e": geom.Pt(110, 0), "f": geom.Pt(105, 10),
	}, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "a"},
		{"d", "e"}, {"e", "f"}, {"f", "d"},
		{"b", "d"},
	})

	adj := g.Adjacency()
	bridges := g.Bridges(adj)
	if len(bridges) != 1 {
		t.Fatalf("bridges = %v, want exactly one", bridges)
	}
	g.repairBridge(adj, bridges[0])

	if got := g.Bridges(g.Adjacency()); len(got) != 0 {
		t.Errorf("bridges after repair = %v, want none", got)
	}
	if g.EdgeCount() != 8 {
		t.Errorf("EdgeCount = %d, want 8", g.EdgeCount())
	}
}

// A bare two-vertex graph has no pair other than the bridge's own endpoints,
// so repair falls back to the no-op insertion and the bridge survives.
func TestRepairBridgeIrreparable(t *testing.T) {
	g := build(t, map[string]geom.Point{
		"a": geom.Pt(0, 0), "b": geom.Pt(10, 0),
	}, [][2]string{{"a", "b"}})

	adj := g.Adjacency()
	g.repairBridge(adj, NewEdge("a", "b"))

	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1 (no-op repair)", g.EdgeCount())
	}
	if got := g.Bridges(g.Adjacency()); len(got) != 1 {
		t.Errorf("bridges = %v, want the original bridge", got)
	}
}
