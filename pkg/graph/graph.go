// Package graph provides serialization types for quilt graphs.
//
// This package defines the canonical wire format for Patchwork's graph data,
// used for JSON files, API responses, caching, and document storage. It sits
// at the boundary between the internal representation (pkg/quilt.Graph) and
// external formats:
//
//	g, _ := graph.ReadGraphFile("raw.json")   // File → quilt.Graph
//	graph.WriteGraphFile(g, "corrected.json") // quilt.Graph → File
//	data, _ := graph.MarshalGraph(g)          // quilt.Graph → []byte
//
// The format is human-readable and designed for round-trip fidelity: import,
// correct, export, re-import produces identical vertex and edge sets. Faces
// are included when present but are derived data; the vertex and edge sets
// remain the source of truth.
package graph

import (
	"cmp"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/patchworklabs/patchwork/pkg/geom"
	"github.com/patchworklabs/patchwork/pkg/quilt"
)

// Graph is the canonical serialization format for quilt graphs.
type Graph struct {
	Vertices map[string]geom.Point `json:"vertices" bson:"vertices"`
	Edges    []Edge                `json:"edges" bson:"edges"`
	Faces    map[string]Face       `json:"faces,omitempty" bson:"faces,omitempty"`
}

// Edge represents an undirected edge between two vertices.
type Edge struct {
	U string `json:"u" bson:"u"`
	V string `json:"v" bson:"v"`
}

// Face represents one traced face boundary with an optional fill color.
type Face struct {
	Vertices []string     `json:"vertices" bson:"vertices"`
	Color    *quilt.Color `json:"color,omitempty" bson:"color,omitempty"`
}

// FromQuilt converts a quilt graph to its serialization format.
// Edges are sorted for deterministic output.
func FromQuilt(g *quilt.Graph) Graph {
	out := Graph{
		Vertices: g.Vertices(),
		Edges:    make([]Edge, 0, g.EdgeCount()),
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, Edge{U: e.U, V: e.V})
	}
	slices.SortFunc(out.Edges, func(a, b Edge) int {
		if c := cmp.Compare(a.U, b.U); c != 0 {
			return c
		}
		return cmp.Compare(a.V, b.V)
	})

	if faces := g.Faces(); len(faces) > 0 {
		out.Faces = make(map[string]Face, len(faces))
		for id, f := range faces {
			wf := Face{Vertices: append([]string(nil), f.Vertices...)}
			if f.Color != nil {
				c := *f.Color
				wf.Color = &c
			}
			out.Faces[id] = wf
		}
	}
	return out
}

// ToQuilt converts a serialized Graph to a quilt graph.
// Returns an error if the structure violates graph constraints (duplicate or
// empty vertex IDs, edges with missing endpoints, self-loops). Faces are
// restored when present so cached decompositions survive the round trip.
func ToQuilt(gj Graph) (*quilt.Graph, error) {
	g := quilt.New()
	for _, id := range slices.Sorted(maps.Keys(gj.Vertices)) {
		if err := g.AddVertex(id, gj.Vertices[id]); err != nil {
			return nil, fmt.Errorf("add vertex %s: %w", id, err)
		}
	}
	for _, e := range gj.Edges {
		if err := g.AddEdge(e.U, e.V); err != nil {
			return nil, fmt.Errorf("add edge %s-%s: %w", e.U, e.V, err)
		}
	}
	if len(gj.Faces) > 0 {
		faces := make(map[string]quilt.Face, len(gj.Faces))
		for id, f := range gj.Faces {
			faces[id] = quilt.Face{Vertices: f.Vertices, Color: f.Color}
		}
		g.RestoreFaces(faces)
	}
	return g, nil
}

// MarshalGraph serializes a quilt graph to JSON bytes.
func MarshalGraph(g *quilt.Graph) ([]byte, error) {
	return json.Marshal(FromQuilt(g))
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}
