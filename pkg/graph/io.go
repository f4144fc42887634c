package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/patchworklabs/patchwork/pkg/quilt"
)

// ReadGraph decodes a quilt graph from JSON read from r.
func ReadGraph(r io.Reader) (*quilt.Graph, error) {
	var gj Graph
	if err := json.NewDecoder(r).Decode(&gj); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToQuilt(gj)
}

// WriteGraph encodes a quilt graph as indented JSON and writes it to w.
// The output can be re-imported with [ReadGraph] for round-trip processing.
func WriteGraph(g *quilt.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromQuilt(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadGraphFile reads a quilt graph from a JSON file at path.
func ReadGraphFile(path string) (*quilt.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// WriteGraphFile writes a quilt graph to a JSON file at path.
func WriteGraphFile(g *quilt.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}
