package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/patchworklabs/patchwork/pkg/geom"
	"github.com/patchworklabs/patchwork/pkg/quilt"
)

func sampleQuilt(t *testing.T, name string) *Quilt {
	t.Helper()
	g := quilt.New()
	for id, p := range map[string]geom.Point{
		"a": geom.Pt(0, 0), "b": geom.Pt(10, 0), "c": geom.Pt(5, 10),
	} {
		if err := g.AddVertex(id, p); err != nil {
			t.Fatalf("AddVertex(%s): %v", id, err)
		}
	}
	for _, e := range [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}} {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%s,%s): %v", e[0], e[1], err)
		}
	}
	return NewQuilt(name, g, quilt.Stats{Stable: true})
}

func TestNewQuilt(t *testing.T) {
	q := sampleQuilt(t, "triangle")

	if q.ID == "" {
		t.Error("expected a minted ID")
	}
	if q.Name != "triangle" {
		t.Errorf("name = %q", q.Name)
	}
	if len(q.Graph.Vertices) != 3 || len(q.Graph.Edges) != 3 {
		t.Errorf("graph = %d vertices, %d edges; want 3, 3",
			len(q.Graph.Vertices), len(q.Graph.Edges))
	}
	if q.CreatedAt.IsZero() || q.UpdatedAt.IsZero() {
		t.Error("expected timestamps")
	}

	// IDs must be unique across documents.
	if other := sampleQuilt(t, "other"); other.ID == q.ID {
		t.Error("two quilts share an ID")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	q := sampleQuilt(t, "triangle")
	if err := s.Put(ctx, q); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, q.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != q.Name || got.ID != q.ID {
		t.Errorf("got %+v, want %+v", got, q)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	q := sampleQuilt(t, "triangle")
	if err := s.Put(ctx, q); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, q.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, q.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, q.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	older := sampleQuilt(t, "older")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := sampleQuilt(t, "newer")

	for _, q := range []*Quilt{older, newer} {
		if err := s.Put(ctx, q); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].Name != "newer" || all[1].Name != "older" {
		t.Errorf("order = [%s, %s], want newest first", all[0].Name, all[1].Name)
	}

	limited, err := s.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Name != "newer" {
		t.Errorf("limited list = %v", limited)
	}
}

func TestMemoryStoreCopiesOnRead(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	q := sampleQuilt(t, "triangle")
	if err := s.Put(ctx, q); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, q.ID)
	if err != nil {
		t.Fatal(err)
	}
	got.Name = "mutated"

	again, err := s.Get(ctx, q.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.Name != "triangle" {
		t.Error("mutation through a returned document leaked into the store")
	}
}
