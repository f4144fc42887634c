package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-memory quilt store for development and testing.
// Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	quilts map[string]*Quilt
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		quilts: make(map[string]*Quilt),
	}
}

// Get retrieves a quilt by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Quilt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.quilts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *q
	return &cp, nil
}

// Put stores a quilt, replacing any existing document with the same ID.
func (s *MemoryStore) Put(ctx context.Context, q *Quilt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *q
	s.quilts[q.ID] = &cp
	return nil
}

// Delete removes a quilt.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quilts[id]; !ok {
		return ErrNotFound
	}
	delete(s.quilts, id)
	return nil
}

// List returns quilts ordered by creation time, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Quilt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Quilt, 0, len(s.quilts))
	for _, q := range s.quilts {
		cp := *q
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *Quilt) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
