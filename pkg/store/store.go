// Package store provides persistence for corrected quilts.
//
// This package defines the storage interface for saved correction results,
// with implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for server deployments
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "patchwork")
//
// Save and load quilts:
//
//	q := store.NewQuilt("nine-patch", corrected, stats)
//	if err := st.Put(ctx, q); err != nil {
//	    return err
//	}
//
//	q, err := st.Get(ctx, q.ID)
//	if errors.Is(err, store.ErrNotFound) {
//	    // Unknown quilt ID
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/patchworklabs/patchwork/pkg/graph"
	"github.com/patchworklabs/patchwork/pkg/quilt"
)

// ErrNotFound is returned when a quilt does not exist.
var ErrNotFound = errors.New("not found")

// Quilt is a stored correction result. The graph is kept in its wire
// format so documents remain readable without the quilt package.
type Quilt struct {
	ID         string      `json:"id" bson:"_id"`
	Name       string      `json:"name,omitempty" bson:"name,omitempty"`
	Graph      graph.Graph `json:"graph" bson:"graph"`
	GraphHash  string      `json:"graph_hash" bson:"graph_hash"`
	Correction quilt.Stats `json:"correction" bson:"correction"`
	CreatedAt  time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" bson:"updated_at"`
}

// NewQuilt creates a storable document from a corrected graph.
// The ID is a freshly minted UUID.
func NewQuilt(name string, g *quilt.Graph, stats quilt.Stats) *Quilt {
	now := time.Now().UTC()
	return &Quilt{
		ID:         uuid.NewString(),
		Name:       name,
		Graph:      graph.FromQuilt(g),
		Correction: stats,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Store is the interface for quilt storage backends.
type Store interface {
	// Get retrieves a quilt by ID.
	// Returns ErrNotFound if the quilt doesn't exist.
	Get(ctx context.Context, id string) (*Quilt, error)

	// Put stores a quilt, replacing any existing document with the same ID.
	Put(ctx context.Context, q *Quilt) error

	// Delete removes a quilt. Deleting an unknown ID returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns quilts ordered by creation time, newest first.
	// A limit of 0 returns everything.
	List(ctx context.Context, limit int) ([]*Quilt, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
