// Package cache provides content-addressed caching for the patchwork
// pipeline. Stages key their results by a hash of their inputs, so a
// re-run over the same image or graph hits the cache instead of
// re-segmenting, re-correcting, or re-rendering.
package cache

import (
	"context"
	"time"
)

// Default TTLs per pipeline stage. Segmentation and correction are pure
// functions of their input, so they can live for a long time; rendered
// artifacts are cheap to rebuild and churn with style options.
const (
	// TTLGraph is the TTL for graphs extracted from segmented images.
	TTLGraph = 7 * 24 * time.Hour

	// TTLCorrection is the TTL for corrected graphs with face decompositions.
	TTLCorrection = 7 * 24 * time.Hour

	// TTLArtifact is the TTL for rendered artifacts (SVG, PNG, DOT).
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage interface for pipeline results.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// GraphKeyOpts captures the segmentation parameters that affect which
// graph an image produces. Two runs with different options must not
// share a cache entry.
type GraphKeyOpts struct {
	Tolerance   float64 `json:"tolerance"`
	MinBlobSize int     `json:"min_blob_size"`
}

// CorrectionKeyOpts captures correction inputs beyond the graph itself.
// ColorsHash is the content hash of the color source fed to face
// decomposition, or empty when faces are left uncolored. Colored and
// uncolored corrections of the same graph must not share a cache entry.
type CorrectionKeyOpts struct {
	ColorsHash string `json:"colors_hash"`
}

// ArtifactKeyOpts captures the render options that affect artifact output.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	VizType      string  `json:"viz_type"`
	ShowVertices bool    `json:"show_vertices"`
	ShowLabels   bool    `json:"show_labels"`
	StrokeWidth  float64 `json:"stroke_width"`
}

// Keyer generates cache keys for each pipeline stage.
type Keyer interface {
	// GraphKey keys the graph extracted from a segmented image.
	// imageHash is the content hash of the source image bytes.
	GraphKey(imageHash string, opts GraphKeyOpts) string

	// CorrectionKey keys a corrected graph and its face decomposition.
	// graphHash is the content hash of the serialized input graph.
	CorrectionKey(graphHash string, opts CorrectionKeyOpts) string

	// ArtifactKey keys a rendered artifact derived from a corrected graph.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates hash-based cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for graph extraction results.
func (k *DefaultKeyer) GraphKey(imageHash string, opts GraphKeyOpts) string {
	return hashKey("graph", imageHash, opts)
}

// CorrectionKey generates a key for correction results.
func (k *DefaultKeyer) CorrectionKey(graphHash string, opts CorrectionKeyOpts) string {
	return hashKey("correction", graphHash, opts)
}

// ArtifactKey generates a key for rendered artifacts.
func (k *DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
