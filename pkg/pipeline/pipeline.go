// Package pipeline provides the core correction pipeline for Patchwork.
//
// This package implements the complete segment → correct → render pipeline
// that can be used by CLI, API, and worker components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Segment: Decompose a raster image into color blobs and extract the
//     blob-adjacency graph
//  2. Correct: Repair the graph until it is legal and decompose its faces
//  3. Render: Generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// A pre-built graph can also be fed directly into the correct stage,
// skipping segmentation entirely.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    ImagePath: "quilt.png",
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Segment only
//	g, seg, err := runner.Segment(ctx, opts)
//
//	// Correct an existing graph
//	corrected, stats, err := runner.Correct(ctx, g, seg, opts)
//
//	// Render a corrected graph
//	artifacts, err := runner.Render(ctx, corrected, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/patchworklabs/patchwork/pkg/cache"
	"github.com/patchworklabs/patchwork/pkg/quilt"
	"github.com/patchworklabs/patchwork/pkg/segment"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultTolerance is the segmentation color tolerance (squared RGB
	// distance). Matches segment.DefaultTolerance.
	DefaultTolerance = segment.DefaultTolerance

	// DefaultMinBlobSize drops blobs below this pixel count as noise.
	DefaultMinBlobSize = 4

	// DefaultScale is the PNG scale factor (2x for high-DPI displays).
	DefaultScale = 2.0

	// DefaultStrokeWidth is the seam line width in the patch rendering.
	DefaultStrokeWidth = 1.0
)

// Visualization types.
const (
	VizTypePatch    = "patch"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypePatch

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypePatch:    true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the correction pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Segment options
	ImagePath   string  `json:"image_path,omitempty"`
	Tolerance   float64 `json:"tolerance,omitempty"`
	MinBlobSize int     `json:"min_blob_size,omitempty"`
	Refresh     bool    `json:"refresh,omitempty"`

	// Render options
	VizType      string   `json:"viz_type,omitempty"`
	Formats      []string `json:"formats,omitempty"`
	ShowVertices bool     `json:"show_vertices,omitempty"`
	ShowLabels   bool     `json:"show_labels,omitempty"`
	StrokeWidth  float64  `json:"stroke_width,omitempty"`
	Scale        float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Graph feeds a pre-built graph directly into the correct stage.
	// When set, ImagePath is ignored and no segmentation runs.
	Graph *quilt.Graph `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the corrected graph including its face decomposition.
	Graph *quilt.Graph

	// GraphHash is the content hash of the corrected graph.
	GraphHash string

	// Correction reports the correction loop outcome.
	Correction quilt.Stats

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	EdgeCount   int
	FaceCount   int
	SegmentTime time.Duration
	CorrectTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SegmentHit bool // Whether the segment result came from cache
	CorrectHit bool // Whether the correction result came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return fmt.Errorf("invalid viz_type: %q (must be one of: patch, nodelink)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSegment(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSegment checks required fields for segmentation.
func (o *Options) ValidateForSegment() error {
	if o.ImagePath == "" && o.Graph == nil {
		return fmt.Errorf("image_path or graph is required")
	}

	// Segment defaults
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MinBlobSize == 0 {
		o.MinBlobSize = DefaultMinBlobSize
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.StrokeWidth == 0 {
		o.StrokeWidth = DefaultStrokeWidth
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// IsPatch returns true if this is a patch visualization.
func (o *Options) IsPatch() bool {
	return o.VizType == "" || o.VizType == VizTypePatch
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// GraphKeyOpts returns cache key options for segmentation.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		Tolerance:   o.Tolerance,
		MinBlobSize: o.MinBlobSize,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:       format,
		VizType:      o.VizType,
		ShowVertices: o.ShowVertices,
		ShowLabels:   o.ShowLabels,
		StrokeWidth:  o.StrokeWidth,
	}
}
