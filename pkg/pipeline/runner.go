package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/patchworklabs/patchwork/pkg/cache"
	"github.com/patchworklabs/patchwork/pkg/graph"
	"github.com/patchworklabs/patchwork/pkg/observability"
	"github.com/patchworklabs/patchwork/pkg/quilt"
	"github.com/patchworklabs/patchwork/pkg/segment"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete segment → correct → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Segment (skipped when a graph is supplied directly)
	segmentStart := time.Now()
	g := opts.Graph
	var colors quilt.ColorSource
	if g == nil {
		raw, seg, segmentHit, err := r.SegmentWithCacheInfo(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("segment: %w", err)
		}
		g = raw
		colors = seg
		result.CacheInfo.SegmentHit = segmentHit
		result.Stats.SegmentTime = time.Since(segmentStart)

		r.Logger.Info("segmented image",
			"vertices", g.VertexCount(),
			"edges", g.EdgeCount(),
			"duration", result.Stats.SegmentTime)
	}

	// Stage 2: Correct
	correctStart := time.Now()
	corrected, stats, correctHit, err := r.CorrectWithCacheInfo(ctx, g, colors, opts)
	if err != nil {
		return nil, fmt.Errorf("correct: %w", err)
	}
	result.Graph = corrected
	result.Correction = stats
	result.CacheInfo.CorrectHit = correctHit
	result.Stats.CorrectTime = time.Since(correctStart)
	result.Stats.VertexCount = corrected.VertexCount()
	result.Stats.EdgeCount = corrected.EdgeCount()
	result.Stats.FaceCount = len(corrected.Faces())

	// Compute graph hash for cache keys and API responses
	if graphData, err := graph.MarshalGraph(corrected); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	r.Logger.Info("corrected graph",
		"passes", stats.Passes,
		"stable", stats.Stable,
		"faces", result.Stats.FaceCount,
		"duration", result.Stats.CorrectTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, corrected, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SegmentWithCacheInfo segments an image with caching and returns cache hit info.
func (r *Runner) SegmentWithCacheInfo(ctx context.Context, opts Options) (*quilt.Graph, *segment.Segmentation, bool, error) {
	if err := opts.ValidateForSegment(); err != nil {
		return nil, nil, false, err
	}
	r.applyLogger(&opts)

	img, imgData, err := loadImage(opts.ImagePath)
	if err != nil {
		return nil, nil, false, err
	}

	cacheKey := r.Keyer.GraphKey(cache.Hash(imgData), opts.GraphKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var payload segmentPayload
			if err := json.Unmarshal(data, &payload); err == nil {
				if g, err := graph.ToQuilt(payload.Graph); err == nil {
					observability.Cache().OnCacheHit(ctx, "graph")
					return g, payload.Segmentation, true, nil // Cache hit
				}
			}
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	observability.Pipeline().OnSegmentStart(ctx, opts.ImagePath)
	start := time.Now()
	g, seg, err := segmentImage(img, opts)
	if err != nil {
		observability.Pipeline().OnSegmentComplete(ctx, opts.ImagePath, 0, time.Since(start), err)
		return nil, nil, false, err
	}
	observability.Pipeline().OnSegmentComplete(ctx, opts.ImagePath, g.VertexCount(), time.Since(start), nil)

	// Cache the result
	payload := segmentPayload{Graph: graph.FromQuilt(g), Segmentation: seg}
	if data, err := json.Marshal(payload); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph)
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}

	return g, seg, false, nil // Cache miss
}

// Segment is a convenience wrapper that calls SegmentWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Segment(ctx context.Context, opts Options) (*quilt.Graph, *segment.Segmentation, error) {
	g, seg, _, err := r.SegmentWithCacheInfo(ctx, opts)
	return g, seg, err
}

// correctionPayload is the cache format for the correct stage.
type correctionPayload struct {
	Graph graph.Graph `json:"graph"`
	Stats quilt.Stats `json:"stats"`
}

// CorrectWithCacheInfo corrects a graph with caching and returns cache hit
// info. The input graph is not mutated; the corrected graph is returned with
// its face decomposition populated.
func (r *Runner) CorrectWithCacheInfo(ctx context.Context, g *quilt.Graph, colors quilt.ColorSource, opts Options) (*quilt.Graph, quilt.Stats, bool, error) {
	r.applyLogger(&opts)

	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, quilt.Stats{}, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	// The color source changes the face colors of the output, so colored
	// and uncolored corrections of the same graph need distinct keys.
	keyOpts := cache.CorrectionKeyOpts{}
	cacheable := true
	if colors != nil {
		if colorData, err := json.Marshal(colors); err == nil {
			keyOpts.ColorsHash = cache.Hash(colorData)
		} else {
			cacheable = false
		}
	}
	cacheKey := r.Keyer.CorrectionKey(cache.Hash(graphData), keyOpts)

	// Try cache first (unless refresh requested)
	if !opts.Refresh && cacheable {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var payload correctionPayload
			if err := json.Unmarshal(data, &payload); err == nil {
				if corrected, err := graph.ToQuilt(payload.Graph); err == nil {
					observability.Cache().OnCacheHit(ctx, "correction")
					return corrected, payload.Stats, true, nil // Cache hit
				}
			}
		}
		observability.Cache().OnCacheMiss(ctx, "correction")
	}

	observability.Pipeline().OnCorrectStart(ctx, g.VertexCount())
	start := time.Now()
	corrected := g.Clone()
	stats := quilt.Correct(corrected, colors)
	observability.Pipeline().OnCorrectComplete(ctx, stats.Passes, stats.Stable, time.Since(start))

	// Cache the result
	payload := correctionPayload{Graph: graph.FromQuilt(corrected), Stats: stats}
	if data, err := json.Marshal(payload); err == nil && cacheable {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLCorrection)
		observability.Cache().OnCacheSet(ctx, "correction", len(data))
	}

	return corrected, stats, false, nil // Cache miss
}

// Correct is a convenience wrapper that calls CorrectWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Correct(ctx context.Context, g *quilt.Graph, colors quilt.ColorSource, opts Options) (*quilt.Graph, quilt.Stats, error) {
	corrected, stats, _, err := r.CorrectWithCacheInfo(ctx, g, colors, opts)
	return corrected, stats, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *quilt.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	graphHash := cache.Hash(graphData)

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderGraph(g, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *quilt.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
