// Package pkg provides the core libraries for Patchwork quilt correction.
//
// # Overview
//
// Patchwork turns raster images into legal quilt graphs: planar graphs whose
// seams never cross, never dangle, and always close into faces that can be
// cut as patches. The pkg directory is organized into four main areas:
//
//  1. Geometry and graph domain ([geom], [quilt], [segment])
//  2. Serialization ([graph])
//  3. Rendering ([render], [render/svg], [render/nodelink])
//  4. Infrastructure ([cache], [store], [pipeline], [errors], [observability])
//
// # Architecture
//
// The typical data flow through Patchwork:
//
//	Raster image
//	     ↓
//	[segment] package (flood-fill blobs, extract seam graph)
//	     ↓
//	[quilt] package (correction loop + face decomposition)
//	     ↓
//	[render] packages (patch SVG, node-link diagrams)
//	     ↓
//	SVG/PNG/PDF/DOT/JSON output
//
// # Quick Start
//
// Correct a graph and render its patches:
//
//	import (
//	    "context"
//	    "github.com/patchworklabs/patchwork/pkg/graph"
//	    "github.com/patchworklabs/patchwork/pkg/pipeline"
//	)
//
//	g, _ := graph.ReadGraphFile("quilt.json")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	corrected, stats, _ := runner.Correct(context.Background(), g, nil, pipeline.Options{})
//	artifacts, _ := runner.Render(context.Background(), corrected, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG},
//	})
//
// # Main Packages
//
// ## Domain Logic
//
// [geom] - Planar geometry primitives: points, segments, orientation tests,
// proper segment intersection, and signed polygon area.
//
// [quilt] - The quilt graph and its correction loop. Repairs low-degree
// vertices, merges components, removes bridges, resolves crossing seams, and
// decomposes the corrected graph into faces by angular half-edge traversal.
//
// [segment] - Image segmentation: tolerance-based flood fill into color
// blobs and extraction of the seam graph from blob boundaries.
//
// ## Serialization
//
// [graph] - The canonical wire format for quilt graphs, used for JSON files,
// API responses, caching, and document storage.
//
// ## Rendering
//
// [render/svg] - Patch rendering: faces painted with their sampled colors,
// seams drawn on top.
//
// [render/nodelink] - Position-preserving node-link diagrams via Graphviz.
//
// [render] - Top-level utilities for format conversion (SVG to PDF/PNG).
//
// ## Infrastructure
//
// [pipeline] - Complete correction pipeline (segment → correct → render)
// used by CLI and API. Ensures consistent behavior across all entry points.
//
// [cache] - Content-addressed result caching with file, Redis, and null
// backends. Each pipeline stage is cached independently.
//
// [store] - Durable quilt storage with in-memory and MongoDB backends.
//
// [errors] - Structured error types with stable codes shared by the CLI and
// the HTTP API.
//
// [observability] - Optional instrumentation hooks for pipeline and cache
// events.
package pkg
