// Package render provides visualization rendering for quilt graphs.
//
// # Overview
//
// This package contains the rendering pipeline that transforms corrected
// quilt graphs into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Patch rendering with face fills (in [svg] subpackage)
//   - Node-link diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). These are used by both
// the patch and node-link renderers.
//
//	out := svg.Render(g, opts...)
//	pdf, err := render.ToPDF(out)
//	png, err := render.ToPNG(out, 2.0)  // 2x scale
//
// # Patch Rendering
//
// The [svg] subpackage draws the face decomposition directly: each face
// becomes a filled polygon using its sampled color, with the straight-line
// edges and optionally the vertices drawn on top. This is the output that
// reconstructs the quilt from its repaired seam graph.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the bare graph structure using
// Graphviz. With positioned output the vertices are pinned at their
// plane coordinates; otherwise Graphviz lays the graph out freely.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Positioned: true})
//	out, err := nodelink.RenderSVG(dot)
//
// [svg]: github.com/patchworklabs/patchwork/pkg/render/svg
// [nodelink]: github.com/patchworklabs/patchwork/pkg/render/nodelink
package render
