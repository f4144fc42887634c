// Package nodelink renders quilt graphs as traditional node-link diagrams.
//
// # Overview
//
// This package produces graph visualizations using Graphviz, where vertices
// appear as circles connected by straight seam lines. It's an alternative to
// the filled patch rendering for inspecting the graph structure itself.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Positioned: true})
//	out, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Positioned: pin each vertex at its plane coordinates (neato -n style)
//   - Detailed: include coordinates in vertex labels
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// Positioned output uses pos="x,y!" pinning so the diagram preserves the
// straight-line embedding the correction loop operates on.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
