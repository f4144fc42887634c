package pipeline

import (
	"bytes"
	"fmt"

	"github.com/patchworklabs/patchwork/pkg/graph"
	"github.com/patchworklabs/patchwork/pkg/quilt"
	"github.com/patchworklabs/patchwork/pkg/render"
	"github.com/patchworklabs/patchwork/pkg/render/nodelink"
	"github.com/patchworklabs/patchwork/pkg/render/svg"
)

// RenderGraph renders a corrected graph into each requested format.
// The patch visualization fills faces with their sampled colors; the
// nodelink visualization draws the bare structure via Graphviz. DOT and
// JSON outputs are independent of the visualization type.
func RenderGraph(g *quilt.Graph, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(g, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(g *quilt.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := graph.WriteGraph(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatDOT:
		return []byte(nodelink.ToDOT(g, nodelink.Options{Positioned: true, Detailed: opts.ShowLabels})), nil

	case FormatSVG:
		return renderSVG(g, opts)

	case FormatPNG:
		out, err := renderSVG(g, opts)
		if err != nil {
			return nil, err
		}
		return render.ToPNG(out, opts.Scale)

	case FormatPDF:
		out, err := renderSVG(g, opts)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(out)

	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}

func renderSVG(g *quilt.Graph, opts Options) ([]byte, error) {
	if opts.IsNodelink() {
		dot := nodelink.ToDOT(g, nodelink.Options{Positioned: true, Detailed: opts.ShowLabels})
		return nodelink.RenderSVG(dot)
	}

	svgOpts := []svg.Option{svg.WithStrokeWidth(opts.StrokeWidth)}
	if opts.ShowVertices {
		svgOpts = append(svgOpts, svg.WithVertices())
	}
	if opts.ShowLabels {
		svgOpts = append(svgOpts, svg.WithLabels())
	}
	return svg.Render(g, svgOpts...), nil
}
