// Package svg renders quilt graphs as patchwork images.
//
// Faces are drawn as filled polygons in painter's order (largest area
// first, so the unbounded face forms the backdrop), with the seam edges
// and optionally the vertices drawn on top.
package svg

import (
	"bytes"
	"cmp"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/patchworklabs/patchwork/pkg/geom"
	"github.com/patchworklabs/patchwork/pkg/quilt"
)

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	showVertices bool
	showLabels   bool
	strokeWidth  float64
	stroke       string
	fill         string
	padding      float64
	vertexRadius float64
}

// WithVertices draws vertices as filled circles on top of the seams.
func WithVertices() Option { return func(r *renderer) { r.showVertices = true } }

// WithLabels draws vertex identifiers next to each vertex.
// Implies nothing about vertices themselves; combine with [WithVertices].
func WithLabels() Option { return func(r *renderer) { r.showLabels = true } }

// WithStrokeWidth sets the seam line width (default 1).
func WithStrokeWidth(w float64) Option { return func(r *renderer) { r.strokeWidth = w } }

// WithStroke sets the seam color (default #333).
func WithStroke(color string) Option { return func(r *renderer) { r.stroke = color } }

// WithFill sets the fill used for faces without a sampled color (default white).
func WithFill(color string) Option { return func(r *renderer) { r.fill = color } }

// WithPadding sets the margin around the graph's bounding box (default 10).
func WithPadding(p float64) Option { return func(r *renderer) { r.padding = p } }

// Render draws the graph's face decomposition as an SVG document.
// An empty graph produces a minimal empty document.
func Render(g *quilt.Graph, opts ...Option) []byte {
	r := renderer{
		strokeWidth:  1,
		stroke:       "#333333",
		fill:         "white",
		padding:      10,
		vertexRadius: 3,
	}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	minX, minY, w, h := bounds(g, r.padding)
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, w, h, w, h)

	r.renderFaces(&buf, g)
	r.renderEdges(&buf, g)
	if r.showVertices {
		r.renderVertices(&buf, g)
	}
	if r.showLabels {
		r.renderLabels(&buf, g)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderFaces draws filled polygons, largest area first. The unbounded
// face traverses the hull, so it has the largest area and ends up behind
// every interior patch.
func (r *renderer) renderFaces(buf *bytes.Buffer, g *quilt.Graph) {
	faces := g.Faces()

	type drawFace struct {
		id   string
		face quilt.Face
		area float64
	}
	draw := make([]drawFace, 0, len(faces))
	for _, id := range slices.Sorted(maps.Keys(faces)) {
		f := faces[id]
		pts := facePoints(g, f)
		draw = append(draw, drawFace{id: id, face: f, area: math.Abs(geom.SignedArea(pts))})
	}
	slices.SortFunc(draw, func(a, b drawFace) int {
		if c := cmp.Compare(b.area, a.area); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	for _, d := range draw {
		pts := facePoints(g, d.face)
		if len(pts) < 3 {
			continue
		}
		fmt.Fprintf(buf, `  <polygon id="face-%s" points="%s" fill="%s" stroke="none"/>`+"\n",
			d.id, pointList(pts), fillColor(d.face, r.fill))
	}
}

func (r *renderer) renderEdges(buf *bytes.Buffer, g *quilt.Graph) {
	for _, e := range g.Edges() {
		u, _ := g.Vertex(e.U)
		v, _ := g.Vertex(e.V)
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-linecap="round"/>`+"\n",
			u.X, u.Y, v.X, v.Y, r.stroke, r.strokeWidth)
	}
}

func (r *renderer) renderVertices(buf *bytes.Buffer, g *quilt.Graph) {
	vertices := g.Vertices()
	for _, id := range slices.Sorted(maps.Keys(vertices)) {
		p := vertices[id]
		fmt.Fprintf(buf, `  <circle id="vertex-%s" cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
			id, p.X, p.Y, r.vertexRadius, r.stroke)
	}
}

func (r *renderer) renderLabels(buf *bytes.Buffer, g *quilt.Graph) {
	offset := r.vertexRadius + 2
	vertices := g.Vertices()
	for _, id := range slices.Sorted(maps.Keys(vertices)) {
		p := vertices[id]
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-size="10" fill="%s">%s</text>`+"\n",
			p.X+offset, p.Y-offset, r.stroke, id)
	}
}

func facePoints(g *quilt.Graph, f quilt.Face) []geom.Point {
	pts := make([]geom.Point, 0, len(f.Vertices))
	for _, id := range f.Vertices {
		if p, ok := g.Vertex(id); ok {
			pts = append(pts, p)
		}
	}
	return pts
}

func fillColor(f quilt.Face, fallback string) string {
	if f.Color == nil {
		return fallback
	}
	return fmt.Sprintf("rgb(%d,%d,%d)", f.Color.R, f.Color.G, f.Color.B)
}

func pointList(pts []geom.Point) string {
	var buf bytes.Buffer
	for i, p := range pts {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(&buf, "%.2f,%.2f", p.X, p.Y)
	}
	return buf.String()
}

// bounds computes the padded bounding box of the graph's vertices.
// An empty graph gets a unit box so the SVG header stays valid.
func bounds(g *quilt.Graph, padding float64) (minX, minY, w, h float64) {
	vertices := g.Vertices()
	if len(vertices) == 0 {
		return 0, 0, 1, 1
	}

	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range vertices {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	minX -= padding
	minY -= padding
	return minX, minY, (maxX + padding) - minX, (maxY + padding) - minY
}
