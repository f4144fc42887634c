package segment

import (
	"fmt"

	"github.com/patchworklabs/patchwork/pkg/geom"
	"github.com/patchworklabs/patchwork/pkg/quilt"
)

// ExtractGraph builds the raw blob-adjacency graph from a segmentation: one
// vertex per non-background blob, placed at the blob's pixel centroid, and
// one edge for every pair of blobs that touch along a 4-connected pixel
// boundary.
//
// The result is usually not a legal quilt - blobs with a single neighbor
// produce degree-1 vertices, and centroid placement can make edges cross.
// It is exactly the kind of defective input quilt.Correct is built for.
func ExtractGraph(seg *Segmentation) *quilt.Graph {
	g := quilt.New()
	if seg == nil || seg.Width == 0 || seg.Height == 0 {
		return g
	}

	counts := make(map[int]int)
	sums := make(map[int]geom.Point)
	type labelPair struct{ a, b int }
	touching := make(map[labelPair]struct{})

	touch := func(a, b int) {
		if a == b || a == Background || b == Background {
			return
		}
		if b < a {
			a, b = b, a
		}
		touching[labelPair{a, b}] = struct{}{}
	}

	for y := 0; y < seg.Height; y++ {
		for x := 0; x < seg.Width; x++ {
			label := seg.Labels[y][x]
			if label == Background {
				continue
			}
			counts[label]++
			s := sums[label]
			sums[label] = s.Add(geom.Pt(float64(x), float64(y)))

			if x+1 < seg.Width {
				touch(label, seg.Labels[y][x+1])
			}
			if y+1 < seg.Height {
				touch(label, seg.Labels[y+1][x])
			}
		}
	}

	for label, n := range counts {
		centroid := sums[label].Mul(1 / float64(n))
		// Vertex IDs carry the blob ID as numeric suffix, seeding the
		// allocator for vertices minted later during crossing resolution.
		_ = g.AddVertex(fmt.Sprintf("b%d", label), centroid)
	}
	for pair := range touching {
		_ = g.AddEdge(fmt.Sprintf("b%d", pair.a), fmt.Sprintf("b%d", pair.b))
	}
	return g
}
