// Package segment provides the raster side of the Patchwork pipeline: blob
// segmentation of a decoded image, per-blob average colors, and extraction of
// the raw blob-adjacency graph that the quilt engine corrects.
//
// Image decoding itself is the caller's concern; this package only consumes
// an already decoded image.Image.
package segment

import (
	"errors"
	"image"
	"math"

	"github.com/patchworklabs/patchwork/pkg/geom"
	"github.com/patchworklabs/patchwork/pkg/quilt"
)

// ErrEmptyImage is returned by [FromImage] when the image has no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// Background is the label for pixels that belong to no blob.
const Background = 0

// Segmentation is a raster label map with per-blob average colors. It is the
// optional color source consumed by face decomposition: labels[y][x] holds a
// blob ID or Background.
type Segmentation struct {
	Labels    [][]int             `json:"labels"`
	AvgColors map[int]quilt.Color `json:"avg_colors"`
	Width     int                 `json:"width"`
	Height    int                 `json:"height"`
}

// ColorAt returns the average color of the blob under p. The point is
// clamped to the raster bounds first, so centroids slightly outside the
// image still sample the nearest pixel. Returns false for background pixels
// and labels without a known color.
func (s *Segmentation) ColorAt(p geom.Point) (quilt.Color, bool) {
	if s == nil || s.Width == 0 || s.Height == 0 {
		return quilt.Color{}, false
	}
	x := clamp(int(math.Floor(p.X)), 0, s.Width-1)
	y := clamp(int(math.Floor(p.Y)), 0, s.Height-1)
	label := s.Labels[y][x]
	if label == Background {
		return quilt.Color{}, false
	}
	c, ok := s.AvgColors[label]
	return c, ok
}

// quilt.ColorSource is the consuming interface.
var _ quilt.ColorSource = (*Segmentation)(nil)

// Options configures blob segmentation.
type Options struct {
	// Tolerance is the maximum squared RGB distance (0-255 scale per
	// channel) for two neighboring pixels to join the same blob.
	Tolerance float64
	// MinBlobSize relabels blobs with fewer pixels as Background.
	MinBlobSize int
}

// DefaultTolerance joins pixels within ~16 units per channel.
const DefaultTolerance = 3 * 16 * 16

// FromImage segments an image into blobs of similar color using union-find
// over 4-connected neighbors, then computes each blob's average color.
// Blob IDs are assigned in scan order starting at 1.
func FromImage(img image.Image, opts Options) (*Segmentation, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, ErrEmptyImage
	}
	if opts.Tolerance == 0 {
		opts.Tolerance = DefaultTolerance
	}

	colors := make([]quilt.Color, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			colors[y*w+x] = quilt.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
		}
	}

	uf := newUnionFind(w * h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if x > 0 && colorDistSq(colors[i], colors[i-1]) <= opts.Tolerance {
				uf.union(i, i-1)
			}
			if y > 0 && colorDistSq(colors[i], colors[i-w]) <= opts.Tolerance {
				uf.union(i, i-w)
			}
		}
	}

	seg := &Segmentation{
		Labels:    make([][]int, h),
		AvgColors: make(map[int]quilt.Color),
		Width:     w,
		Height:    h,
	}

	labelOf := make(map[int]int)
	sizes := make(map[int]int)
	sums := make(map[int][3]uint64)
	next := 0
	for y := 0; y < h; y++ {
		seg.Labels[y] = make([]int, w)
		for x := 0; x < w; x++ {
			root := uf.find(y*w + x)
			label, ok := labelOf[root]
			if !ok {
				next++
				label = next
				labelOf[root] = label
			}
			seg.Labels[y][x] = label
			sizes[label]++
			c := colors[y*w+x]
			s := sums[label]
			s[0] += uint64(c.R)
			s[1] += uint64(c.G)
			s[2] += uint64(c.B)
			sums[label] = s
		}
	}

	for label, size := range sizes {
		if size < opts.MinBlobSize {
			continue
		}
		s := sums[label]
		n := uint64(size)
		seg.AvgColors[label] = quilt.Color{
			R: uint8(s[0] / n),
			G: uint8(s[1] / n),
			B: uint8(s[2] / n),
		}
	}

	// Small blobs become background.
	if opts.MinBlobSize > 1 {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if sizes[seg.Labels[y][x]] < opts.MinBlobSize {
					seg.Labels[y][x] = Background
				}
			}
		}
	}

	return seg, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func colorDistSq(a, b quilt.Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}
