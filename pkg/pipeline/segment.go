package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/patchworklabs/patchwork/pkg/errors"
	"github.com/patchworklabs/patchwork/pkg/graph"
	"github.com/patchworklabs/patchwork/pkg/quilt"
	"github.com/patchworklabs/patchwork/pkg/segment"
)

// segmentPayload is the cache format for the segment stage. The
// segmentation rides along with the graph so cache hits can still
// sample face colors during correction.
type segmentPayload struct {
	Graph        graph.Graph           `json:"graph"`
	Segmentation *segment.Segmentation `json:"segmentation"`
}

// loadImage reads and decodes a raster image from disk.
// PNG, JPEG, and GIF are supported via the registered stdlib decoders.
func loadImage(path string) (image.Image, []byte, error) {
	if err := errors.ValidateImagePath(path); err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read image %s", path)
	}

	img, _, err := decodeImage(data)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "decode image %s", path)
	}
	return img, data, nil
}

func decodeImage(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	return img, format, nil
}

// segmentImage runs blob segmentation and graph extraction on an image.
func segmentImage(img image.Image, opts Options) (*quilt.Graph, *segment.Segmentation, error) {
	seg, err := segment.FromImage(img, segment.Options{
		Tolerance:   opts.Tolerance,
		MinBlobSize: opts.MinBlobSize,
	})
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidImage, err, "segment image")
	}
	return segment.ExtractGraph(seg), seg, nil
}
