package ports

import (
	"image"

	"github.com/user/stegosub/pkg/pipeline"
)

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveMarker saves a generated corner marker image, magnified for
	// inspection.
	SaveMarker(corner string, img image.Image) error

	// SavePlacementPreview saves a frame annotated with the marker
	// placement boxes.
	SavePlacementPreview(img image.Image) error

	// SaveCapacityJSON saves the capacity estimate as JSON.
	SaveCapacityJSON(data []byte) error

	// SaveStampedFrame saves a stamped frame for visual comparison.
	SaveStampedFrame(index int, img image.Image) error
}

// Annotator converts raw frames to images and renders debug overlays.
type Annotator interface {
	// FrameImage converts an RGB frame into an image.Image.
	FrameImage(f *pipeline.Frame) image.Image

	// AnnotateMarkers draws placement boxes and labels over the frame.
	AnnotateMarkers(f *pipeline.Frame, boxes []pipeline.MarkerBox) image.Image

	// Magnify scales an image by an integer factor with hard pixel edges.
	Magnify(img image.Image, factor int) image.Image

	// EncodePNG serializes an image as PNG.
	EncodePNG(img image.Image) ([]byte, error)
}
