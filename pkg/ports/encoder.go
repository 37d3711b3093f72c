package ports

import (
	"github.com/user/stegosub/pkg/pipeline"
)

// VideoEncoder abstracts video encoding operations.
type VideoEncoder interface {
	// Begin initializes the encoder with the stream metadata and options.
	Begin(info pipeline.VideoInfo, opts EncoderOptions) error

	// WriteFrame encodes a single frame. Frames must match the dimensions
	// given to Begin.
	WriteFrame(f *pipeline.Frame) error

	// End finalizes encoding and returns the container data.
	End() ([]byte, error)
}

// EncoderOptions configures video encoding parameters.
type EncoderOptions struct {
	Quality   int    // CRF value: 0-63 (lower is higher quality)
	Bitrate   int    // Target bitrate in kbps
	AudioFrom string // Source file whose audio track is copied into the output
}
