package ports

import (
	"github.com/user/stegosub/pkg/pipeline"
)

// VideoDecoder abstracts video decoding. Frames are yielded in display
// order as interleaved RGB data.
type VideoDecoder interface {
	// Open prepares the decoder for the given file and returns the stream
	// metadata.
	Open(path string) (pipeline.VideoInfo, error)

	// ReadFrame decodes and returns the next frame. It returns io.EOF when
	// the stream is exhausted.
	ReadFrame() (*pipeline.Frame, error)

	// Close releases decoder resources.
	Close() error
}

// VideoProber reports video stream metadata without decoding any frames.
// Used for capacity pre-checks before committing to a full decode.
type VideoProber interface {
	Probe(path string) (pipeline.VideoInfo, error)
}
