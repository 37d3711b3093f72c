package ffmpegencoder

import "errors"

var (
	// ErrNotInitialized is returned when encoder methods are called
	// before Begin.
	ErrNotInitialized = errors.New("ffmpegencoder: encoder not initialized")

	// ErrFFmpegNotFound is returned when ffmpeg is not found in PATH or
	// common install locations.
	ErrFFmpegNotFound = errors.New("ffmpegencoder: ffmpeg not found in PATH")

	// ErrFrameMismatch is returned when a frame does not match the
	// dimensions given to Begin.
	ErrFrameMismatch = errors.New("ffmpegencoder: frame dimensions do not match stream")
)
