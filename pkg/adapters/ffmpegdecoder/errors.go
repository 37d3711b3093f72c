package ffmpegdecoder

import "errors"

var (
	// ErrFFmpegNotFound is returned when ffmpeg is not found in PATH or
	// common install locations.
	ErrFFmpegNotFound = errors.New("ffmpegdecoder: ffmpeg not found in PATH")

	// ErrFFprobeNotFound is returned when ffprobe is not found.
	ErrFFprobeNotFound = errors.New("ffmpegdecoder: ffprobe not found in PATH")

	// ErrNotOpened is returned when ReadFrame is called before Open.
	ErrNotOpened = errors.New("ffmpegdecoder: decoder not opened")

	// ErrNoVideoStream is returned when the input has no video stream.
	ErrNoVideoStream = errors.New("ffmpegdecoder: no video stream in input")
)
