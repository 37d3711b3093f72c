// Package encode implements the video encoding stage.
package encode

import (
	"context"
	"fmt"

	"github.com/user/stegosub/pkg/pipeline"
	"github.com/user/stegosub/pkg/ports"
)

// Stage encodes stamped frames back into a video container.
type Stage struct {
	encoder ports.VideoEncoder
	logger  ports.Logger
}

// NewStage creates a new encode stage.
func NewStage(encoder ports.VideoEncoder, logger ports.Logger) *Stage {
	return &Stage{
		encoder: encoder,
		logger:  logger.WithComponent("encode"),
	}
}

// Execute encodes all frames into a video.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	if len(input.Frames) == 0 {
		return pipeline.EncodeResult{}, fmt.Errorf("no frames to encode")
	}

	s.logger.Debug("Encoding %d frames (%dx%d @ %.2ffps)",
		len(input.Frames), input.Info.Width, input.Info.Height, input.Info.FPS)

	opts := ports.EncoderOptions{
		Quality:   input.Quality,
		Bitrate:   input.Bitrate,
		AudioFrom: input.AudioFrom,
	}
	if err := s.encoder.Begin(input.Info, opts); err != nil {
		return pipeline.EncodeResult{}, fmt.Errorf("begin encoding: %w", err)
	}

	for i, frame := range input.Frames {
		select {
		case <-ctx.Done():
			return pipeline.EncodeResult{}, ctx.Err()
		default:
		}

		if err := s.encoder.WriteFrame(frame); err != nil {
			return pipeline.EncodeResult{}, fmt.Errorf("write frame %d: %w", i, err)
		}
	}

	data, err := s.encoder.End()
	if err != nil {
		return pipeline.EncodeResult{}, fmt.Errorf("finalize encoding: %w", err)
	}

	durationMs := input.Info.DurationMs
	if durationMs == 0 && input.Info.FPS > 0 {
		durationMs = int(float64(len(input.Frames)) * 1000.0 / input.Info.FPS)
	}

	s.logger.Debug("Encoded %d bytes", len(data))

	return pipeline.EncodeResult{
		VideoData:  data,
		DurationMs: durationMs,
		FileSize:   int64(len(data)),
	}, nil
}
