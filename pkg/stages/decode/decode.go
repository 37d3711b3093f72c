// Package decode implements the video decoding stage.
package decode

import (
	"context"
	"fmt"
	"io"

	"github.com/user/stegosub/pkg/pipeline"
	"github.com/user/stegosub/pkg/ports"
)

// Stage decodes the input video into raw RGB frames.
type Stage struct {
	decoder ports.VideoDecoder
	logger  ports.Logger
}

// NewStage creates a new decode stage.
func NewStage(decoder ports.VideoDecoder, logger ports.Logger) *Stage {
	return &Stage{
		decoder: decoder,
		logger:  logger.WithComponent("decode"),
	}
}

// Execute decodes every frame of the input video in display order.
func (s *Stage) Execute(ctx context.Context, input pipeline.DecodeInput) (pipeline.DecodeResult, error) {
	info, err := s.decoder.Open(input.Path)
	if err != nil {
		return pipeline.DecodeResult{}, fmt.Errorf("open video: %w", err)
	}
	defer s.decoder.Close()

	s.logger.Debug("Decoding %s (%dx%d @ %.2ffps)", input.Path, info.Width, info.Height, info.FPS)

	var frames []*pipeline.Frame
	for {
		select {
		case <-ctx.Done():
			return pipeline.DecodeResult{}, ctx.Err()
		default:
		}

		frame, err := s.decoder.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return pipeline.DecodeResult{}, fmt.Errorf("read frame %d: %w", len(frames), err)
		}
		frames = append(frames, frame)
	}

	if len(frames) == 0 {
		return pipeline.DecodeResult{}, fmt.Errorf("video %s contains no frames", input.Path)
	}

	// Frame count and duration from the container can be missing or
	// wrong. The decoded stream is authoritative.
	info.FrameCount = len(frames)
	if info.FPS > 0 {
		info.DurationMs = int(float64(len(frames)) * 1000.0 / info.FPS)
	}

	s.logger.Debug("Decoded %d frames", len(frames))

	return pipeline.DecodeResult{
		Frames: frames,
		Info:   info,
	}, nil
}
