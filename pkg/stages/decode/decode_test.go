package decode

import (
	"context"
	"errors"
	"testing"

	"github.com/user/stegosub/pkg/mocks"
	"github.com/user/stegosub/pkg/pipeline"
)

func TestExecute(t *testing.T) {
	decoder := &mocks.VideoDecoder{
		Info: pipeline.VideoInfo{Width: 320, Height: 240, FPS: 30},
		Frames: []*pipeline.Frame{
			pipeline.NewFrame(320, 240, 3),
			pipeline.NewFrame(320, 240, 3),
			pipeline.NewFrame(320, 240, 3),
		},
	}
	stage := NewStage(decoder, &mocks.Logger{})

	result, err := stage.Execute(context.Background(), pipeline.DecodeInput{Path: "in.mp4"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Frames) != 3 {
		t.Errorf("frames = %d, want 3", len(result.Frames))
	}
	if result.Info.FrameCount != 3 {
		t.Errorf("FrameCount = %d, want 3", result.Info.FrameCount)
	}
	if result.Info.DurationMs != 100 {
		t.Errorf("DurationMs = %d, want 100", result.Info.DurationMs)
	}
	if decoder.OpenedPath != "in.mp4" {
		t.Errorf("opened path = %q", decoder.OpenedPath)
	}
	if !decoder.CloseCalled {
		t.Error("decoder not closed")
	}
}

func TestExecuteEmptyVideo(t *testing.T) {
	stage := NewStage(&mocks.VideoDecoder{}, &mocks.Logger{})

	if _, err := stage.Execute(context.Background(), pipeline.DecodeInput{Path: "empty.mp4"}); err == nil {
		t.Error("Execute() expected error for video with no frames")
	}
}

func TestExecuteDecoderError(t *testing.T) {
	wantErr := errors.New("codec not supported")
	decoder := &mocks.VideoDecoder{
		ReadFrameFunc: func() (*pipeline.Frame, error) {
			return nil, wantErr
		},
	}
	stage := NewStage(decoder, &mocks.Logger{})

	if _, err := stage.Execute(context.Background(), pipeline.DecodeInput{Path: "bad.mp4"}); !errors.Is(err, wantErr) {
		t.Errorf("Execute() error = %v, want wrapped %v", err, wantErr)
	}
	if !decoder.CloseCalled {
		t.Error("decoder not closed after error")
	}
}

func TestExecuteContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	decoder := &mocks.VideoDecoder{
		Frames: []*pipeline.Frame{pipeline.NewFrame(8, 8, 3)},
	}
	stage := NewStage(decoder, &mocks.Logger{})

	if _, err := stage.Execute(ctx, pipeline.DecodeInput{Path: "in.mp4"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}
