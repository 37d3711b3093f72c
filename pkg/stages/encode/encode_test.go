package encode

import (
	"context"
	"errors"
	"testing"

	"github.com/user/stegosub/pkg/mocks"
	"github.com/user/stegosub/pkg/pipeline"
)

func TestExecute(t *testing.T) {
	encoder := &mocks.VideoEncoder{}
	stage := NewStage(encoder, &mocks.Logger{})

	input := pipeline.EncodeInput{
		Frames: []*pipeline.Frame{
			pipeline.NewFrame(320, 240, 3),
			pipeline.NewFrame(320, 240, 3),
		},
		Info:      pipeline.VideoInfo{Width: 320, Height: 240, FPS: 25},
		Quality:   23,
		Bitrate:   1200,
		AudioFrom: "source.mp4",
	}

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !encoder.BeginCalled || !encoder.EndCalled {
		t.Error("encoder lifecycle incomplete")
	}
	if encoder.FrameCount != 2 {
		t.Errorf("frames written = %d, want 2", encoder.FrameCount)
	}
	if encoder.BeginOpts.Quality != 23 || encoder.BeginOpts.Bitrate != 1200 || encoder.BeginOpts.AudioFrom != "source.mp4" {
		t.Errorf("encoder options = %+v", encoder.BeginOpts)
	}
	if string(result.VideoData) != "mock video data" {
		t.Errorf("video data = %q", result.VideoData)
	}
	if result.DurationMs != 80 {
		t.Errorf("DurationMs = %d, want 80", result.DurationMs)
	}
	if result.FileSize != int64(len(result.VideoData)) {
		t.Errorf("FileSize = %d", result.FileSize)
	}
}

func TestExecuteNoFrames(t *testing.T) {
	stage := NewStage(&mocks.VideoEncoder{}, &mocks.Logger{})

	if _, err := stage.Execute(context.Background(), pipeline.EncodeInput{}); err == nil {
		t.Error("Execute() expected error for empty input")
	}
}

func TestExecuteWriteError(t *testing.T) {
	wantErr := errors.New("broken pipe")
	encoder := &mocks.VideoEncoder{
		WriteFrameFunc: func(f *pipeline.Frame) error { return wantErr },
	}
	stage := NewStage(encoder, &mocks.Logger{})

	input := pipeline.EncodeInput{
		Frames: []*pipeline.Frame{pipeline.NewFrame(8, 8, 3)},
		Info:   pipeline.VideoInfo{Width: 8, Height: 8, FPS: 30},
	}
	if _, err := stage.Execute(context.Background(), input); !errors.Is(err, wantErr) {
		t.Errorf("Execute() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestExecuteContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stage := NewStage(&mocks.VideoEncoder{}, &mocks.Logger{})
	input := pipeline.EncodeInput{
		Frames: []*pipeline.Frame{pipeline.NewFrame(8, 8, 3)},
		Info:   pipeline.VideoInfo{Width: 8, Height: 8, FPS: 30},
	}
	if _, err := stage.Execute(ctx, input); !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}
