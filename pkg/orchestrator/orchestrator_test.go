package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/user/stegosub/pkg/mocks"
	"github.com/user/stegosub/pkg/pipeline"
	"github.com/user/stegosub/pkg/ports"
	"github.com/user/stegosub/pkg/stego"
)

// mockDecodeStage is a mock for the decode stage.
type mockDecodeStage struct {
	result pipeline.DecodeResult
	err    error
}

func (m *mockDecodeStage) Execute(ctx context.Context, input pipeline.DecodeInput) (pipeline.DecodeResult, error) {
	if m.err != nil {
		return pipeline.DecodeResult{}, m.err
	}
	return m.result, nil
}

// mockCaptionsStage is a mock for the captions stage.
type mockCaptionsStage struct {
	result pipeline.CaptionsResult
	err    error
	called bool
}

func (m *mockCaptionsStage) Execute(ctx context.Context, input pipeline.CaptionsInput) (pipeline.CaptionsResult, error) {
	m.called = true
	if m.err != nil {
		return pipeline.CaptionsResult{}, m.err
	}
	return m.result, nil
}

// mockStampStage is a mock for the stamp stage.
type mockStampStage struct {
	result pipeline.StampResult
	err    error
	input  pipeline.StampInput
}

func (m *mockStampStage) Execute(ctx context.Context, input pipeline.StampInput) (pipeline.StampResult, error) {
	m.input = input
	if m.err != nil {
		return pipeline.StampResult{}, m.err
	}
	if m.result.Frames == nil {
		m.result.Frames = input.Frames
	}
	return m.result, nil
}

// mockEncodeStage is a mock for the encode stage.
type mockEncodeStage struct {
	result pipeline.EncodeResult
	err    error
	input  pipeline.EncodeInput
}

func (m *mockEncodeStage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	m.input = input
	if m.err != nil {
		return pipeline.EncodeResult{}, m.err
	}
	return m.result, nil
}

func testCodec(t *testing.T) *stego.Codec {
	t.Helper()
	codec, err := stego.New(stego.DefaultConfig("test-video"))
	if err != nil {
		t.Fatalf("stego.New() error = %v", err)
	}
	return codec
}

func testFrames(n int) []*pipeline.Frame {
	frames := make([]*pipeline.Frame, n)
	for i := range frames {
		frames[i] = pipeline.NewFrame(320, 240, 3)
	}
	return frames
}

func TestOrchestrator_Run(t *testing.T) {
	info := pipeline.VideoInfo{Width: 320, Height: 240, FPS: 30.0, FrameCount: 2}

	decodeStage := &mockDecodeStage{
		result: pipeline.DecodeResult{Frames: testFrames(2), Info: info},
	}
	captionsStage := &mockCaptionsStage{}
	stampStage := &mockStampStage{
		result: pipeline.StampResult{SubtitleFrames: 0},
	}
	encodeStage := &mockEncodeStage{
		result: pipeline.EncodeResult{
			VideoData:  []byte{0x00, 0x00, 0x00, 0x20}, // MP4 bytes
			DurationMs: 66,
			FileSize:   4,
		},
	}

	mockFS := mocks.NewFileSystem()

	orch := New(
		testCodec(t),
		&mocks.VideoProber{Info: info},
		decodeStage,
		captionsStage,
		stampStage,
		encodeStage,
		mockFS,
		&mocks.DebugSink{},
		&mocks.Annotator{},
		&mocks.Logger{},
	)

	config := DefaultConfig()
	config.InputPath = "input.mp4"
	config.OutputPath = "output.mp4"

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captionsStage.called {
		t.Error("captions stage must not run without a subtitle path")
	}
	if result.FrameCount != 2 {
		t.Errorf("FrameCount = %d, want 2", result.FrameCount)
	}
	if result.VideoDuration != 66 {
		t.Errorf("VideoDuration = %d, want 66", result.VideoDuration)
	}

	// Check that output file was written
	exists, _ := mockFS.Exists("output.mp4")
	if !exists {
		t.Error("expected output file to be written")
	}
	data, _ := mockFS.ReadFile("output.mp4")
	if len(data) == 0 {
		t.Error("expected file to have content")
	}
}

func TestOrchestrator_Run_WithSubtitles(t *testing.T) {
	info := pipeline.VideoInfo{Width: 320, Height: 240, FPS: 30.0}

	captionsStage := &mockCaptionsStage{
		result: pipeline.CaptionsResult{
			Track: pipeline.CaptionTrack{
				Entries: []pipeline.Caption{{StartMs: 0, EndMs: 1000, Payload: []byte("payload")}},
			},
			EntryCount:   1,
			PayloadBytes: 7,
			Warnings:     []string{"entry 2: empty text, skipped"},
		},
	}
	stampStage := &mockStampStage{
		result: pipeline.StampResult{SubtitleFrames: 30},
	}
	encodeStage := &mockEncodeStage{
		result: pipeline.EncodeResult{VideoData: []byte{0x00}},
	}

	logger := &mocks.Logger{}
	orch := New(
		testCodec(t),
		&mocks.VideoProber{Info: info},
		&mockDecodeStage{result: pipeline.DecodeResult{Frames: testFrames(1), Info: info}},
		captionsStage,
		stampStage,
		encodeStage,
		mocks.NewFileSystem(),
		&mocks.DebugSink{},
		&mocks.Annotator{},
		logger,
	)

	config := DefaultConfig()
	config.InputPath = "input.mp4"
	config.OutputPath = "output.mp4"
	config.SubtitlePath = "subs.srt"

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !captionsStage.called {
		t.Error("expected captions stage to run with a subtitle path")
	}
	if len(stampStage.input.Track.Entries) != 1 {
		t.Error("caption track not passed to the stamp stage")
	}
	if result.CaptionEntries != 1 || result.SubtitleFrames != 30 {
		t.Errorf("result = %+v, want 1 entry and 30 subtitle frames", result)
	}
	// Captions stage warnings surface through the logger.
	found := false
	for _, m := range logger.Messages {
		if m.Message == "entry 2: empty text, skipped" {
			found = true
		}
	}
	if !found {
		t.Error("caption warning not logged")
	}
}

func TestOrchestrator_Run_WithDebugSink(t *testing.T) {
	info := pipeline.VideoInfo{Width: 320, Height: 240, FPS: 30.0}

	sink := &mocks.DebugSink{EnabledValue: true}
	orch := New(
		testCodec(t),
		&mocks.VideoProber{Info: info},
		&mockDecodeStage{result: pipeline.DecodeResult{Frames: testFrames(1), Info: info}},
		&mockCaptionsStage{},
		&mockStampStage{},
		&mockEncodeStage{result: pipeline.EncodeResult{VideoData: []byte{0x00}}},
		mocks.NewFileSystem(),
		sink,
		&mocks.Annotator{},
		&mocks.Logger{},
	)

	config := DefaultConfig()
	config.InputPath = "input.mp4"
	config.OutputPath = "output.mp4"

	if _, err := orch.Run(context.Background(), config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.CapacityJSON) == 0 {
		t.Error("expected capacity JSON to be saved")
	}
	if sink.Previews != 1 {
		t.Errorf("placement previews = %d, want 1", sink.Previews)
	}
	// 320x240 has room for all four corners.
	if len(sink.Markers) != 4 {
		t.Errorf("saved markers = %v, want all four corners", sink.Markers)
	}
}

func TestOrchestrator_Run_SmallFrameWarns(t *testing.T) {
	// 100x100 leaves no room for any marker, which warns but still runs.
	info := pipeline.VideoInfo{Width: 100, Height: 100, FPS: 30.0}
	frames := []*pipeline.Frame{pipeline.NewFrame(100, 100, 3)}

	logger := &mocks.Logger{}
	orch := New(
		testCodec(t),
		&mocks.VideoProber{Info: info},
		&mockDecodeStage{result: pipeline.DecodeResult{Frames: frames, Info: info}},
		&mockCaptionsStage{},
		&mockStampStage{},
		&mockEncodeStage{result: pipeline.EncodeResult{VideoData: []byte{0x00}}},
		mocks.NewFileSystem(),
		&mocks.DebugSink{},
		&mocks.Annotator{},
		logger,
	)

	config := DefaultConfig()
	config.InputPath = "input.mp4"
	config.OutputPath = "output.mp4"

	if _, err := orch.Run(context.Background(), config); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !logger.HasLevel(ports.LevelWarn) {
		t.Error("expected a precheck warning for a frame with no marker room")
	}
}

func TestOrchestrator_Run_StageFailure(t *testing.T) {
	info := pipeline.VideoInfo{Width: 320, Height: 240, FPS: 30.0}
	stageErr := errors.New("ffmpeg not found")

	orch := New(
		testCodec(t),
		&mocks.VideoProber{Info: info},
		&mockDecodeStage{err: stageErr},
		&mockCaptionsStage{},
		&mockStampStage{},
		&mockEncodeStage{},
		mocks.NewFileSystem(),
		&mocks.DebugSink{},
		&mocks.Annotator{},
		&mocks.Logger{},
	)

	config := DefaultConfig()
	config.InputPath = "input.mp4"
	config.OutputPath = "output.mp4"

	if _, err := orch.Run(context.Background(), config); !errors.Is(err, stageErr) {
		t.Errorf("Run() error = %v, want wrapped %v", err, stageErr)
	}
}
