package mocks

import (
	"github.com/user/stegosub/pkg/pipeline"
	"github.com/user/stegosub/pkg/ports"
)

// VideoEncoder is a mock implementation of ports.VideoEncoder.
type VideoEncoder struct {
	BeginFunc      func(info pipeline.VideoInfo, opts ports.EncoderOptions) error
	WriteFrameFunc func(f *pipeline.Frame) error
	EndFunc        func() ([]byte, error)

	// Recorded calls for verification
	BeginCalled bool
	BeginOpts   ports.EncoderOptions
	FrameCount  int
	EndCalled   bool
}

func (m *VideoEncoder) Begin(info pipeline.VideoInfo, opts ports.EncoderOptions) error {
	m.BeginCalled = true
	m.BeginOpts = opts
	if m.BeginFunc != nil {
		return m.BeginFunc(info, opts)
	}
	return nil
}

func (m *VideoEncoder) WriteFrame(f *pipeline.Frame) error {
	m.FrameCount++
	if m.WriteFrameFunc != nil {
		return m.WriteFrameFunc(f)
	}
	return nil
}

func (m *VideoEncoder) End() ([]byte, error) {
	m.EndCalled = true
	if m.EndFunc != nil {
		return m.EndFunc()
	}
	return []byte("mock video data"), nil
}
