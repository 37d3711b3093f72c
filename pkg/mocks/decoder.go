package mocks

import (
	"io"

	"github.com/user/stegosub/pkg/pipeline"
)

// VideoDecoder is a mock implementation of ports.VideoDecoder that serves
// preloaded frames.
type VideoDecoder struct {
	OpenFunc      func(path string) (pipeline.VideoInfo, error)
	ReadFrameFunc func() (*pipeline.Frame, error)
	CloseFunc     func() error

	// Frames are served by the default ReadFrame when ReadFrameFunc is nil.
	Frames []*pipeline.Frame
	Info   pipeline.VideoInfo

	OpenedPath  string
	CloseCalled bool

	next int
}

func (m *VideoDecoder) Open(path string) (pipeline.VideoInfo, error) {
	m.OpenedPath = path
	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}
	return m.Info, nil
}

func (m *VideoDecoder) ReadFrame() (*pipeline.Frame, error) {
	if m.ReadFrameFunc != nil {
		return m.ReadFrameFunc()
	}
	if m.next >= len(m.Frames) {
		return nil, io.EOF
	}
	f := m.Frames[m.next]
	m.next++
	return f, nil
}

func (m *VideoDecoder) Close() error {
	m.CloseCalled = true
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// VideoProber is a mock implementation of ports.VideoProber.
type VideoProber struct {
	ProbeFunc func(path string) (pipeline.VideoInfo, error)
	Info      pipeline.VideoInfo
}

func (m *VideoProber) Probe(path string) (pipeline.VideoInfo, error) {
	if m.ProbeFunc != nil {
		return m.ProbeFunc(path)
	}
	return m.Info, nil
}
