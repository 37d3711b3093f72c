package mocks

import (
	"image"
	"sync"

	"github.com/user/stegosub/pkg/pipeline"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	EnabledValue bool

	mu            sync.Mutex
	Markers       []string
	Previews      int
	CapacityJSON  []byte
	StampedFrames []int
}

func (m *DebugSink) Enabled() bool { return m.EnabledValue }

func (m *DebugSink) SaveMarker(corner string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Markers = append(m.Markers, corner)
	return nil
}

func (m *DebugSink) SavePlacementPreview(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Previews++
	return nil
}

func (m *DebugSink) SaveCapacityJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CapacityJSON = data
	return nil
}

func (m *DebugSink) SaveStampedFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StampedFrames = append(m.StampedFrames, index)
	return nil
}

// Annotator is a mock implementation of ports.Annotator.
type Annotator struct{}

func (m *Annotator) FrameImage(f *pipeline.Frame) image.Image {
	return image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
}

func (m *Annotator) AnnotateMarkers(f *pipeline.Frame, boxes []pipeline.MarkerBox) image.Image {
	return image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
}

func (m *Annotator) Magnify(img image.Image, factor int) image.Image {
	return img
}

func (m *Annotator) EncodePNG(img image.Image) ([]byte, error) {
	return []byte{0x89, 0x50, 0x4E, 0x47}, nil
}
