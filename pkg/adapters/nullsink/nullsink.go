// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/stegosub/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveMarker does nothing.
func (s *Sink) SaveMarker(corner string, img image.Image) error {
	return nil
}

// SavePlacementPreview does nothing.
func (s *Sink) SavePlacementPreview(img image.Image) error {
	return nil
}

// SaveCapacityJSON does nothing.
func (s *Sink) SaveCapacityJSON(data []byte) error {
	return nil
}

// SaveStampedFrame does nothing.
func (s *Sink) SaveStampedFrame(index int, img image.Image) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
