// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/stegosub/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir   string
	fs        ports.FileSystem
	annotator ports.Annotator
}

// New creates a new file sink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem, annotator ports.Annotator) *Sink {
	return &Sink{
		baseDir:   baseDir,
		fs:        fs,
		annotator: annotator,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveMarker saves a marker image magnified for inspection.
func (s *Sink) SaveMarker(corner string, img image.Image) error {
	data, err := s.annotator.EncodePNG(s.annotator.Magnify(img, 10))
	if err != nil {
		return fmt.Errorf("encode marker: %w", err)
	}
	path := filepath.Join(s.baseDir, fmt.Sprintf("marker-%s.png", corner))
	return s.fs.WriteFile(path, data)
}

// SavePlacementPreview saves the annotated placement overview.
func (s *Sink) SavePlacementPreview(img image.Image) error {
	data, err := s.annotator.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode placement preview: %w", err)
	}
	path := filepath.Join(s.baseDir, "placements.png")
	return s.fs.WriteFile(path, data)
}

// SaveCapacityJSON saves the capacity estimate as JSON.
func (s *Sink) SaveCapacityJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "capacity.json")
	return s.fs.WriteFile(path, data)
}

// SaveStampedFrame saves a stamped frame.
func (s *Sink) SaveStampedFrame(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.annotator.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode stamped frame: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index))
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
