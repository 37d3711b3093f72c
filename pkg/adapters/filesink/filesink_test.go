package filesink

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/user/stegosub/pkg/mocks"
)

func TestSaveMarker(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New("debug", fs, &mocks.Annotator{})

	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	if err := sink.SaveMarker("TL", img); err != nil {
		t.Fatalf("SaveMarker() error = %v", err)
	}
	if _, err := fs.ReadFile(filepath.Join("debug", "marker-TL.png")); err != nil {
		t.Error("marker file not written")
	}
}

func TestSavePlacementPreview(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New("debug", fs, &mocks.Annotator{})

	if err := sink.SavePlacementPreview(image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("SavePlacementPreview() error = %v", err)
	}
	if _, err := fs.ReadFile(filepath.Join("debug", "placements.png")); err != nil {
		t.Error("preview file not written")
	}
}

func TestSaveCapacityJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New("debug", fs, &mocks.Annotator{})

	if err := sink.SaveCapacityJSON([]byte(`{"width":640}`)); err != nil {
		t.Fatalf("SaveCapacityJSON() error = %v", err)
	}
	data, err := fs.ReadFile(filepath.Join("debug", "capacity.json"))
	if err != nil || string(data) != `{"width":640}` {
		t.Errorf("capacity file = %q, err = %v", data, err)
	}
}

func TestSaveStampedFrame(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New("debug", fs, &mocks.Annotator{})

	if err := sink.SaveStampedFrame(7, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("SaveStampedFrame() error = %v", err)
	}
	if _, err := fs.ReadFile(filepath.Join("debug", "frames", "frame-0007.png")); err != nil {
		t.Error("frame file not written")
	}
}
