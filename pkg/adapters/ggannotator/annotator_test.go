package ggannotator

import (
	"bytes"
	"image"
	"testing"

	"github.com/user/stegosub/pkg/pipeline"
)

func TestFrameImage(t *testing.T) {
	f := pipeline.NewFrame(4, 2, 3)
	f.Set(1, 0, 0, 200)
	f.Set(1, 0, 1, 100)
	f.Set(1, 0, 2, 50)

	img := New().FrameImage(f).(*image.RGBA)
	r, g, b, a := img.At(1, 0).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 || a>>8 != 255 {
		t.Errorf("pixel (1,0) = %d,%d,%d,%d", r>>8, g>>8, b>>8, a>>8)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v", img.Bounds())
	}
}

func TestAnnotateMarkers(t *testing.T) {
	f := pipeline.NewFrame(200, 200, 3)
	boxes := []pipeline.MarkerBox{
		{Label: "TL", X: 60, Y: 60, Size: 20, Fits: true},
		{Label: "BR", Size: 20, Fits: false},
	}

	img := New().AnnotateMarkers(f, boxes)
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 200 {
		t.Errorf("bounds = %v", img.Bounds())
	}

	// The stroked box must leave non-black pixels along the rectangle.
	r, g, _, _ := img.At(60, 59).RGBA()
	if r == 0 && g == 0 {
		t.Error("no stroke drawn at marker boundary")
	}
}

func TestMagnify(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Pix[0] = 255 // red at (0,0)
	src.Pix[3] = 255

	dst := New().Magnify(src, 10).(*image.RGBA)
	if dst.Bounds().Dx() != 20 || dst.Bounds().Dy() != 20 {
		t.Fatalf("bounds = %v, want 20x20", dst.Bounds())
	}
	// Nearest-neighbor keeps the top-left 10x10 block solid red.
	r, _, _, _ := dst.At(9, 9).RGBA()
	if r>>8 != 255 {
		t.Errorf("magnified pixel (9,9) red = %d, want 255", r>>8)
	}
}

func TestEncodePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	data, err := New().EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("output is not a PNG")
	}
}
