// Package ggannotator renders debug imagery: raw frames as PNG-able
// images, marker placement overlays, and magnified marker close-ups.
package ggannotator

import (
	"bytes"
	"image"
	"image/png"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/user/stegosub/pkg/pipeline"
	"github.com/user/stegosub/pkg/ports"
)

// Annotator implements ports.Annotator with gg and x/image scaling.
type Annotator struct{}

// New creates an annotator.
func New() *Annotator {
	return &Annotator{}
}

// FrameImage converts an interleaved RGB frame into an RGBA image.
func (a *Annotator) FrameImage(f *pipeline.Frame) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		src := y * f.Stride()
		dst := y * img.Stride
		for x := 0; x < f.Width; x++ {
			img.Pix[dst+0] = f.Pix[src+0]
			img.Pix[dst+1] = f.Pix[src+1]
			img.Pix[dst+2] = f.Pix[src+2]
			img.Pix[dst+3] = 0xFF
			src += f.Channels
			dst += 4
		}
	}
	return img
}

// AnnotateMarkers draws each fitting placement as a stroked box with its
// corner label above it. Skipped corners have no geometry to draw.
func (a *Annotator) AnnotateMarkers(f *pipeline.Frame, boxes []pipeline.MarkerBox) image.Image {
	dc := gg.NewContextForImage(a.FrameImage(f))

	for _, box := range boxes {
		if !box.Fits {
			continue
		}
		dc.SetRGB(0, 1, 0)
		dc.SetLineWidth(1)
		dc.DrawRectangle(float64(box.X)-0.5, float64(box.Y)-0.5, float64(box.Size)+1, float64(box.Size)+1)
		dc.Stroke()
		dc.DrawString(box.Label, float64(box.X), float64(box.Y)-3)
	}
	return dc.Image()
}

// Magnify scales an image by an integer factor using nearest-neighbor
// sampling, keeping single-pixel marker detail inspectable.
func (a *Annotator) Magnify(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// EncodePNG serializes an image as PNG.
func (a *Annotator) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ ports.Annotator = (*Annotator)(nil)
