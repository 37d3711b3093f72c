package marker

import (
	"math/bits"

	"github.com/user/stegosub/pkg/pipeline"
	"github.com/user/stegosub/pkg/stego/bitplane"
)

// Set holds the four pregenerated corner marker images for one video
// identity. Each marker is rendered once at construction and copied
// verbatim onto every frame, so the stamped block is identical across
// frames and a downstream reader can match it as a known image. A Set is
// immutable after construction and safe for concurrent use by multiple
// stamping workers.
type Set struct {
	Identity uint16
	Opts     Options

	pattern  [4][]byte
	parity   [4][]byte
	checksum [4][]byte
	image    [4][]byte
}

// NewSet derives the identity from videoID and renders the marker image
// for every corner. Construction is deterministic: the same video ID and
// options always produce the same set.
func NewSet(videoID string, opts Options) *Set {
	s := &Set{
		Identity: Identity(videoID),
		Opts:     opts,
	}
	n := interiorPlaneBytes(opts.Size)
	for _, c := range Corners {
		rec := s.record(c)
		s.pattern[c] = recordPlane(rec, n)
		s.parity[c] = parityBytes(s.pattern[c])
		s.checksum[c] = checksumBytes(s.pattern[c], s.parity[c])
		s.image[c] = s.renderMarker(c)
	}
	return s
}

// record builds the 3-byte little-endian pattern record for a corner:
// identity<<2 | cornerCode, 18 bits of information.
func (s *Set) record(c Corner) [3]byte {
	v := uint32(s.Identity)<<2 | uint32(c.Code())
	return [3]byte{byte(v), byte(v >> 8), byte(v >> 16)}
}

// recordPlane places the record in the first three plane bytes and
// zero-pads the remainder.
func recordPlane(rec [3]byte, n int) []byte {
	out := make([]byte, n)
	copy(out, rec[:])
	return out
}

// parityBytes derives the parity plane from the pattern plane, one byte
// per pattern byte.
func parityBytes(pattern []byte) []byte {
	out := make([]byte, len(pattern))
	for i, b := range pattern {
		out[i] = b ^ (b << 1)
	}
	return out
}

// checksumBytes fills the plane with the 16-bit sum of all pattern and
// parity bytes, low byte at even offsets and high byte at odd offsets.
func checksumBytes(pattern, parity []byte) []byte {
	var sum uint16
	for i := range pattern {
		sum += uint16(pattern[i]) + uint16(parity[i])
	}
	out := make([]byte, len(pattern))
	for i := range out {
		if i%2 == 0 {
			out[i] = byte(sum)
		} else {
			out[i] = byte(sum >> 8)
		}
	}
	return out
}

// renderMarker draws one corner's full marker block over a black
// background: the visible border and label are painted first at full
// pixel value, then the three interior planes overwrite the least
// significant bits, so the embedded data stays authoritative even where
// a glyph stroke crosses it.
func (s *Set) renderMarker(c Corner) []byte {
	size := s.Opts.Size
	img := make([]byte, size*size*3)
	drawBorder(img, size)
	drawLabel(img, size, c)

	interior := imageRegion(img, size).Sub(1, 1, size-2, size-2)
	interior.PackPlane(s.pattern[c], 0)
	interior.PackPlane(s.parity[c], 1)
	interior.PackPlane(s.checksum[c], 2)
	return img
}

func imageRegion(img []byte, size int) bitplane.Region {
	return bitplane.Region{
		Pix:      img,
		Width:    size,
		Height:   size,
		Channels: 3,
		Stride:   size * 3,
	}
}

func setImagePixel(img []byte, size, x, y int, v byte) {
	off := (y*size + x) * 3
	img[off] = v
	img[off+1] = v
	img[off+2] = v
}

// drawBorder paints the top and left edges white and the bottom and
// right edges black, giving the marker a visually locatable frame.
func drawBorder(img []byte, size int) {
	for i := 0; i < size; i++ {
		setImagePixel(img, size, i, 0, 255)
		setImagePixel(img, size, 0, i, 255)
		setImagePixel(img, size, i, size-1, 0)
		setImagePixel(img, size, size-1, i, 0)
	}
}

// drawLabel paints the corner's two-letter label into the interior. Too
// small a marker has no room for it, so the label is best-effort.
func drawLabel(img []byte, size int, c Corner) {
	if size < 16 {
		return
	}
	label := c.Label()
	drawGlyph(img, size, 5, 7, label[0])
	drawGlyph(img, size, 10, 7, label[1])
}

// ============================================================
// Placement
// ============================================================

// Placement locates one corner marker within a frame.
type Placement struct {
	Corner Corner
	X      int
	Y      int
}

// Placements computes where each marker lands in a frame of the given
// dimensions. Corners whose marker would fall outside the frame, or
// collide with the marker on the opposite side, are returned in skipped
// rather than failing the frame.
func (s *Set) Placements(w, h int) (fits []Placement, skipped []Corner) {
	size := s.Opts.Size
	m := s.Opts.Margin

	candidates := []Placement{
		{Corner: TopLeft, X: m, Y: m},
		{Corner: TopRight, X: w - m - size, Y: m},
		{Corner: BottomLeft, X: m, Y: h - m - size},
		{Corner: BottomRight, X: w - m - size, Y: h - m - size},
	}
	horizontalRoom := w >= 2*(m+size)
	verticalRoom := h >= 2*(m+size)

	for _, p := range candidates {
		ok := p.X >= 0 && p.Y >= 0 && p.X+size <= w && p.Y+size <= h
		if p.Corner == TopRight || p.Corner == BottomRight {
			ok = ok && horizontalRoom
		}
		if p.Corner == BottomLeft || p.Corner == BottomRight {
			ok = ok && verticalRoom
		}
		if ok {
			fits = append(fits, p)
		} else {
			skipped = append(skipped, p.Corner)
		}
	}
	return fits, skipped
}

// ============================================================
// Stamping
// ============================================================

// Stamp copies the corner's pregenerated marker block onto the frame at
// the given placement, so every frame carries the identical block.
func (s *Set) Stamp(f *pipeline.Frame, p Placement) {
	size := s.Opts.Size
	img := s.image[p.Corner]
	rowBytes := size * 3
	for row := 0; row < size; row++ {
		dst := (p.Y+row)*f.Stride() + p.X*f.Channels
		copy(f.Pix[dst:dst+rowBytes], img[row*rowBytes:(row+1)*rowBytes])
	}
}

// ============================================================
// Validation
// ============================================================

// Validation reports how faithfully a stamped marker survived in a frame.
type Validation struct {
	Corner    Corner
	BitErrors int
	OK        bool
}

// Validate re-reads the three planes at a placement and counts how many
// bits differ from the expected planes. The marker passes when the count
// stays within Opts.Tolerance, which leaves headroom for lossy video
// round-trips.
func (s *Set) Validate(f *pipeline.Frame, p Placement) Validation {
	size := s.Opts.Size
	n := interiorPlaneBytes(size)
	interior := frameRegion(f).Sub(p.X+1, p.Y+1, size-2, size-2)

	errs := 0
	expected := [3][]byte{s.pattern[p.Corner], s.parity[p.Corner], s.checksum[p.Corner]}
	for channel := 0; channel < 3; channel++ {
		got, err := interior.UnpackPlane(n, channel)
		if err != nil {
			return Validation{Corner: p.Corner, BitErrors: n * 8 * 3, OK: false}
		}
		for i := range got {
			errs += bits.OnesCount8(got[i] ^ expected[channel][i])
		}
	}
	return Validation{
		Corner:    p.Corner,
		BitErrors: errs,
		OK:        errs <= s.Opts.Tolerance,
	}
}

func frameRegion(f *pipeline.Frame) bitplane.Region {
	return bitplane.Region{
		Pix:      f.Pix,
		Width:    f.Width,
		Height:   f.Height,
		Channels: f.Channels,
		Stride:   f.Stride(),
	}
}
