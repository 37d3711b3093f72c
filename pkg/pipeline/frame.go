package pipeline

// =============================================================================
// Frame
// =============================================================================

// Frame is a decoded video frame as interleaved 8-bit channel data in
// row-major order. For RGB frames Channels is 3 and Pix holds
// Width*Height*3 bytes.
type Frame struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// NewFrame allocates a zeroed frame with the given dimensions.
func NewFrame(width, height, channels int) *Frame {
	return &Frame{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]byte, width*height*channels),
	}
}

// Stride returns the number of bytes between successive rows.
func (f *Frame) Stride() int {
	return f.Width * f.Channels
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	pix := make([]byte, len(f.Pix))
	copy(pix, f.Pix)
	return &Frame{
		Width:    f.Width,
		Height:   f.Height,
		Channels: f.Channels,
		Pix:      pix,
	}
}

// Empty reports whether the frame holds no pixel data.
func (f *Frame) Empty() bool {
	return f == nil || f.Width <= 0 || f.Height <= 0 || len(f.Pix) == 0
}

// At returns the value of the given channel at (x, y).
func (f *Frame) At(x, y, c int) byte {
	return f.Pix[y*f.Stride()+x*f.Channels+c]
}

// Set writes the value of the given channel at (x, y).
func (f *Frame) Set(x, y, c int, v byte) {
	f.Pix[y*f.Stride()+x*f.Channels+c] = v
}
