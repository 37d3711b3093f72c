// Package bitplane packs byte streams into the low-order bits of
// interleaved pixel data and unpacks them back out. A Region describes a
// rectangular window over a larger pixel buffer, so callers can address
// sub-rectangles of a frame without copying.
package bitplane

import (
	"errors"
)

var (
	// ErrCapacityExceeded is returned when data does not fit in a region.
	ErrCapacityExceeded = errors.New("bitplane: data exceeds region capacity")
)

// Region is a rectangular window over interleaved channel data. Stride is
// the number of bytes between the starts of consecutive rows in the
// underlying buffer, which may be wider than the region itself.
type Region struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
	Stride   int
}

// New returns a region covering a full buffer of the given dimensions.
func New(pix []byte, width, height, channels int) Region {
	return Region{
		Pix:      pix,
		Width:    width,
		Height:   height,
		Channels: channels,
		Stride:   width * channels,
	}
}

// Sub returns a sub-rectangle of r sharing the same underlying buffer.
func (r Region) Sub(x, y, w, h int) Region {
	return Region{
		Pix:      r.Pix[y*r.Stride+x*r.Channels:],
		Width:    w,
		Height:   h,
		Channels: r.Channels,
		Stride:   r.Stride,
	}
}

// CapacityBytes returns how many whole bytes fit in the region when each
// channel carries bitsPerChannel bits.
func (r Region) CapacityBytes(bitsPerChannel int) int {
	return r.Width * r.Height * r.Channels * bitsPerChannel / 8
}

// PlaneCapacityBytes returns how many whole bytes fit when a single
// channel carries one bit per pixel.
func (r Region) PlaneCapacityBytes() int {
	return r.Width * r.Height / 8
}

// Fits reports whether n bytes fit in the region at the given depth.
func (r Region) Fits(n, bitsPerChannel int) bool {
	return n <= r.CapacityBytes(bitsPerChannel)
}

// Pack embeds data into the low bitsPerChannel bits of each channel value.
// Bits are consumed LSB-first from each data byte, filled channel-major
// within each pixel and row-major across the region. The region is not
// modified when data does not fit.
func (r Region) Pack(data []byte, bitsPerChannel int) error {
	if !r.Fits(len(data), bitsPerChannel) {
		return ErrCapacityExceeded
	}
	mask := byte(1)<<bitsPerChannel - 1
	cursor := 0
	total := len(data) * 8
	for y := 0; y < r.Height && cursor < total; y++ {
		row := y * r.Stride
		for x := 0; x < r.Width && cursor < total; x++ {
			base := row + x*r.Channels
			for c := 0; c < r.Channels && cursor < total; c++ {
				var chunk byte
				for b := 0; b < bitsPerChannel && cursor < total; b++ {
					bit := data[cursor/8] >> (cursor % 8) & 1
					chunk |= bit << b
					cursor++
				}
				r.Pix[base+c] = r.Pix[base+c]&^mask | chunk
			}
		}
	}
	return nil
}

// Unpack extracts n bytes previously embedded with Pack at the same depth.
func (r Region) Unpack(n, bitsPerChannel int) ([]byte, error) {
	if !r.Fits(n, bitsPerChannel) {
		return nil, ErrCapacityExceeded
	}
	out := make([]byte, n)
	cursor := 0
	total := n * 8
	for y := 0; y < r.Height && cursor < total; y++ {
		row := y * r.Stride
		for x := 0; x < r.Width && cursor < total; x++ {
			base := row + x*r.Channels
			for c := 0; c < r.Channels && cursor < total; c++ {
				v := r.Pix[base+c]
				for b := 0; b < bitsPerChannel && cursor < total; b++ {
					out[cursor/8] |= (v >> b & 1) << (cursor % 8)
					cursor++
				}
			}
		}
	}
	return out, nil
}

// PackPlane embeds data one bit per pixel into the least significant bit
// of a single channel.
func (r Region) PackPlane(data []byte, channel int) error {
	if len(data) > r.PlaneCapacityBytes() {
		return ErrCapacityExceeded
	}
	cursor := 0
	total := len(data) * 8
	for y := 0; y < r.Height && cursor < total; y++ {
		row := y * r.Stride
		for x := 0; x < r.Width && cursor < total; x++ {
			i := row + x*r.Channels + channel
			bit := data[cursor/8] >> (cursor % 8) & 1
			r.Pix[i] = r.Pix[i]&^1 | bit
			cursor++
		}
	}
	return nil
}

// UnpackPlane extracts n bytes previously embedded with PackPlane.
func (r Region) UnpackPlane(n, channel int) ([]byte, error) {
	if n > r.PlaneCapacityBytes() {
		return nil, ErrCapacityExceeded
	}
	out := make([]byte, n)
	cursor := 0
	total := n * 8
	for y := 0; y < r.Height && cursor < total; y++ {
		row := y * r.Stride
		for x := 0; x < r.Width && cursor < total; x++ {
			bit := r.Pix[row+x*r.Channels+channel] & 1
			out[cursor/8] |= bit << (cursor % 8)
			cursor++
		}
	}
	return out, nil
}
