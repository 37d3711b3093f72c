// Package marker generates, stamps and reads back the square fiducial
// markers placed near the frame corners. Each marker is a pregenerated
// image copied unchanged onto every frame: a visible border and corner
// label over a black background, plus three least-significant-bit planes
// in its interior. The pattern plane holds the video identity and corner
// code zero-padded to the plane size, the parity plane derives from the
// pattern bytes, and the checksum plane holds a 16-bit sum of the
// pattern and parity bytes.
package marker

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Options controls marker geometry and validation strictness.
type Options struct {
	// Size is the marker edge length in pixels.
	Size int
	// Margin is the distance from the frame edge to the marker.
	Margin int
	// Tolerance is the number of mismatched plane bits Validate accepts
	// before declaring a marker corrupt.
	Tolerance int
}

// DefaultOptions returns the standard marker geometry.
func DefaultOptions() Options {
	return Options{
		Size:      20,
		Margin:    60,
		Tolerance: 50,
	}
}

// Identity derives the 16-bit video identity from an arbitrary video ID
// string. The derivation is a BLAKE2b-256 digest truncated to its first
// two bytes, read little-endian, so any ID string maps to a stable value.
func Identity(videoID string) uint16 {
	sum := blake2b.Sum256([]byte(videoID))
	return binary.LittleEndian.Uint16(sum[:2])
}

// interiorPlaneBytes returns how many whole bytes one LSB plane of the
// marker interior holds. The border ring is excluded.
func interiorPlaneBytes(size int) int {
	inner := size - 2
	return inner * inner / 8
}
