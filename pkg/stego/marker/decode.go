package marker

import (
	"errors"

	"github.com/user/stegosub/pkg/pipeline"
)

var (
	// ErrMarkerCorrupt is returned when the checksum plane disagrees with
	// the pattern record.
	ErrMarkerCorrupt = errors.New("marker: checksum plane does not match pattern record")
)

// DecodeResult is what Decode recovers from one marker region.
type DecodeResult struct {
	Corner   Corner
	Identity uint16
}

// Decode reads the pattern plane at a marker position and recovers the
// identity and corner code from its first three bytes. The checksum
// plane must agree with the sum the record implies over the zero-padded
// pattern and its parity.
func Decode(f *pipeline.Frame, x, y int, opts Options) (DecodeResult, error) {
	size := opts.Size
	n := interiorPlaneBytes(size)
	if n < 3 {
		return DecodeResult{}, ErrMarkerCorrupt
	}
	interior := frameRegion(f).Sub(x+1, y+1, size-2, size-2)

	pattern, err := interior.UnpackPlane(n, 0)
	if err != nil {
		return DecodeResult{}, err
	}
	var rec [3]byte
	copy(rec[:], pattern[:3])

	check, err := interior.UnpackPlane(n, 2)
	if err != nil {
		return DecodeResult{}, err
	}
	sum := uint16(check[0]) | uint16(check[1])<<8

	// Rebuild the planes the record implies and compare sums.
	expected := recordPlane(rec, n)
	parity := parityBytes(expected)
	var want uint16
	for i := range expected {
		want += uint16(expected[i]) + uint16(parity[i])
	}
	if sum != want {
		return DecodeResult{}, ErrMarkerCorrupt
	}

	v := uint32(rec[0]) | uint32(rec[1])<<8 | uint32(rec[2])<<16
	return DecodeResult{
		Corner:   Corner(v & 3),
		Identity: uint16(v >> 2),
	}, nil
}
