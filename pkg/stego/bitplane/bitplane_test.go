package bitplane

import (
	"bytes"
	"errors"
	"testing"
)

func filledPix(w, h, channels int) []byte {
	pix := make([]byte, w*h*channels)
	for i := range pix {
		pix[i] = byte(37 + i*11)
	}
	return pix
}

func TestPackUnpackRoundtrip(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		bitsPerChannel int
		data           []byte
	}{
		{"single bit depth", 16, 4, 1, []byte("hi")},
		{"two bit depth", 16, 8, 2, []byte("hello world")},
		{"four bit depth", 8, 8, 4, bytes.Repeat([]byte{0xA5, 0x3C}, 10)},
		{"exact capacity", 8, 4, 2, make([]byte, 8*4*3*2/8)},
		{"empty data", 8, 4, 2, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(filledPix(tt.width, tt.height, 3), tt.width, tt.height, 3)
			if err := r.Pack(tt.data, tt.bitsPerChannel); err != nil {
				t.Fatalf("Pack() error = %v", err)
			}
			got, err := r.Unpack(len(tt.data), tt.bitsPerChannel)
			if err != nil {
				t.Fatalf("Unpack() error = %v", err)
			}
			if !bytes.Equal(got, tt.data) {
				t.Errorf("Unpack() = %v, want %v", got, tt.data)
			}
		})
	}
}

func TestPackCapacityExceeded(t *testing.T) {
	r := New(filledPix(8, 4, 3), 8, 4, 3)
	capacity := r.CapacityBytes(2)

	if err := r.Pack(make([]byte, capacity+1), 2); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("Pack() error = %v, want ErrCapacityExceeded", err)
	}
}

func TestPackDoesNotMutateOnOverflow(t *testing.T) {
	pix := filledPix(4, 4, 3)
	before := append([]byte(nil), pix...)
	r := New(pix, 4, 4, 3)

	if err := r.Pack(make([]byte, r.CapacityBytes(1)+1), 1); err == nil {
		t.Fatal("Pack() expected error")
	}
	if !bytes.Equal(pix, before) {
		t.Error("Pack() mutated pixels despite capacity error")
	}
}

func TestPackPreservesHighBits(t *testing.T) {
	pix := filledPix(8, 4, 3)
	before := append([]byte(nil), pix...)
	r := New(pix, 8, 4, 3)

	if err := r.Pack(bytes.Repeat([]byte{0xFF}, r.CapacityBytes(2)), 2); err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	for i := range pix {
		if pix[i]&0xFC != before[i]&0xFC {
			t.Fatalf("pixel %d high bits changed: %02x -> %02x", i, before[i], pix[i])
		}
	}
}

func TestPlaneRoundtrip(t *testing.T) {
	r := New(filledPix(18, 18, 3), 18, 18, 3)
	data := bytes.Repeat([]byte{0xC3, 0x5A, 0x0F}, 13)

	for channel := 0; channel < 3; channel++ {
		if err := r.PackPlane(data, channel); err != nil {
			t.Fatalf("PackPlane(channel=%d) error = %v", channel, err)
		}
	}
	for channel := 0; channel < 3; channel++ {
		got, err := r.UnpackPlane(len(data), channel)
		if err != nil {
			t.Fatalf("UnpackPlane(channel=%d) error = %v", channel, err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("UnpackPlane(channel=%d) = %v, want %v", channel, got, data)
		}
	}
}

func TestPlaneCapacity(t *testing.T) {
	r := New(filledPix(18, 18, 3), 18, 18, 3)
	if got := r.PlaneCapacityBytes(); got != 40 {
		t.Errorf("PlaneCapacityBytes() = %d, want 40", got)
	}
	if err := r.PackPlane(make([]byte, 41), 0); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("PackPlane() error = %v, want ErrCapacityExceeded", err)
	}
}

func TestSubRegionUsesParentStride(t *testing.T) {
	parent := New(filledPix(20, 20, 3), 20, 20, 3)
	sub := parent.Sub(5, 5, 8, 8)
	data := []byte("stride test!")

	if err := sub.Pack(data, 2); err != nil {
		t.Fatalf("Pack() error = %v", err)
	}
	got, err := sub.Unpack(len(data), 2)
	if err != nil {
		t.Fatalf("Unpack() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Unpack() = %q, want %q", got, data)
	}

	// Pixels outside the sub-rectangle stay untouched.
	fresh := filledPix(20, 20, 3)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if x >= 5 && x < 13 && y >= 5 && y < 13 {
				continue
			}
			for c := 0; c < 3; c++ {
				i := y*20*3 + x*3 + c
				if parent.Pix[i] != fresh[i] {
					t.Fatalf("pixel (%d,%d,%d) outside sub-region changed", x, y, c)
				}
			}
		}
	}
}

func TestCapacityBytes(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		bitsPerChannel int
		want           int
	}{
		{"timing strip", 640, 5, 2, 2400},
		{"subtitle region", 640, 48, 2, 23040},
		{"tiny region", 3, 1, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(make([]byte, tt.width*tt.height*3), tt.width, tt.height, 3)
			if got := r.CapacityBytes(tt.bitsPerChannel); got != tt.want {
				t.Errorf("CapacityBytes(%d) = %d, want %d", tt.bitsPerChannel, got, tt.want)
			}
		})
	}
}
