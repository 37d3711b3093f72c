package zstdcompressor

import (
	"bytes"
	"strings"
	"testing"
)

func TestRoundtrip(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	tests := []struct {
		name string
		data []byte
	}{
		{"caption text", []byte("0|3000|Hello there, how are you today?")},
		{"empty", []byte{}},
		{"binary", []byte{0x00, 0xFF, 0x80, 0x7F, 0x01}},
		{"repetitive", []byte(strings.Repeat("subtitle line ", 200))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := c.Compress(tt.data)
			if err != nil {
				t.Fatalf("Compress() error = %v", err)
			}
			got, err := c.Decompress(compressed)
			if err != nil {
				t.Fatalf("Decompress() error = %v", err)
			}
			if !bytes.Equal(got, tt.data) {
				t.Errorf("roundtrip mismatch: got %d bytes, want %d", len(got), len(tt.data))
			}
		})
	}
}

func TestCompressionShrinksRepetitiveText(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	data := []byte(strings.Repeat("the same caption text over and over ", 100))
	compressed, _ := c.Compress(data)
	if len(compressed) >= len(data) {
		t.Errorf("compressed %d bytes to %d, expected shrinkage", len(data), len(compressed))
	}
}

func TestDecompressRejectsGarbage(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, err := c.Decompress([]byte("not a zstd frame")); err == nil {
		t.Error("Decompress() expected error for invalid input")
	}
}
