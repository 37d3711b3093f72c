// Package zstdcompressor implements payload compression with zstandard.
// Caption payloads are short text records, so the encoder favors ratio
// over speed and reuses one encoder/decoder pair across calls.
package zstdcompressor

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/user/stegosub/pkg/ports"
)

// Compressor implements ports.Compressor with zstandard.
type Compressor struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// New creates a compressor. The encoder and decoder are stateless per
// EncodeAll/DecodeAll call and safe for concurrent use.
func New() (*Compressor, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Compressor{enc: enc, dec: dec}, nil
}

// Compress returns the zstd frame for src.
func (c *Compressor) Compress(src []byte) ([]byte, error) {
	return c.enc.EncodeAll(src, make([]byte, 0, len(src))), nil
}

// Decompress reverses Compress.
func (c *Compressor) Decompress(src []byte) ([]byte, error) {
	out, err := c.dec.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return out, nil
}

// Close releases encoder resources.
func (c *Compressor) Close() {
	c.enc.Close()
	c.dec.Close()
}

var _ ports.Compressor = (*Compressor)(nil)
