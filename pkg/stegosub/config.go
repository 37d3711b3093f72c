// Package stegosub provides a high-level API for embedding metadata in videos.
package stegosub

import (
	"github.com/user/stegosub/pkg/orchestrator"
	"github.com/user/stegosub/pkg/stego"
	"github.com/user/stegosub/pkg/stego/marker"
)

// Config represents the configuration for stegosub embedding.
type Config struct {
	// Identity
	VideoID string // Operator-supplied identifier hashed into the markers

	// Marker layout
	MarkerSize   int // Marker edge length in pixels (min: 4)
	MarkerMargin int // Distance from the frame edge in pixels
	Tolerance    int // Acceptable bit errors per marker during validation

	// Embedding layout
	TimingRows      int // Rows of the top strip carrying the timing record
	SubtitlePercent int // Height of the bottom band as a percentage (1-50)
	BitsPerChannel  int // Low bits used per channel (1-8)

	// Stamping
	Workers int // Parallel stamping workers (0 = one per CPU)

	// Encoding
	Quality   int  // CRF 0-63; 0 selects lossless encoding
	Bitrate   int  // Target bitrate in kbps (0 = encoder decides)
	CopyAudio bool // Remux the source audio track into the output
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
// Lossless encoding is the default because lossy re-encoding destroys
// the embedded bits.
func NewConfigBuilder(videoID string) *ConfigBuilder {
	m := marker.DefaultOptions()
	return &ConfigBuilder{
		config: Config{
			VideoID: videoID,

			MarkerSize:   m.Size,
			MarkerMargin: m.Margin,
			Tolerance:    m.Tolerance,

			TimingRows:      5,
			SubtitlePercent: 10,
			BitsPerChannel:  2,

			Workers: 0,

			Quality:   0,
			Bitrate:   0,
			CopyAudio: true,
		},
	}
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	if cfg.MarkerSize < 4 {
		cfg.MarkerSize = 4
	}
	if cfg.BitsPerChannel < 1 {
		cfg.BitsPerChannel = 1
	}
	if cfg.BitsPerChannel > 8 {
		cfg.BitsPerChannel = 8
	}
	if cfg.SubtitlePercent < 1 {
		cfg.SubtitlePercent = 1
	}
	if cfg.SubtitlePercent > 50 {
		cfg.SubtitlePercent = 50
	}
	if cfg.TimingRows < 1 {
		cfg.TimingRows = 1
	}

	return cfg
}

// WithMarkerSize sets the marker edge length in pixels.
// Values below 4 will be forced to 4.
func (b *ConfigBuilder) WithMarkerSize(size int) *ConfigBuilder {
	b.config.MarkerSize = size
	return b
}

// WithMarkerMargin sets the distance from the frame edge in pixels.
func (b *ConfigBuilder) WithMarkerMargin(margin int) *ConfigBuilder {
	b.config.MarkerMargin = margin
	return b
}

// WithTolerance sets the acceptable bit errors per marker.
func (b *ConfigBuilder) WithTolerance(tolerance int) *ConfigBuilder {
	b.config.Tolerance = tolerance
	return b
}

// WithTimingRows sets the height of the top timing strip in rows.
func (b *ConfigBuilder) WithTimingRows(rows int) *ConfigBuilder {
	b.config.TimingRows = rows
	return b
}

// WithSubtitlePercent sets the bottom band height as a percentage.
// Values are clamped to 1-50.
func (b *ConfigBuilder) WithSubtitlePercent(percent int) *ConfigBuilder {
	b.config.SubtitlePercent = percent
	return b
}

// WithBitsPerChannel sets how many low bits each channel carries.
// Values are clamped to 1-8.
func (b *ConfigBuilder) WithBitsPerChannel(bits int) *ConfigBuilder {
	b.config.BitsPerChannel = bits
	return b
}

// WithWorkers sets the number of parallel stamping workers.
// Use 0 for one worker per CPU.
func (b *ConfigBuilder) WithWorkers(workers int) *ConfigBuilder {
	b.config.Workers = workers
	return b
}

// WithQuality sets the CRF value (0-63, lower is better).
// Any value above 0 re-encodes lossily, which degrades the embedded bits.
func (b *ConfigBuilder) WithQuality(quality int) *ConfigBuilder {
	b.config.Quality = quality
	return b
}

// WithBitrate sets the target bitrate in kbps. Use 0 to let the encoder
// decide.
func (b *ConfigBuilder) WithBitrate(bitrate int) *ConfigBuilder {
	b.config.Bitrate = bitrate
	return b
}

// WithCopyAudio controls whether the source audio track is remuxed into
// the output.
func (b *ConfigBuilder) WithCopyAudio(copy bool) *ConfigBuilder {
	b.config.CopyAudio = copy
	return b
}

// ToStegoConfig converts Config to stego.Config.
func (c Config) ToStegoConfig() stego.Config {
	return stego.Config{
		VideoID: c.VideoID,
		Marker: marker.Options{
			Size:      c.MarkerSize,
			Margin:    c.MarkerMargin,
			Tolerance: c.Tolerance,
		},
		TimingRows:      c.TimingRows,
		SubtitlePercent: c.SubtitlePercent,
		BitsPerChannel:  c.BitsPerChannel,
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig(inputPath, outputPath, subtitlePath string) orchestrator.Config {
	return orchestrator.Config{
		InputPath:    inputPath,
		OutputPath:   outputPath,
		SubtitlePath: subtitlePath,

		Quality:   c.Quality,
		Bitrate:   c.Bitrate,
		CopyAudio: c.CopyAudio,
	}
}
