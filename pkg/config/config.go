// Package config provides configuration loading and management.
package config

import (
	"os"

	"github.com/user/stegosub/pkg/orchestrator"
	"github.com/user/stegosub/pkg/stego"
	"github.com/user/stegosub/pkg/stego/marker"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for stegosub.
type Config struct {
	// Input/Output
	InputPath    string `yaml:"input"`
	OutputPath   string `yaml:"output"`
	SubtitlePath string `yaml:"subtitles"`

	// Identity
	VideoID string `yaml:"video_id"`

	// Marker layout
	Marker MarkerConfig `yaml:"marker"`

	// Embedding layout
	TimingRows      int `yaml:"timing_rows"`
	SubtitlePercent int `yaml:"subtitle_percent"`
	BitsPerChannel  int `yaml:"bits_per_channel"`

	// Stamping
	Workers int `yaml:"workers"`

	// Encoding
	Quality   int  `yaml:"quality"`
	Bitrate   int  `yaml:"bitrate"`
	CopyAudio bool `yaml:"copy_audio"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// MarkerConfig represents corner marker settings.
type MarkerConfig struct {
	Size      int `yaml:"size"`
	Margin    int `yaml:"margin"`
	Tolerance int `yaml:"tolerance"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	m := marker.DefaultOptions()
	return Config{
		Marker: MarkerConfig{
			Size:      m.Size,
			Margin:    m.Margin,
			Tolerance: m.Tolerance,
		},

		TimingRows:      5,
		SubtitlePercent: 10,
		BitsPerChannel:  2,

		Workers: 0, // 0 means one worker per CPU

		// Lossless by default so the embedded bits survive encoding.
		Quality:   0,
		Bitrate:   0,
		CopyAudio: true,

		DebugDir: "./debug",

		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		InputPath:    c.InputPath,
		OutputPath:   c.OutputPath,
		SubtitlePath: c.SubtitlePath,

		Quality:   c.Quality,
		Bitrate:   c.Bitrate,
		CopyAudio: c.CopyAudio,
	}
}

// ToStegoConfig converts Config to stego.Config.
func (c Config) ToStegoConfig() stego.Config {
	return stego.Config{
		VideoID: c.VideoID,
		Marker: marker.Options{
			Size:      c.Marker.Size,
			Margin:    c.Marker.Margin,
			Tolerance: c.Marker.Tolerance,
		},
		TimingRows:      c.TimingRows,
		SubtitlePercent: c.SubtitlePercent,
		BitsPerChannel:  c.BitsPerChannel,
	}
}
