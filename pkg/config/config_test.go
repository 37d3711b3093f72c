package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Marker.Size != 20 || cfg.Marker.Margin != 60 || cfg.Marker.Tolerance != 50 {
		t.Errorf("marker defaults = %+v", cfg.Marker)
	}
	if cfg.TimingRows != 5 || cfg.SubtitlePercent != 10 || cfg.BitsPerChannel != 2 {
		t.Errorf("layout defaults = %d/%d/%d", cfg.TimingRows, cfg.SubtitlePercent, cfg.BitsPerChannel)
	}
	if cfg.Quality != 0 {
		t.Errorf("Quality = %d, want lossless default 0", cfg.Quality)
	}
	if !cfg.CopyAudio {
		t.Error("CopyAudio should default to true")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFromFile(t *testing.T) {
	yaml := `
video_id: episode-42
input: in.mp4
output: out.mp4
subtitles: subs.srt
marker:
  size: 24
  margin: 40
quality: 20
workers: 2
log_level: debug
`
	path := filepath.Join(t.TempDir(), "stegosub.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.VideoID != "episode-42" {
		t.Errorf("VideoID = %q", cfg.VideoID)
	}
	if cfg.Marker.Size != 24 || cfg.Marker.Margin != 40 {
		t.Errorf("marker = %+v", cfg.Marker)
	}
	// Unspecified keys keep their defaults.
	if cfg.Marker.Tolerance != 50 {
		t.Errorf("Tolerance = %d, want default 50", cfg.Marker.Tolerance)
	}
	if cfg.SubtitlePercent != 10 {
		t.Errorf("SubtitlePercent = %d, want default 10", cfg.SubtitlePercent)
	}
	if cfg.Quality != 20 || cfg.Workers != 2 {
		t.Errorf("quality/workers = %d/%d", cfg.Quality, cfg.Workers)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	// Defaults still come back so callers can decide to continue.
	if cfg.TimingRows != 5 {
		t.Errorf("TimingRows = %d, want default 5", cfg.TimingRows)
	}
}

func TestToStegoConfig(t *testing.T) {
	cfg := Defaults()
	cfg.VideoID = "episode-42"
	cfg.Marker.Size = 28

	sc := cfg.ToStegoConfig()
	if sc.VideoID != "episode-42" || sc.Marker.Size != 28 {
		t.Errorf("stego config = %+v", sc)
	}
	if sc.TimingRows != 5 || sc.SubtitlePercent != 10 || sc.BitsPerChannel != 2 {
		t.Errorf("layout = %d/%d/%d", sc.TimingRows, sc.SubtitlePercent, sc.BitsPerChannel)
	}
}

func TestToOrchestratorConfig(t *testing.T) {
	cfg := Defaults()
	cfg.InputPath = "in.mp4"
	cfg.OutputPath = "out.mp4"
	cfg.SubtitlePath = "subs.srt"
	cfg.Quality = 12

	oc := cfg.ToOrchestratorConfig()
	if oc.InputPath != "in.mp4" || oc.OutputPath != "out.mp4" || oc.SubtitlePath != "subs.srt" {
		t.Errorf("paths = %+v", oc)
	}
	if oc.Quality != 12 || !oc.CopyAudio {
		t.Errorf("encoding = %+v", oc)
	}
}
