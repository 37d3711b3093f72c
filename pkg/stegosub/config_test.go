package stegosub

import "testing"

func TestNewConfigBuilder_Defaults(t *testing.T) {
	cfg := NewConfigBuilder("episode-42").Build()

	if cfg.VideoID != "episode-42" {
		t.Errorf("VideoID = %q", cfg.VideoID)
	}
	if cfg.MarkerSize != 20 || cfg.MarkerMargin != 60 || cfg.Tolerance != 50 {
		t.Errorf("marker = %d/%d/%d", cfg.MarkerSize, cfg.MarkerMargin, cfg.Tolerance)
	}
	if cfg.TimingRows != 5 || cfg.SubtitlePercent != 10 || cfg.BitsPerChannel != 2 {
		t.Errorf("layout = %d/%d/%d", cfg.TimingRows, cfg.SubtitlePercent, cfg.BitsPerChannel)
	}
	if cfg.Quality != 0 {
		t.Errorf("Quality = %d, want lossless default 0", cfg.Quality)
	}
	if !cfg.CopyAudio {
		t.Error("CopyAudio should default to true")
	}
}

func TestConfigBuilder_Fluent(t *testing.T) {
	cfg := NewConfigBuilder("v").
		WithMarkerSize(24).
		WithMarkerMargin(40).
		WithTimingRows(3).
		WithSubtitlePercent(15).
		WithWorkers(2).
		WithQuality(25).
		WithCopyAudio(false).
		Build()

	if cfg.MarkerSize != 24 || cfg.MarkerMargin != 40 {
		t.Errorf("marker = %d/%d", cfg.MarkerSize, cfg.MarkerMargin)
	}
	if cfg.TimingRows != 3 || cfg.SubtitlePercent != 15 {
		t.Errorf("layout = %d/%d", cfg.TimingRows, cfg.SubtitlePercent)
	}
	if cfg.Workers != 2 || cfg.Quality != 25 || cfg.CopyAudio {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfigBuilder_Constraints(t *testing.T) {
	cfg := NewConfigBuilder("v").
		WithMarkerSize(1).
		WithBitsPerChannel(12).
		WithSubtitlePercent(90).
		WithTimingRows(0).
		Build()

	if cfg.MarkerSize != 4 {
		t.Errorf("MarkerSize = %d, want clamped 4", cfg.MarkerSize)
	}
	if cfg.BitsPerChannel != 8 {
		t.Errorf("BitsPerChannel = %d, want clamped 8", cfg.BitsPerChannel)
	}
	if cfg.SubtitlePercent != 50 {
		t.Errorf("SubtitlePercent = %d, want clamped 50", cfg.SubtitlePercent)
	}
	if cfg.TimingRows != 1 {
		t.Errorf("TimingRows = %d, want clamped 1", cfg.TimingRows)
	}
}

func TestConfig_ToStegoConfig(t *testing.T) {
	sc := NewConfigBuilder("episode-42").WithMarkerSize(28).Build().ToStegoConfig()

	if sc.VideoID != "episode-42" || sc.Marker.Size != 28 {
		t.Errorf("stego config = %+v", sc)
	}
}

func TestConfig_ToOrchestratorConfig(t *testing.T) {
	oc := NewConfigBuilder("v").WithQuality(12).Build().
		ToOrchestratorConfig("in.mp4", "out.mp4", "subs.srt")

	if oc.InputPath != "in.mp4" || oc.OutputPath != "out.mp4" || oc.SubtitlePath != "subs.srt" {
		t.Errorf("paths = %+v", oc)
	}
	if oc.Quality != 12 || !oc.CopyAudio {
		t.Errorf("encoding = %+v", oc)
	}
}
