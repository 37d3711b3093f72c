// Package main provides the CLI entry point for stegosub.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/stegosub/pkg/adapters/ffmpegdecoder"
	"github.com/user/stegosub/pkg/adapters/ffmpegencoder"
	"github.com/user/stegosub/pkg/adapters/filesink"
	"github.com/user/stegosub/pkg/adapters/ggannotator"
	"github.com/user/stegosub/pkg/adapters/logger"
	"github.com/user/stegosub/pkg/adapters/mp4probe"
	"github.com/user/stegosub/pkg/adapters/nullsink"
	"github.com/user/stegosub/pkg/adapters/osfilesystem"
	"github.com/user/stegosub/pkg/adapters/srtsubtitles"
	"github.com/user/stegosub/pkg/adapters/zstdcompressor"
	"github.com/user/stegosub/pkg/config"
	"github.com/user/stegosub/pkg/orchestrator"
	"github.com/user/stegosub/pkg/pipeline"
	"github.com/user/stegosub/pkg/ports"
	"github.com/user/stegosub/pkg/stages/captions"
	"github.com/user/stegosub/pkg/stages/decode"
	"github.com/user/stegosub/pkg/stages/encode"
	"github.com/user/stegosub/pkg/stages/stamp"
	"github.com/user/stegosub/pkg/stego"
	"github.com/user/stegosub/pkg/stegosub"
	"github.com/user/stegosub/pkg/summarizer"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Embed    EmbedCmd    `cmd:"" help:"Embed identity markers, timing and subtitles into a video."`
	Extract  ExtractCmd  `cmd:"" help:"Extract embedded metadata and subtitles from a video."`
	Capacity CapacityCmd `cmd:"" help:"Report the embedding capacity of a video or frame size."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// EmbedCmd defines the embed subcommand.
type EmbedCmd struct {
	// Required arguments
	Input  string `arg:"" help:"Input video file path."`
	Output string `short:"o" required:"" help:"Output MP4 file path."`

	// Identity
	VideoID string `short:"i" help:"Video identifier hashed into the corner markers."`

	// Subtitles
	Subtitles string `short:"s" help:"Subtitle file (SRT or WebVTT) to embed."`

	// Config file
	Config string `short:"C" help:"YAML configuration file."`

	// Marker options (override config)
	MarkerSize   *int `help:"Marker edge length in pixels (default: 20)."`
	MarkerMargin *int `help:"Marker distance from the frame edge in pixels (default: 60)."`
	Tolerance    *int `help:"Acceptable bit errors per marker (default: 50)."`

	// Layout options (override config)
	TimingRows      *int `help:"Rows of the top strip carrying the timing record (default: 5)."`
	SubtitlePercent *int `help:"Bottom band height as a percentage (1-50, default: 10)."`
	BitsPerChannel  *int `help:"Low bits used per channel (1-8, default: 2)."`

	// Stamping options
	Workers *int `short:"w" help:"Parallel stamping workers (0 = one per CPU)."`

	// Encoding options
	Quality *int `short:"q" help:"Video quality (CRF 0-63, 0 = lossless; lossy degrades embedded bits)."`
	Bitrate *int `help:"Target bitrate in kbps (0 = encoder decides)."`
	NoAudio bool `help:"Do not remux the source audio track."`

	// Summary
	Summary string `help:"Output execution summary to file (Markdown format)."`

	// Debug options
	Debug    bool   `short:"d" help:"Enable debug output."`
	DebugDir string `default:"./debug" help:"Directory for debug output."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// ExtractCmd defines the extract subcommand.
type ExtractCmd struct {
	Input  string `arg:"" help:"Input video file path."`
	Output string `short:"o" help:"Output SRT file path (default: stdout)."`

	// Identity check
	VideoID string `short:"i" help:"Expected video identifier; mismatching markers are reported."`

	// Layout options, must match the embedding run
	TimingRows      int `default:"5" help:"Rows of the top timing strip."`
	SubtitlePercent int `default:"10" help:"Bottom band height as a percentage."`
	BitsPerChannel  int `default:"2" help:"Low bits used per channel."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// CapacityCmd defines the capacity subcommand.
type CapacityCmd struct {
	Input  string `arg:"" optional:"" help:"Video file to probe (MP4 preferred, ffprobe fallback)."`
	Width  int    `short:"W" help:"Frame width when no input file is given."`
	Height int    `short:"H" help:"Frame height when no input file is given."`

	TimingRows      int `default:"5" help:"Rows of the top timing strip."`
	SubtitlePercent int `default:"10" help:"Bottom band height as a percentage."`
	BitsPerChannel  int `default:"2" help:"Low bits used per channel."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("stegosub"),
		kong.Description("Embed recoverable identity, timing and subtitle data in video pixels."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the embed command.
func (cmd *EmbedCmd) Run() error {
	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}
	if cfg.VideoID == "" {
		return errors.New(l10n.T("a video ID is required (--video-id or config file)"))
	}

	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cmd.LogLevel))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	// Create adapters
	fs := osfilesystem.New()
	annotator := ggannotator.New()
	compressor, err := zstdcompressor.New()
	if err != nil {
		return fmt.Errorf("create compressor: %w", err)
	}
	defer compressor.Close()
	decoder := ffmpegdecoder.New()
	prober := ffmpegdecoder.NewProber()
	encoder := ffmpegencoder.New()

	var sink ports.DebugSink
	if cmd.Debug {
		if err := fs.MkdirAll(cmd.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cmd.DebugDir, fs, annotator)
	} else {
		sink = nullsink.New()
	}

	codec, err := stego.New(cfg.ToStegoConfig())
	if err != nil {
		return err
	}

	// Create stages
	decodeStage := decode.NewStage(decoder, log)
	captionsStage := captions.NewStage(srtsubtitles.New(fs), compressor, log)
	stampStage := stamp.NewStage(codec, sink, annotator, log, cfg.Workers)
	encodeStage := encode.NewStage(encoder, log)

	orch := orchestrator.New(
		codec,
		prober,
		decodeStage,
		captionsStage,
		stampStage,
		encodeStage,
		fs,
		sink,
		annotator,
		log,
	)

	log.Info(l10n.F("Embedding into %s (identity 0x%04X)...", cmd.Input, codec.Identity()))

	result, err := orch.Run(ctx, cfg.ToOrchestratorConfig(cmd.Input, cmd.Output, cmd.Subtitles))
	if err != nil {
		return err
	}

	log.Info(l10n.F("Output saved to %s", cmd.Output))

	if cmd.Summary != "" {
		if err := cmd.writeSummary(cfg, result); err != nil {
			log.Error(l10n.F("Failed to write summary: %s", err))
		} else {
			log.Info(l10n.F("Summary saved to %s", cmd.Summary))
		}
	}
	return nil
}

// buildConfig creates a Config from the config file and CLI overrides.
func (cmd *EmbedCmd) buildConfig() (stegosub.Config, error) {
	fileCfg := config.Defaults()
	if cmd.Config != "" {
		var err error
		fileCfg, err = config.LoadFromFile(cmd.Config)
		if err != nil {
			return stegosub.Config{}, fmt.Errorf("load config: %w", err)
		}
	}

	videoID := fileCfg.VideoID
	if cmd.VideoID != "" {
		videoID = cmd.VideoID
	}

	builder := stegosub.NewConfigBuilder(videoID).
		WithMarkerSize(fileCfg.Marker.Size).
		WithMarkerMargin(fileCfg.Marker.Margin).
		WithTolerance(fileCfg.Marker.Tolerance).
		WithTimingRows(fileCfg.TimingRows).
		WithSubtitlePercent(fileCfg.SubtitlePercent).
		WithBitsPerChannel(fileCfg.BitsPerChannel).
		WithWorkers(fileCfg.Workers).
		WithQuality(fileCfg.Quality).
		WithBitrate(fileCfg.Bitrate).
		WithCopyAudio(fileCfg.CopyAudio)

	if cmd.MarkerSize != nil {
		builder.WithMarkerSize(*cmd.MarkerSize)
	}
	if cmd.MarkerMargin != nil {
		builder.WithMarkerMargin(*cmd.MarkerMargin)
	}
	if cmd.Tolerance != nil {
		builder.WithTolerance(*cmd.Tolerance)
	}
	if cmd.TimingRows != nil {
		builder.WithTimingRows(*cmd.TimingRows)
	}
	if cmd.SubtitlePercent != nil {
		builder.WithSubtitlePercent(*cmd.SubtitlePercent)
	}
	if cmd.BitsPerChannel != nil {
		builder.WithBitsPerChannel(*cmd.BitsPerChannel)
	}
	if cmd.Workers != nil {
		builder.WithWorkers(*cmd.Workers)
	}
	if cmd.Quality != nil {
		builder.WithQuality(*cmd.Quality)
	}
	if cmd.Bitrate != nil {
		builder.WithBitrate(*cmd.Bitrate)
	}
	if cmd.NoAudio {
		builder.WithCopyAudio(false)
	}

	return builder.Build(), nil
}

// writeSummary renders the run result as a Markdown report.
func (cmd *EmbedCmd) writeSummary(cfg stegosub.Config, result orchestrator.RunResult) error {
	summary := summarizer.NewBuilder().
		WithSource(summarizer.SourceInfo{
			Path:       cmd.Input,
			Width:      result.Width,
			Height:     result.Height,
			FPS:        result.FPS,
			FrameCount: result.FrameCount,
		}).
		WithIdentity(cfg.VideoID, result.Identity).
		WithCaptions(summarizer.CaptionInfo{
			SubtitlePath:   cmd.Subtitles,
			EntryCount:     result.CaptionEntries,
			RawBytes:       result.CaptionRawBytes,
			PayloadBytes:   result.PayloadBytes,
			SubtitleFrames: result.SubtitleFrames,
			SubtitleSkips:  result.SubtitleSkips,
			CapacityBytes:  result.SubtitleBytes,
		}).
		WithMarkers(summarizer.MarkerInfo{
			Size:           cfg.MarkerSize,
			Margin:         cfg.MarkerMargin,
			CornersPlaced:  4 - len(result.CornersSkipped),
			CornersSkipped: result.CornersSkipped,
		}).
		WithVideo(summarizer.VideoInfo{
			Path:       cmd.Output,
			DurationMs: result.VideoDuration,
			FileSize:   result.VideoFileSize,
			Quality:    cfg.Quality,
		}).
		Build()

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	return summarizer.NewWriter(formatter).Write(cmd.Summary, summary)
}

// Run executes the extract command.
func (cmd *ExtractCmd) Run() error {
	var log ports.Logger
	if cmd.Quiet {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cmd.LogLevel))
	}

	videoID := cmd.VideoID
	if videoID == "" {
		// Extraction reads identity from the markers; the codec's own
		// identity is only compared when the caller supplies one.
		videoID = "unknown"
	}
	cfg := stego.DefaultConfig(videoID)
	cfg.TimingRows = cmd.TimingRows
	cfg.SubtitlePercent = cmd.SubtitlePercent
	cfg.BitsPerChannel = cmd.BitsPerChannel
	codec, err := stego.New(cfg)
	if err != nil {
		return err
	}

	compressor, err := zstdcompressor.New()
	if err != nil {
		return fmt.Errorf("create compressor: %w", err)
	}
	defer compressor.Close()

	decoder := ffmpegdecoder.New()
	info, err := decoder.Open(cmd.Input)
	if err != nil {
		return fmt.Errorf("open video: %w", err)
	}
	defer decoder.Close()

	log.Info(l10n.F("Extracting from %s (%dx%d)...", cmd.Input, info.Width, info.Height))

	var (
		entries      []pipeline.SubtitleEntry
		seen         = map[string]bool{}
		frameCount   int
		timingErrs   int
		identities   = map[uint16]int{}
		markerErrs   int
		markersFound int
	)

	for {
		frame, err := decoder.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read frame %d: %w", frameCount, err)
		}
		frameCount++

		res, err := codec.ExtractFrame(frame)
		if err != nil {
			return fmt.Errorf("extract frame %d: %w", frameCount-1, err)
		}

		if res.TimingErr != nil {
			timingErrs++
		}

		for _, m := range res.Markers {
			if m.Err != nil {
				markerErrs++
				continue
			}
			markersFound++
			identities[m.Decoded.Identity]++
		}

		if res.SubtitleErr != nil || len(res.Payload) == 0 {
			continue
		}
		key := string(res.Payload)
		if seen[key] {
			continue
		}
		seen[key] = true

		raw, err := compressor.Decompress(res.Payload)
		if err != nil {
			log.Warn(l10n.F("Frame %d: undecodable caption payload: %s", frameCount-1, err))
			continue
		}
		entry, err := captions.DecodeEntry(raw)
		if err != nil {
			log.Warn(l10n.F("Frame %d: malformed caption payload: %s", frameCount-1, err))
			continue
		}
		entries = append(entries, entry)
	}

	if frameCount == 0 {
		return fmt.Errorf("no frames decoded from %s", cmd.Input)
	}

	log.Info(l10n.F("Read %d frames, %d with unreadable timing", frameCount, timingErrs))
	log.Info(l10n.F("Markers decoded: %d ok, %d corrupt", markersFound, markerErrs))

	for identity, count := range identities {
		log.Info(l10n.F("Marker identity 0x%04X seen %d times", identity, count))
		if cmd.VideoID != "" && identity != codec.Identity() {
			log.Warn(l10n.F("Identity 0x%04X does not match video ID %s (0x%04X)",
				identity, cmd.VideoID, codec.Identity()))
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].StartMs < entries[j].StartMs })
	log.Info(l10n.F("Recovered %d caption entries", len(entries)))

	out := srtsubtitles.FormatSRT(entries)
	if cmd.Output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := osfilesystem.New().WriteFile(cmd.Output, out); err != nil {
		return err
	}
	log.Info(l10n.F("Subtitles saved to %s", cmd.Output))
	return nil
}

// Run executes the capacity command.
func (cmd *CapacityCmd) Run() error {
	width, height := cmd.Width, cmd.Height
	if cmd.Input != "" {
		info, err := probeVideo(cmd.Input)
		if err != nil {
			return err
		}
		width, height = info.Width, info.Height
	}
	if width <= 0 || height <= 0 {
		return errors.New(l10n.T("an input file or --width and --height are required"))
	}

	// Capacity is a pure function of geometry; the identity is irrelevant.
	cfg := stego.DefaultConfig("capacity")
	cfg.TimingRows = cmd.TimingRows
	cfg.SubtitlePercent = cmd.SubtitlePercent
	cfg.BitsPerChannel = cmd.BitsPerChannel
	codec, err := stego.New(cfg)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(codec.EstimateCapacity(width, height), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// probeVideo prefers the pure-Go MP4 prober and falls back to ffprobe for
// other containers.
func probeVideo(path string) (pipeline.VideoInfo, error) {
	info, err := mp4probe.New().Probe(path)
	if err == nil {
		return info, nil
	}
	if errors.Is(err, mp4probe.ErrNoVideoTrack) {
		return pipeline.VideoInfo{}, err
	}
	return ffmpegdecoder.NewProber().Probe(path)
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("stegosub (Go) version %s", version))
	return nil
}
