// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ideamans/go-l10n"
	"github.com/user/stegosub/pkg/pipeline"
	"github.com/user/stegosub/pkg/ports"
	"github.com/user/stegosub/pkg/stego"
)

// Config contains all configuration for one pipeline run.
type Config struct {
	// Input/Output
	InputPath    string
	OutputPath   string
	SubtitlePath string // empty disables the caption track

	// Encoding
	Quality   int // CRF 0-63; 0 selects lossless encoding
	Bitrate   int // target bitrate in kbps, 0 lets the encoder decide
	CopyAudio bool
}

// DefaultConfig returns a Config with default values. Lossless output is
// the default because lossy re-encoding destroys the embedded bits.
func DefaultConfig() Config {
	return Config{
		Quality:   0,
		Bitrate:   0,
		CopyAudio: true,
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	codec         *stego.Codec
	prober        ports.VideoProber
	decodeStage   pipeline.Stage[pipeline.DecodeInput, pipeline.DecodeResult]
	captionsStage pipeline.Stage[pipeline.CaptionsInput, pipeline.CaptionsResult]
	stampStage    pipeline.Stage[pipeline.StampInput, pipeline.StampResult]
	encodeStage   pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	fs            ports.FileSystem
	sink          ports.DebugSink
	annotator     ports.Annotator
	logger        ports.Logger
}

// New creates a new Orchestrator.
func New(
	codec *stego.Codec,
	prober ports.VideoProber,
	decodeStage pipeline.Stage[pipeline.DecodeInput, pipeline.DecodeResult],
	captionsStage pipeline.Stage[pipeline.CaptionsInput, pipeline.CaptionsResult],
	stampStage pipeline.Stage[pipeline.StampInput, pipeline.StampResult],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	fs ports.FileSystem,
	sink ports.DebugSink,
	annotator ports.Annotator,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		codec:         codec,
		prober:        prober,
		decodeStage:   decodeStage,
		captionsStage: captionsStage,
		stampStage:    stampStage,
		encodeStage:   encodeStage,
		fs:            fs,
		sink:          sink,
		annotator:     annotator,
		logger:        logger,
	}
}

// Run executes the complete pipeline.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	o.logger.Info(l10n.T("Starting pipeline"))

	// 1. Probe input geometry and precheck capacity
	info, err := o.prober.Probe(config.InputPath)
	if err != nil {
		o.logger.Error(l10n.F("Failed to probe video: %s", err))
		return RunResult{}, fmt.Errorf("probe: %w", err)
	}
	o.logger.Info(l10n.F("Input video: %dx%d at %.2f fps", info.Width, info.Height, info.FPS))

	estimate, err := o.codec.Precheck(info)
	if err != nil {
		// A frame where no marker fits still carries timing and subtitles.
		o.logger.Warn(l10n.F("Capacity precheck: %s", err))
	}

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(estimate, "", "  "); err == nil {
			o.sink.SaveCapacityJSON(data)
		}
	}

	// 2. Decode all frames
	o.logger.Info(l10n.T("Decoding frames"))
	decoded, err := o.decodeStage.Execute(ctx, pipeline.DecodeInput{Path: config.InputPath})
	if err != nil {
		o.logger.Error(l10n.F("Failed to decode video: %s", err))
		return RunResult{}, fmt.Errorf("decode stage: %w", err)
	}
	o.logger.Info(l10n.F("Decoded %d frames", len(decoded.Frames)))

	// 3. Prepare captions (optional)
	var captions pipeline.CaptionsResult
	if config.SubtitlePath != "" {
		o.logger.Info(l10n.F("Preparing captions from %s", config.SubtitlePath))
		captions, err = o.captionsStage.Execute(ctx, pipeline.CaptionsInput{Path: config.SubtitlePath})
		if err != nil {
			o.logger.Error(l10n.F("Failed to prepare captions: %s", err))
			return RunResult{}, fmt.Errorf("captions stage: %w", err)
		}
		for _, w := range captions.Warnings {
			o.logger.Warn(w)
		}
		o.logger.Info(l10n.F("Prepared %d caption entries, %d payload bytes",
			captions.EntryCount, captions.PayloadBytes))
	}

	// 4. Stamp frames
	o.logger.Info(l10n.F("Stamping %d frames", len(decoded.Frames)))
	stamped, err := o.stampStage.Execute(ctx, pipeline.StampInput{
		Frames: decoded.Frames,
		FPS:    decoded.Info.FPS,
		Track:  captions.Track,
	})
	if err != nil {
		o.logger.Error(l10n.F("Failed to stamp frames: %s", err))
		return RunResult{}, fmt.Errorf("stamp stage: %w", err)
	}
	o.logger.Info(l10n.F("Stamping completed: %d frames carry a caption", stamped.SubtitleFrames))

	if o.sink.Enabled() && len(stamped.Frames) > 0 {
		o.saveMarkerDebug(stamped.Frames[0], estimate)
	}

	// 5. Encode video
	o.logger.Info(l10n.F("Encoding video with quality %d", config.Quality))
	encodeInput := pipeline.EncodeInput{
		Frames:  stamped.Frames,
		Info:    decoded.Info,
		Quality: config.Quality,
		Bitrate: config.Bitrate,
	}
	if config.CopyAudio {
		encodeInput.AudioFrom = config.InputPath
	}
	encoded, err := o.encodeStage.Execute(ctx, encodeInput)
	if err != nil {
		o.logger.Error(l10n.F("Failed to encode video: %s", err))
		return RunResult{}, fmt.Errorf("encode stage: %w", err)
	}
	o.logger.Info(l10n.F("Video encoded: %d bytes", len(encoded.VideoData)))

	// 6. Write output file
	if err := o.fs.WriteFile(config.OutputPath, encoded.VideoData); err != nil {
		o.logger.Error(l10n.F("Failed to write output: %s", err))
		return RunResult{}, fmt.Errorf("write output: %w", err)
	}

	o.logger.Info(l10n.T("Pipeline completed successfully"))

	return RunResult{
		Identity:        o.codec.Identity(),
		Width:           info.Width,
		Height:          info.Height,
		FPS:             decoded.Info.FPS,
		FrameCount:      len(stamped.Frames),
		CaptionEntries:  captions.EntryCount,
		CaptionRawBytes: captions.RawBytes,
		PayloadBytes:    captions.PayloadBytes,
		SubtitleFrames:  stamped.SubtitleFrames,
		SubtitleSkips:   stamped.SubtitleSkips,
		CornersSkipped:  stamped.CornersSkipped,
		SubtitleBytes:   estimate.SubtitleBytes,
		VideoDuration:   encoded.DurationMs,
		VideoFileSize:   encoded.FileSize,
	}, nil
}

// saveMarkerDebug renders the placement overlay and a magnified close-up
// of each stamped corner from the first frame.
func (o *Orchestrator) saveMarkerDebug(frame *pipeline.Frame, estimate stego.CapacityEstimate) {
	o.sink.SavePlacementPreview(o.annotator.AnnotateMarkers(frame, estimate.Markers))

	for _, box := range estimate.Markers {
		if !box.Fits {
			continue
		}
		crop := cropFrame(frame, box.X, box.Y, box.Size, box.Size)
		o.sink.SaveMarker(box.Label, o.annotator.FrameImage(crop))
	}
}

// cropFrame copies a pixel rectangle out of a frame.
func cropFrame(f *pipeline.Frame, x, y, w, h int) *pipeline.Frame {
	out := pipeline.NewFrame(w, h, f.Channels)
	for row := 0; row < h; row++ {
		src := (y+row)*f.Stride() + x*f.Channels
		copy(out.Pix[row*out.Stride():(row+1)*out.Stride()], f.Pix[src:src+w*f.Channels])
	}
	return out
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	// Identity embedded in the corner markers
	Identity uint16

	// Input geometry
	Width      int
	Height     int
	FPS        float64
	FrameCount int

	// Caption accounting
	CaptionEntries  int
	CaptionRawBytes int
	PayloadBytes    int
	SubtitleFrames  int
	SubtitleSkips   int

	// Marker accounting
	CornersSkipped []string

	// Capacity of the subtitle band per frame
	SubtitleBytes int

	// Output video
	VideoDuration int // in ms
	VideoFileSize int64
}
