// Package stego is the frame-level facade over the marker and framedata
// codecs. A Codec is built once per video and applied to every frame: it
// stamps the corner markers, the timing record and the optional subtitle
// payload, and reads all three back out.
package stego

import (
	"errors"
	"fmt"

	"github.com/user/stegosub/pkg/pipeline"
	"github.com/user/stegosub/pkg/stego/bitplane"
	"github.com/user/stegosub/pkg/stego/framedata"
	"github.com/user/stegosub/pkg/stego/marker"
)

var (
	// ErrInvalidFrame is returned for nil, empty or inconsistent frames.
	ErrInvalidFrame = errors.New("stego: invalid frame")
	// ErrUnsupportedChannelLayout is returned for frames that are not
	// three-channel interleaved RGB.
	ErrUnsupportedChannelLayout = errors.New("stego: unsupported channel layout")
	// ErrNoMarkersFit is reported when no corner marker fits the frame.
	ErrNoMarkersFit = errors.New("stego: no corner marker fits the frame")
	// ErrCapacityExceeded mirrors the bitplane sentinel for callers that
	// only import this package.
	ErrCapacityExceeded = bitplane.ErrCapacityExceeded
)

// Config selects the video identity and the embedding layout.
type Config struct {
	VideoID         string
	Marker          marker.Options
	TimingRows      int
	SubtitlePercent int
	BitsPerChannel  int
}

// DefaultConfig returns the standard layout for a video ID.
func DefaultConfig(videoID string) Config {
	fd := framedata.NewCodec()
	return Config{
		VideoID:         videoID,
		Marker:          marker.DefaultOptions(),
		TimingRows:      fd.TimingRows,
		SubtitlePercent: fd.SubtitlePercent,
		BitsPerChannel:  fd.BitsPerChannel,
	}
}

// Codec applies one video's embedding layout to individual frames. It is
// immutable after construction and safe for concurrent use.
type Codec struct {
	cfg    Config
	set    *marker.Set
	frames framedata.Codec
}

// New validates the configuration and precomputes the marker set.
func New(cfg Config) (*Codec, error) {
	if cfg.VideoID == "" {
		return nil, fmt.Errorf("stego: video ID must not be empty")
	}
	if cfg.Marker.Size < 4 {
		return nil, fmt.Errorf("stego: marker size %d too small", cfg.Marker.Size)
	}
	if cfg.BitsPerChannel < 1 || cfg.BitsPerChannel > 8 {
		return nil, fmt.Errorf("stego: bits per channel must be 1-8, got %d", cfg.BitsPerChannel)
	}
	if cfg.TimingRows < 1 {
		return nil, fmt.Errorf("stego: timing rows must be positive, got %d", cfg.TimingRows)
	}
	if cfg.SubtitlePercent < 1 || cfg.SubtitlePercent > 50 {
		return nil, fmt.Errorf("stego: subtitle percent must be 1-50, got %d", cfg.SubtitlePercent)
	}
	return &Codec{
		cfg: cfg,
		set: marker.NewSet(cfg.VideoID, cfg.Marker),
		frames: framedata.Codec{
			TimingRows:      cfg.TimingRows,
			SubtitlePercent: cfg.SubtitlePercent,
			BitsPerChannel:  cfg.BitsPerChannel,
		},
	}, nil
}

// Identity returns the 16-bit identity derived from the video ID.
func (c *Codec) Identity() uint16 {
	return c.set.Identity
}

func (c *Codec) checkFrame(f *pipeline.Frame) error {
	if f.Empty() {
		return ErrInvalidFrame
	}
	if f.Channels != 3 {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedChannelLayout, f.Channels)
	}
	if len(f.Pix) != f.Width*f.Height*f.Channels {
		return fmt.Errorf("%w: buffer size %d does not match %dx%dx%d",
			ErrInvalidFrame, len(f.Pix), f.Width, f.Height, f.Channels)
	}
	return nil
}

// ============================================================
// Embedding
// ============================================================

// EmbedReport accounts for what one EmbedFrame call did to a frame.
type EmbedReport struct {
	Corners          []marker.Placement
	CornersSkipped   []marker.Corner
	SubtitleEmbedded bool
	SubtitleSkipped  bool
	PayloadBytes     int
}

// EmbedFrame stamps all embedded data into the frame in place: markers at
// every corner that fits, the timing record in the top rows, and the
// payload in the bottom band when one is given. Capacity is checked
// before any pixel changes, so a failed call leaves the frame untouched.
// Corners and subtitle bands that do not fit the frame geometry are
// skipped and reported, not failed.
func (c *Codec) EmbedFrame(f *pipeline.Frame, frameNumber, timestampMs uint32, payload []byte) (EmbedReport, error) {
	if err := c.checkFrame(f); err != nil {
		return EmbedReport{}, err
	}

	avail := c.SubtitleCapacity(f.Width, f.Height)
	if len(payload) > 0 && avail > 0 && len(payload) > avail {
		return EmbedReport{}, fmt.Errorf("%w: payload %d bytes, region holds %d",
			ErrCapacityExceeded, len(payload), avail)
	}
	if c.frames.TimingCapacity(f.Width, f.Height) < 10 {
		return EmbedReport{}, fmt.Errorf("%w: frame too small for timing record", ErrCapacityExceeded)
	}

	report := EmbedReport{}
	if err := c.frames.EmbedTiming(f, framedata.TimingRecord{
		FrameNumber: frameNumber,
		TimestampMs: timestampMs,
	}); err != nil {
		return report, err
	}

	if len(payload) > 0 {
		if avail == 0 {
			report.SubtitleSkipped = true
		} else {
			if err := c.frames.EmbedSubtitle(f, payload); err != nil {
				return report, err
			}
			report.SubtitleEmbedded = true
			report.PayloadBytes = len(payload)
		}
	}

	// Markers go last and always win the overlapping rows; the capacity
	// cap above keeps the payload out of their way.
	report.Corners, report.CornersSkipped = c.set.Placements(f.Width, f.Height)
	for _, p := range report.Corners {
		c.set.Stamp(f, p)
	}
	return report, nil
}

// ============================================================
// Extraction
// ============================================================

// DecodedMarker is one marker read back from a frame.
type DecodedMarker struct {
	Placement marker.Placement
	Decoded   marker.DecodeResult
	Err       error
}

// ExtractResult carries everything one frame yields. Timing and subtitle
// failures are reported per part rather than failing the whole frame.
type ExtractResult struct {
	Timing      framedata.TimingRecord
	TimingErr   error
	Payload     []byte
	SubtitleErr error
	Markers     []DecodedMarker
}

// ExtractFrame reads the timing record, subtitle payload and corner
// markers back out of a frame. Only a malformed frame fails the call.
func (c *Codec) ExtractFrame(f *pipeline.Frame) (ExtractResult, error) {
	if err := c.checkFrame(f); err != nil {
		return ExtractResult{}, err
	}

	res := ExtractResult{}
	res.Timing, res.TimingErr = c.frames.ExtractTiming(f)
	res.Payload, res.SubtitleErr = c.frames.ExtractSubtitle(f)

	placements, _ := c.set.Placements(f.Width, f.Height)
	for _, p := range placements {
		decoded, err := marker.Decode(f, p.X, p.Y, c.cfg.Marker)
		res.Markers = append(res.Markers, DecodedMarker{
			Placement: p,
			Decoded:   decoded,
			Err:       err,
		})
	}
	return res, nil
}

// ValidateFrame re-checks every stamped marker against this codec's own
// plane data and returns one validation per placed corner.
func (c *Codec) ValidateFrame(f *pipeline.Frame) ([]marker.Validation, error) {
	if err := c.checkFrame(f); err != nil {
		return nil, err
	}
	placements, _ := c.set.Placements(f.Width, f.Height)
	out := make([]marker.Validation, 0, len(placements))
	for _, p := range placements {
		out = append(out, c.set.Validate(f, p))
	}
	return out, nil
}

// ============================================================
// Capacity
// ============================================================

// CapacityEstimate summarizes how much data a frame geometry can carry.
type CapacityEstimate struct {
	Width            int                 `json:"width"`
	Height           int                 `json:"height"`
	TimingBytes      int                 `json:"timing_bytes"`
	SubtitleBytes    int                 `json:"subtitle_bytes"`
	MarkerPlaneBytes int                 `json:"marker_plane_bytes"`
	Markers          []pipeline.MarkerBox `json:"markers"`
}

// SubtitleCapacity returns the usable payload capacity of the subtitle
// band for a frame geometry. On tall frames the bottom marker blocks
// reach into the band and overwrite whatever lies beneath them, so the
// capacity is capped to the band rows above the highest such marker.
func (c *Codec) SubtitleCapacity(w, h int) int {
	full := c.frames.SubtitleCapacity(w, h)
	if full == 0 {
		return 0
	}
	top := c.frames.SubtitleBandTop(h)
	safeRows := h - top
	fits, _ := c.set.Placements(w, h)
	for _, p := range fits {
		if p.Y+c.cfg.Marker.Size <= top {
			continue
		}
		rows := p.Y - top
		if rows < 0 {
			rows = 0
		}
		if rows < safeRows {
			safeRows = rows
		}
	}
	if safeRows == h-top {
		return full
	}
	return c.frames.SubtitleCapacityRows(w, safeRows)
}

// EstimateCapacity reports the embedding capacity for a frame geometry
// without touching any pixels.
func (c *Codec) EstimateCapacity(w, h int) CapacityEstimate {
	est := CapacityEstimate{
		Width:         w,
		Height:        h,
		TimingBytes:   c.frames.TimingCapacity(w, h),
		SubtitleBytes: c.SubtitleCapacity(w, h),
	}
	inner := c.cfg.Marker.Size - 2
	est.MarkerPlaneBytes = inner * inner / 8

	fits, skipped := c.set.Placements(w, h)
	for _, p := range fits {
		est.Markers = append(est.Markers, pipeline.MarkerBox{
			Label: p.Corner.Label(),
			X:     p.X,
			Y:     p.Y,
			Size:  c.cfg.Marker.Size,
			Fits:  true,
		})
	}
	for _, corner := range skipped {
		est.Markers = append(est.Markers, pipeline.MarkerBox{
			Label: corner.Label(),
			Size:  c.cfg.Marker.Size,
		})
	}
	return est
}

// Precheck verifies a probed video geometry before decoding starts. A
// geometry where no marker fits is flagged with ErrNoMarkersFit, which
// callers may treat as a warning.
func (c *Codec) Precheck(info pipeline.VideoInfo) (CapacityEstimate, error) {
	est := c.EstimateCapacity(info.Width, info.Height)
	fits, _ := c.set.Placements(info.Width, info.Height)
	if len(fits) == 0 {
		return est, ErrNoMarkersFit
	}
	return est, nil
}
