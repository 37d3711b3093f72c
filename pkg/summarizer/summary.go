// Package summarizer provides summary generation for embedding results.
package summarizer

import "time"

// Summary contains all data collected during an embedding run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Source video information
	Source SourceInfo

	// Embedded identity
	Identity IdentityInfo

	// Caption accounting
	Captions CaptionInfo

	// Marker accounting
	Markers MarkerInfo

	// Video output details
	Video VideoInfo
}

// SourceInfo describes the input video.
type SourceInfo struct {
	Path       string
	Width      int
	Height     int
	FPS        float64
	FrameCount int
}

// IdentityInfo describes the identity embedded in the corner markers.
type IdentityInfo struct {
	VideoID  string
	Identity uint16
}

// CaptionInfo contains caption track accounting.
type CaptionInfo struct {
	SubtitlePath   string
	EntryCount     int
	RawBytes       int
	PayloadBytes   int
	SubtitleFrames int
	SubtitleSkips  int
	// CapacityBytes is the per-frame subtitle band capacity.
	CapacityBytes int
}

// MarkerInfo contains marker placement accounting.
type MarkerInfo struct {
	Size           int
	Margin         int
	CornersPlaced  int
	CornersSkipped []string
}

// VideoInfo contains information about the output video.
type VideoInfo struct {
	Path       string
	DurationMs int
	FileSize   int64
	Quality    int // 0 means lossless
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets source video information.
func (b *Builder) WithSource(source SourceInfo) *Builder {
	b.summary.Source = source
	return b
}

// WithIdentity sets the embedded identity.
func (b *Builder) WithIdentity(videoID string, identity uint16) *Builder {
	b.summary.Identity = IdentityInfo{
		VideoID:  videoID,
		Identity: identity,
	}
	return b
}

// WithCaptions sets caption accounting.
func (b *Builder) WithCaptions(captions CaptionInfo) *Builder {
	b.summary.Captions = captions
	return b
}

// WithMarkers sets marker accounting.
func (b *Builder) WithMarkers(markers MarkerInfo) *Builder {
	b.summary.Markers = markers
	return b
}

// WithVideo sets video output information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
