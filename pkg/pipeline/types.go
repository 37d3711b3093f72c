package pipeline

// =============================================================================
// Video Metadata
// =============================================================================

// VideoInfo describes a video stream as reported by a decoder or prober.
type VideoInfo struct {
	Width      int
	Height     int
	FPS        float64
	FrameCount int
	DurationMs int
}

// =============================================================================
// Subtitle Types
// =============================================================================

// SubtitleEntry is a single timed caption, normalized to UTF-8 text and
// millisecond timing.
type SubtitleEntry struct {
	Index   int
	StartMs int
	EndMs   int
	Text    string
}

// DurationMs returns the display duration of the entry.
func (e SubtitleEntry) DurationMs() int {
	return e.EndMs - e.StartMs
}

// OverlapsWith reports whether two entries overlap in time.
func (e SubtitleEntry) OverlapsWith(other SubtitleEntry) bool {
	return !(e.EndMs <= other.StartMs || other.EndMs <= e.StartMs)
}

// Caption is a subtitle entry whose text has been compressed into the
// opaque payload embedded per frame.
type Caption struct {
	StartMs int
	EndMs   int
	Payload []byte
}

// CaptionTrack is the read-only timeline of prepared captions, ordered by
// start time.
type CaptionTrack struct {
	Entries []Caption
}

// =============================================================================
// Decode Stage Types
// =============================================================================

// DecodeInput contains parameters for video decoding.
type DecodeInput struct {
	Path string
}

// DecodeResult contains the decoded frames in display order.
type DecodeResult struct {
	Frames []*Frame
	Info   VideoInfo
}

// =============================================================================
// Captions Stage Types
// =============================================================================

// CaptionsInput contains parameters for caption preparation.
type CaptionsInput struct {
	Path string
}

// CaptionsResult contains the prepared caption track.
type CaptionsResult struct {
	Track      CaptionTrack
	EntryCount int
	// RawBytes and PayloadBytes track compression effectiveness.
	RawBytes     int
	PayloadBytes int
	Warnings     []string
}

// =============================================================================
// Stamp Stage Types
// =============================================================================

// StampInput contains parameters for per-frame embedding.
type StampInput struct {
	Frames []*Frame
	FPS    float64
	Track  CaptionTrack
}

// StampResult contains the stamped frames and embedding accounting.
type StampResult struct {
	Frames []*Frame
	// SubtitleFrames is the number of frames that carry a subtitle record.
	SubtitleFrames int
	// SubtitleSkips is the number of frames where the subtitle region was
	// skipped because it would overlap the timing strip.
	SubtitleSkips int
	// CornersSkipped lists corner labels that did not fit the frame bounds.
	CornersSkipped []string
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput contains parameters for video encoding.
type EncodeInput struct {
	Frames    []*Frame
	Info      VideoInfo
	Quality   int    // CRF: 0-63 (lower is higher quality)
	Bitrate   int    // Target bitrate in kbps
	AudioFrom string // Optional source file whose audio track is remuxed in
}

// EncodeResult contains the encoded video.
type EncodeResult struct {
	VideoData  []byte
	DurationMs int
	FileSize   int64
}

// =============================================================================
// Debug Types
// =============================================================================

// MarkerBox describes one corner-marker placement for debug overlays and
// capacity reports.
type MarkerBox struct {
	Label string `json:"label"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Size  int    `json:"size"`
	Fits  bool   `json:"fits"`
}
