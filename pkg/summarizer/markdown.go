package summarizer

import (
	"fmt"
	"strings"
)

// Translator translates a label into the display language.
type Translator func(key string) string

// MarkdownFormatter formats a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate Translator
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the label translator.
func WithTranslator(t Translator) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion includes the tool version in the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(key string) string { return key },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format renders the summary as Markdown.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Embedding Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), summary.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "## %s\n\n", t("Source"))
	fmt.Fprintf(&b, "- %s: %s\n", t("Path"), summary.Source.Path)
	fmt.Fprintf(&b, "- %s: %dx%d\n", t("Size"), summary.Source.Width, summary.Source.Height)
	fmt.Fprintf(&b, "- %s: %.2f fps\n", t("Frame Rate"), summary.Source.FPS)
	fmt.Fprintf(&b, "- %s: %d\n\n", t("Frames"), summary.Source.FrameCount)

	fmt.Fprintf(&b, "## %s\n\n", t("Identity"))
	fmt.Fprintf(&b, "- %s: %s\n", t("Video ID"), summary.Identity.VideoID)
	fmt.Fprintf(&b, "- %s: 0x%04X\n\n", t("Embedded Identity"), summary.Identity.Identity)

	fmt.Fprintf(&b, "## %s\n\n", t("Markers"))
	fmt.Fprintf(&b, "- %s: %dpx, %s %dpx\n", t("Marker Size"), summary.Markers.Size, t("margin"), summary.Markers.Margin)
	fmt.Fprintf(&b, "- %s: %d\n", t("Corners Placed"), summary.Markers.CornersPlaced)
	if len(summary.Markers.CornersSkipped) > 0 {
		fmt.Fprintf(&b, "- %s: %s\n", t("Corners Skipped"), strings.Join(summary.Markers.CornersSkipped, ", "))
	}
	b.WriteString("\n")

	if summary.Captions.SubtitlePath != "" {
		fmt.Fprintf(&b, "## %s\n\n", t("Captions"))
		fmt.Fprintf(&b, "- %s: %s\n", t("Subtitle File"), summary.Captions.SubtitlePath)
		fmt.Fprintf(&b, "- %s: %d\n", t("Entries"), summary.Captions.EntryCount)
		fmt.Fprintf(&b, "- %s: %s -> %s\n", t("Payload"),
			formatBytes(int64(summary.Captions.RawBytes)),
			formatBytes(int64(summary.Captions.PayloadBytes)))
		fmt.Fprintf(&b, "- %s: %d\n", t("Frames with Captions"), summary.Captions.SubtitleFrames)
		if summary.Captions.SubtitleSkips > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", t("Frames Skipped"), summary.Captions.SubtitleSkips)
		}
		fmt.Fprintf(&b, "- %s: %s\n\n", t("Band Capacity"), formatBytes(int64(summary.Captions.CapacityBytes)))
	}

	fmt.Fprintf(&b, "## %s\n\n", t("Output"))
	fmt.Fprintf(&b, "- %s: %s\n", t("Path"), summary.Video.Path)
	fmt.Fprintf(&b, "- %s: %d ms\n", t("Duration"), summary.Video.DurationMs)
	fmt.Fprintf(&b, "- %s: %s\n", t("File Size"), formatBytes(summary.Video.FileSize))
	if summary.Video.Quality <= 0 {
		fmt.Fprintf(&b, "- %s: %s\n", t("Quality"), t("Lossless"))
	} else {
		fmt.Fprintf(&b, "- %s: CRF %d\n", t("Quality"), summary.Video.Quality)
	}

	if f.version != "" {
		fmt.Fprintf(&b, "\n---\n%s %s\n", t("Generated by stegosub"), f.version)
	}

	return b.String()
}

// formatBytes formats a byte count with binary units.
func formatBytes(n int64) string {
	switch {
	case n >= 1024*1024*1024:
		return fmt.Sprintf("%.2f GB", float64(n)/(1024*1024*1024))
	case n >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.2f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
