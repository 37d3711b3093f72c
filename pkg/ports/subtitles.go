package ports

import (
	"github.com/user/stegosub/pkg/pipeline"
)

// SubtitleReader abstracts subtitle-file parsing. Implementations return
// entries normalized to UTF-8 text and millisecond timing, ordered as they
// appear in the file.
type SubtitleReader interface {
	ReadFile(path string) ([]pipeline.SubtitleEntry, error)
}
