// Package srtsubtitles parses SubRip (.srt) and WebVTT (.vtt) subtitle
// files into normalized entries. Text is cleaned of HTML-style and ASS
// brace tags, and non-UTF-8 files fall back to a Windows-1252 decode.
package srtsubtitles

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/user/stegosub/pkg/pipeline"
	"github.com/user/stegosub/pkg/ports"
)

// Reader implements ports.SubtitleReader for SRT and VTT files.
type Reader struct {
	fs ports.FileSystem
}

// New creates a reader backed by the given filesystem.
func New(fs ports.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// ReadFile parses a subtitle file, choosing the format by extension.
// Anything that is not .vtt is treated as SubRip.
func (r *Reader) ReadFile(path string) ([]pipeline.SubtitleEntry, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".vtt" {
		return parseVTT(text)
	}
	return parseSRT(text)
}

// decodeText normalizes raw file bytes to UTF-8 text. A UTF-8 BOM is
// stripped; invalid UTF-8 is re-decoded as Windows-1252, which covers
// the Latin-1 files still common in older subtitle archives.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

var _ ports.SubtitleReader = (*Reader)(nil)
