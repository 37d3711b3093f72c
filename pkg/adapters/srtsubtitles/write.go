package srtsubtitles

import (
	"fmt"
	"strings"

	"github.com/user/stegosub/pkg/pipeline"
)

// FormatSRT renders entries as SubRip text. Entries are numbered in the
// order given; callers sort by start time first.
func FormatSRT(entries []pipeline.SubtitleEntry) []byte {
	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", srtTimestamp(e.StartMs), srtTimestamp(e.EndMs))
		b.WriteString(e.Text)
		b.WriteString("\n\n")
	}
	return []byte(b.String())
}

func srtTimestamp(ms int) string {
	if ms < 0 {
		ms = 0
	}
	h := ms / 3600000
	m := ms / 60000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms%1000)
}
