package srtsubtitles

import (
	"testing"

	"github.com/user/stegosub/pkg/pipeline"
)

func TestFormatSRT(t *testing.T) {
	entries := []pipeline.SubtitleEntry{
		{StartMs: 0, EndMs: 2500, Text: "First line"},
		{StartMs: 3661042, EndMs: 3662000, Text: "Two\nlines"},
	}

	out := string(FormatSRT(entries))

	want := "1\n00:00:00,000 --> 00:00:02,500\nFirst line\n\n" +
		"2\n01:01:01,042 --> 01:01:02,000\nTwo\nlines\n\n"
	if out != want {
		t.Errorf("FormatSRT() = %q, want %q", out, want)
	}
}

func TestFormatSRTRoundtrip(t *testing.T) {
	entries := []pipeline.SubtitleEntry{
		{Index: 1, StartMs: 1000, EndMs: 2000, Text: "Hello"},
		{Index: 2, StartMs: 2500, EndMs: 4000, Text: "World"},
	}

	parsed, err := parseSRT(string(FormatSRT(entries)))
	if err != nil {
		t.Fatalf("parseSRT() error = %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("parsed %d entries, want 2", len(parsed))
	}
	for i := range entries {
		if parsed[i].StartMs != entries[i].StartMs ||
			parsed[i].EndMs != entries[i].EndMs ||
			parsed[i].Text != entries[i].Text {
			t.Errorf("entry %d = %+v, want %+v", i, parsed[i], entries[i])
		}
	}
}
