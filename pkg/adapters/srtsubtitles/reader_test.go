package srtsubtitles

import (
	"testing"

	"github.com/user/stegosub/pkg/mocks"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,500
Hello there.

2
00:00:04,000 --> 00:00:06,000
Two lines of
caption text.

3
00:01:00,000 --> 00:01:02,000
<i>Italic</i> and {\an8}positioned.
`

const sampleVTT = `WEBVTT

NOTE This comment block is skipped.

00:01.000 --> 00:03.500
Hello there.

cue-2
00:00:04.000 --> 00:00:06.000
Identified cue.
`

func TestReadFileSRT(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.Files["subs.srt"] = []byte(sampleSRT)
	reader := New(fs)

	entries, err := reader.ReadFile("subs.srt")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}

	if entries[0].StartMs != 1000 || entries[0].EndMs != 3500 {
		t.Errorf("entry 1 timing = %d-%d", entries[0].StartMs, entries[0].EndMs)
	}
	if entries[0].Text != "Hello there." {
		t.Errorf("entry 1 text = %q", entries[0].Text)
	}
	if entries[1].Text != "Two lines of\ncaption text." {
		t.Errorf("entry 2 text = %q", entries[1].Text)
	}
	if entries[2].StartMs != 60000 {
		t.Errorf("entry 3 start = %d, want 60000", entries[2].StartMs)
	}
	if entries[2].Text != "Italic and positioned." {
		t.Errorf("entry 3 text = %q, want markup stripped", entries[2].Text)
	}
}

func TestReadFileVTT(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.Files["subs.vtt"] = []byte(sampleVTT)
	reader := New(fs)

	entries, err := reader.ReadFile("subs.vtt")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].StartMs != 1000 || entries[0].EndMs != 3500 {
		t.Errorf("entry 1 timing = %d-%d", entries[0].StartMs, entries[0].EndMs)
	}
	if entries[1].Text != "Identified cue." {
		t.Errorf("entry 2 text = %q", entries[1].Text)
	}
}

func TestReadFileUTF8BOM(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.Files["bom.srt"] = append([]byte{0xEF, 0xBB, 0xBF}, []byte(sampleSRT)...)
	reader := New(fs)

	entries, err := reader.ReadFile("bom.srt")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("entries = %d, want 3", len(entries))
	}
}

func TestReadFileLatin1Fallback(t *testing.T) {
	// "café" with 0xE9 is invalid UTF-8 and must decode as Windows-1252.
	srt := []byte("1\n00:00:01,000 --> 00:00:02,000\ncaf\xe9\n")
	fs := mocks.NewFileSystem()
	fs.Files["latin1.srt"] = srt
	reader := New(fs)

	entries, err := reader.ReadFile("latin1.srt")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "café" {
		t.Errorf("entries = %+v, want café", entries)
	}
}

func TestReadFileMalformedTiming(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.Files["bad.srt"] = []byte("1\nnot a time range\ntext\n")
	reader := New(fs)

	if _, err := reader.ReadFile("bad.srt"); err == nil {
		t.Error("ReadFile() expected error for malformed timing")
	}
}

func TestReadFileMissing(t *testing.T) {
	reader := New(mocks.NewFileSystem())
	if _, err := reader.ReadFile("missing.srt"); err == nil {
		t.Error("ReadFile() expected error for missing file")
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"italic tag", "<i>hello</i>", "hello"},
		{"font tag", `<font color="#ff0000">red</font>`, "red"},
		{"brace tag", `{\an8}top text`, "top text"},
		{"whitespace", "  padded  ", "padded"},
		{"blank lines dropped", "first\n\nsecond", "first\nsecond"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanText(tt.in); got != tt.want {
				t.Errorf("cleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
