package srtsubtitles

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/stegosub/pkg/pipeline"
)

// timeRange matches "00:01:02,345 --> 00:01:04,000" and the WebVTT
// variants with a dot separator and an optional hour field.
var timeRange = regexp.MustCompile(
	`(?:(\d+):)?(\d{2}):(\d{2})[.,](\d{3})\s*-->\s*(?:(\d+):)?(\d{2}):(\d{2})[.,](\d{3})`)

// braceTags matches ASS override tags like {\an8} that survive SRT
// exports from other formats.
var braceTags = regexp.MustCompile(`\{[^}]*\}`)

// parseSRT parses SubRip text: numbered blocks separated by blank lines,
// each with a time range line followed by text lines.
func parseSRT(text string) ([]pipeline.SubtitleEntry, error) {
	var entries []pipeline.SubtitleEntry
	for i, block := range splitBlocks(text) {
		lines := block

		// Leading counter line is optional in practice.
		index := i + 1
		if n, err := strconv.Atoi(strings.TrimSpace(lines[0])); err == nil {
			index = n
			lines = lines[1:]
		}
		if len(lines) == 0 {
			continue
		}

		startMs, endMs, ok := parseTimeRange(lines[0])
		if !ok {
			return nil, fmt.Errorf("block %d: malformed time range %q", i+1, lines[0])
		}
		entries = append(entries, pipeline.SubtitleEntry{
			Index:   index,
			StartMs: startMs,
			EndMs:   endMs,
			Text:    cleanText(strings.Join(lines[1:], "\n")),
		})
	}
	return entries, nil
}

// parseVTT parses WebVTT text. The header, NOTE and STYLE blocks are
// skipped, and optional cue identifiers before the time range are
// ignored.
func parseVTT(text string) ([]pipeline.SubtitleEntry, error) {
	var entries []pipeline.SubtitleEntry
	for _, block := range splitBlocks(text) {
		lines := block
		first := strings.TrimSpace(lines[0])
		if strings.HasPrefix(first, "WEBVTT") ||
			strings.HasPrefix(first, "NOTE") ||
			strings.HasPrefix(first, "STYLE") ||
			strings.HasPrefix(first, "REGION") {
			continue
		}

		// Cue identifier line before the time range.
		if !strings.Contains(lines[0], "-->") {
			lines = lines[1:]
			if len(lines) == 0 {
				continue
			}
		}

		startMs, endMs, ok := parseTimeRange(lines[0])
		if !ok {
			return nil, fmt.Errorf("malformed cue timing %q", lines[0])
		}
		entries = append(entries, pipeline.SubtitleEntry{
			Index:   len(entries) + 1,
			StartMs: startMs,
			EndMs:   endMs,
			Text:    cleanText(strings.Join(lines[1:], "\n")),
		})
	}
	return entries, nil
}

// splitBlocks splits subtitle text into blocks of non-empty lines.
func splitBlocks(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var blocks [][]string
	var current []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// parseTimeRange extracts start and end milliseconds from a time line.
func parseTimeRange(line string) (startMs, endMs int, ok bool) {
	m := timeRange.FindStringSubmatch(line)
	if m == nil {
		return 0, 0, false
	}
	startMs = timestampMs(m[1], m[2], m[3], m[4])
	endMs = timestampMs(m[5], m[6], m[7], m[8])
	return startMs, endMs, true
}

func timestampMs(h, m, s, ms string) int {
	hours := 0
	if h != "" {
		hours, _ = strconv.Atoi(h)
	}
	minutes, _ := strconv.Atoi(m)
	seconds, _ := strconv.Atoi(s)
	millis, _ := strconv.Atoi(ms)
	return ((hours*60+minutes)*60+seconds)*1000 + millis
}

// cleanText strips markup from cue text: HTML-style tags like <i> and
// <font> via an HTML parse, then ASS brace tags, then surrounding
// whitespace per line.
func cleanText(text string) string {
	if strings.ContainsAny(text, "<>") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
		if err == nil {
			text = doc.Text()
		}
	}
	text = braceTags.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
