// Package captions implements the caption preparation stage: it parses
// the subtitle file, validates timing, and compresses each entry into the
// payload embedded per frame.
package captions

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/user/stegosub/pkg/pipeline"
	"github.com/user/stegosub/pkg/ports"
)

// Stage prepares the caption track from a subtitle file.
type Stage struct {
	reader     ports.SubtitleReader
	compressor ports.Compressor
	logger     ports.Logger
}

// NewStage creates a new captions stage.
func NewStage(reader ports.SubtitleReader, compressor ports.Compressor, logger ports.Logger) *Stage {
	return &Stage{
		reader:     reader,
		compressor: compressor,
		logger:     logger.WithComponent("captions"),
	}
}

// Execute parses and compresses the subtitle file into a caption track.
// Each entry is compressed once here, not per frame, since every frame in
// an entry's window carries the identical payload.
func (s *Stage) Execute(ctx context.Context, input pipeline.CaptionsInput) (pipeline.CaptionsResult, error) {
	entries, err := s.reader.ReadFile(input.Path)
	if err != nil {
		return pipeline.CaptionsResult{}, fmt.Errorf("read subtitles: %w", err)
	}

	s.logger.Debug("Parsed %d subtitle entries from %s", len(entries), input.Path)

	result := pipeline.CaptionsResult{}
	kept := make([]pipeline.SubtitleEntry, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Text) == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("entry %d: empty text, skipped", e.Index))
			continue
		}
		if e.DurationMs() <= 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("entry %d: non-positive duration (%dms), skipped", e.Index, e.DurationMs()))
			continue
		}
		kept = append(kept, e)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].StartMs < kept[j].StartMs
	})
	for i := 1; i < len(kept); i++ {
		if kept[i-1].OverlapsWith(kept[i]) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("entries %d and %d overlap, first active wins",
					kept[i-1].Index, kept[i].Index))
		}
	}

	for _, e := range kept {
		select {
		case <-ctx.Done():
			return pipeline.CaptionsResult{}, ctx.Err()
		default:
		}

		raw := encodeEntry(e)
		payload, err := s.compressor.Compress(raw)
		if err != nil {
			return pipeline.CaptionsResult{}, fmt.Errorf("compress entry %d: %w", e.Index, err)
		}
		result.RawBytes += len(raw)
		result.PayloadBytes += len(payload)
		result.Track.Entries = append(result.Track.Entries, pipeline.Caption{
			StartMs: e.StartMs,
			EndMs:   e.EndMs,
			Payload: payload,
		})
	}
	result.EntryCount = len(result.Track.Entries)

	for _, w := range result.Warnings {
		s.logger.Warn("%s", w)
	}
	s.logger.Debug("Prepared %d captions (%d -> %d bytes)",
		result.EntryCount, result.RawBytes, result.PayloadBytes)

	return result, nil
}

// encodeEntry serializes one entry as "startMs|endMs|text". The text may
// itself contain pipes, so decoders must split at most twice.
func encodeEntry(e pipeline.SubtitleEntry) []byte {
	return []byte(fmt.Sprintf("%d|%d|%s", e.StartMs, e.EndMs, e.Text))
}

// DecodeEntry reverses encodeEntry for extraction tooling.
func DecodeEntry(raw []byte) (pipeline.SubtitleEntry, error) {
	parts := strings.SplitN(string(raw), "|", 3)
	if len(parts) != 3 {
		return pipeline.SubtitleEntry{}, fmt.Errorf("malformed caption payload")
	}
	var e pipeline.SubtitleEntry
	if _, err := fmt.Sscanf(parts[0], "%d", &e.StartMs); err != nil {
		return pipeline.SubtitleEntry{}, fmt.Errorf("malformed caption start: %w", err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &e.EndMs); err != nil {
		return pipeline.SubtitleEntry{}, fmt.Errorf("malformed caption end: %w", err)
	}
	e.Text = parts[2]
	return e, nil
}
