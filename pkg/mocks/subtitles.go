package mocks

import (
	"github.com/user/stegosub/pkg/pipeline"
)

// SubtitleReader is a mock implementation of ports.SubtitleReader.
type SubtitleReader struct {
	ReadFileFunc func(path string) ([]pipeline.SubtitleEntry, error)
	Entries      []pipeline.SubtitleEntry
}

func (m *SubtitleReader) ReadFile(path string) ([]pipeline.SubtitleEntry, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(path)
	}
	return m.Entries, nil
}
