// Package mp4probe reads video stream metadata straight from MP4 boxes,
// without spawning ffprobe. It backs the capacity pre-check and the
// output verification after encoding.
package mp4probe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/stegosub/pkg/pipeline"
	"github.com/user/stegosub/pkg/ports"
)

var (
	// ErrNoVideoTrack is returned when the container has no video track.
	ErrNoVideoTrack = errors.New("mp4probe: no video track found")
)

// Prober implements ports.VideoProber for MP4 containers.
type Prober struct{}

// New creates a prober.
func New() *Prober {
	return &Prober{}
}

// Probe reads stream metadata from an MP4 file.
func (p *Prober) Probe(path string) (pipeline.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return pipeline.VideoInfo{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return probeReader(f)
}

// ProbeData reads stream metadata from in-memory MP4 data.
func (p *Prober) ProbeData(data []byte) (pipeline.VideoInfo, error) {
	return probeReader(bytes.NewReader(data))
}

func probeReader(r io.ReadSeeker) (pipeline.VideoInfo, error) {
	mp4File, err := mp4.DecodeFile(r)
	if err != nil {
		return pipeline.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return pipeline.VideoInfo{}, ErrNoVideoTrack
	}

	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		return trackInfo(trak)
	}
	return pipeline.VideoInfo{}, ErrNoVideoTrack
}

// trackInfo extracts geometry and timing from a video trak.
func trackInfo(trak *mp4.TrakBox) (pipeline.VideoInfo, error) {
	info := pipeline.VideoInfo{}

	if trak.Mdia.Minf != nil && trak.Mdia.Minf.Stbl != nil && trak.Mdia.Minf.Stbl.Stsd != nil {
		for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
			if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
				info.Width = int(vse.Width)
				info.Height = int(vse.Height)
			}
		}
	}

	var timescale uint32 = 1000
	var duration uint64
	if trak.Mdia.Mdhd != nil {
		timescale = trak.Mdia.Mdhd.Timescale
		duration = trak.Mdia.Mdhd.Duration
	}
	if timescale > 0 {
		info.DurationMs = int(duration * 1000 / uint64(timescale))
	}

	if trak.Mdia.Minf != nil && trak.Mdia.Minf.Stbl != nil && trak.Mdia.Minf.Stbl.Stsz != nil {
		info.FrameCount = int(trak.Mdia.Minf.Stbl.Stsz.SampleNumber)
	}

	if duration > 0 && info.FrameCount > 0 {
		info.FPS = float64(info.FrameCount) * float64(timescale) / float64(duration)
	}

	if info.Width <= 0 || info.Height <= 0 {
		return info, ErrNoVideoTrack
	}
	return info, nil
}

var _ ports.VideoProber = (*Prober)(nil)
