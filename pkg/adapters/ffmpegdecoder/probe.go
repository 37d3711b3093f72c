package ffmpegdecoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/user/stegosub/pkg/pipeline"
)

// ffprobeOutput mirrors the subset of `ffprobe -print_format json` we
// consume.
type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

type ffprobeStream struct {
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	NbFrames   string `json:"nb_frames"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

// Prober implements ports.VideoProber with ffprobe.
type Prober struct {
	ffprobePath string
}

// NewProber creates a prober, locating ffprobe lazily on first use.
func NewProber() *Prober {
	return &Prober{}
}

// Probe reports video stream metadata without decoding frames.
func (p *Prober) Probe(path string) (pipeline.VideoInfo, error) {
	if p.ffprobePath == "" {
		found, err := findTool("ffprobe", ErrFFprobeNotFound)
		if err != nil {
			return pipeline.VideoInfo{}, err
		}
		p.ffprobePath = found
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(p.ffprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		path,
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return pipeline.VideoInfo{}, fmt.Errorf("ffprobe %s: %w\nstderr: %s", path, err, stderr.String())
	}

	return parseProbeOutput(stdout.Bytes())
}

// parseProbeOutput extracts the first video stream from ffprobe JSON.
func parseProbeOutput(data []byte) (pipeline.VideoInfo, error) {
	var out ffprobeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return pipeline.VideoInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	for _, s := range out.Streams {
		if s.CodecType != "video" {
			continue
		}
		info := pipeline.VideoInfo{
			Width:  s.Width,
			Height: s.Height,
			FPS:    parseRate(s.RFrameRate),
		}
		if n, err := strconv.Atoi(s.NbFrames); err == nil {
			info.FrameCount = n
		}
		if d, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
			info.DurationMs = int(d * 1000)
		}
		return info, nil
	}
	return pipeline.VideoInfo{}, ErrNoVideoStream
}

// parseRate parses an ffprobe rational like "30000/1001" or "25/1".
func parseRate(r string) float64 {
	parts := strings.SplitN(r, "/", 2)
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0
	}
	if len(parts) == 1 {
		return num
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den == 0 {
		return 0
	}
	return num / den
}
