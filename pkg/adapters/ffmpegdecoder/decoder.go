// Package ffmpegdecoder decodes video files into raw RGB frames by
// streaming `ffmpeg -f rawvideo -pix_fmt rgb24` output over a pipe.
// Stream metadata comes from ffprobe.
package ffmpegdecoder

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"

	"github.com/user/stegosub/pkg/pipeline"
	"github.com/user/stegosub/pkg/ports"
)

// Decoder implements ports.VideoDecoder with an ffmpeg subprocess.
type Decoder struct {
	ffmpegPath string
	prober     *Prober

	cmd       *exec.Cmd
	stdout    io.ReadCloser
	stderr    bytes.Buffer
	info      pipeline.VideoInfo
	frameSize int
	opened    bool
}

// New creates a decoder. The ffmpeg binaries are located on Open.
func New() *Decoder {
	return &Decoder{prober: NewProber()}
}

// Open probes the input and starts the ffmpeg pipe.
func (d *Decoder) Open(path string) (pipeline.VideoInfo, error) {
	if d.opened {
		d.Close()
	}

	if d.ffmpegPath == "" {
		found, err := findTool("ffmpeg", ErrFFmpegNotFound)
		if err != nil {
			return pipeline.VideoInfo{}, err
		}
		d.ffmpegPath = found
	}

	info, err := d.prober.Probe(path)
	if err != nil {
		return pipeline.VideoInfo{}, err
	}
	if info.Width <= 0 || info.Height <= 0 {
		return pipeline.VideoInfo{}, fmt.Errorf("%w: %dx%d", ErrNoVideoStream, info.Width, info.Height)
	}

	d.cmd = exec.Command(d.ffmpegPath,
		"-v", "error",
		"-i", path,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"pipe:1",
	)
	d.stderr.Reset()
	d.cmd.Stderr = &d.stderr

	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return pipeline.VideoInfo{}, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := d.cmd.Start(); err != nil {
		return pipeline.VideoInfo{}, fmt.Errorf("start ffmpeg: %w", err)
	}

	d.stdout = stdout
	d.info = info
	d.frameSize = info.Width * info.Height * 3
	d.opened = true
	return info, nil
}

// ReadFrame reads the next raw frame off the pipe. It returns io.EOF
// when ffmpeg has emitted its last frame.
func (d *Decoder) ReadFrame() (*pipeline.Frame, error) {
	if !d.opened {
		return nil, ErrNotOpened
	}

	frame := pipeline.NewFrame(d.info.Width, d.info.Height, 3)
	_, err := io.ReadFull(d.stdout, frame.Pix)
	if err == io.EOF {
		if waitErr := d.wait(); waitErr != nil {
			return nil, waitErr
		}
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read frame: %w\nstderr: %s", err, d.stderr.String())
	}
	return frame, nil
}

// wait reaps the ffmpeg process after the stream ends.
func (d *Decoder) wait() error {
	if d.cmd == nil {
		return nil
	}
	err := d.cmd.Wait()
	d.cmd = nil
	d.opened = false
	if err != nil {
		return fmt.Errorf("ffmpeg decode failed: %w\nstderr: %s", err, d.stderr.String())
	}
	return nil
}

// Close terminates the subprocess if it is still running.
func (d *Decoder) Close() error {
	if d.stdout != nil {
		d.stdout.Close()
		d.stdout = nil
	}
	if d.cmd != nil && d.cmd.Process != nil {
		d.cmd.Process.Kill()
		d.cmd.Wait()
		d.cmd = nil
	}
	d.opened = false
	return nil
}

var _ ports.VideoDecoder = (*Decoder)(nil)
var _ ports.VideoProber = (*Prober)(nil)
