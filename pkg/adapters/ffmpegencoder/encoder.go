// Package ffmpegencoder encodes raw RGB frames into an H.264 MP4 by
// piping them into an ffmpeg subprocess. Quality 0 selects lossless
// encoding, which is what keeps least-significant-bit data intact
// through the round trip; positive values map onto x264's CRF scale.
package ffmpegencoder

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/user/stegosub/pkg/pipeline"
	"github.com/user/stegosub/pkg/ports"
)

// Encoder implements ports.VideoEncoder with an ffmpeg subprocess.
type Encoder struct {
	ffmpegPath string

	cmd      *exec.Cmd
	stdin    io.WriteCloser
	stderr   bytes.Buffer
	info     pipeline.VideoInfo
	tempPath string
	started  bool
}

// New creates an encoder. The ffmpeg binary is located on Begin.
func New() *Encoder {
	return &Encoder{}
}

// findFFmpeg searches for ffmpeg in PATH and common locations.
func findFFmpeg() (string, error) {
	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}

	path, err := exec.LookPath(execName)
	if err == nil {
		return path, nil
	}

	var commonPaths []string
	if runtime.GOOS == "windows" {
		commonPaths = []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffmpeg.exe`,
		}
	} else {
		commonPaths = []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/opt/homebrew/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// Begin starts the ffmpeg process for the given stream geometry.
func (e *Encoder) Begin(info pipeline.VideoInfo, opts ports.EncoderOptions) error {
	if e.started {
		e.abort()
	}

	ffmpegPath, err := findFFmpeg()
	if err != nil {
		return err
	}
	e.ffmpegPath = ffmpegPath
	e.info = info

	tmpFile, err := os.CreateTemp("", "stegosub_*.mp4")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	e.tempPath = tmpFile.Name()
	tmpFile.Close()

	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", info.Width, info.Height),
		"-r", fmt.Sprintf("%f", info.FPS),
		"-i", "pipe:0",
	}

	// Optional audio remux from the original file. The "?" makes the
	// audio map tolerant of silent inputs.
	if opts.AudioFrom != "" {
		args = append(args,
			"-i", opts.AudioFrom,
			"-map", "0:v",
			"-map", "1:a?",
			"-c:a", "copy",
			"-shortest",
		)
	}

	args = append(args,
		"-c:v", "libx264",
		"-preset", "fast",
	)

	if opts.Quality <= 0 {
		// Lossless 4:4:4 keeps every embedded bit intact.
		args = append(args, "-qp", "0", "-pix_fmt", "yuv444p")
	} else {
		crf := opts.Quality * 51 / 63
		if crf > 51 {
			crf = 51
		}
		args = append(args, "-crf", fmt.Sprintf("%d", crf), "-pix_fmt", "yuv420p")
	}

	if opts.Bitrate > 0 {
		args = append(args, "-b:v", fmt.Sprintf("%dk", opts.Bitrate))
	}

	args = append(args, "-movflags", "+faststart", e.tempPath)

	e.cmd = exec.Command(e.ffmpegPath, args...)
	e.stderr.Reset()
	e.cmd.Stderr = &e.stderr

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		os.Remove(e.tempPath)
		return fmt.Errorf("stdin pipe: %w", err)
	}
	e.stdin = stdin

	if err := e.cmd.Start(); err != nil {
		os.Remove(e.tempPath)
		return fmt.Errorf("start ffmpeg: %w", err)
	}
	e.started = true
	return nil
}

// WriteFrame streams one raw frame to ffmpeg.
func (e *Encoder) WriteFrame(f *pipeline.Frame) error {
	if !e.started {
		return ErrNotInitialized
	}
	if f.Width != e.info.Width || f.Height != e.info.Height || f.Channels != 3 {
		return fmt.Errorf("%w: got %dx%dx%d, want %dx%dx3",
			ErrFrameMismatch, f.Width, f.Height, f.Channels, e.info.Width, e.info.Height)
	}
	if _, err := e.stdin.Write(f.Pix); err != nil {
		return fmt.Errorf("write frame: %w\nstderr: %s", err, e.stderr.String())
	}
	return nil
}

// End finalizes encoding and returns the MP4 data.
func (e *Encoder) End() ([]byte, error) {
	if !e.started {
		return nil, ErrNotInitialized
	}

	e.stdin.Close()
	e.stdin = nil
	e.started = false

	if err := e.cmd.Wait(); err != nil {
		os.Remove(e.tempPath)
		return nil, fmt.Errorf("ffmpeg encode failed: %w\nstderr: %s", err, e.stderr.String())
	}
	e.cmd = nil

	data, err := os.ReadFile(e.tempPath)
	os.Remove(e.tempPath)
	e.tempPath = ""
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	return data, nil
}

// abort kills a still-running subprocess and discards its output.
func (e *Encoder) abort() {
	if e.stdin != nil {
		e.stdin.Close()
		e.stdin = nil
	}
	if e.cmd != nil && e.cmd.Process != nil {
		e.cmd.Process.Kill()
		e.cmd.Wait()
		e.cmd = nil
	}
	if e.tempPath != "" {
		os.Remove(e.tempPath)
		e.tempPath = ""
	}
	e.started = false
}

var _ ports.VideoEncoder = (*Encoder)(nil)
