// Package stamp implements the frame stamping stage.
package stamp

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/user/stegosub/pkg/pipeline"
	"github.com/user/stegosub/pkg/ports"
	"github.com/user/stegosub/pkg/stego"
	"github.com/user/stegosub/pkg/stego/framedata"
)

// Stage embeds markers, timing records and caption payloads into every
// frame.
type Stage struct {
	codec      *stego.Codec
	sink       ports.DebugSink
	annotator  ports.Annotator
	logger     ports.Logger
	numWorkers int
}

// NewStage creates a new stamp stage.
func NewStage(codec *stego.Codec, sink ports.DebugSink, annotator ports.Annotator, logger ports.Logger, numWorkers int) *Stage {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Stage{
		codec:      codec,
		sink:       sink,
		annotator:  annotator,
		logger:     logger.WithComponent("stamp"),
		numWorkers: numWorkers,
	}
}

// Execute stamps all frames in place.
func (s *Stage) Execute(ctx context.Context, input pipeline.StampInput) (pipeline.StampResult, error) {
	if len(input.Frames) == 0 {
		return pipeline.StampResult{}, fmt.Errorf("no frames to stamp")
	}

	s.logger.Debug("Stamping %d frames with %d workers", len(input.Frames), s.numWorkers)

	result, err := s.executeParallel(ctx, input)
	if err != nil {
		return result, err
	}

	s.logger.Debug("Stamping completed: %d subtitle frames, %d skips",
		result.SubtitleFrames, result.SubtitleSkips)
	return result, nil
}

// indexedReport holds one frame's embed report with its frame index.
type indexedReport struct {
	index  int
	report stego.EmbedReport
}

func (s *Stage) executeParallel(ctx context.Context, input pipeline.StampInput) (pipeline.StampResult, error) {
	numFrames := len(input.Frames)
	jobs := make(chan int, numFrames)
	results := make(chan indexedReport, numFrames)
	errChan := make(chan error, s.numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < s.numWorkers; w++ {
		wg.Add(1)
		go s.worker(ctx, &wg, input, jobs, results, errChan)
	}

	for i := 0; i < numFrames; i++ {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
		close(errChan)
	}()

	reports := make([]indexedReport, 0, numFrames)
	for r := range results {
		reports = append(reports, r)

		if s.sink.Enabled() {
			s.sink.SaveStampedFrame(r.index, s.annotator.FrameImage(input.Frames[r.index]))
		}
	}

	if err := <-errChan; err != nil {
		return pipeline.StampResult{}, err
	}
	if len(reports) != numFrames {
		if ctx.Err() != nil {
			return pipeline.StampResult{}, ctx.Err()
		}
		return pipeline.StampResult{}, fmt.Errorf("stamped %d of %d frames", len(reports), numFrames)
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].index < reports[j].index
	})

	result := pipeline.StampResult{Frames: input.Frames}
	for _, r := range reports {
		if r.report.SubtitleEmbedded {
			result.SubtitleFrames++
		}
		if r.report.SubtitleSkipped {
			result.SubtitleSkips++
		}
	}
	// Placement geometry is constant across frames, so one report covers
	// the skipped-corner accounting.
	for _, corner := range reports[0].report.CornersSkipped {
		result.CornersSkipped = append(result.CornersSkipped, corner.Label())
		s.logger.Warn("Marker %s does not fit the frame, skipped", corner)
	}

	return result, nil
}

// worker stamps frames from the jobs channel in place.
func (s *Stage) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	input pipeline.StampInput,
	jobs <-chan int,
	results chan<- indexedReport,
	errChan chan<- error,
) {
	defer wg.Done()

	for idx := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		report, err := s.stampFrame(input, idx)
		if err != nil {
			select {
			case errChan <- fmt.Errorf("stamp frame %d: %w", idx, err):
			default:
			}
			return
		}

		results <- indexedReport{index: idx, report: report}
	}
}

// stampFrame embeds all data for a single frame. The timestamp and the
// active caption both derive from the frame index, truncated to whole
// milliseconds.
func (s *Stage) stampFrame(input pipeline.StampInput, idx int) (stego.EmbedReport, error) {
	timestampMs := uint32(0)
	if input.FPS > 0 {
		timestampMs = uint32(float64(idx) * 1000.0 / input.FPS)
	}

	var payload []byte
	if caption := framedata.SelectActive(input.Track.Entries, uint32(idx), input.FPS); caption != nil {
		payload = caption.Payload
	}

	return s.codec.EmbedFrame(input.Frames[idx], uint32(idx), timestampMs, payload)
}
