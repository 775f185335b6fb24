package main

import (
	"fmt"
	"image"
	"os"
	"strings"
	"sync/atomic"

	"gocv.io/x/gocv"

	"motioncam/broadcast"
	"motioncam/pipeline"
)

// Codecs tried in order when opening the output writer.
var outputCodecs = []string{"mp4v", "XVID", "MJPG"}

// VideoProcessor drives one processing run: read, annotate, write, at most
// one frame in flight on a single worker. The annotator's background model
// and tracking state make frame order load-bearing, so there is no
// parallelism across frames.
type VideoProcessor struct {
	inputPath string
	annotator *pipeline.Annotator
	preview   *broadcast.Preview    // optional, may be nil
	progress  func(done, total int) // optional, may be nil
	stopFlag  atomic.Bool

	// Per-frame records accumulated when SaveData is enabled.
	frames [][]pipeline.DetectionRecord
}

// NewVideoProcessor builds a processor for one input file.
func NewVideoProcessor(inputPath string, annotator *pipeline.Annotator, preview *broadcast.Preview, progress func(done, total int)) *VideoProcessor {
	return &VideoProcessor{
		inputPath: inputPath,
		annotator: annotator,
		preview:   preview,
		progress:  progress,
	}
}

// Stop requests cancellation. The flag is checked once per frame boundary,
// so the request takes effect only after the current frame's write
// completes, never mid-frame.
func (p *VideoProcessor) Stop() {
	p.stopFlag.Store(true)
}

// Frames returns the per-frame detection records collected during Run.
func (p *VideoProcessor) Frames() [][]pipeline.DetectionRecord {
	return p.frames
}

// Run processes the whole input video and returns the output path. A
// failed frame write aborts the run but leaves the annotator's state
// intact; analysis for already-processed frames is not redone.
func (p *VideoProcessor) Run() (string, error) {
	capture, err := gocv.VideoCaptureFile(p.inputPath)
	if err != nil {
		return "", fmt.Errorf("open input %s: %w", p.inputPath, err)
	}
	defer capture.Close()

	totalFrames := int(capture.Get(gocv.VideoCaptureFrameCount))
	width := int(capture.Get(gocv.VideoCaptureFrameWidth))
	height := int(capture.Get(gocv.VideoCaptureFrameHeight))
	fps := capture.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		fps = 30
	}

	settings := p.annotator.Settings()
	if settings.ResizeOutput {
		width = int(float64(width) * settings.ResizeScale)
		height = int(float64(height) * settings.ResizeScale)
	}

	outputPath := nextOutputPath(outputBase(p.inputPath))
	writer, err := openWriter(outputPath, fps, width, height)
	if err != nil {
		return "", err
	}
	defer writer.Close()

	logMsg("PROCESS", fmt.Sprintf("%dx%d @ %.2f fps, %d frames -> %s",
		width, height, fps, totalFrames, outputPath))

	frame := gocv.NewMat()
	defer frame.Close()

	frameCount := 0
	for !p.stopFlag.Load() {
		if ok := capture.Read(&frame); !ok || frame.Empty() {
			break
		}

		if settings.ResizeOutput {
			gocv.Resize(frame, &frame, image.Pt(width, height), 0, 0, gocv.InterpolationArea)
		}

		recs := p.annotator.Process(&frame)

		if err := writer.Write(frame); err != nil {
			return "", fmt.Errorf("write frame %d: %w", frameCount, err)
		}
		if p.preview != nil {
			p.preview.Publish(frame)
		}
		if settings.SaveData {
			p.frames = append(p.frames, recs)
		}

		frameCount++
		if p.progress != nil {
			p.progress(frameCount, totalFrames)
		}
	}

	logMsg("PROCESS", fmt.Sprintf("finished after %d frames", frameCount))
	return outputPath, nil
}

// openWriter tries each output codec in turn and returns the first writer
// that opens.
func openWriter(path string, fps float64, width, height int) (*gocv.VideoWriter, error) {
	for _, codec := range outputCodecs {
		writer, err := gocv.VideoWriterFile(path, codec, fps, width, height, true)
		if err != nil {
			continue
		}
		if writer.IsOpened() {
			logMsg("PROCESS", fmt.Sprintf("output writer using codec %s", codec))
			return writer, nil
		}
		writer.Close()
	}
	return nil, fmt.Errorf("no output codec available for %s (tried %s)",
		path, strings.Join(outputCodecs, ", "))
}

// outputBase strips the input's extension and appends the processed
// suffix.
func outputBase(inputPath string) string {
	base := inputPath
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	return base + "_processed"
}

// nextOutputPath picks the first <base>_<n>.mp4 that does not yet exist.
func nextOutputPath(base string) string {
	for counter := 1; ; counter++ {
		path := fmt.Sprintf("%s_%d.mp4", base, counter)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
	}
}
