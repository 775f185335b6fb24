package pipeline

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"motioncam/config"
	"motioncam/detection"
	"motioncam/overlay"
	"motioncam/tracking"
)

// Position is a blob's unpadded bounding box as recorded in the output
// data (padding affects drawing only).
type Position struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DetectionRecord is the per-blob measurement emitted for every retained
// blob on every frame.
type DetectionRecord struct {
	Area      int                `json:"area"`
	Position  Position           `json:"position"`
	Speed     float64            `json:"speed"`
	Direction tracking.Direction `json:"direction"`
}

// Annotator runs the full per-frame analysis and annotation pipeline:
// background subtraction, blob extraction, frame-to-frame association,
// effect compositing, box and label rendering, and proximity links.
//
// It is stateful across frames (the background model's statistics and the
// previous frame's centroid set), so frames must be fed strictly in order
// by a single goroutine. The first frame of a run starts cold, with no
// previous centroids; every subsequent frame is warm.
type Annotator struct {
	settings   config.Settings
	background *detection.BackgroundModel
	extractor  *detection.BlobExtractor
	prev       tracking.State

	// Scratch Mats reused across frames.
	gray gocv.Mat
	mask gocv.Mat
}

// NewAnnotator validates settings and builds a cold pipeline.
func NewAnnotator(settings config.Settings) (*Annotator, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &Annotator{
		settings:   settings,
		background: detection.NewBackgroundModel(),
		extractor:  detection.NewBlobExtractor(),
		prev:       tracking.NewState(),
		gray:       gocv.NewMat(),
		mask:       gocv.NewMat(),
	}, nil
}

// Process analyzes one BGR frame, mutating it in place with the configured
// annotations, and returns the detection records for its retained blobs.
// The caller owns the frame for the duration of the call.
//
// The speed scan runs twice over the same previous-frame state snapshot:
// pass one derives the frame-global maximum speed, which pass two needs
// for heat color normalization before any blob is drawn.
func (a *Annotator) Process(frame *gocv.Mat) []DetectionRecord {
	gocv.CvtColor(*frame, &a.gray, gocv.ColorBGRToGray)
	a.background.Apply(a.gray, &a.mask)

	blobs := a.extractor.Extract(&a.mask, a.settings)

	centers := make([]image.Point, len(blobs))
	for i, b := range blobs {
		centers[i] = b.Center
	}

	// Pass 1: frame-global max speed.
	maxSpeed := tracking.MaxSpeed(centers, a.prev)

	// Pass 2: effects, boxes, labels, records.
	records := make([]DetectionRecord, 0, len(blobs))
	points := make([]image.Point, 0, len(blobs))
	for _, blob := range blobs {
		speed, direction := tracking.Associate(blob.Center, a.prev)

		overlay.ApplyEffects(frame, blob.Rect, speed, maxSpeed, a.settings)

		if a.settings.ShowBox {
			boxColor := a.settings.BoxColor
			if a.settings.HeatMap {
				boxColor = overlay.HeatColor(speed, maxSpeed)
			}
			overlay.DrawBox(frame, blob.Rect, boxColor, a.settings)

			label := fmt.Sprintf("%d", blob.Area)
			if speed > 0 {
				label += fmt.Sprintf(" | %dpx/frame", int(speed))
			}
			overlay.DrawLabel(frame, blob.Rect.Min, label, a.settings)
		}

		points = append(points, blob.ConnectionPoint)
		records = append(records, DetectionRecord{
			Area: blob.Area,
			Position: Position{
				X:      blob.Rect.Min.X,
				Y:      blob.Rect.Min.Y,
				Width:  blob.Rect.Dx(),
				Height: blob.Rect.Dy(),
			},
			Speed:     speed,
			Direction: direction,
		})
	}

	if a.settings.ShowLines {
		overlay.DrawProximityLinks(frame, points, a.settings)
	}

	// Full state replace: only the current frame's centroids survive.
	a.prev = tracking.NextState(centers)

	return records
}

// Settings returns the run configuration the annotator was built with.
func (a *Annotator) Settings() config.Settings {
	return a.settings
}

// Close frees the pipeline's C-backed resources.
func (a *Annotator) Close() error {
	a.gray.Close()
	a.mask.Close()
	a.extractor.Close()
	return a.background.Close()
}
