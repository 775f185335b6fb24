package records

import (
	"gonum.org/v1/gonum/stat"

	"motioncam/pipeline"
	"motioncam/tracking"
)

// Summary aggregates the measurements of one finished run.
type Summary struct {
	Frames      int
	Detections  int
	MeanArea    float64
	MeanSpeed   float64 // over tracked (speed > 0) detections
	StdDevSpeed float64
	MaxSpeed    float64
	Directions  map[tracking.Direction]int
}

// Summarize computes run statistics from per-frame detection records.
// Speed statistics cover only tracked detections; untracked blobs report
// speed 0 and would drown the distribution.
func Summarize(frames [][]pipeline.DetectionRecord) Summary {
	summary := Summary{
		Frames:     len(frames),
		Directions: make(map[tracking.Direction]int),
	}

	var areas, speeds []float64
	for _, frame := range frames {
		for _, r := range frame {
			summary.Detections++
			areas = append(areas, float64(r.Area))
			summary.Directions[r.Direction]++
			if r.Speed > 0 {
				speeds = append(speeds, r.Speed)
				if r.Speed > summary.MaxSpeed {
					summary.MaxSpeed = r.Speed
				}
			}
		}
	}

	if len(areas) > 0 {
		summary.MeanArea = stat.Mean(areas, nil)
	}
	if len(speeds) > 0 {
		summary.MeanSpeed = stat.Mean(speeds, nil)
		summary.StdDevSpeed = stat.StdDev(speeds, nil)
	}
	return summary
}
