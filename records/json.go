// Package records persists per-frame detection measurements: a JSON sink
// matching the layout of the original detector's data files, a SQLite
// store for queryable runs, and summary statistics over a finished run.
package records

import (
	"encoding/json"
	"fmt"
	"os"

	"motioncam/pipeline"
)

// WriteJSON writes one run's detection data as an array of per-frame
// record arrays, one entry per processed frame.
func WriteJSON(path string, frames [][]pipeline.DetectionRecord) error {
	data, err := json.Marshal(frames)
	if err != nil {
		return fmt.Errorf("marshal detection data: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write detection data: %w", err)
	}
	return nil
}
