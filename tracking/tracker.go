package tracking

import (
	"image"
	"math"
)

// Direction is the coarse movement direction of a blob between frames.
type Direction string

const (
	DirUp    Direction = "Up"
	DirDown  Direction = "Down"
	DirLeft  Direction = "Left"
	DirRight Direction = "Right"
	DirNone  Direction = "N/A"
)

// State is the set of centroids observed in the previous frame, keyed by
// the centroid itself. It exists purely as a lookup key set: association
// is by exact coordinate equality, not nearest neighbor. The state is
// replaced wholesale at the end of every frame, so centroids absent from
// the current frame are discarded with no identity continuity.
type State map[image.Point]image.Point

// NewState returns an empty state, the cold-start condition for the first
// frame of a run.
func NewState() State {
	return make(State)
}

// Associate looks up center in the previous frame's state and derives
// speed (pixels per frame) and direction from the displacement. A miss
// yields speed 0 and DirNone. A hit with |dx| > |dy| classifies
// horizontally, anything else vertically, so a tie falls into the
// vertical branch.
func Associate(center image.Point, prev State) (float64, Direction) {
	matched, ok := prev[center]
	if !ok {
		return 0, DirNone
	}

	dx := center.X - matched.X
	dy := center.Y - matched.Y
	speed := math.Sqrt(float64(dx*dx + dy*dy))

	var dir Direction
	if abs(dx) > abs(dy) {
		if dx > 0 {
			dir = DirRight
		} else {
			dir = DirLeft
		}
	} else {
		if dy > 0 {
			dir = DirDown
		} else {
			dir = DirUp
		}
	}
	return speed, dir
}

// MaxSpeed computes the frame-global maximum association speed over all
// centers against the same previous-frame state snapshot. Callers run
// this as a first pass before any rendering, since heat coloring
// normalizes by the result.
func MaxSpeed(centers []image.Point, prev State) float64 {
	var max float64
	for _, c := range centers {
		speed, _ := Associate(c, prev)
		if speed > max {
			max = speed
		}
	}
	return max
}

// NextState builds the replacement state from the current frame's
// centroids. Full replace, not merge.
func NextState(centers []image.Point) State {
	next := make(State, len(centers))
	for _, c := range centers {
		next[c] = c
	}
	return next
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
