package overlay

import (
	"image/color"
)

// HeatColor maps a blob's speed, normalized by the frame's maximum speed,
// onto a blue -> green -> yellow -> orange -> red ramp. A frame with no
// movement at all (maxSpeed 0) gets pure blue as the sentinel. The ramp is
// piecewise linear across four equal segments of the ratio with continuous
// breakpoints: 0 blue, 0.25 green, 0.5 yellow, 0.75 orange, 1.0 red.
func HeatColor(speed, maxSpeed float64) color.RGBA {
	if maxSpeed == 0 {
		return color.RGBA{B: 255, A: 255}
	}

	ratio := speed / maxSpeed
	if ratio > 1.0 {
		ratio = 1.0
	}

	switch {
	case ratio < 0.25:
		// Blue to green
		t := ratio * 4
		return color.RGBA{G: uint8(255 * t), B: uint8(255 * (1 - t)), A: 255}
	case ratio < 0.5:
		// Green to yellow
		t := (ratio - 0.25) * 4
		return color.RGBA{R: uint8(255 * t), G: 255, A: 255}
	case ratio < 0.75:
		// Yellow to orange
		t := (ratio - 0.5) * 4
		return color.RGBA{R: 255, G: uint8(255 - 128*t), A: 255}
	default:
		// Orange to red
		t := (ratio - 0.75) * 4
		return color.RGBA{R: 255, G: uint8(127 * (1 - t)), A: 255}
	}
}
