package overlay

import (
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"motioncam/config"
)

const linkThickness = 2

// LinkIntensity returns the color scale factor for a connector line
// between two points at the given distance: 1.0 at distance 0, falling
// linearly to 0 at the threshold. Distances at or beyond the threshold
// return 0, meaning no line.
func LinkIntensity(distance, threshold float64) float64 {
	if threshold <= 0 || distance >= threshold {
		return 0
	}
	return 1 - distance/threshold
}

// scaleColor multiplies every channel of c by intensity/255, the
// original's integer arithmetic. This dims the line color itself rather
// than alpha-blending it with the background.
func scaleColor(c color.RGBA, intensity int) color.RGBA {
	return color.RGBA{
		R: uint8(int(c.R) * intensity / 255),
		G: uint8(int(c.G) * intensity / 255),
		B: uint8(int(c.B) * intensity / 255),
		A: 255,
	}
}

// DrawProximityLinks draws a connector line between every unordered pair
// of connection points closer than settings.LineDistance. Line brightness
// scales down linearly as the pair approaches the threshold.
func DrawProximityLinks(frame *gocv.Mat, points []image.Point, settings config.Settings) {
	threshold := float64(settings.LineDistance)
	for i, p1 := range points {
		for _, p2 := range points[i+1:] {
			dx := float64(p1.X - p2.X)
			dy := float64(p1.Y - p2.Y)
			distance := math.Sqrt(dx*dx + dy*dy)
			if distance >= threshold {
				continue
			}

			intensity := int(255 * LinkIntensity(distance, threshold))
			gocv.Line(frame, p1, p2, scaleColor(settings.LineColor, intensity), linkThickness)
		}
	}
}
