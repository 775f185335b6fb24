package overlay

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"motioncam/config"
)

// Canny hysteresis thresholds for the edge overlay, fixed at a 1:2 ratio.
const (
	cannyLow  = 100
	cannyHigh = 200
)

// ApplyEffects composites the enabled visual effects onto the frame region
// inside rect, in fixed order: invert, then heat, then edge. Each effect
// blends its overlay against the region's current, already-modified pixels
// with alpha = intensity/100, so stacked effects accumulate. The region is
// a view into the frame, so the result lands in place.
func ApplyEffects(frame *gocv.Mat, rect image.Rectangle, speed, maxSpeed float64, settings config.Settings) {
	roi := frame.Region(rect)
	defer roi.Close()

	if settings.NegativeEffect {
		inverted := gocv.NewMat()
		gocv.BitwiseNot(roi, &inverted)
		blend(&roi, inverted, settings.NegativeIntensity)
		inverted.Close()
	}

	if settings.HeatMap {
		heat := solidMat(HeatColor(speed, maxSpeed), roi.Rows(), roi.Cols())
		blend(&roi, heat, settings.HeatIntensity)
		heat.Close()
	}

	if settings.EdgeDetection {
		edges := edgeOverlay(roi, settings.EdgeColor)
		blend(&roi, edges, settings.EdgeIntensity)
		edges.Close()
	}
}

// blend mixes overlay into roi with roi*(1-alpha) + overlay*alpha,
// alpha = intensity/100.
func blend(roi *gocv.Mat, overlay gocv.Mat, intensity int) {
	alpha := float64(intensity) / 100.0
	gocv.AddWeighted(*roi, 1-alpha, overlay, alpha, 0, roi)
}

// edgeOverlay builds the edge-magnitude overlay for roi: Canny edges
// recolored to edgeColor on a black background.
func edgeOverlay(roi gocv.Mat, edgeColor color.RGBA) gocv.Mat {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(roi, &gray, gocv.ColorBGRToGray)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, cannyLow, cannyHigh)

	overlay := gocv.Zeros(roi.Rows(), roi.Cols(), gocv.MatTypeCV8UC3)
	fill := solidMat(edgeColor, roi.Rows(), roi.Cols())
	defer fill.Close()
	fill.CopyToWithMask(&overlay, edges)
	return overlay
}

// solidMat allocates a 3-channel Mat filled with c. Caller closes.
func solidMat(c color.RGBA, rows, cols int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(bgrScalar(c), rows, cols, gocv.MatTypeCV8UC3)
}

// bgrScalar converts an RGBA color to the BGR channel order gocv Mats use.
func bgrScalar(c color.RGBA) gocv.Scalar {
	return gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0)
}
