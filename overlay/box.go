package overlay

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"motioncam/config"
)

// dashCadence is the on/off segment length for dashed strokes and the
// spacing between dots for dotted strokes, in pixels.
const dashCadence = 10

// PadAndClamp expands rect by padding on all sides and clamps the result
// to [0,width) x [0,height). The top-left corner is clamped first, then
// the extent is limited by the remaining frame, matching the drawing
// coordinates the renderer uses.
func PadAndClamp(rect image.Rectangle, padding, width, height int) image.Rectangle {
	x := rect.Min.X - padding
	if x < 0 {
		x = 0
	}
	y := rect.Min.Y - padding
	if y < 0 {
		y = 0
	}
	w := rect.Dx() + 2*padding
	if w > width-x {
		w = width - x
	}
	h := rect.Dy() + 2*padding
	if h > height-y {
		h = height - y
	}
	return image.Rect(x, y, x+w, y+h)
}

// DrawBox renders the bounding box for one blob in the configured stroke
// style, padded and clamped to the frame. Corner accents stack on top of
// whichever style is active.
func DrawBox(frame *gocv.Mat, rect image.Rectangle, boxColor color.RGBA, settings config.Settings) {
	box := PadAndClamp(rect, settings.BoxPadding, frame.Cols(), frame.Rows())

	switch settings.BoxStyle {
	case config.BoxDashed:
		drawDashedBox(frame, box, boxColor, settings.BoxThickness)
	case config.BoxDotted:
		drawDottedBox(frame, box, boxColor, settings.BoxThickness)
	default:
		gocv.Rectangle(frame, box, boxColor, settings.BoxThickness)
	}

	if settings.BoxCorners {
		drawCornerAccents(frame, box, boxColor, settings.BoxThickness)
	}
}

func drawDashedBox(frame *gocv.Mat, box image.Rectangle, c color.RGBA, thickness int) {
	x, y := box.Min.X, box.Min.Y
	w, h := box.Dx(), box.Dy()

	for i := 0; i < w; i += dashCadence * 2 {
		end := min(i+dashCadence, w)
		gocv.Line(frame, image.Pt(x+i, y), image.Pt(x+end, y), c, thickness)
		gocv.Line(frame, image.Pt(x+i, y+h), image.Pt(x+end, y+h), c, thickness)
	}
	for i := 0; i < h; i += dashCadence * 2 {
		end := min(i+dashCadence, h)
		gocv.Line(frame, image.Pt(x, y+i), image.Pt(x, y+end), c, thickness)
		gocv.Line(frame, image.Pt(x+w, y+i), image.Pt(x+w, y+end), c, thickness)
	}
}

func drawDottedBox(frame *gocv.Mat, box image.Rectangle, c color.RGBA, thickness int) {
	x, y := box.Min.X, box.Min.Y
	w, h := box.Dx(), box.Dy()
	radius := thickness / 2

	for i := 0; i < w; i += dashCadence {
		gocv.Circle(frame, image.Pt(x+i, y), radius, c, -1)
		gocv.Circle(frame, image.Pt(x+i, y+h), radius, c, -1)
	}
	for i := 0; i < h; i += dashCadence {
		gocv.Circle(frame, image.Pt(x, y+i), radius, c, -1)
		gocv.Circle(frame, image.Pt(x+w, y+i), radius, c, -1)
	}
}

// drawCornerAccents draws an L-shaped stroke at each corner, arm length
// one quarter of the box's shorter side.
func drawCornerAccents(frame *gocv.Mat, box image.Rectangle, c color.RGBA, thickness int) {
	x, y := box.Min.X, box.Min.Y
	w, h := box.Dx(), box.Dy()
	length := min(w, h) / 4

	// Top-left
	gocv.Line(frame, image.Pt(x, y+length), image.Pt(x, y), c, thickness)
	gocv.Line(frame, image.Pt(x, y), image.Pt(x+length, y), c, thickness)
	// Top-right
	gocv.Line(frame, image.Pt(x+w-length, y), image.Pt(x+w, y), c, thickness)
	gocv.Line(frame, image.Pt(x+w, y), image.Pt(x+w, y+length), c, thickness)
	// Bottom-left
	gocv.Line(frame, image.Pt(x, y+h-length), image.Pt(x, y+h), c, thickness)
	gocv.Line(frame, image.Pt(x, y+h), image.Pt(x+length, y+h), c, thickness)
	// Bottom-right
	gocv.Line(frame, image.Pt(x+w-length, y+h), image.Pt(x+w, y+h), c, thickness)
	gocv.Line(frame, image.Pt(x+w, y+h-length), image.Pt(x+w, y+h), c, thickness)
}

// DrawLabel renders the measurement text just above a blob's unpadded
// top-left corner.
func DrawLabel(frame *gocv.Mat, anchor image.Point, text string, settings config.Settings) {
	pos := image.Pt(anchor.X, anchor.Y-10)
	gocv.PutText(frame, text, pos, gocv.FontHersheySimplex, settings.FontSize, settings.FontColor, 2)
}
