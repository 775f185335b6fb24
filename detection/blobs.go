package detection

import (
	"image"

	"gocv.io/x/gocv"

	"motioncam/config"
)

// kernelSize is the side length of the square structuring element used to
// denoise the foreground mask.
const kernelSize = 5

// Blob is one filtered moving region found in a frame: its axis-aligned
// bounding box, contour area, centroid, and the point used when measuring
// proximity to other blobs. Blobs are created fresh each frame and never
// persisted beyond it.
type Blob struct {
	Rect            image.Rectangle
	Area            int
	Center          image.Point
	ConnectionPoint image.Point
}

// BlobExtractor turns foreground masks into filtered blobs. It owns the
// morphology kernel so the Mat is allocated once per run.
type BlobExtractor struct {
	kernel gocv.Mat
}

// NewBlobExtractor creates an extractor with a 5x5 rectangular kernel.
func NewBlobExtractor() *BlobExtractor {
	return &BlobExtractor{
		kernel: gocv.GetStructuringElement(gocv.MorphRect, image.Pt(kernelSize, kernelSize)),
	}
}

// Extract denoises mask in place (morphological opening then closing),
// finds external contours, and returns a Blob for every contour whose area
// exceeds settings.MinArea. The centroid is the bounding box center with
// integer division, (x + w/2, y + h/2), so repeated detections of a static
// region produce the identical point.
func (be *BlobExtractor) Extract(mask *gocv.Mat, settings config.Settings) []Blob {
	gocv.MorphologyEx(*mask, mask, gocv.MorphOpen, be.kernel)
	gocv.MorphologyEx(*mask, mask, gocv.MorphClose, be.kernel)

	contours := gocv.FindContours(*mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var blobs []Blob
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)
		if area <= float64(settings.MinArea) {
			continue
		}

		rect := gocv.BoundingRect(contour)
		center := image.Pt(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)

		connection := center
		if settings.ConnectionPoint == config.ConnectCorner {
			connection = rect.Min
		}

		blobs = append(blobs, Blob{
			Rect:            rect,
			Area:            int(area),
			Center:          center,
			ConnectionPoint: connection,
		})
	}
	return blobs
}

// Close frees the morphology kernel.
func (be *BlobExtractor) Close() error {
	return be.kernel.Close()
}
