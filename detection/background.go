package detection

import (
	"gocv.io/x/gocv"
)

const (
	// historyLength is the rolling window of frames the background model
	// adapts over.
	historyLength = 500

	// varThreshold is the squared Mahalanobis distance used by MOG2 to
	// decide whether a pixel fits the background model.
	varThreshold = 16
)

// BackgroundModel is an adaptive mixture-of-gaussians background
// subtractor. Every Apply call updates the internal statistics, so a
// model instance must only ever see one stream of frames, in order.
type BackgroundModel struct {
	mog2 gocv.BackgroundSubtractorMOG2
}

// NewBackgroundModel creates a background model with a 500 frame history
// and shadow detection disabled.
func NewBackgroundModel() *BackgroundModel {
	return &BackgroundModel{
		mog2: gocv.NewBackgroundSubtractorMOG2WithParams(historyLength, varThreshold, false),
	}
}

// Apply feeds one grayscale frame into the model and writes the resulting
// foreground mask into dst. The model's statistics mutate on every call;
// there is no pure variant and no reset.
func (bm *BackgroundModel) Apply(gray gocv.Mat, dst *gocv.Mat) {
	bm.mog2.Apply(gray, dst)
}

// Close frees the underlying C resources. Required, gocv Mats and
// subtractors are not garbage collected.
func (bm *BackgroundModel) Close() error {
	return bm.mog2.Close()
}
