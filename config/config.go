package config

import (
	"fmt"
	"image/color"
)

// BoxStyle selects the stroke algorithm used for bounding boxes.
type BoxStyle string

const (
	BoxSolid  BoxStyle = "solid"
	BoxDashed BoxStyle = "dashed"
	BoxDotted BoxStyle = "dotted"
)

// ConnectionPoint selects which point of a blob is used when measuring
// inter-blob proximity for connector lines.
type ConnectionPoint string

const (
	ConnectCenter ConnectionPoint = "center"
	ConnectCorner ConnectionPoint = "corner"
)

// Settings holds the full configuration for one processing run. It is
// validated once up front and treated as read-only by every component
// for the lifetime of the run.
type Settings struct {
	// Detection
	MinArea int // contours with area <= MinArea are discarded

	// Bounding box
	BoxStyle     BoxStyle
	BoxThickness int
	BoxPadding   int // box expansion on all sides before clamping
	BoxCorners   bool
	BoxColor     color.RGBA
	ShowBox      bool

	// Per-blob effects
	HeatMap           bool
	HeatIntensity     int // blend alpha in percent, 0-100
	NegativeEffect    bool
	NegativeIntensity int // 0-100
	EdgeDetection     bool
	EdgeIntensity     int // 0-100
	EdgeColor         color.RGBA

	// Label
	FontSize  float64
	FontColor color.RGBA

	// Proximity links
	ShowLines       bool
	LineDistance    int // draw links between blobs closer than this, px
	LineColor       color.RGBA
	ConnectionPoint ConnectionPoint

	// Output handling
	ResizeOutput bool
	ResizeScale  float64 // 0.25-1.0, applied before analysis
	SaveData     bool    // emit detection records
}

// DefaultSettings returns the baseline configuration.
func DefaultSettings() Settings {
	return Settings{
		MinArea:           500,
		BoxStyle:          BoxSolid,
		BoxThickness:      2,
		BoxPadding:        0,
		BoxCorners:        false,
		BoxColor:          color.RGBA{A: 255}, // black
		ShowBox:           true,
		HeatMap:           true,
		HeatIntensity:     50,
		NegativeEffect:    true,
		NegativeIntensity: 100,
		EdgeDetection:     true,
		EdgeIntensity:     50,
		EdgeColor:         color.RGBA{R: 170, G: 255, B: 255, A: 255},
		FontSize:          0.9,
		FontColor:         color.RGBA{A: 255},
		ShowLines:         true,
		LineDistance:      200,
		LineColor:         color.RGBA{R: 203, G: 192, B: 255, A: 255},
		ConnectionPoint:   ConnectCenter,
		ResizeOutput:      true,
		ResizeScale:       0.75,
		SaveData:          false,
	}
}

// Validate reports the first out-of-range or unknown field value.
func (s Settings) Validate() error {
	if s.MinArea < 0 {
		return fmt.Errorf("min area must be >= 0, got %d", s.MinArea)
	}
	switch s.BoxStyle {
	case BoxSolid, BoxDashed, BoxDotted:
	default:
		return fmt.Errorf("unknown box style %q", s.BoxStyle)
	}
	if s.BoxThickness < 1 {
		return fmt.Errorf("box thickness must be >= 1, got %d", s.BoxThickness)
	}
	if s.BoxPadding < 0 {
		return fmt.Errorf("box padding must be >= 0, got %d", s.BoxPadding)
	}
	if s.HeatIntensity < 0 || s.HeatIntensity > 100 {
		return fmt.Errorf("heat intensity must be 0-100, got %d", s.HeatIntensity)
	}
	if s.NegativeIntensity < 0 || s.NegativeIntensity > 100 {
		return fmt.Errorf("negative intensity must be 0-100, got %d", s.NegativeIntensity)
	}
	if s.EdgeIntensity < 0 || s.EdgeIntensity > 100 {
		return fmt.Errorf("edge intensity must be 0-100, got %d", s.EdgeIntensity)
	}
	if s.FontSize <= 0 {
		return fmt.Errorf("font size must be > 0, got %g", s.FontSize)
	}
	if s.LineDistance <= 0 {
		return fmt.Errorf("line distance must be > 0, got %d", s.LineDistance)
	}
	switch s.ConnectionPoint {
	case ConnectCenter, ConnectCorner:
	default:
		return fmt.Errorf("unknown connection point %q", s.ConnectionPoint)
	}
	if s.ResizeOutput && (s.ResizeScale < 0.25 || s.ResizeScale > 1.0) {
		return fmt.Errorf("resize scale must be 0.25-1.0, got %g", s.ResizeScale)
	}
	return nil
}
