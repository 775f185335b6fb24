package overlay

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeatColorNoMovementSentinel(t *testing.T) {
	t.Parallel()

	blue := color.RGBA{B: 255, A: 255}
	assert.Equal(t, blue, HeatColor(0, 0))
	assert.Equal(t, blue, HeatColor(17.3, 0)) // any speed, frame max 0
}

func TestHeatColorBreakpoints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		ratio float64
		want  color.RGBA
	}{
		{"zero is pure blue", 0, color.RGBA{B: 255, A: 255}},
		{"quarter is pure green", 0.25, color.RGBA{G: 255, A: 255}},
		{"half is pure yellow", 0.5, color.RGBA{R: 255, G: 255, A: 255}},
		{"three quarters is orange", 0.75, color.RGBA{R: 255, G: 127, A: 255}},
		{"one is pure red", 1.0, color.RGBA{R: 255, A: 255}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, HeatColor(tc.ratio*100, 100))
		})
	}
}

func TestHeatColorTopSpeedIsRed(t *testing.T) {
	t.Parallel()
	assert.Equal(t, color.RGBA{R: 255, A: 255}, HeatColor(42.5, 42.5))
}

func TestHeatColorClampsAboveMax(t *testing.T) {
	t.Parallel()
	assert.Equal(t, HeatColor(100, 100), HeatColor(250, 100))
}

func TestHeatColorSegmentsContinuous(t *testing.T) {
	t.Parallel()

	// Adjacent samples across the whole ramp never jump by more than the
	// per-step interpolation amount; the original implementation had a
	// red-to-yellow discontinuity at 0.75 that this guards against.
	prev := HeatColor(0, 1000)
	for s := 1; s <= 1000; s++ {
		curr := HeatColor(float64(s), 1000)
		assert.LessOrEqual(t, channelDelta(prev, curr), 3,
			"discontinuity at ratio %.3f", float64(s)/1000)
		prev = curr
	}
}

func channelDelta(a, b color.RGBA) int {
	max := 0
	for _, d := range []int{
		int(a.R) - int(b.R),
		int(a.G) - int(b.G),
		int(a.B) - int(b.B),
	} {
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max
}
