package overlay

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkIntensity(t *testing.T) {
	t.Parallel()

	t.Run("zero distance is full intensity", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1.0, LinkIntensity(0, 200))
	})

	t.Run("half threshold is half intensity", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0.5, LinkIntensity(100, 200), 1e-9)
	})

	t.Run("at threshold no line", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, LinkIntensity(200, 200))
	})

	t.Run("beyond threshold no line", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, LinkIntensity(350, 200))
	})

	t.Run("degenerate threshold", func(t *testing.T) {
		t.Parallel()
		assert.Zero(t, LinkIntensity(0, 0))
	})
}

func TestScaleColor(t *testing.T) {
	t.Parallel()

	pink := color.RGBA{R: 255, G: 192, B: 203, A: 255}

	t.Run("full intensity keeps configured color", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, pink, scaleColor(pink, 255))
	})

	t.Run("zero intensity is black", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, color.RGBA{A: 255}, scaleColor(pink, 0))
	})

	t.Run("scales every channel multiplicatively", func(t *testing.T) {
		t.Parallel()
		got := scaleColor(pink, 127)
		assert.Equal(t, uint8(255*127/255), got.R)
		assert.Equal(t, uint8(192*127/255), got.G)
		assert.Equal(t, uint8(203*127/255), got.B)
	})
}
