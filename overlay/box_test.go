package overlay

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadAndClamp(t *testing.T) {
	t.Parallel()

	const width, height = 640, 480

	t.Run("no padding keeps rect", func(t *testing.T) {
		t.Parallel()
		rect := image.Rect(10, 20, 110, 80)
		assert.Equal(t, rect, PadAndClamp(rect, 0, width, height))
	})

	t.Run("padding expands all sides", func(t *testing.T) {
		t.Parallel()
		got := PadAndClamp(image.Rect(100, 100, 200, 150), 10, width, height)
		assert.Equal(t, image.Rect(90, 90, 210, 160), got)
	})

	t.Run("clamps at origin", func(t *testing.T) {
		t.Parallel()
		got := PadAndClamp(image.Rect(3, 4, 50, 40), 10, width, height)
		assert.Equal(t, 0, got.Min.X)
		assert.Equal(t, 0, got.Min.Y)
		// The far edge still gets the full expansion.
		assert.Equal(t, 60, got.Max.X)
		assert.Equal(t, 50, got.Max.Y)
	})

	t.Run("clamps at far edge", func(t *testing.T) {
		t.Parallel()
		got := PadAndClamp(image.Rect(600, 450, 635, 475), 20, width, height)
		assert.LessOrEqual(t, got.Max.X, width)
		assert.LessOrEqual(t, got.Max.Y, height)
		assert.Equal(t, 580, got.Min.X)
		assert.Equal(t, 430, got.Min.Y)
	})

	t.Run("padded box always inside frame", func(t *testing.T) {
		t.Parallel()
		rects := []image.Rectangle{
			image.Rect(0, 0, 639, 479),
			image.Rect(0, 0, 5, 5),
			image.Rect(630, 470, 640, 480),
			image.Rect(300, 200, 400, 300),
		}
		for _, rect := range rects {
			for _, pad := range []int{0, 1, 7, 50} {
				got := PadAndClamp(rect, pad, width, height)
				assert.GreaterOrEqual(t, got.Min.X, 0)
				assert.GreaterOrEqual(t, got.Min.Y, 0)
				assert.LessOrEqual(t, got.Max.X, width)
				assert.LessOrEqual(t, got.Max.Y, height)
			}
		}
	})
}
