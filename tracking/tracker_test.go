package tracking

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssociateDirections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		dx, dy int
		want   Direction
	}{
		{"right", 5, 2, DirRight},
		{"left", -5, 2, DirLeft},
		{"down", 2, 5, DirDown},
		{"up", 2, -5, DirUp},
		{"tie resolves vertically", 3, 3, DirDown},
		{"negative tie resolves vertically", -3, -3, DirUp},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			prevCenter := image.Pt(100, 100)
			current := image.Pt(prevCenter.X+tc.dx, prevCenter.Y+tc.dy)

			// The lookup key is the current centroid, so the previous
			// state must contain it; the stored value carries the
			// previous position the displacement is measured from.
			state := State{current: prevCenter}

			speed, dir := Associate(current, state)
			assert.Equal(t, tc.want, dir)
			wantSpeed := math.Sqrt(float64(tc.dx*tc.dx + tc.dy*tc.dy))
			assert.InDelta(t, wantSpeed, speed, 1e-9)
		})
	}
}

func TestAssociateMiss(t *testing.T) {
	t.Parallel()

	state := State{image.Pt(50, 50): image.Pt(50, 50)}

	// Any positional shift changes the key and defeats the exact-equality
	// lookup.
	speed, dir := Associate(image.Pt(51, 50), state)
	assert.Zero(t, speed)
	assert.Equal(t, DirNone, dir)

	speed, dir = Associate(image.Pt(50, 50), NewState())
	assert.Zero(t, speed)
	assert.Equal(t, DirNone, dir)
}

func TestAssociateExactMatchStatic(t *testing.T) {
	t.Parallel()

	// A blob whose centroid is identical across frames matches with zero
	// displacement: speed 0, vertical branch, dy not positive.
	p := image.Pt(30, 40)
	speed, dir := Associate(p, State{p: p})
	assert.Zero(t, speed)
	assert.Equal(t, DirUp, dir)
}

func TestMaxSpeedMatchesPerBlobSpeeds(t *testing.T) {
	t.Parallel()

	prev := State{
		image.Pt(10, 10): image.Pt(7, 6),   // speed 5
		image.Pt(50, 50): image.Pt(50, 38), // speed 12
		image.Pt(90, 90): image.Pt(90, 90), // speed 0
	}
	centers := []image.Point{
		image.Pt(10, 10),
		image.Pt(50, 50),
		image.Pt(90, 90),
		image.Pt(200, 200), // miss
	}

	got := MaxSpeed(centers, prev)

	// Pass 1 and a per-blob pass 2 over the same snapshot must agree.
	var want float64
	for _, c := range centers {
		speed, _ := Associate(c, prev)
		if speed > want {
			want = speed
		}
	}
	assert.Equal(t, want, got)
	assert.InDelta(t, 12.0, got, 1e-9)
}

func TestMaxSpeedEmpty(t *testing.T) {
	t.Parallel()
	assert.Zero(t, MaxSpeed(nil, NewState()))
}

func TestNextStateFullReplace(t *testing.T) {
	t.Parallel()

	current := []image.Point{image.Pt(1, 2), image.Pt(3, 4)}
	next := NextState(current)

	require.Len(t, next, 2)
	for _, c := range current {
		assert.Equal(t, c, next[c])
	}

	// Centroids from earlier frames are gone: replace, not merge.
	later := NextState([]image.Point{image.Pt(9, 9)})
	require.Len(t, later, 1)
	_, ok := later[image.Pt(1, 2)]
	assert.False(t, ok)
}
