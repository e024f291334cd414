package tilegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		e0, e1, x, want float32
	}{
		{0, 1, -1, 0},
		{0, 1, 0, 0},
		{0, 1, 0.5, 0.5},
		{0, 1, 1, 1},
		{0, 1, 2, 1},
		{1, 1, 0.5, 0}, // degenerate edges step at e0
		{1, 1, 1, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, smoothstep(tt.e0, tt.e1, tt.x), 1e-6, "smoothstep(%v, %v, %v)", tt.e0, tt.e1, tt.x)
	}
}

func TestSDBox(t *testing.T) {
	half := V2(0.5, 0.25)
	assert.InDelta(t, -0.25, sdBox(V2(0, 0), half, 0), 1e-6, "center is -min(half)")
	assert.InDelta(t, 0, sdBox(V2(0.5, 0.25), half, 0), 1e-6, "corner is on the surface")
	assert.InDelta(t, 0, sdBox(V2(-0.5, 0.1), half, 0), 1e-6, "edge is on the surface")
	assert.InDelta(t, 0.5, sdBox(V2(1, 0), half, 0), 1e-6)
	assert.InDelta(t, 0.5, sdBox(V2(0.8, 0.65), half, 0), 1e-6, "corner region is euclidean")
}

func TestSDBox_Rounded(t *testing.T) {
	half := V2(0.5, 0.5)
	// A rounded corner pulls the surface in along the diagonal.
	sharp := sdBox(V2(0.5, 0.5), half, 0)
	round := sdBox(V2(0.5, 0.5), half, 0.2)
	assert.InDelta(t, 0, sharp, 1e-6)
	assert.Greater(t, round, float32(0.05))
	// Rounding is clamped to the smaller half extent.
	assert.InDelta(t, sdDisk(V2(0.3, 0), 0.5), sdBox(V2(0.3, 0), half, 10), 1e-6)
}

func TestSDDisk(t *testing.T) {
	assert.InDelta(t, -1, sdDisk(V2(0, 0), 1), 1e-6)
	assert.InDelta(t, 0, sdDisk(V2(0.6, 0.8), 1), 1e-6)
	assert.InDelta(t, 1, sdDisk(V2(0, 2), 1), 1e-6)
}

func TestSDSegment(t *testing.T) {
	d, tt := sdSegment(V2(0.5, 1), V2(0, 0), V2(1, 0))
	assert.InDelta(t, 1, d, 1e-6)
	assert.InDelta(t, 0.5, tt, 1e-6)

	d, tt = sdSegment(V2(2, 0), V2(0, 0), V2(1, 0))
	assert.InDelta(t, 1, d, 1e-6)
	assert.InDelta(t, 1, tt, 1e-6)

	d, _ = sdSegment(V2(3, 4), V2(0, 0), V2(0, 0))
	assert.InDelta(t, 5, d, 1e-6)
}

func TestSDGround(t *testing.T) {
	// Arch from left to right, bulging up (y down).
	a, b, c := V2(-1, 0.2), V2(0, -0.6), V2(1, 0.2)

	assert.Less(t, sdGround(V2(0, 0.8), a, b, c), float32(0), "below the curve is inside")
	assert.Greater(t, sdGround(V2(0, -0.8), a, b, c), float32(0), "above the curve is outside")

	// The apex of the curve is at t = 0.5: (0, -0.2).
	assert.InDelta(t, 0, sdGround(V2(0, -0.2), a, b, c), 1e-4)
	assert.InDelta(t, 0.3, sdGround(V2(0, -0.5), a, b, c), 1e-3)
	assert.InDelta(t, -0.3, sdGround(V2(0, 0.1), a, b, c), 1e-3)
}

func TestSDGround_Degenerate(t *testing.T) {
	// Control point on the chord midpoint: a straight segment.
	a, b, c := V2(-1, 0), V2(0, 0), V2(1, 0)
	assert.InDelta(t, -0.5, sdGround(V2(0.2, 0.5), a, b, c), 1e-5)
	assert.InDelta(t, 0.5, sdGround(V2(0.2, -0.5), a, b, c), 1e-5)
}

func TestCoverage(t *testing.T) {
	w := float32(0.1)
	assert.InDelta(t, 1, fillCoverage(-1, w), 1e-6)
	assert.InDelta(t, 1, fillCoverage(-1e-4, w), 1e-6)
	assert.InDelta(t, 1, fillCoverage(0, w), 1e-6)
	assert.InDelta(t, 0.5, fillCoverage(w, w), 1e-6)
	assert.InDelta(t, 0, fillCoverage(2*w, w), 1e-6)
	assert.InDelta(t, 0, fillCoverage(1, w), 1e-6)

	assert.InDelta(t, 1, mergeCoverage(-1, w), 1e-6)
	assert.InDelta(t, 0, mergeCoverage(0, w), 1e-6)
	assert.InDelta(t, 0, mergeCoverage(1, w), 1e-6)
}
