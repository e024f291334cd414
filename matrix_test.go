package tilegen

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got Vec2) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5)
	assert.InDelta(t, want.Y, got.Y, 1e-5)
}

func TestMatrix_Basics(t *testing.T) {
	assert.Equal(t, Matrix{A: 1, E: 1}, Identity())
	assert.Equal(t, V2(3, 4), Identity().Apply(V2(3, 4)))
	assert.Equal(t, V2(4, 6), Translate(V2(1, 2)).Apply(V2(3, 4)))
	assert.Equal(t, V2(6, -4), Scale(2, -1).Apply(V2(3, 4)))
	assertVec(t, V2(0, 1), Rotate(math32.Pi/2).Apply(V2(1, 0)))
	assertVec(t, V2(1, 0).Rotate(0.7), Rotate(0.7).Apply(V2(1, 0)))
}

func TestMatrix_MultiplyOrder(t *testing.T) {
	// Scale applies first, then the translation.
	m := Translate(V2(1, 0)).Multiply(Scale(2, 2))
	assert.Equal(t, V2(3, 2), m.Apply(V2(1, 1)))
}

func TestShapeMatrix(t *testing.T) {
	one := V2(1, 1)

	// The pivot maps to the origin and a cell spans two units.
	m := shapeMatrix(V2(0.5, 0.5), one, 0)
	assertVec(t, V2(0, 0), m.Apply(V2(0.5, 0.5)))
	assertVec(t, V2(1, 1), m.Apply(V2(1, 1)))

	// A single cell rotates around its center; the pivot offset applies
	// afterwards and does not move the rotation center.
	m = shapeMatrix(V2(0.25, 0.5), one, math32.Pi/2)
	assertVec(t, V2(0.5, 0), m.Apply(V2(0.5, 0.5)))

	// Larger areas rotate around the pivot.
	size := V2(2, 1)
	m = shapeMatrix(V2(1, 0.5), size, math32.Pi/2)
	assertVec(t, V2(0, 0), m.Apply(V2(1, 0.5)))
	assertVec(t, V2(0, -1), m.Apply(V2(1.5, 0.5)))
}
