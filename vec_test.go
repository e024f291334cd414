package tilegen

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := V2(3, 4)
	b := V2(1, -2)

	assert.Equal(t, V2(4, 2), a.Add(b))
	assert.Equal(t, V2(2, 6), a.Sub(b))
	assert.Equal(t, V2(6, 8), a.Mul(2))
	assert.Equal(t, V2(3, -8), a.MulVec(b))
	assert.Equal(t, float32(-5), a.Dot(b))
	assert.Equal(t, float32(-10), a.Cross(b))
	assert.Equal(t, float32(5), a.Length())
	assert.Equal(t, float32(25), a.LengthSq())
}

func TestVec2_Rotate(t *testing.T) {
	r := V2(1, 0).Rotate(math32.Pi / 2)
	assert.InDelta(t, 0, r.X, 1e-6)
	assert.InDelta(t, 1, r.Y, 1e-6)
}

func TestVec2_FloorFract(t *testing.T) {
	v := V2(2.25, -0.75)
	assert.Equal(t, V2(2, -1), v.Floor())
	assert.InDelta(t, 0.25, v.Fract().X, 1e-6)
	assert.InDelta(t, 0.25, v.Fract().Y, 1e-6)
	assert.Equal(t, V2(2.25, 0.75), v.Abs())
	assert.Equal(t, V2(2.25, 0), v.Max(0))
}
