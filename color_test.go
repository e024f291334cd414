package tilegen

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", White},
		{"000", Black},
		{"#ff0000", Red},
		{"00ff0080", RGBA(0, 1, 0, 128.0/255)},
		{"#f008", RGBA(1, 0, 0, 136.0/255)},
		{"", Black},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Hex(tt.in), tt.in)
	}
}

func TestColor_Mix(t *testing.T) {
	c := Black.Mix(White, 0.25)
	assert.InDelta(t, 0.25, c.R, 1e-6)
	assert.Equal(t, Red, Blue.Mix(Red, 1))
	assert.Equal(t, Blue, Blue.Mix(Red, 0))
}

func TestColor_AddRGBClamp(t *testing.T) {
	c := Gray(0.8).AddRGB(0.5)
	assert.InDelta(t, 1.3, c.R, 1e-6)
	assert.Equal(t, float32(1), c.A)
	assert.Equal(t, White, c.Clamp())
	assert.Equal(t, RGBA(0, 0, 0, 1), Gray(0.2).AddRGB(-1).Clamp())
}

func TestColor_Over(t *testing.T) {
	assert.Equal(t, Red, Red.Over(Blue), "opaque source wins")
	assert.Equal(t, Blue, Transparent.Over(Blue))
	assert.Equal(t, Transparent, Transparent.Over(Transparent))

	half := RGBA(1, 0, 0, 0.5).Over(Blue)
	assert.InDelta(t, 1, half.A, 1e-6)
	assert.InDelta(t, 0.5, half.R, 1e-6)
	assert.InDelta(t, 0.5, half.B, 1e-6)

	both := RGBA(1, 1, 1, 0.5).Over(RGBA(1, 1, 1, 0.5))
	assert.InDelta(t, 0.75, both.A, 1e-6)
	assert.InDelta(t, 1, both.R, 1e-6, "straight alpha keeps color")
}

func TestColor_Conversions(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 128, A: 255}, RGB(2, -1, 0.5).NRGBA())
	assert.Equal(t, Red, FromColor(color.NRGBA{R: 255, A: 255}))
	assert.Equal(t, Green, ColorFromArray(Green.Array()))
}
