package tilegen

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Color is a straight (non-premultiplied) RGBA color with float32
// components. Components are nominally in [0, 1]; intermediate results may
// leave that range and are clamped when written to 8-bit outputs.
type Color struct {
	R, G, B, A float32
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Gray creates an opaque gray with all channels set to v.
func Gray(v float32) Color {
	return Color{R: v, G: v, B: v, A: 1}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with optional '#'.
// Malformed digits read as zero.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32
	a := uint32(255)

	switch len(hex) {
	case 3, 4:
		r = parseHex(hex[0:1]) * 17
		g = parseHex(hex[1:2]) * 17
		b = parseHex(hex[2:3]) * 17
		if len(hex) == 4 {
			a = parseHex(hex[3:4]) * 17
		}
	case 6, 8:
		r = parseHex(hex[0:2])
		g = parseHex(hex[2:4])
		b = parseHex(hex[4:6])
		if len(hex) == 8 {
			a = parseHex(hex[6:8])
		}
	}

	return Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}
}

// parseHex parses hexadecimal digits, stopping at the first invalid one.
func parseHex(s string) uint32 {
	var val uint32
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += uint32(c - '0')
		case c >= 'a' && c <= 'f':
			val += uint32(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += uint32(c - 'A' + 10)
		default:
			return 0
		}
	}
	return val
}

// FromColor converts a standard color.Color to Color.
func FromColor(c color.Color) Color {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Color{
		R: float32(n.R) / 65535,
		G: float32(n.G) / 65535,
		B: float32(n.B) / 65535,
		A: float32(n.A) / 65535,
	}
}

// NRGBA converts to an 8-bit straight-alpha color, clamping each channel.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// Mix performs linear interpolation from c towards other.
// t=0 returns c, t=1 returns other.
func (c Color) Mix(other Color, t float32) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// AddRGB adds v to the color channels, leaving alpha unchanged.
func (c Color) AddRGB(v float32) Color {
	return Color{R: c.R + v, G: c.G + v, B: c.B + v, A: c.A}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// Clamp restricts every channel to [0, 1].
func (c Color) Clamp() Color {
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: clamp01(c.A)}
}

// Array returns the channels as [R, G, B, A].
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// ColorFromArray builds a color from [R, G, B, A].
func ColorFromArray(a [4]float32) Color {
	return Color{R: a[0], G: a[1], B: a[2], A: a[3]}
}

func clamp01(x float32) float32 {
	return math32.Max(0, math32.Min(1, x))
}

func to8(x float32) uint8 {
	return uint8(clamp01(x)*255 + 0.5)
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = RGBA(0, 0, 0, 0)
)

// Over composites c over dst using straight alpha.
func (c Color) Over(dst Color) Color {
	a := c.A + dst.A*(1-c.A)
	if a <= 0 {
		return Transparent
	}
	k := dst.A * (1 - c.A)
	return Color{
		R: (c.R*c.A + dst.R*k) / a,
		G: (c.G*c.A + dst.G*k) / a,
		B: (c.B*c.A + dst.B*k) / a,
		A: a,
	}
}
