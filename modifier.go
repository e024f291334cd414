package tilegen

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/tilegen/internal/noise"
)

// modifierScale returns the default uniform scale of a modifier kind.
func modifierScale(k Kind) float32 {
	if k == KindModifierNoise {
		return defaultNoiseScale
	}
	return 1
}

// modifier evaluates modifier n at the layer position pos (in cells). The
// raw noise lies in [-1, 1] and is multiplied by the node's strength.
func (tc *TileContext) modifier(n *Node, pos Vec2) float32 {
	return tc.modifierRaw(n, pos) * tc.params(n).F(keyStrength, defaultStrength)
}

// modifierRaw evaluates modifier n without the strength multiplier.
func (tc *TileContext) modifierRaw(n *Node, pos Vec2) float32 {
	p := tc.params(n)
	scale := p.F(keyScale, modifierScale(n.Kind))
	domain := p.Vec2(keyDomain, V2(1, 1))
	seed := p.Int(keySeed, 0)

	// Rotation applies before tiling, around the cell origin.
	q := pos.Rotate(-p.F(keyRotation, 0) * degToRad)
	if p.Bool(keyPixelate, false) {
		q = quantize(q, tc.steps())
	}

	switch n.Kind {
	case KindModifierNoise:
		return noise.Value(q.X*scale*domain.X, q.Y*scale*domain.Y, uint32(seed))
	case KindModifierTiledNoise:
		tiles := float32(max(1, p.Int(keyTiles, defaultTiles)))
		px := noise.ClampPeriod(int(math32.Round(tiles * scale * domain.X)))
		py := noise.ClampPeriod(int(math32.Round(tiles * scale * domain.Y)))
		kind := noise.Kind(min(max(p.Int(keyNoise, 0), 0), int(noise.KindPerlin)))
		return tc.table(int64(seed)).Noise(kind, q.X*float32(px), q.Y*float32(py), px, py)
	default:
		return 0
	}
}
