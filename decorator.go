package tilegen

import "github.com/chewxy/math32"

// Decorator modifier modes, stored in "modifier_mode".
const (
	modifierAdd = 0
	modifierMix = 1
)

// decorate runs the decorator chain starting at n over prev. Each enabled
// decorator mixes its color in by mask times its alpha; a disabled one
// passes the color through and the chain continues.
func (tc *TileContext) decorate(n *Node, px *PixelContext, prev Color, mask, hash float32) Color {
	g := tc.Graph
	for steps := 0; n != nil && steps < g.Len(); steps++ {
		p := tc.params(n)
		if p.Bool(keyEnabled, true) {
			prev = tc.decorateOne(n, p, px, prev, mask, hash)
		}
		n = g.Next(n, RoleDecorator, hash)
	}
	return prev
}

func (tc *TileContext) decorateOne(n *Node, p params, px *PixelContext, prev Color, mask, hash float32) Color {
	c := p.Color(keyColor, White)
	if mod := tc.Graph.Next(n, RoleModifier, hash); mod != nil {
		m := tc.modifier(mod, px.Global)
		switch p.Int(keyModifierMode, modifierAdd) {
		case modifierMix:
			c.A *= clamp01((m + 1) / 2)
		default:
			c = c.AddRGB(m)
		}
	}

	k := mask * c.A
	if n.Kind == KindDecoratorTilesAndBricks {
		b := brickParams(p, defaultDecoratorBrickSize)
		bm, _, _ := brick(px.Local, b, px.Width*b.rows)
		k *= bm
	}
	return prev.Mix(c.WithAlpha(1), k)
}

// brickLayout holds the parameters of a running-bond brick grid.
type brickLayout struct {
	rows     float32 // brick rows per cell
	ratio    float32 // brick width over height
	bevel    float32
	gap      float32
	rounding float32
	offset   bool // shift odd rows by half a brick
}

func brickParams(p params, rows float32) brickLayout {
	return brickLayout{
		rows:     math32.Max(p.F(keySize, rows), 1e-3),
		ratio:    math32.Max(p.F(keyRatio, defaultRatio), 1e-3),
		bevel:    math32.Max(p.F(keyBevel, defaultBevel), 0),
		gap:      math32.Max(p.F(keyGap, defaultGap), 0),
		rounding: math32.Max(p.F(keyRounding, defaultBrickRounding), 0),
		offset:   p.Bool(keyBrickOffset, true),
	}
}

// brick returns the brick mask at pos (in cells) and the brick's grid
// coordinates. The mask is 1 inside a brick, falls off over the bevel and
// is 0 in the mortar gap. aa is the pixel footprint in row units.
//
// Distances are measured in row-height units so the bevel is isotropic.
func brick(pos Vec2, b brickLayout, aa float32) (float32, int32, int32) {
	q := V2(pos.X*b.rows/b.ratio, pos.Y*b.rows)
	row := math32.Floor(q.Y)
	if b.offset && int32(row)&1 == 1 {
		q.X += 0.5
	}
	cell := q.Floor()
	f := q.Sub(cell)

	local := V2((f.X-0.5)*b.ratio, f.Y-0.5)
	half := V2(0.5*b.ratio-b.gap/2, 0.5-b.gap/2).Max(0)
	dist := sdBox(local, half, b.rounding)
	edge := math32.Max(b.bevel, aa)
	return 1 - smoothstep(-edge, 0, dist), int32(cell.X), int32(cell.Y)
}
