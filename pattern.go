package tilegen

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/tilegen/internal/noise"
)

// wobbleShift decorrelates the second wobble sample from the first.
var wobbleShift = V2(5.2, 1.3)

// Worley output channels, stored in "mode".
const (
	worleyF1   = 0
	worleyF2   = 1
	worleyEdge = 2
)

// PatternResult is the output of a pattern generator at one position.
type PatternResult struct {
	// Mask is the cell interior mask in [0, 1].
	Mask float32

	// Hash is the per-cell random value in [0, 1) used to select among
	// several decorators.
	Hash float32

	// Missing reports that the cell was randomly removed.
	Missing bool
}

// pattern evaluates pattern n over col. A missing cell is transparent;
// otherwise the background color is laid over col and the pattern's
// decorator, selected by the cell hash, paints the mask.
func (tc *TileContext) pattern(n *Node, px *PixelContext, col Color) Color {
	p := tc.params(n)
	pos := px.Global
	if mod := tc.Graph.Next(n, RoleModifier, NoHash); mod != nil {
		if wobble := p.F(keyWobble, 0); wobble != 0 {
			dx := tc.modifier(mod, pos)
			dy := tc.modifier(mod, pos.Add(wobbleShift))
			pos = pos.Add(V2(dx, dy).Mul(wobble))
		}
	}

	res := tc.PatternAt(n, pos)
	if res.Missing {
		return Transparent
	}
	bg := p.Color(keyColor, defaultPatternBackground)
	base := col.Mix(bg.WithAlpha(1), bg.A)
	return tc.paint(n, px, base, res.Mask, res.Hash)
}

// PatternAt evaluates pattern node n at the layer position pos, in cells.
// It returns a zero result for nodes that are not patterns.
func (tc *TileContext) PatternAt(n *Node, pos Vec2) PatternResult {
	p := tc.params(n)
	seed := uint32(p.Int(keySeed, 0))
	w := tc.Antialias / float32(max(1, tc.Size))

	var (
		res    PatternResult
		cx, cy int32
	)
	switch n.Kind {
	case KindPatternTilesAndBricks:
		b := brickParams(p, defaultPatternBrickSize)
		res.Mask, cx, cy = brick(pos, b, w*b.rows)

	case KindPatternVoronoi:
		size := math32.Max(p.F(keySize, defaultCellSize), 1e-3)
		v := noise.Voronoi(pos.X*size, pos.Y*size, p.F(keySmoothness, defaultSmoothness), seed)
		dist := v.Raw
		if p.Bool(keyRounded, true) {
			dist = v.Smooth
		}
		th := p.F(keyThickness, defaultThickness)
		res.Mask = smoothstep(th, th+w*size, dist)
		cx, cy = v.CellX, v.CellY

	case KindPatternWorley:
		size := math32.Max(p.F(keySize, defaultCellSize), 1e-3)
		r := noise.Worley(pos.X*size, pos.Y*size, p.F(keyDepth, 0), seed)
		switch p.Int(keyMode, worleyF1) {
		case worleyF2:
			res.Mask = clamp01(r.F2)
		case worleyEdge:
			res.Mask = clamp01(r.Edge())
		default:
			res.Mask = clamp01(r.F1)
		}
		cx, cy = r.CellX, r.CellY

	case KindPatternTrabeculum:
		size := math32.Max(p.F(keySize, defaultCellSize), 1e-3)
		r := noise.Trabeculum(pos.X*size, pos.Y*size, seed)
		th := math32.Max(p.F(keyThickness, defaultVeinThickness), 1e-3)
		res.Mask = smoothstep(0, th*th, (r.N2-r.N1)*(r.N3-r.N1))
		cx, cy = r.CellX, r.CellY

	default:
		return PatternResult{}
	}

	res.Hash = noise.Hash2(cx, cy, seed)
	res.Missing = noise.Hash2(cx, cy, seed+1) < p.F(keyMissing, 0)
	return res
}
