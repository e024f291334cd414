package tilegen

import "github.com/chewxy/math32"

// Shape combination modes, stored in the root shape's "mode" value.
const (
	modeStandalone = 0
	modeMerge      = 1
)

// Pixelation stages of a shape's "pixelate" value.
const (
	pixelateNone   = 0
	pixelateBefore = 1
	pixelateAfter  = 2
)

// Eval evaluates the graph at the cell position uv in [0, 1) and returns the
// unclamped color. An empty graph evaluates to Transparent.
func (tc *TileContext) Eval(uv Vec2) Color {
	g := tc.Graph
	if g == nil {
		return Transparent
	}
	root := g.Root()
	if root == nil {
		return Transparent
	}

	var first *Node
	switch root.Role() {
	case RoleIsoTile:
		first = g.NextFace(root, tc.View.face())
	default:
		first = g.Follow(root, TerminalRoot, NoHash)
	}
	if first == nil {
		return Transparent
	}

	px := tc.pixel(uv)
	switch first.Role() {
	case RoleShape:
		return tc.shapeChain(first, px, Transparent)
	case RolePattern:
		return tc.pattern(first, px, Transparent)
	default:
		return Transparent
	}
}

// EvalPixel evaluates the center of output pixel (x, y) of the cell.
func (tc *TileContext) EvalPixel(x, y int) Color {
	s := float32(max(1, tc.Size))
	return tc.Eval(V2((float32(x)+0.5)/s, (float32(y)+0.5)/s))
}

// shapeChain walks the shapes linked through TerminalNext starting at first.
// The first shape's mode decides how distances combine; a pattern ends the
// walk and paints over the color accumulated so far.
func (tc *TileContext) shapeChain(first *Node, px *PixelContext, col Color) Color {
	g := tc.Graph
	merge := tc.params(first).Int(keyMode, modeStandalone) == modeMerge
	w := tc.Antialias * px.Width * 2

	n := first
	for steps := 0; n != nil && steps < g.Len(); steps++ {
		if n.Role() == RolePattern {
			return tc.pattern(n, px, col)
		}
		if n.Role() != RoleShape {
			break
		}

		d := tc.shapeDistance(n, px)
		if merge {
			px.Distance = math32.Min(px.Distance, d)
		} else {
			px.Distance = d
			col = tc.paint(n, px, col, fillCoverage(d, w), NoHash)
		}
		n = g.Follow(n, TerminalNext, NoHash)
	}

	if merge {
		col = tc.paint(first, px, col, mergeCoverage(px.Distance, w), NoHash)
	}
	return col
}

// paint applies the decorator chain of n over col with the given mask, or
// mixes towards white when n has no decorator.
func (tc *TileContext) paint(n *Node, px *PixelContext, col Color, mask, hash float32) Color {
	if deco := tc.Graph.Next(n, RoleDecorator, hash); deco != nil {
		return tc.decorate(deco, px, col, mask, hash)
	}
	return col.Mix(White, mask)
}
