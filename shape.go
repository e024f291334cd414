package tilegen

import "github.com/chewxy/math32"

const degToRad = math32.Pi / 180

// shapeDistance returns the signed distance of the pixel to shape n in shape
// space, where one cell spans [-1, 1]. A connected modifier is subtracted,
// so positive modifier values grow the shape.
func (tc *TileContext) shapeDistance(n *Node, px *PixelContext) float32 {
	p := tc.params(n)
	q := tc.shapePoint(p, px.UV)

	var d float32
	switch n.Kind {
	case KindShapeBox:
		half := V2(p.F(keyWidth, 1)/2, p.F(keyHeight, 1)/2)
		d = sdBox(q, half, p.F(keyRounding, 0))
	case KindShapeDisk:
		d = sdDisk(q, p.F(keyRadius, 1))
	case KindShapeGround:
		a := tc.areaPoint(p, p.Vec2(keyP0, defaultGroundP0))
		b := tc.areaPoint(p, p.Vec2(keyP1, defaultGroundP1))
		c := tc.areaPoint(p, p.Vec2(keyP2, defaultGroundP2))
		d = sdGround(q, a, b, c)
	default:
		return math32.Inf(1)
	}

	if mod := tc.Graph.Next(n, RoleModifier, NoHash); mod != nil {
		d -= tc.modifier(mod, px.Global)
	}
	return d
}

// shapeSize is the area size in cells as a vector.
func (tc *TileContext) shapeSize() Vec2 {
	return V2(float32(max(1, tc.AreaSize.X)), float32(max(1, tc.AreaSize.Y)))
}

// shapePoint maps a cell position to shape space: relative to the pivot,
// rotated by the shape's rotation and doubled, with optional pixelation
// before or after the transform.
//
// The pivot is the "offset" control point scaled to the area. A 1x1 area
// rotates around the cell center and applies the offset afterwards, so the
// offset moves the shape without changing its rotation center.
func (tc *TileContext) shapePoint(p params, uv Vec2) Vec2 {
	stage := p.Int(keyPixelate, pixelateNone)
	steps := tc.steps()
	if stage == pixelateBefore {
		uv = quantize(uv, steps)
	}

	size := tc.shapeSize()
	local := V2(float32(tc.Offset.X), float32(tc.Offset.Y)).Add(uv)
	pivot := p.Vec2(keyOffset, defaultOffset).MulVec(size)
	q := shapeMatrix(pivot, size, p.F(keyRotation, 0)*degToRad).Apply(local)

	if stage == pixelateAfter {
		// Snap in shape space, where a cell is two units wide.
		q = quantize(q, steps/2)
	}
	return q
}

// areaPoint maps an area-relative control point to shape space, relative
// to the same pivot as shapePoint but without rotation.
func (tc *TileContext) areaPoint(p params, pt Vec2) Vec2 {
	size := tc.shapeSize()
	pivot := p.Vec2(keyOffset, defaultOffset).MulVec(size)
	return pt.MulVec(size).Sub(pivot).Mul(2)
}
