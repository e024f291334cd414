package noise

import "github.com/chewxy/math32"

// Value returns non-tileable value noise at (x, y) in [-1, 1].
//
// The lattice values come from Hash2 and are blended bilinearly with
// Hermite weights, so the field is C1 continuous across cell borders.
func Value(x, y float32, seed uint32) float32 {
	fx, fy := math32.Floor(x), math32.Floor(y)
	ix, iy := int32(fx), int32(fy)
	u := hermite(x - fx)
	v := hermite(y - fy)

	a := Hash2(ix, iy, seed)
	b := Hash2(ix+1, iy, seed)
	c := Hash2(ix, iy+1, seed)
	d := Hash2(ix+1, iy+1, seed)

	return lerp(lerp(a, b, u), lerp(c, d, u), v)*2 - 1
}
