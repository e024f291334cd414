package tilegen

import "github.com/chewxy/math32"

// All distances in this file are signed: negative inside, positive outside.

// smoothstep is the Hermite step between edge0 and edge1. Equal edges
// degrade to a hard step at edge0.
func smoothstep(edge0, edge1, x float32) float32 {
	if edge1 == edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - edge0) / (edge1 - edge0))
	// Hermite smoothstep: 3t^2 - 2t^3
	return t * t * (3 - 2*t)
}

// sdDisk is the distance from p to a disk of radius r centered at the origin.
func sdDisk(p Vec2, r float32) float32 {
	return p.Length() - r
}

// sdBox is the distance from p to a box centered at the origin with the
// given half extents and corner radius. The radius is clamped to the
// smaller half extent.
func sdBox(p, half Vec2, rounding float32) float32 {
	rounding = math32.Max(0, math32.Min(rounding, math32.Min(half.X, half.Y)))
	// Work in the first quadrant; corners become circles of radius rounding.
	dx := math32.Abs(p.X) - half.X + rounding
	dy := math32.Abs(p.Y) - half.Y + rounding

	ox, oy := math32.Max(dx, 0), math32.Max(dy, 0)
	outside := math32.Sqrt(ox*ox + oy*oy)
	inside := math32.Min(math32.Max(dx, dy), 0)
	return outside + inside - rounding
}

// sdSegment is the unsigned distance from p to the segment ab, along with
// the segment parameter of the nearest point.
func sdSegment(p, a, b Vec2) (float32, float32) {
	pa, ba := p.Sub(a), b.Sub(a)
	l2 := ba.LengthSq()
	if l2 == 0 {
		return pa.Length(), 0
	}
	t := clamp01(pa.Dot(ba) / l2)
	return pa.Sub(ba.Mul(t)).Length(), t
}

// sdGround is the distance from p to the region below the quadratic Bézier
// curve a, b, c, where "below" is the right-hand side of the curve's travel
// direction in y-down coordinates.
//
// The nearest curve parameter solves a cubic in closed form: one real root
// uses Cardano's formula, three real roots the trigonometric form, of which
// only the two outer ones can be nearest. A curve whose control point lies
// on the chord midpoint has no quadratic term and is measured as a segment.
func sdGround(p, a, b, c Vec2) float32 {
	A := b.Sub(a)
	B := a.Sub(b.Mul(2)).Add(c)
	bb := B.Dot(B)
	if bb < 1e-8 {
		d, _ := sdSegment(p, a, c)
		return groundSign(c.Sub(a), p.Sub(a)) * d
	}

	C := A.Mul(2)
	D := a.Sub(p)
	kk := 1 / bb
	kx := kk * A.Dot(B)
	ky := kk * (2*A.Dot(A) + D.Dot(B)) / 3
	kz := kk * D.Dot(A)

	pp := ky - kx*kx
	q := kx*(2*kx*kx-3*ky) + kz
	h := q*q + 4*pp*pp*pp

	at := func(t float32) Vec2 { return D.Add(C.Add(B.Mul(t)).Mul(t)) }

	var t float32
	if h >= 0 {
		h = math32.Sqrt(h)
		x0, x1 := (h-q)/2, (-h-q)/2
		t = clamp01(cbrt(x0) + cbrt(x1) - kx)
	} else {
		z := math32.Sqrt(-pp)
		arg := math32.Max(-1, math32.Min(1, q/(pp*z*2)))
		v := math32.Acos(arg) / 3
		m := math32.Cos(v)
		n := math32.Sin(v) * 1.7320508
		t0 := clamp01((m+m)*z - kx)
		t1 := clamp01((-n-m)*z - kx)
		t = t0
		if at(t1).LengthSq() < at(t0).LengthSq() {
			t = t1
		}
	}

	// at(t) is the vector from p to the nearest curve point.
	near := at(t)
	tangent := A.Add(B.Mul(t))
	if tangent.LengthSq() < 1e-12 {
		tangent = c.Sub(a)
	}
	return groundSign(tangent, near.Mul(-1)) * near.Length()
}

// groundSign is -1 when v lies to the right of the direction tangent
// (below it in y-down coordinates) and +1 otherwise.
func groundSign(tangent, v Vec2) float32 {
	if tangent.Cross(v) > 0 {
		return -1
	}
	return 1
}

func cbrt(x float32) float32 {
	if x < 0 {
		return -math32.Pow(-x, 1.0/3)
	}
	return math32.Pow(x, 1.0/3)
}

// fillCoverage converts a distance to coverage that is full everywhere
// inside the surface and fades out over 2w outside it.
func fillCoverage(d, w float32) float32 {
	return 1 - smoothstep(0, 2*w, d)
}

// mergeCoverage converts a distance to coverage that reaches zero exactly on
// the surface, so unions of touching shapes show no seam.
func mergeCoverage(d, w float32) float32 {
	return smoothstep(0, 2*w, -d)
}
