package tilegen

import "github.com/chewxy/math32"

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec2) Matrix {
	return Matrix{
		A: 1, B: 0, C: v.X,
		D: 0, E: 1, F: v.Y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float32) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians), matching Vec2.Rotate.
func Rotate(angle float32) Matrix {
	cos := math32.Cos(angle)
	sin := math32.Sin(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Multiply multiplies two matrices (m * other): other applies first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Apply transforms a point.
func (m Matrix) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// shapeMatrix maps area-local cell positions to shape space for a shape
// pivoting on pivot and rotated by angle radians. A 1x1 area rotates around
// the cell center and shifts by the pivot's distance from it afterwards.
func shapeMatrix(pivot, size Vec2, angle float32) Matrix {
	rot := Rotate(-angle)
	if size == V2(1, 1) {
		center := V2(0.5, 0.5)
		return Scale(2, 2).
			Multiply(Translate(center.Sub(pivot))).
			Multiply(rot).
			Multiply(Translate(center.Mul(-1)))
	}
	return Scale(2, 2).Multiply(rot).Multiply(Translate(pivot.Mul(-1)))
}
