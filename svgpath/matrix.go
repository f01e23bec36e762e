package svgpath

import "math"

// Matrix2D represents an affine transformation, with the same
// layout as the SVG matrix(a b c d e f) operation:
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns m * b : when transforming a point,
// b is applied first, then m.
func (m Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: m.A*b.A + m.C*b.B,
		B: m.B*b.A + m.D*b.B,
		C: m.A*b.C + m.C*b.D,
		D: m.B*b.C + m.D*b.D,
		E: m.A*b.E + m.C*b.F + m.E,
		F: m.B*b.E + m.D*b.F + m.F,
	}
}

// Translate post-multiplies m by a translation.
func (m Matrix2D) Translate(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale post-multiplies m by a (possibly non uniform) scaling.
func (m Matrix2D) Scale(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate post-multiplies m by a rotation of theta radians.
func (m Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sincos(theta)
	return m.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// SkewX post-multiplies m by a skew along the x axis (theta in radians).
func (m Matrix2D) SkewX(theta float64) Matrix2D {
	return m.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY post-multiplies m by a skew along the y axis (theta in radians).
func (m Matrix2D) SkewY(theta float64) Matrix2D {
	return m.Mult(Matrix2D{1, math.Tan(theta), 0, 1, 0, 0})
}

// Transform applies the matrix to the point (x, y).
func (m Matrix2D) Transform(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// TransformPoint applies the matrix to p.
func (m Matrix2D) TransformPoint(p Point) Point {
	x, y := m.Transform(p.X, p.Y)
	return Point{X: x, Y: y}
}

// Det returns the determinant of the linear part.
func (m Matrix2D) Det() float64 {
	return m.A*m.D - m.B*m.C
}

// Invert returns the inverse transform. A singular matrix
// is returned unchanged, with ok = false.
func (m Matrix2D) Invert() (inv Matrix2D, ok bool) {
	det := m.Det()
	if det == 0 {
		return m, false
	}
	inv = Matrix2D{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
	}
	inv.E = -(inv.A*m.E + inv.C*m.F)
	inv.F = -(inv.B*m.E + inv.D*m.F)
	return inv, true
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix2D) IsIdentity() bool { return m == Identity }
