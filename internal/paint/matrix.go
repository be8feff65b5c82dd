package paint

import "math"

// Matrix is a 2D affine transform in the same component order as the
// HTML canvas setTransform(a, b, c, d, e, f):
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Mul returns m × n: the transform that applies n first, then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translate returns m with a translation applied in user space.
func (m Matrix) Translate(tx, ty float64) Matrix {
	return m.Mul(Matrix{A: 1, D: 1, E: tx, F: ty})
}

// Scale returns m with a scale applied in user space.
func (m Matrix) Scale(sx, sy float64) Matrix {
	return m.Mul(Matrix{A: sx, D: sy})
}

// Rotate returns m with a clockwise (y-down) rotation of rad radians.
func (m Matrix) Rotate(rad float64) Matrix {
	sin, cos := math.Sincos(rad)
	return m.Mul(Matrix{A: cos, B: sin, C: -sin, D: cos})
}

// Apply maps a user-space point to device space.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Det returns the determinant of the linear part.
func (m Matrix) Det() float64 {
	return m.A*m.D - m.B*m.C
}

// Invert returns the inverse transform. ok is false when m is singular.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m.Det()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Matrix{}, false
	}
	return Matrix{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
		E: (m.C*m.F - m.D*m.E) / det,
		F: (m.B*m.E - m.A*m.F) / det,
	}, true
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// LineScale is the factor by which m stretches stroke widths, taken as the
// geometric mean of the axis scales.
func (m Matrix) LineScale() float64 {
	return math.Sqrt(math.Abs(m.Det()))
}
