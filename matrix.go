package parallax

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Matrix3 is a 2D affine transform stored as its six independent
// coefficients [a, b, c, d, tx, ty]. The last row is implicitly 0, 0, 1.
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix3 [6]float64

// Identity3 is the identity transform.
var Identity3 = Matrix3{1, 0, 0, 1, 0, 0}

// ClipSpace returns the transform that maps pixel coordinates of a surface
// of the given size (origin top-left, Y down) to normalized device
// coordinates (origin center, Y up).
func ClipSpace(width, height float64) Matrix3 {
	left, top := 0.0, 0.0
	right, bottom := width, height

	ral := right + left
	rsl := right - left
	tab := top + bottom
	tsb := top - bottom

	return Matrix3{
		2 / rsl, 0,
		0, 2 / tsb,
		-ral / rsl, -tab / tsb,
	}
}

// Mul returns m * o, the transform that applies o first and then m.
func (m Matrix3) Mul(o Matrix3) Matrix3 {
	return Matrix3{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Invert returns the inverse of m.
// Returns the identity matrix if m is singular (determinant ~ 0).
func (m Matrix3) Invert() Matrix3 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity3
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix3{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms the point p.
func (m Matrix3) Apply(p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// Mat3 returns m as a column-major 3x3 matrix, the layout a shader uniform
// expects.
func (m Matrix3) Mat3() mgl32.Mat3 {
	return mgl32.Mat3{
		float32(m[0]), float32(m[1]), 0,
		float32(m[2]), float32(m[3]), 0,
		float32(m[4]), float32(m[5]), 1,
	}
}

// GeoM converts m into an ebiten.GeoM.
func (m Matrix3) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
