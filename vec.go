package parallax

import "math"

// Vec2 is a 2D vector used for positions, sizes, shifts, and directions
// throughout the API. All methods return a new value; the receiver is never
// modified.
type Vec2 struct {
	X, Y float64
}

// Splat returns a vector with both components set to v.
func Splat(v float64) Vec2 {
	return Vec2{v, v}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// MulVec returns the component-wise product of v and o.
func (v Vec2) MulVec(o Vec2) Vec2 {
	return Vec2{v.X * o.X, v.Y * o.Y}
}

// Div returns v divided by s.
func (v Vec2) Div(s float64) Vec2 {
	return Vec2{v.X / s, v.Y / s}
}

// DivVec returns the component-wise quotient of v and o.
func (v Vec2) DivVec(o Vec2) Vec2 {
	return Vec2{v.X / o.X, v.Y / o.Y}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Abs returns the component-wise absolute value.
func (v Vec2) Abs() Vec2 {
	return Vec2{math.Abs(v.X), math.Abs(v.Y)}
}

// Max returns the component-wise maximum of v and o.
func (v Vec2) Max(o Vec2) Vec2 {
	return Vec2{math.Max(v.X, o.X), math.Max(v.Y, o.Y)}
}

// Clamp limits each component to [lo, hi].
func (v Vec2) Clamp(lo, hi float64) Vec2 {
	return Vec2{clamp(v.X, lo, hi), clamp(v.Y, lo, hi)}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
