package parallax

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward. Rects are used both in viewport
// pixel space and in normalized [0,1] space (item placement).
type Rect struct {
	Pos, Size Vec2
}

// RectXYWH builds a Rect from position and size components.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Pos: Vec2{x, y}, Size: Vec2{w, h}}
}

// Center returns Pos + Size/2.
func (r Rect) Center() Vec2 {
	return r.Pos.Add(r.Size.Mul(0.5))
}

// MaxPos returns the bottom-right corner.
func (r Rect) MaxPos() Vec2 {
	return r.Pos.Add(r.Size)
}

// Scale returns r scaled about its own center by the per-axis factor s.
func (r Rect) Scale(s Vec2) Rect {
	size := r.Size.MulVec(s)
	return Rect{Pos: r.Center().Sub(size.Mul(0.5)), Size: size}
}

// Contains reports whether the point p lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Pos.X && p.X <= r.Pos.X+r.Size.X &&
		p.Y >= r.Pos.Y && p.Y <= r.Pos.Y+r.Size.Y
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return r.Contains(o.Pos) && r.Contains(o.MaxPos())
}

// Within maps a normalized rect (fractions of the unit square) into r.
func (r Rect) Within(n Rect) Rect {
	return Rect{Pos: r.Pos.Add(n.Pos.MulVec(r.Size)), Size: n.Size.MulVec(r.Size)}
}
