package parallax

import "math"

// LayerRect is the per-frame screen-space rect of one layer. It is
// recomputed every frame and never kept beyond the next one.
type LayerRect struct {
	Rect
	Layer *Layer
}

// CoverRect returns the smallest rect with the aspect ratio of content that
// fully covers a viewport of the given size, centered in the viewport.
func CoverRect(content, viewport Vec2) Rect {
	var r Rect
	if viewport.X/viewport.Y > content.X/content.Y {
		r.Size.X = viewport.X
		r.Size.Y = viewport.X / content.X * content.Y
	} else {
		r.Size.Y = viewport.Y
		r.Size.X = viewport.Y / content.Y * content.X
	}
	r.Pos = viewport.Sub(r.Size).Mul(0.5)
	return r
}

// ClampAlignment limits both components of an alignment anchor to [-1, 1].
func ClampAlignment(a Vec2) Vec2 {
	return a.Clamp(-1, 1)
}

// Geometry turns the smoothed input into per-layer rects.
type Geometry struct {
	// Alignment is the viewport anchor in [-1, 1]^2. (-1,-1) pins layers to
	// the top-left edge, (0,0) centers them, (1,1) pins to the bottom-right.
	Alignment Vec2
	// MaxShift is the largest absolute per-axis shift of the stack.
	MaxShift Vec2
}

// NewGeometry returns a Geometry with the alignment clamped to [-1, 1].
func NewGeometry(alignment, maxShift Vec2) Geometry {
	return Geometry{Alignment: ClampAlignment(alignment), MaxShift: maxShift}
}

// isotropicShift folds MaxShift into a single bound applied to both axes.
func (g Geometry) isotropicShift() Vec2 {
	return Splat(math.Max(g.MaxShift.X, g.MaxShift.Y))
}

// LayerRect computes the rect of a single layer, or nil when the layer has
// no resolved size.
func (g Geometry) LayerRect(l *Layer, viewport, delayed Vec2) *LayerRect {
	if !l.HasSize() || viewport.X <= 0 || viewport.Y <= 0 {
		return nil
	}
	maxShift := g.isotropicShift()

	cover := CoverRect(l.Size, viewport)
	rectShift := l.Shift.MulVec(cover.Size)

	// Overscan so displacement never reveals the layer edge.
	r := cover.Scale(maxShift.Mul(2).Add(Splat(1)))

	// Align to border.
	shiftDiff := r.Size.Sub(maxShift).Sub(viewport).Mul(0.5)
	shiftDiff = shiftDiff.Sub(maxShift.MulVec(cover.Size))
	r.Pos = r.Pos.Sub(shiftDiff.MulVec(g.Alignment))

	r.Pos = r.Pos.Sub(rectShift.MulVec(delayed))

	return &LayerRect{Rect: r, Layer: l}
}

// Compute appends one rect per layer to dst[:0] and returns it. Entries for
// layers without a resolved size are nil.
func (g Geometry) Compute(dst []*LayerRect, layers []*Layer, viewport, delayed Vec2) []*LayerRect {
	dst = dst[:0]
	for _, l := range layers {
		dst = append(dst, g.LayerRect(l, viewport, delayed))
	}
	return dst
}
