package parallax

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultTiltDegrees is the tilt, in degrees, that swings the shift fully
// to one side.
const DefaultTiltDegrees = 12.0

// PointerShift converts a pointer position into a normalized shift in
// [-1, 1]^2 relative to bounds. Positions outside bounds are clamped to it.
func PointerShift(pos Vec2, bounds Rect) Vec2 {
	if bounds.Size.X <= 0 || bounds.Size.Y <= 0 {
		return Vec2{}
	}
	off := pos.Sub(bounds.Pos)
	off.X = clamp(off.X, 0, bounds.Size.X)
	off.Y = clamp(off.Y, 0, bounds.Size.Y)
	rel := off.DivVec(bounds.Size)
	return rel.Sub(Splat(0.5)).Mul(2)
}

// --- Device tilt ---

// Orientation is the screen rotation in degrees as reported by the host.
type Orientation int

const (
	OrientationPortrait           Orientation = 0
	OrientationLandscapeCW        Orientation = -90
	OrientationLandscapeCCW       Orientation = 90
	OrientationPortraitUpsideDown Orientation = 180
)

// TiltSample is one device orientation reading in degrees.
type TiltSample struct {
	Alpha float64 // rotation about z
	Beta  float64 // front-back tilt (x)
	Gamma float64 // left-right tilt (y)

	Orientation Orientation
}

// Vector maps the sample into screen-aligned axes for its orientation.
// Unknown orientations map to zero.
func (s TiltSample) Vector() Vec2 {
	x, y := s.Beta, s.Gamma
	switch s.Orientation {
	case OrientationPortrait:
		return Vec2{-y, -x}
	case OrientationLandscapeCW:
		return Vec2{x, -y}
	case OrientationLandscapeCCW:
		return Vec2{-x, y}
	case OrientationPortraitUpsideDown:
		return Vec2{-y, x}
	}
	return Vec2{}
}

// TiltTracker turns tilt samples into a shift. The first sample becomes the
// zero reference, with its X component dropped so only the initial
// front-back attitude is absorbed.
type TiltTracker struct {
	// Degrees is the tilt that maps to a full swing of 1.
	Degrees float64

	ref    Vec2
	hasRef bool
}

// NewTiltTracker returns a tracker with the given full-swing angle.
func NewTiltTracker(degrees float64) *TiltTracker {
	if degrees <= 0 {
		degrees = DefaultTiltDegrees
	}
	return &TiltTracker{Degrees: degrees}
}

// Update consumes one sample and returns the resulting shift in [-1, 1]^2.
func (t *TiltTracker) Update(s TiltSample) Vec2 {
	v := s.Vector()
	if !t.hasRef {
		t.ref = Vec2{0, v.Y}
		t.hasRef = true
	}
	return v.Sub(t.ref).Div(t.Degrees).Clamp(-1, 1)
}

// Reference returns the captured zero reference and whether one exists.
func (t *TiltTracker) Reference() (Vec2, bool) {
	return t.ref, t.hasRef
}

// --- Pointer sources ---

// PointerSource reports where the pointer is. Sources are polled once per
// tick. container is the engine's viewport rect; sources that track a
// different surface return their own bounds.
type PointerSource interface {
	Pointer(container Rect) (pos Vec2, bounds Rect, ok bool)
}

// EbitenPointer reads the mouse cursor, or the first active touch when the
// screen is being touched.
type EbitenPointer struct {
	touchIDs []ebiten.TouchID
	active   ebiten.TouchID
	touching bool
}

// Pointer implements PointerSource.
func (p *EbitenPointer) Pointer(container Rect) (Vec2, Rect, bool) {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 {
		// Stay on the same finger while it is down.
		if !p.touching || !slices.Contains(p.touchIDs, p.active) {
			p.active = p.touchIDs[0]
			p.touching = true
		}
		tx, ty := ebiten.TouchPosition(p.active)
		return Vec2{float64(tx), float64(ty)}, container, true
	}
	p.touching = false

	mx, my := ebiten.CursorPosition()
	return Vec2{float64(mx), float64(my)}, container, true
}

// pointerTracker forwards pointer movement only, so a resting pointer does
// not override a shift set programmatically.
type pointerTracker struct {
	src    PointerSource
	last   Vec2
	primed bool
}

// poll returns a command when the pointer moved since the last poll.
func (pt *pointerTracker) poll(container Rect) (PointerCommand, bool) {
	if pt.src == nil {
		return PointerCommand{}, false
	}
	pos, bounds, ok := pt.src.Pointer(container)
	if !ok {
		return PointerCommand{}, false
	}
	if !pt.primed {
		pt.primed = true
		pt.last = pos
		return PointerCommand{}, false
	}
	if pos == pt.last {
		return PointerCommand{}, false
	}
	pt.last = pos
	return PointerCommand{Pos: pos, Bounds: bounds}, true
}
