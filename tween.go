package parallax

import "github.com/tanema/gween/ease"

// DefaultTweenSpeed is how far the item tween advances per frame.
const DefaultTweenSpeed = 0.03

// ItemTween drives the fade and scale of layer items. It is a single scalar
// in [0, 1] moved by a signed velocity once per drawn frame, so its output
// depends on the number of frames drawn and never on wall-clock time.
//
// A new tween starts hidden (value 0, moving out).
type ItemTween struct {
	value    float64
	velocity float64
}

// NewItemTween returns a hidden tween that moves speed per frame.
func NewItemTween(speed float64) *ItemTween {
	if speed <= 0 {
		speed = DefaultTweenSpeed
	}
	return &ItemTween{velocity: -speed}
}

// Fade points the tween in (true) or out (false). The speed is unchanged.
func (t *ItemTween) Fade(in bool) {
	if in {
		t.velocity = abs(t.velocity)
	} else {
		t.velocity = -abs(t.velocity)
	}
}

// FadingIn reports whether the velocity is positive.
func (t *ItemTween) FadingIn() bool {
	return t.velocity > 0
}

// Advance moves the tween one frame and clamps it to [0, 1].
func (t *ItemTween) Advance() {
	t.value = clamp(t.value+t.velocity, 0, 1)
}

// Value returns the raw progress in [0, 1].
func (t *ItemTween) Value() float64 {
	return t.value
}

// Eased returns the progress through an ease-out-back curve. It overshoots
// 1 slightly before settling. The end points are exact.
func (t *ItemTween) Eased() float64 {
	switch {
	case t.value <= 0:
		return 0
	case t.value >= 1:
		return 1
	}
	return float64(ease.OutBack(float32(t.value), 0, 1, 1))
}

// Scale returns the item scale factor, from 0.5 (hidden) to 1 (shown).
func (t *ItemTween) Scale() float64 {
	return t.Eased()*0.5 + 0.5
}

// Alpha returns the item opacity in [0, 1].
func (t *ItemTween) Alpha() float64 {
	return clamp(t.Eased(), 0, 1)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
