package parallax

// DefaultMoveDelay is the default smoothing responsiveness.
const DefaultMoveDelay = 0.03

// Smoother is a discrete exponential smoothing filter. Each Step moves
// Delayed a fixed fraction MoveDelay of the way towards Raw.
type Smoother struct {
	// Raw is the latest normalized input.
	Raw Vec2
	// Delayed is the smoothed value used for rendering.
	Delayed Vec2
	// MoveDelay is in (0, 1); larger values follow Raw more tightly.
	MoveDelay float64
}

// NewSmoother returns a Smoother at rest with the given responsiveness.
// Values outside (0, 1] fall back to DefaultMoveDelay.
func NewSmoother(moveDelay float64) *Smoother {
	if moveDelay <= 0 || moveDelay > 1 {
		moveDelay = DefaultMoveDelay
	}
	return &Smoother{MoveDelay: moveDelay}
}

// SetRaw replaces the raw input.
func (s *Smoother) SetRaw(v Vec2) {
	s.Raw = v
}

// Step advances the filter by one frame and returns the new Delayed value.
func (s *Smoother) Step() Vec2 {
	s.Delayed = s.Delayed.Add(s.Raw.Sub(s.Delayed).Mul(s.MoveDelay))
	return s.Delayed
}

// Reset zeroes both the raw and the smoothed value.
func (s *Smoother) Reset() {
	s.Raw = Vec2{}
	s.Delayed = Vec2{}
}
