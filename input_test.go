package parallax

import "testing"

func TestPointerShift(t *testing.T) {
	bounds := RectXYWH(0, 0, 200, 100)
	tests := []struct {
		name string
		pos  Vec2
		want Vec2
	}{
		{"top-left", Vec2{0, 0}, Vec2{-1, -1}},
		{"bottom-right", Vec2{200, 100}, Vec2{1, 1}},
		{"center", Vec2{100, 50}, Vec2{0, 0}},
		{"quarter", Vec2{50, 75}, Vec2{-0.5, 0.5}},
		{"outside clamps", Vec2{-50, 500}, Vec2{-1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, "shift", PointerShift(tt.pos, bounds), tt.want)
		})
	}
}

func TestPointerShiftOffsetBounds(t *testing.T) {
	got := PointerShift(Vec2{150, 60}, RectXYWH(100, 50, 100, 20))
	assertVec(t, "shift", got, Vec2{0, 0})
}

func TestPointerShiftEmptyBounds(t *testing.T) {
	assertVec(t, "shift", PointerShift(Vec2{10, 10}, Rect{}), Vec2{})
}

func TestTiltSampleVector(t *testing.T) {
	tests := []struct {
		orientation Orientation
		want        Vec2
	}{
		{OrientationPortrait, Vec2{-3, -2}},
		{OrientationLandscapeCW, Vec2{2, -3}},
		{OrientationLandscapeCCW, Vec2{-2, 3}},
		{OrientationPortraitUpsideDown, Vec2{-3, 2}},
		{Orientation(45), Vec2{}},
	}
	for _, tt := range tests {
		s := TiltSample{Alpha: 99, Beta: 2, Gamma: 3, Orientation: tt.orientation}
		assertVec(t, "vector", s.Vector(), tt.want)
	}
}

func TestTiltTrackerReference(t *testing.T) {
	tr := NewTiltTracker(12)

	// Portrait: vector = (-gamma, -beta) = (0, -10). The reference keeps Y only.
	got := tr.Update(TiltSample{Beta: 10})
	assertVec(t, "first", got, Vec2{})
	ref, ok := tr.Reference()
	if !ok {
		t.Fatal("no reference after first sample")
	}
	assertVec(t, "reference", ref, Vec2{0, -10})

	// vector = (6, -4); minus reference = (6, 6); / 12
	got = tr.Update(TiltSample{Beta: 4, Gamma: -6})
	assertVec(t, "second", got, Vec2{0.5, 0.5})
}

func TestTiltTrackerIgnoresInitialX(t *testing.T) {
	tr := NewTiltTracker(12)
	got := tr.Update(TiltSample{Gamma: 6})
	assertVec(t, "first", got, Vec2{-0.5, 0})
}

func TestTiltTrackerClamps(t *testing.T) {
	tr := NewTiltTracker(12)
	tr.Update(TiltSample{})
	got := tr.Update(TiltSample{Beta: -90, Gamma: 90})
	assertVec(t, "clamped", got, Vec2{-1, 1})
}

func TestTiltTrackerDefaultDegrees(t *testing.T) {
	if got := NewTiltTracker(0).Degrees; got != DefaultTiltDegrees {
		t.Errorf("Degrees = %v, want %v", got, DefaultTiltDegrees)
	}
}

// fakePointer is a PointerSource that reports a settable position.
type fakePointer struct {
	pos    Vec2
	bounds Rect
	ok     bool
	calls  int
}

func (f *fakePointer) Pointer(container Rect) (Vec2, Rect, bool) {
	f.calls++
	b := f.bounds
	if b.Size.IsZero() {
		b = container
	}
	return f.pos, b, f.ok
}

func TestPointerTrackerOnlyForwardsMovement(t *testing.T) {
	src := &fakePointer{pos: Vec2{10, 10}, ok: true}
	pt := pointerTracker{src: src}
	container := RectXYWH(0, 0, 100, 100)

	if _, ok := pt.poll(container); ok {
		t.Error("first poll should only prime the tracker")
	}
	if _, ok := pt.poll(container); ok {
		t.Error("resting pointer should not emit")
	}

	src.pos = Vec2{75, 25}
	cmd, ok := pt.poll(container)
	if !ok {
		t.Fatal("moved pointer should emit")
	}
	assertVec(t, "pos", cmd.Pos, Vec2{75, 25})
	if cmd.Bounds != container {
		t.Errorf("bounds = %v, want %v", cmd.Bounds, container)
	}
}

func TestPointerTrackerUnavailable(t *testing.T) {
	src := &fakePointer{ok: false}
	pt := pointerTracker{src: src}
	for i := 0; i < 3; i++ {
		if _, ok := pt.poll(Rect{}); ok {
			t.Fatal("unavailable source should never emit")
		}
	}
	var none pointerTracker
	if _, ok := none.poll(Rect{}); ok {
		t.Error("tracker without source should never emit")
	}
}
