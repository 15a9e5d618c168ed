package parallax

import "testing"

func TestFrameStatsCollect(t *testing.T) {
	st, err := NewLayerBuilder().
		Add(LayerSpec{Shift: shiftPtr(1, 1), Size: &Vec2{100, 100}}).
		Add(LayerSpec{Shift: shiftPtr(0, 0)}).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(st, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	e.Resize(Vec2{100, 100})
	mustUpdate(t, e)

	var stats frameStats
	stats.collect(e)
	if stats.layers != 2 || stats.placed != 1 {
		t.Errorf("layers=%d placed=%d, want 2 and 1", stats.layers, stats.placed)
	}
	if stats.quads != 0 || stats.drawCalls != 0 {
		t.Error("software path should report no draw calls")
	}
}
