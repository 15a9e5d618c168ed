package parallax

import (
	"fmt"
	"testing"
)

func TestCoverRect(t *testing.T) {
	tests := []struct {
		name     string
		content  Vec2
		viewport Vec2
		want     Rect
	}{
		{"same aspect", Vec2{800, 600}, Vec2{400, 300}, RectXYWH(0, 0, 400, 300)},
		{"wider content", Vec2{1000, 500}, Vec2{400, 300}, RectXYWH(-100, 0, 600, 300)},
		{"taller content", Vec2{300, 600}, Vec2{400, 300}, RectXYWH(0, -250, 400, 800)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoverRect(tt.content, tt.viewport)
			assertVec(t, "pos", got.Pos, tt.want.Pos)
			assertVec(t, "size", got.Size, tt.want.Size)
			if !got.ContainsRect(Rect{Size: tt.viewport}) {
				t.Errorf("cover rect %v does not cover viewport %v", got, tt.viewport)
			}
			assertNear(t, "aspect", got.Size.X/got.Size.Y, tt.content.X/tt.content.Y)
		})
	}
}

func TestLayerRectGolden(t *testing.T) {
	l := &Layer{Size: Vec2{800, 600}, Shift: Vec2{1, 0.5}}
	vp := Vec2{400, 300}
	maxShift := Vec2{1, 0.5}

	tests := []struct {
		name      string
		alignment Vec2
		delayed   Vec2
		wantPos   Vec2
	}{
		{"centered at rest", Vec2{}, Vec2{}, Vec2{-400, -300}},
		{"centered shifted", Vec2{}, Vec2{0.5, 0.5}, Vec2{-600, -375}},
		{"bottom-right", Vec2{1, 1}, Vec2{}, Vec2{-399.5, -299.5}},
		{"top-left", Vec2{-1, -1}, Vec2{}, Vec2{-400.5, -300.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGeometry(tt.alignment, maxShift)
			r := g.LayerRect(l, vp, tt.delayed)
			if r == nil {
				t.Fatal("rect is nil")
			}
			assertVec(t, "size", r.Size, Vec2{1200, 900})
			assertVec(t, "pos", r.Pos, tt.wantPos)
			if r.Layer != l {
				t.Error("rect does not reference its layer")
			}
		})
	}
}

// A 2:1 layer in a 4:3 viewport fills by height; filling by width would
// leave bands above and below.
func TestLayerRectEndToEnd(t *testing.T) {
	l := &Layer{Size: Vec2{800, 400}, Shift: Vec2{0.5, 0}}
	vp := Vec2{400, 300}

	cover := CoverRect(l.Size, vp)
	assertVec(t, "cover pos", cover.Pos, Vec2{-100, 0})
	assertVec(t, "cover size", cover.Size, Vec2{600, 300})

	g := NewGeometry(Vec2{}, Vec2{0.5, 0.5})
	r := g.LayerRect(l, vp, Vec2{1, 0})
	// overscan x2 about the center, then 0.5*600*1 to the left
	assertVec(t, "size", r.Size, Vec2{1200, 600})
	assertVec(t, "pos", r.Pos, Vec2{-700, -150})
}

func TestLayerRectCoversViewport(t *testing.T) {
	layers := []*Layer{
		{Size: Vec2{1600, 900}, Shift: Vec2{0.1, 0.05}},
		{Size: Vec2{1600, 900}, Shift: Vec2{0.6, 0.3}},
		{Size: Vec2{1000, 1000}, Shift: Vec2{-1, 1}},
	}
	g := NewGeometry(Vec2{}, Vec2{1, 1})
	viewports := []Vec2{{1280, 720}, {400, 800}, {1000, 1000}}
	shifts := []float64{-1, -0.5, 0, 0.5, 1}

	for _, vp := range viewports {
		view := Rect{Size: vp}
		for _, sx := range shifts {
			for _, sy := range shifts {
				for i, l := range layers {
					name := fmt.Sprintf("vp=%v shift=(%v,%v) layer=%d", vp, sx, sy, i)
					r := g.LayerRect(l, vp, Vec2{sx, sy})
					if !r.ContainsRect(view) {
						t.Errorf("%s: rect %v leaves viewport uncovered", name, r.Rect)
					}
				}
			}
		}
	}
}

func TestLayerRectUnsized(t *testing.T) {
	g := NewGeometry(Vec2{}, Vec2{1, 1})
	if r := g.LayerRect(&Layer{Shift: Vec2{1, 1}}, Vec2{400, 300}, Vec2{}); r != nil {
		t.Errorf("unsized layer rect = %v, want nil", r)
	}
	if r := g.LayerRect(&Layer{Size: Vec2{10, 10}}, Vec2{0, 300}, Vec2{}); r != nil {
		t.Errorf("empty viewport rect = %v, want nil", r)
	}
}

func TestGeometryIsotropicShift(t *testing.T) {
	g := NewGeometry(Vec2{}, Vec2{0.2, 0.7})
	assertVec(t, "iso", g.isotropicShift(), Vec2{0.7, 0.7})
}

func TestGeometryAlignmentClamped(t *testing.T) {
	g := NewGeometry(Vec2{-5, 2}, Vec2{})
	assertVec(t, "alignment", g.Alignment, Vec2{-1, 1})
}

func TestGeometryComputeKeepsOrderAndNils(t *testing.T) {
	layers := []*Layer{
		{Size: Vec2{100, 100}, Shift: Vec2{0.5, 0.5}},
		{Shift: Vec2{1, 1}},
		{Size: Vec2{200, 100}, Shift: Vec2{1, 1}},
	}
	g := NewGeometry(Vec2{}, Vec2{1, 1})
	dst := make([]*LayerRect, 0, 8)
	rects := g.Compute(dst, layers, Vec2{100, 100}, Vec2{})
	if len(rects) != 3 {
		t.Fatalf("len = %d, want 3", len(rects))
	}
	if rects[0] == nil || rects[0].Layer != layers[0] {
		t.Error("rect 0 mismatch")
	}
	if rects[1] != nil {
		t.Error("rect 1 should be nil")
	}
	if rects[2] == nil || rects[2].Layer != layers[2] {
		t.Error("rect 2 mismatch")
	}

	again := g.Compute(rects, layers[:1], Vec2{100, 100}, Vec2{})
	if len(again) != 1 || &again[0] != &rects[0] {
		t.Error("Compute should reuse dst")
	}
}

func BenchmarkGeometryCompute(b *testing.B) {
	layers := make([]*Layer, 8)
	for i := range layers {
		layers[i] = &Layer{Size: Vec2{1920, 1080}, Shift: Vec2{float64(i) / 8, float64(i) / 16}}
	}
	g := NewGeometry(Vec2{0, 1}, Vec2{1, 0.5})
	var rects []*LayerRect
	b.ReportAllocs()
	for b.Loop() {
		rects = g.Compute(rects, layers, Vec2{1280, 720}, Vec2{0.3, -0.2})
	}
}
