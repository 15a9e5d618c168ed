package parallax

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

const sceneJSON = `{
	"alignment": "0, 1",
	"elements": [
		{"class": "parallax-layer", "shift": "0.1,0", "image": "sky.png"},
		{"class": "title", "children": [
			{"class": "parallax-layer far", "shift": "0.5,0.2", "size": "800,600"}
		]},
		{"class": "parallax-layer", "shift": "1,0.5", "image": "/abs/hills.png",
		 "children": [
			{"class": "parallax-layer-item", "image": "tree.png",
			 "style": {"left": "10%", "top": "40%", "width": "20%", "height": "50%"}},
			{"class": "decoration"},
			{"class": "parallax-layer-item",
			 "style": {"left": "60%", "top": "50%", "width": "25", "height": "25%"}}
		]}
	]
}`

func TestParseManifestSelectsLayers(t *testing.T) {
	m, err := ParseManifest([]byte(sceneJSON))
	if err != nil {
		t.Fatal(err)
	}
	layers := m.selectLayers(DefaultLayerSelector, DefaultItemSelector)
	if len(layers) != 3 {
		t.Fatalf("layers = %d, want 3", len(layers))
	}
	if layers[1].el.Shift != "0.5,0.2" {
		t.Errorf("nested layer not found in document order: %+v", layers[1].el)
	}
	if n := len(layers[2].items); n != 2 {
		t.Errorf("items = %d, want 2", n)
	}
}

func TestManifestImagePathsOrder(t *testing.T) {
	m, err := ParseManifest([]byte(sceneJSON))
	if err != nil {
		t.Fatal(err)
	}
	got := m.ImagePaths("scenes", DefaultLayerSelector, DefaultItemSelector)
	want := []string{
		filepath.Join("scenes", "sky.png"),
		"",
		"/abs/hills.png",
		filepath.Join("scenes", "tree.png"),
		"",
	}
	if len(got) != len(want) {
		t.Fatalf("paths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestManifestAlignment(t *testing.T) {
	m, _ := ParseManifest([]byte(sceneJSON))
	a, err := m.AlignmentOr(Vec2{-1, -1})
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "alignment", a, Vec2{0, 1})

	a, err = (&Manifest{}).AlignmentOr(Vec2{0.5, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "default", a, Vec2{0.5, 0.5})

	a, _ = (&Manifest{Alignment: "3,-7"}).AlignmentOr(Vec2{})
	assertVec(t, "clamped", a, Vec2{1, -1})

	if _, err := (&Manifest{Alignment: "left"}).AlignmentOr(Vec2{}); err == nil {
		t.Error("expected error for malformed alignment")
	}
	if _, err := (&Manifest{Alignment: "NaN,0"}).AlignmentOr(Vec2{}); err == nil {
		t.Error("expected error for NaN alignment")
	}
}

func TestElementMatches(t *testing.T) {
	el := &ElementSpec{ID: "hero", Class: "parallax-layer  far"}
	tests := []struct {
		sel  string
		want bool
	}{
		{".parallax-layer", true},
		{".far", true},
		{".parallax", false},
		{"#hero", true},
		{"#villain", false},
		{"*", true},
		{"div", false},
	}
	for _, tt := range tests {
		if got := el.Matches(tt.sel); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.sel, got, tt.want)
		}
	}
}

func TestParsePair(t *testing.T) {
	v, err := parsePair(" 0.25 , -1 ")
	if err != nil {
		t.Fatal(err)
	}
	assertVec(t, "pair", v, Vec2{0.25, -1})

	for _, bad := range []string{"", "1", "1,2,3", "a,b", "NaN,0", "0,Inf", "-inf,1"} {
		if _, err := parsePair(bad); err == nil {
			t.Errorf("parsePair(%q) should fail", bad)
		}
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"50%", 0.5},
		{" 12.5% ", 0.125},
		{"25", 0.25},
		{"", 0},
	}
	for _, tt := range tests {
		got, err := parsePercent(tt.in)
		if err != nil {
			t.Fatalf("parsePercent(%q): %v", tt.in, err)
		}
		assertNear(t, tt.in, got, tt.want)
	}
	for _, bad := range []string{"wide", "NaN%", "inf"} {
		if _, err := parsePercent(bad); err == nil {
			t.Errorf("parsePercent(%q) should fail", bad)
		}
	}
}

func TestManifestBuildStackWithoutImages(t *testing.T) {
	m, err := ParseManifest([]byte(`{"elements": [
		{"class": "parallax-layer", "shift": "0.2,0.1", "size": "1600,900"},
		{"class": "parallax-layer", "shift": "1,0.5", "size": "1600,900", "children": [
			{"class": "parallax-layer-item", "style": {"left": "10%", "top": "40%", "width": "20%", "height": "50%"}}
		]}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	st, err := m.BuildStack(context.Background(), ".", DefaultLayerSelector, DefaultItemSelector)
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Layers) != 2 {
		t.Fatalf("layers = %d, want 2", len(st.Layers))
	}
	assertVec(t, "max shift", st.MaxShift, Vec2{1, 0.5})
	assertVec(t, "size", st.Layers[1].Size, Vec2{1600, 900})

	items := st.Items()
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	assertVec(t, "item pos", items[0].Rect.Pos, Vec2{0.1, 0.4})
	assertVec(t, "item size", items[0].Rect.Size, Vec2{0.2, 0.5})

	if _, ok := st.Layers[0].Element.(*ImageElement); !ok {
		t.Errorf("layer element = %T, want *ImageElement", st.Layers[0].Element)
	}
}

func TestManifestBuildStackErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want error
	}{
		{"no layers", `{"elements": [{"class": "other"}]}`, ErrNoLayers},
		{"missing shift", `{"elements": [{"class": "parallax-layer", "size": "1,1"}]}`, ErrMissingShift},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(tt.json))
			if err != nil {
				t.Fatal(err)
			}
			_, err = m.BuildStack(context.Background(), ".", DefaultLayerSelector, DefaultItemSelector)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	m, _ := ParseManifest([]byte(`{"elements": [{"class": "parallax-layer", "shift": "x"}]}`))
	if _, err := m.BuildStack(context.Background(), ".", DefaultLayerSelector, DefaultItemSelector); err == nil {
		t.Error("expected error for malformed shift")
	}
}

func TestParseManifestInvalid(t *testing.T) {
	if _, err := ParseManifest([]byte(`{`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
