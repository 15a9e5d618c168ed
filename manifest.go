package parallax

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Manifest describes a parallax container: its alignment and a tree of
// elements, some of which are layers and layer items. Layers and items are
// picked out by class selector, so unrelated elements may sit in the tree.
//
//	{
//	  "alignment": "0,1",
//	  "elements": [
//	    {"class": "parallax-layer", "shift": "0.2,0.1", "image": "sky.png"},
//	    {"class": "parallax-layer", "shift": "1,0.5", "image": "hills.png",
//	     "children": [
//	       {"class": "parallax-layer-item", "image": "tree.png",
//	        "style": {"left": "10%", "top": "40%", "width": "20%", "height": "50%"}}
//	     ]}
//	  ]
//	}
type Manifest struct {
	// Alignment overrides Options.Alignment when set, as "x,y".
	Alignment string         `json:"alignment,omitempty"`
	Elements  []*ElementSpec `json:"elements"`
}

// ElementSpec is one element of a manifest tree.
type ElementSpec struct {
	ID    string `json:"id,omitempty"`
	Class string `json:"class,omitempty"`
	// Shift is the layer displacement factor, "x,y".
	Shift string `json:"shift,omitempty"`
	// Size is the explicit layer size, "w,h".
	Size  string `json:"size,omitempty"`
	Image string `json:"image,omitempty"`
	// Style holds left/top/width/height percentages for items.
	Style    map[string]string `json:"style,omitempty"`
	Children []*ElementSpec    `json:"children,omitempty"`
}

// HasClass reports whether the element's class list contains name.
func (el *ElementSpec) HasClass(name string) bool {
	for _, c := range strings.Fields(el.Class) {
		if c == name {
			return true
		}
	}
	return false
}

// Matches reports whether the element matches a simple selector: ".class",
// "#id" or "*".
func (el *ElementSpec) Matches(selector string) bool {
	switch {
	case selector == "*":
		return true
	case strings.HasPrefix(selector, "."):
		return el.HasClass(selector[1:])
	case strings.HasPrefix(selector, "#"):
		return el.ID != "" && el.ID == selector[1:]
	}
	return false
}

// querySelectorAll appends every descendant of roots matching selector, in
// document order.
func querySelectorAll(dst []*ElementSpec, roots []*ElementSpec, selector string) []*ElementSpec {
	for _, el := range roots {
		if el == nil {
			continue
		}
		if el.Matches(selector) {
			dst = append(dst, el)
		}
		dst = querySelectorAll(dst, el.Children, selector)
	}
	return dst
}

// ParseManifest decodes a JSON manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// LoadManifest reads and decodes a JSON manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// parsePair parses "x,y". Surrounding spaces are ignored.
func parsePair(s string) (Vec2, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Vec2{}, fmt.Errorf("want \"x,y\", got %q", s)
	}
	x, err := parseFinite(parts[0])
	if err != nil {
		return Vec2{}, fmt.Errorf("pair %q: %w", s, err)
	}
	y, err := parseFinite(parts[1])
	if err != nil {
		return Vec2{}, fmt.Errorf("pair %q: %w", s, err)
	}
	return Vec2{x, y}, nil
}

// parseFinite parses a float, rejecting NaN and infinities.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

// parsePercent parses "12.5%" (or a bare "12.5") into a fraction, 0.125.
// An empty string is zero.
func parsePercent(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, nil
	}
	v, err := parseFinite(s)
	if err != nil {
		return 0, fmt.Errorf("percentage %q: %w", s, err)
	}
	return v / 100, nil
}

// itemRect reads an item's normalized rect from its style.
func itemRect(el *ElementSpec) (Rect, error) {
	var v [4]float64
	for i, key := range [...]string{"left", "top", "width", "height"} {
		f, err := parsePercent(el.Style[key])
		if err != nil {
			return Rect{}, fmt.Errorf("style %s: %w", key, err)
		}
		v[i] = f
	}
	return RectXYWH(v[0], v[1], v[2], v[3]), nil
}

// AlignmentOr returns the manifest alignment, or def when none is set.
func (m *Manifest) AlignmentOr(def Vec2) (Vec2, error) {
	if strings.TrimSpace(m.Alignment) == "" {
		return def, nil
	}
	a, err := parsePair(m.Alignment)
	if err != nil {
		return Vec2{}, fmt.Errorf("alignment: %w", err)
	}
	return ClampAlignment(a), nil
}

// manifestLayer is a layer element with its matched items.
type manifestLayer struct {
	el    *ElementSpec
	items []*ElementSpec
}

func (m *Manifest) selectLayers(layerSel, itemSel string) []manifestLayer {
	els := querySelectorAll(nil, m.Elements, layerSel)
	out := make([]manifestLayer, len(els))
	for i, el := range els {
		out[i] = manifestLayer{el: el, items: querySelectorAll(nil, el.Children, itemSel)}
	}
	return out
}

// ImagePaths lists the images to load: every layer image first, then every
// item image in layer order. Relative paths are resolved against baseDir.
// Elements without an image yield an empty path.
func (m *Manifest) ImagePaths(baseDir, layerSel, itemSel string) []string {
	layers := m.selectLayers(layerSel, itemSel)
	paths := make([]string, 0, len(layers))
	for _, l := range layers {
		paths = append(paths, resolvePath(baseDir, l.el.Image))
	}
	for _, l := range layers {
		for _, it := range l.items {
			paths = append(paths, resolvePath(baseDir, it.Image))
		}
	}
	return paths
}

func resolvePath(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// BuildStack loads every image the manifest references and builds the
// layer stack. Each layer and item is bound to a new ImageElement; item
// elements are nested in their layer's element.
func (m *Manifest) BuildStack(ctx context.Context, baseDir, layerSel, itemSel string) (*Stack, error) {
	layers := m.selectLayers(layerSel, itemSel)
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}

	images, err := LoadImages(ctx, m.ImagePaths(baseDir, layerSel, itemSel))
	if err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}

	b := NewLayerBuilder()
	next := len(layers)
	for i, l := range layers {
		spec := LayerSpec{Image: images[i]}
		layerEl := NewImageElement()
		spec.Element = layerEl

		if l.el.Shift != "" {
			shift, err := parsePair(l.el.Shift)
			if err != nil {
				return nil, fmt.Errorf("layer %d: shift: %w", i, err)
			}
			spec.Shift = &shift
		}
		if l.el.Size != "" {
			size, err := parsePair(l.el.Size)
			if err != nil {
				return nil, fmt.Errorf("layer %d: size: %w", i, err)
			}
			spec.Size = &size
		}

		for j, it := range l.items {
			rect, err := itemRect(it)
			if err != nil {
				return nil, fmt.Errorf("layer %d item %d: %w", i, j, err)
			}
			itemEl := NewImageElement()
			layerEl.AddChild(rect, itemEl)
			spec.Items = append(spec.Items, ItemSpec{Element: itemEl, Rect: rect, Image: images[next]})
			next++
		}
		b.Add(spec)
	}
	return b.Build()
}

// NewEngineFromManifest loads a manifest file and its images and builds an
// engine for it. The manifest's alignment, when set, replaces
// opts.Alignment.
func NewEngineFromManifest(ctx context.Context, path string, opts Options) (*Engine, error) {
	m, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	if opts.Alignment, err = m.AlignmentOr(opts.Alignment); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	st, err := m.BuildStack(ctx, filepath.Dir(path), opts.LayerSelector, opts.ItemSelector)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	Logger().Info("parallax: manifest loaded", "path", path, "layers", len(st.Layers), "items", len(st.Items()))
	return NewEngine(st, opts)
}
