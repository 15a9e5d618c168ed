package parallax

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// ErrMissingShift is returned when a layer is declared without its
	// displacement factor. A layer without a shift cannot be placed.
	ErrMissingShift = errors.New("parallax: layer has no shift")
	// ErrNoLayers is returned when a stack is built from zero layers.
	ErrNoLayers = errors.New("parallax: no layers")
)

// Placement is the screen-space position and integer size the software
// compositor assigns to an element.
type Placement struct {
	X, Y          float64
	Width, Height int
}

// Element is the opaque handle a layer or item is bound to. The software
// compositor projects computed rects onto elements; the hardware compositor
// never touches them.
type Element interface {
	SetPlacement(p Placement)
}

// Layer is one parallax plane.
type Layer struct {
	// Element receives placements on the software path. May be nil.
	Element Element
	// Size is the natural content size. Zero when unresolved.
	Size Vec2
	// Shift is the displacement factor. Typically in [-1, 1], not clamped.
	Shift Vec2
	// Image is the layer bitmap, nil for image-less layers.
	Image *ebiten.Image
	// Items are the foreground items in declaration order.
	Items []*Item

	index int
}

// Index returns the layer's position in its stack.
func (l *Layer) Index() int { return l.index }

// HasSize reports whether the layer's natural size is resolved.
func (l *Layer) HasSize() bool {
	return l.Size.X > 0 && l.Size.Y > 0
}

// Item is a foreground element nested inside a Layer.
type Item struct {
	Element Element
	// Rect is the placement as fractions of the parent layer's rect.
	Rect  Rect
	Image *ebiten.Image

	layer *Layer
}

// Layer returns the item's parent layer.
func (it *Item) Layer() *Layer { return it.layer }

// LayerSpec declares one layer before it is validated.
type LayerSpec struct {
	Element Element
	// Shift is required.
	Shift *Vec2
	// Size is an explicit natural size, used when Image is nil.
	Size  *Vec2
	Image *ebiten.Image
	Items []ItemSpec
}

// ItemSpec declares one layer item.
type ItemSpec struct {
	Element Element
	Rect    Rect
	Image   *ebiten.Image
}

// Stack is the validated, immutable set of layers an engine renders.
type Stack struct {
	Layers []*Layer
	// MaxShift is the largest absolute per-axis shift among all layers.
	MaxShift Vec2
}

// Items returns every item of every layer, layer order first, then
// declaration order within a layer.
func (s *Stack) Items() []*Item {
	var items []*Item
	for _, l := range s.Layers {
		items = append(items, l.Items...)
	}
	return items
}

// LayerBuilder assembles a Stack from declarative layer specs.
type LayerBuilder struct {
	specs []LayerSpec
}

// NewLayerBuilder returns an empty builder.
func NewLayerBuilder() *LayerBuilder {
	return &LayerBuilder{}
}

// Add appends a layer spec. Specs are kept in call order.
func (b *LayerBuilder) Add(spec LayerSpec) *LayerBuilder {
	b.specs = append(b.specs, spec)
	return b
}

// Len returns the number of specs added so far.
func (b *LayerBuilder) Len() int { return len(b.specs) }

// Build validates every spec and resolves layer sizes. A layer takes the
// natural size of its image, else its explicit size, else the largest
// natural image size among its siblings. When no sibling has an image the
// layer stays unresolved and renders nothing.
func (b *LayerBuilder) Build() (*Stack, error) {
	if len(b.specs) == 0 {
		return nil, ErrNoLayers
	}

	st := &Stack{Layers: make([]*Layer, 0, len(b.specs))}
	var maxSize Vec2
	var empty []*Layer

	for i, spec := range b.specs {
		if spec.Shift == nil {
			return nil, fmt.Errorf("layer %d: %w", i, ErrMissingShift)
		}
		l := &Layer{
			Element: spec.Element,
			Shift:   *spec.Shift,
			Image:   spec.Image,
			index:   i,
		}
		switch {
		case spec.Image != nil:
			bounds := spec.Image.Bounds()
			l.Size = Vec2{float64(bounds.Dx()), float64(bounds.Dy())}
			maxSize = maxSize.Max(l.Size)
		case spec.Size != nil:
			l.Size = *spec.Size
		default:
			empty = append(empty, l)
		}

		l.Items = make([]*Item, 0, len(spec.Items))
		for _, is := range spec.Items {
			l.Items = append(l.Items, &Item{
				Element: is.Element,
				Rect:    is.Rect,
				Image:   is.Image,
				layer:   l,
			})
		}

		st.MaxShift = st.MaxShift.Max(l.Shift.Abs())
		st.Layers = append(st.Layers, l)
	}

	for _, l := range empty {
		l.Size = maxSize
	}
	return st, nil
}
