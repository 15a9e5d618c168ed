package parallax

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// SoftwareCompositor is the fallback path: it projects computed rects onto
// layer elements and does nothing else. Elements draw themselves.
type SoftwareCompositor struct{}

// Apply sets the placement of every non-nil rect's layer element. Sizes are
// rounded up to whole pixels so adjacent layers never leave a seam.
func (SoftwareCompositor) Apply(rects []*LayerRect) {
	for _, r := range rects {
		if r == nil || r.Layer == nil || r.Layer.Element == nil {
			continue
		}
		r.Layer.Element.SetPlacement(Placement{
			X:      r.Pos.X,
			Y:      r.Pos.Y,
			Width:  int(math.Ceil(r.Size.X)),
			Height: int(math.Ceil(r.Size.Y)),
		})
	}
}

// Drawer is implemented by elements that can render themselves.
type Drawer interface {
	Draw(target *ebiten.Image)
}

// ImageAttacher is implemented by elements that display an image once the
// software path is chosen.
type ImageAttacher interface {
	AttachImage(img *ebiten.Image)
}

// ImageElement is the default Element. It stretches its image over its
// placement and draws child elements at fractions of that placement, the
// way percentage-positioned children sit inside a styled box.
type ImageElement struct {
	image     *ebiten.Image
	children  []imageChild
	placement Placement
	placed    bool
	op        ebiten.DrawImageOptions
}

type imageChild struct {
	rect Rect
	el   *ImageElement
}

// NewImageElement returns an element with no image and no placement.
func NewImageElement() *ImageElement {
	return &ImageElement{}
}

// SetPlacement implements Element.
func (el *ImageElement) SetPlacement(p Placement) {
	el.placement = p
	el.placed = true
}

// Placement returns the last placement and whether one was ever set.
func (el *ImageElement) Placement() (Placement, bool) {
	return el.placement, el.placed
}

// AttachImage implements ImageAttacher.
func (el *ImageElement) AttachImage(img *ebiten.Image) {
	el.image = img
}

// Image returns the attached image, or nil.
func (el *ImageElement) Image() *ebiten.Image {
	return el.image
}

// AddChild nests child at the normalized rect inside el.
func (el *ImageElement) AddChild(rect Rect, child *ImageElement) {
	el.children = append(el.children, imageChild{rect: rect, el: child})
}

// Draw implements Drawer. Unplaced elements draw nothing.
func (el *ImageElement) Draw(target *ebiten.Image) {
	if !el.placed {
		return
	}
	box := RectXYWH(el.placement.X, el.placement.Y, float64(el.placement.Width), float64(el.placement.Height))
	el.drawInto(target, box)
}

func (el *ImageElement) drawInto(target *ebiten.Image, box Rect) {
	if el.image != nil {
		b := el.image.Bounds()
		if b.Dx() > 0 && b.Dy() > 0 {
			el.op.GeoM.Reset()
			el.op.GeoM.Scale(box.Size.X/float64(b.Dx()), box.Size.Y/float64(b.Dy()))
			el.op.GeoM.Translate(box.Pos.X, box.Pos.Y)
			el.op.Filter = ebiten.FilterLinear
			target.DrawImage(el.image, &el.op)
		}
	}
	for _, c := range el.children {
		c.el.drawInto(target, box.Within(c.rect))
	}
}
