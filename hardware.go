package parallax

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	maxTextureSize = 2048

	// Initial canvas size until the first Resize.
	defaultCanvasW = 1024
	defaultCanvasH = 768
)

// texture is a square, power-of-two copy of a layer or item image.
type texture struct {
	image *ebiten.Image
	// extent is the area of the texture covered by the source image, in
	// texels. Sampling stays inside it so padding is never drawn.
	extent Vec2
}

// textureSize returns the smallest power of two covering n, capped at
// maxTextureSize.
func textureSize(n int) int {
	size := 1
	for size < n && size < maxTextureSize {
		size <<= 1
	}
	return size
}

// newTexture copies img into a square power-of-two texture. Images larger
// than maxTextureSize are scaled down to fit. A nil image gives an empty
// texture that is never drawn.
func newTexture(img *ebiten.Image) texture {
	if img == nil {
		return texture{}
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return texture{}
	}
	longest := max(w, h)
	size := textureSize(longest)
	scale := 1.0
	if longest > size {
		scale = float64(size) / float64(longest)
	}

	tex := ebiten.NewImage(size, size)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(scale, scale)
	op.Filter = ebiten.FilterLinear
	tex.DrawImage(img, &op)

	return texture{
		image:  tex,
		extent: Vec2{float64(w) * scale, float64(h) * scale},
	}
}

// HardwareOptions configures a HardwareCompositor.
type HardwareOptions struct {
	// TweenSpeed is the per-frame item tween step. Zero uses DefaultTweenSpeed.
	TweenSpeed float64
	// ShaderSource replaces the built-in quad shader. It must declare an
	// Alpha float uniform.
	ShaderSource []byte
}

// HardwareCompositor draws layers as textured quads through one shader
// into an offscreen canvas, with fading items on top of each layer.
type HardwareCompositor struct {
	program *Program

	canvas      *ebiten.Image
	displaySize Vec2
	deviceScale float64

	layers   []texture
	items    [][]texture
	tween    *ItemTween
	lastRect []*LayerRect

	verts    []ebiten.Vertex
	inds     []uint32
	batchTex *ebiten.Image
	batchA   float32
	uniforms map[string]any
	op       ebiten.DrawTrianglesShaderOptions

	stats     drawStats
	destroyed bool
}

// drawStats counts the work of the last Draw.
type drawStats struct {
	quads     int
	drawCalls int
}

// NewHardwareCompositor builds the shader program and uploads one texture
// per layer and per item. A shader build failure is returned as a
// *ProgramError and leaves nothing allocated.
func NewHardwareCompositor(st *Stack, opts HardwareOptions) (*HardwareCompositor, error) {
	src := opts.ShaderSource
	if src == nil {
		src = []byte(quadShaderSrc)
	}
	program, err := BuildProgram(src, "Alpha")
	if err != nil {
		Logger().Warn("parallax: shader program failed", "err", err)
		return nil, err
	}

	h := &HardwareCompositor{
		program:     program,
		canvas:      ebiten.NewImage(defaultCanvasW, defaultCanvasH),
		displaySize: Vec2{defaultCanvasW, defaultCanvasH},
		deviceScale: 1,
		layers:      make([]texture, len(st.Layers)),
		items:       make([][]texture, len(st.Layers)),
		tween:       NewItemTween(opts.TweenSpeed),
		uniforms:    make(map[string]any, 1),
	}
	for i, l := range st.Layers {
		h.layers[i] = newTexture(l.Image)
		h.items[i] = make([]texture, len(l.Items))
		for j, it := range l.Items {
			h.items[i][j] = newTexture(it.Image)
		}
	}
	return h, nil
}

// Canvas returns the image the compositor renders into.
func (h *HardwareCompositor) Canvas() *ebiten.Image {
	return h.canvas
}

// Tween returns the item tween.
func (h *HardwareCompositor) Tween() *ItemTween {
	return h.tween
}

// FadeItems starts fading items in (true) or out (false).
func (h *HardwareCompositor) FadeItems(in bool) {
	h.tween.Fade(in)
}

// Resize matches the canvas to the displayed size. deviceScale is the ratio
// of physical to logical pixels. The last rects are redrawn at the new size.
// An empty displayed size is ignored.
func (h *HardwareCompositor) Resize(displayed Vec2, deviceScale float64) {
	if h.destroyed || displayed.X <= 0 || displayed.Y <= 0 {
		return
	}
	if deviceScale <= 0 {
		deviceScale = 1
	}
	h.displaySize = displayed
	h.deviceScale = deviceScale

	w := max(1, int(math.Ceil(displayed.X*deviceScale)))
	ht := max(1, int(math.Ceil(displayed.Y*deviceScale)))
	if b := h.canvas.Bounds(); b.Dx() != w || b.Dy() != ht {
		h.canvas.Deallocate()
		h.canvas = ebiten.NewImage(w, ht)
	}
	h.Draw(nil)
}

// Transform returns the pixel to clip-space transform for the current
// displayed size.
func (h *HardwareCompositor) Transform() Matrix3 {
	return ClipSpace(h.displaySize.X, h.displaySize.Y)
}

// surfaceTransform maps clip space back onto the canvas texels, the step a
// GPU viewport performs after the vertex stage.
func (h *HardwareCompositor) surfaceTransform() Matrix3 {
	b := h.canvas.Bounds()
	w, ht := float64(b.Dx()), float64(b.Dy())
	return Matrix3{w / 2, 0, 0, -ht / 2, w / 2, ht / 2}
}

// Draw renders rects into the canvas, or the last rects when rects is nil,
// then advances the item tween by one frame.
func (h *HardwareCompositor) Draw(rects []*LayerRect) {
	if h.destroyed {
		return
	}
	if rects == nil {
		rects = h.lastRect
	}
	h.lastRect = rects
	if rects == nil {
		return
	}

	h.canvas.Clear()
	h.stats = drawStats{}

	clip := h.Transform().Mat3()
	surface := h.surfaceTransform()
	project := func(p Vec2) Vec2 {
		v := clip.Mul3x1(mgl32.Vec3{float32(p.X), float32(p.Y), 1})
		return surface.Apply(Vec2{float64(v.X()), float64(v.Y())})
	}

	scale := h.tween.Scale()
	alpha := float32(h.tween.Alpha())

	for _, r := range rects {
		if r == nil || r.Layer == nil {
			continue
		}
		idx := r.Layer.index
		if idx < 0 || idx >= len(h.layers) {
			continue
		}

		p1 := r.Pos
		p2 := r.MaxPos()
		if tex := h.layers[idx]; tex.image != nil {
			h.appendQuad(tex, project(p1), project(p2), 1)
		}

		for j, it := range r.Layer.Items {
			tex := h.items[idx][j]
			if tex.image == nil || alpha <= 0 {
				continue
			}
			q := itemQuad(r.Rect, it.Rect, scale)
			h.appendQuad(tex, project(q.Pos), project(q.MaxPos()), alpha)
		}
	}
	h.flush()

	h.tween.Advance()
}

// itemQuad places an item inside its layer rect. The width scales about the
// item's center and the height grows upwards from its bottom edge, so items
// rise out of the layer as they fade in.
func itemQuad(layer, item Rect, scale float64) Rect {
	s1 := layer.Pos.Add(item.Pos.MulVec(layer.Size))
	s2 := layer.Pos.Add(item.MaxPos().MulVec(layer.Size))

	c := s1.Add(s2).Mul(0.5)
	half := s2.Sub(s1).Mul(0.5 * scale)

	top := s2.Y - (s2.Y-s1.Y)*scale
	return Rect{
		Pos:  Vec2{c.X - half.X, top},
		Size: Vec2{half.X * 2, s2.Y - top},
	}
}

// appendQuad queues a textured quad with corners p1 (top-left) and p2
// (bottom-right) in canvas texels. Quads are flushed whenever the texture
// or alpha changes.
func (h *HardwareCompositor) appendQuad(tex texture, p1, p2 Vec2, alpha float32) {
	if len(h.verts) > 0 && (tex.image != h.batchTex || alpha != h.batchA) {
		h.flush()
	}
	h.batchTex = tex.image
	h.batchA = alpha

	u, v := float32(tex.extent.X), float32(tex.extent.Y)
	dx := [4]float32{float32(p1.X), float32(p2.X), float32(p1.X), float32(p2.X)}
	dy := [4]float32{float32(p1.Y), float32(p1.Y), float32(p2.Y), float32(p2.Y)}
	sx := [4]float32{0, u, 0, u}
	sy := [4]float32{0, 0, v, v}

	base := uint32(len(h.verts))
	for i := 0; i < 4; i++ {
		h.verts = append(h.verts, ebiten.Vertex{
			DstX:   dx[i],
			DstY:   dy[i],
			SrcX:   sx[i],
			SrcY:   sy[i],
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		})
	}
	// Two triangles: TL-TR-BL, TR-BR-BL
	h.inds = append(h.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
	h.stats.quads++
}

// flush submits the queued quads as one draw call.
func (h *HardwareCompositor) flush() {
	if len(h.verts) == 0 {
		return
	}
	h.uniforms["Alpha"] = h.batchA
	h.op.Uniforms = h.uniforms
	h.op.Images[0] = h.batchTex
	h.op.Blend = ebiten.BlendSourceOver

	h.canvas.DrawTrianglesShader32(h.verts, h.inds, h.program.Shader(), &h.op)
	h.stats.drawCalls++

	h.verts = h.verts[:0]
	h.inds = h.inds[:0]
	h.op.Images[0] = nil
}

// DrawTo composites the canvas over target, stretched to target's bounds.
func (h *HardwareCompositor) DrawTo(target *ebiten.Image) {
	if h.destroyed {
		return
	}
	cb := h.canvas.Bounds()
	tb := target.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(tb.Dx())/float64(cb.Dx()), float64(tb.Dy())/float64(cb.Dy()))
	op.GeoM.Translate(float64(tb.Min.X), float64(tb.Min.Y))
	op.Filter = ebiten.FilterLinear
	target.DrawImage(h.canvas, &op)
}

// Destroy releases every texture, the canvas and the shader. Safe to call
// more than once; later calls to any method do nothing.
func (h *HardwareCompositor) Destroy() {
	if h.destroyed {
		return
	}
	h.destroyed = true
	for _, t := range h.layers {
		if t.image != nil {
			t.image.Deallocate()
		}
	}
	for _, ts := range h.items {
		for _, t := range ts {
			if t.image != nil {
				t.image.Deallocate()
			}
		}
	}
	h.layers, h.items, h.lastRect = nil, nil, nil
	h.canvas.Deallocate()
	h.program.Deallocate()
}

// Destroyed reports whether Destroy was called.
func (h *HardwareCompositor) Destroyed() bool {
	return h.destroyed
}
