package parallax

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Engine owns one parallax effect: its layers, motion state, input
// listeners and compositor. It implements ebiten.Game; every tick drains
// queued input commands, steps the smoother and recomputes layer rects.
//
// Engine is single-threaded. Input sources publish commands; nothing else
// touches engine state between ticks.
type Engine struct {
	opts  Options
	stack *Stack

	geometry Geometry
	smoother *Smoother
	tilt     *TiltTracker
	pointer  pointerTracker
	bus      *commandBus

	hw *HardwareCompositor
	sw SoftwareCompositor

	viewport      Vec2
	layoutSize    Vec2
	rects         []*LayerRect
	animating     bool
	listening     bool
	deinited      bool
	redrawAt      time.Time
	redrawPending bool
	clock         func() time.Time

	injectQueue     []PointerCommand
	testRunner      *TestRunner
	screenshotQueue []string
	fps             *fpsOverlay
	frames          uint64
	updateFunc      func() error
}

// NewEngine builds an engine for the given stack. The hardware compositor
// is tried first unless opts.NoHardware is set; if its shader cannot be
// built the engine falls back to the software compositor.
func NewEngine(stack *Stack, opts Options) (*Engine, error) {
	if stack == nil || len(stack.Layers) == 0 {
		return nil, ErrNoLayers
	}
	opts = opts.withDefaults()

	e := &Engine{
		opts:      opts,
		stack:     stack,
		geometry:  NewGeometry(opts.Alignment, stack.MaxShift),
		smoother:  NewSmoother(opts.MoveDelay),
		tilt:      NewTiltTracker(opts.DeviceTiltDegrees),
		listening: true,
		clock:     time.Now,
	}
	e.bus = newCommandBus(func(c Command) { c.apply(e) })
	if !opts.NoPointer {
		src := opts.Pointer
		if src == nil {
			src = &EbitenPointer{}
		}
		e.pointer.src = src
	}
	if opts.ShowFPS {
		e.fps = newFPSOverlay()
	}

	if opts.Loaded != nil {
		opts.Loaded(e)
	}

	if !opts.NoHardware {
		hw, err := NewHardwareCompositor(stack, HardwareOptions{
			TweenSpeed:   opts.TweenSpeed,
			ShaderSource: opts.ShaderSource,
		})
		var perr *ProgramError
		switch {
		case err == nil:
			e.hw = hw
			Logger().Info("parallax: hardware compositor ready", "layers", len(stack.Layers))
		case errors.As(err, &perr):
			Logger().Warn("parallax: falling back to software compositor", "stage", perr.Stage.String(), "err", perr.Err)
		default:
			return nil, err
		}
	}
	if e.hw == nil {
		e.attachSoftware()
	}

	if opts.AutoStart {
		e.StartAnimating()
	}
	return e, nil
}

// attachSoftware hands layer and item images to their elements.
func (e *Engine) attachSoftware() {
	for i, l := range e.stack.Layers {
		if a, ok := l.Element.(ImageAttacher); ok && l.Image != nil {
			a.AttachImage(l.Image)
		}
		for _, it := range l.Items {
			if a, ok := it.Element.(ImageAttacher); ok && it.Image != nil {
				a.AttachImage(it.Image)
			}
		}
		if e.opts.LoadLayer != nil {
			e.opts.LoadLayer(l, i)
		}
	}
}

// --- Public operations ---

// SetShift forces the raw input shift, bypassing pointer and tilt tracking.
// It takes effect on the next tick.
func (e *Engine) SetShift(v Vec2) {
	e.bus.publish(ShiftCommand{Shift: v})
}

// Tilt feeds a device orientation sample. It takes effect on the next tick.
func (e *Engine) Tilt(s TiltSample) {
	e.bus.publish(TiltCommand{Sample: s})
}

// Resize reports a new viewport size. The motion state is reset and a
// redraw follows after Options.ResizeDelay.
func (e *Engine) Resize(viewport Vec2) {
	e.bus.publish(ResizeCommand{Viewport: viewport})
}

// Publish queues an arbitrary command.
func (e *Engine) Publish(c Command) {
	e.bus.publish(c)
}

// StartAnimating starts the frame loop. Calling it while running does nothing.
func (e *Engine) StartAnimating() {
	if e.deinited || e.animating {
		return
	}
	e.animating = true
}

// StopAnimating stops the frame loop. The last frame stays on screen.
// Calling it while stopped does nothing.
func (e *Engine) StopAnimating() {
	e.animating = false
}

// Deinit stops the frame loop and removes every input listener. Queued and
// later commands are dropped. Safe to call more than once.
func (e *Engine) Deinit() {
	if e.deinited {
		return
	}
	e.StopAnimating()
	e.listening = false
	e.bus.close()
	e.injectQueue = e.injectQueue[:0]
	e.deinited = true
}

// Destroy deinitializes the engine and releases the hardware compositor.
func (e *Engine) Destroy() {
	e.Deinit()
	if e.hw != nil {
		e.hw.Destroy()
	}
}

// FadeItems fades layer items in or out. Items only fade on the hardware
// path; the software path always shows them.
func (e *Engine) FadeItems(in bool) {
	if e.hw != nil {
		e.hw.FadeItems(in)
	}
}

// --- Accessors ---

// Stack returns the engine's layers.
func (e *Engine) Stack() *Stack { return e.stack }

// Hardware returns the hardware compositor, or nil on the software path.
func (e *Engine) Hardware() *HardwareCompositor { return e.hw }

// Geometry returns the layer geometry settings.
func (e *Engine) Geometry() Geometry { return e.geometry }

// RawShift returns the latest input shift.
func (e *Engine) RawShift() Vec2 { return e.smoother.Raw }

// DelayedShift returns the smoothed shift used by the last frame.
func (e *Engine) DelayedShift() Vec2 { return e.smoother.Delayed }

// Viewport returns the current viewport size.
func (e *Engine) Viewport() Vec2 { return e.viewport }

// Rects returns the rects of the last frame. The slice is reused by the
// next frame.
func (e *Engine) Rects() []*LayerRect { return e.rects }

// Animating reports whether the frame loop is running.
func (e *Engine) Animating() bool { return e.animating }

// Frames returns the number of frames computed so far.
func (e *Engine) Frames() uint64 { return e.frames }

// --- Frame loop ---

// resize applies a viewport change.
func (e *Engine) resize(viewport Vec2) {
	e.viewport = viewport
	e.smoother.Reset()
	if e.hw != nil {
		e.hw.Resize(viewport, e.opts.CanvasScale)
	}
	e.redrawAt = e.clock().Add(e.opts.ResizeDelay)
	e.redrawPending = true
}

// SetUpdateFunc registers a callback run at the start of every tick,
// before input is polled. An error from fn stops the game loop.
func (e *Engine) SetUpdateFunc(fn func() error) {
	e.updateFunc = fn
}

// Update implements ebiten.Game. It is the per-tick frame callback.
func (e *Engine) Update() error {
	if e.updateFunc != nil {
		if err := e.updateFunc(); err != nil {
			return err
		}
	}
	if e.deinited {
		return nil
	}
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.pollInput()
	e.bus.drain()

	due := e.redrawPending && !e.clock().Before(e.redrawAt)
	if due {
		e.redrawPending = false
	}
	if e.animating || due {
		e.frame()
	}
	if e.fps != nil {
		e.fps.update()
	}
	return nil
}

// pollInput publishes pointer movement, injected pointer events first.
func (e *Engine) pollInput() {
	if !e.listening {
		return
	}
	container := Rect{Size: e.viewport}
	if e.processInjectedInput(container) {
		return
	}
	if cmd, ok := e.pointer.poll(container); ok {
		e.bus.publish(cmd)
	}
}

// frame steps the smoother, recomputes every layer rect and hands them to
// the active compositor.
func (e *Engine) frame() {
	if e.viewport.X <= 0 || e.viewport.Y <= 0 {
		return
	}
	var stats frameStats
	var t0 time.Time
	if e.opts.Debug {
		t0 = time.Now()
	}

	delayed := e.smoother.Step()
	e.rects = e.geometry.Compute(e.rects, e.stack.Layers, e.viewport, delayed)

	if e.opts.Debug {
		stats.geometryTime = time.Since(t0)
		t0 = time.Now()
	}

	if e.hw != nil {
		e.hw.Draw(e.rects)
	} else {
		e.sw.Apply(e.rects)
	}
	e.frames++

	if e.opts.Debug {
		stats.composeTime = time.Since(t0)
		stats.collect(e)
		e.debugLog(stats)
		if e.frames == 1 {
			debugCheckRects(e)
		}
	}

	if e.opts.Draw != nil && len(e.rects) > 0 && e.rects[0] != nil {
		e.opts.Draw(e.rects, e.viewport)
	}
}

// Draw implements ebiten.Game.
func (e *Engine) Draw(screen *ebiten.Image) {
	if e.hw != nil {
		e.hw.DrawTo(screen)
	} else {
		for _, l := range e.stack.Layers {
			if d, ok := l.Element.(Drawer); ok {
				d.Draw(screen)
			}
		}
	}
	if e.fps != nil {
		e.fps.draw(screen)
	}
	e.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The viewport follows the outside size; a
// change is published as a resize.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := Vec2{float64(outsideWidth), float64(outsideHeight)}
	if size != e.layoutSize {
		e.layoutSize = size
		e.Resize(size)
	}
	return outsideWidth, outsideHeight
}
