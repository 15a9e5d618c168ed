package parallax

import "time"

const (
	// DefaultLayerSelector selects layer elements in a manifest.
	DefaultLayerSelector = ".parallax-layer"
	// DefaultItemSelector selects item elements inside a layer.
	DefaultItemSelector = ".parallax-layer-item"
	// DefaultResizeDelay is how long a resize waits before the forced redraw.
	DefaultResizeDelay = 10 * time.Millisecond
	// DefaultScreenshotDir is where Screenshot writes when ScreenshotDir is empty.
	DefaultScreenshotDir = "screenshots"
)

// Options configures an Engine. Start from DefaultOptions; numeric zero
// values (ResizeDelay included) are replaced by their defaults, booleans
// are taken as given.
type Options struct {
	// LayerSelector and ItemSelector pick elements out of a manifest by
	// class, e.g. ".parallax-layer".
	LayerSelector string
	ItemSelector  string

	// MoveDelay is the smoothing responsiveness in (0, 1].
	MoveDelay float64
	// AutoStart starts the frame loop as soon as the engine is built.
	AutoStart bool
	// DeviceTiltDegrees is the tilt that swings the shift fully to one side.
	DeviceTiltDegrees float64
	// Alignment is the viewport anchor, clamped to [-1, 1] per axis.
	Alignment Vec2
	// NoHardware forces the software compositor.
	NoHardware bool
	// NoPointer disables pointer tracking. Shift can still be set with
	// SetShift or Tilt.
	NoPointer bool
	// Pointer is the pointer source. Nil uses the Ebitengine cursor and
	// touch input.
	Pointer PointerSource

	// TweenSpeed is the per-frame step of the item fade.
	TweenSpeed float64
	// ShaderSource replaces the built-in Kage quad shader. It must declare
	// an Alpha float uniform; otherwise the engine uses the software
	// compositor.
	ShaderSource []byte
	// CanvasScale is the hardware canvas resolution relative to the
	// viewport. Values above 1 supersample.
	CanvasScale float64
	// ResizeDelay debounces the redraw that follows a resize. Zero uses
	// DefaultResizeDelay; a negative delay redraws on the next tick.
	ResizeDelay time.Duration

	// Debug logs per-frame timing at debug level.
	Debug bool
	// ShowFPS draws an FPS/TPS overlay in the top-left corner.
	ShowFPS bool
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	// Loaded is called once the engine is built, before the compositor is
	// chosen.
	Loaded func(e *Engine)
	// LoadLayer is called for every layer when the software compositor is
	// used.
	LoadLayer func(l *Layer, index int)
	// Draw is called after every frame whose first layer has a rect.
	Draw func(rects []*LayerRect, viewport Vec2)
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		LayerSelector:     DefaultLayerSelector,
		ItemSelector:      DefaultItemSelector,
		MoveDelay:         DefaultMoveDelay,
		AutoStart:         true,
		DeviceTiltDegrees: DefaultTiltDegrees,
		TweenSpeed:        DefaultTweenSpeed,
		CanvasScale:       1,
		ResizeDelay:       DefaultResizeDelay,
		ScreenshotDir:     DefaultScreenshotDir,
	}
}

// withDefaults fills zero numeric and string fields and clamps Alignment.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.LayerSelector == "" {
		o.LayerSelector = d.LayerSelector
	}
	if o.ItemSelector == "" {
		o.ItemSelector = d.ItemSelector
	}
	if o.MoveDelay <= 0 || o.MoveDelay > 1 {
		o.MoveDelay = d.MoveDelay
	}
	if o.DeviceTiltDegrees <= 0 {
		o.DeviceTiltDegrees = d.DeviceTiltDegrees
	}
	if o.TweenSpeed <= 0 {
		o.TweenSpeed = d.TweenSpeed
	}
	if o.CanvasScale <= 0 {
		o.CanvasScale = d.CanvasScale
	}
	switch {
	case o.ResizeDelay == 0:
		o.ResizeDelay = d.ResizeDelay
	case o.ResizeDelay < 0:
		o.ResizeDelay = 0
	}
	if o.ScreenshotDir == "" {
		o.ScreenshotDir = d.ScreenshotDir
	}
	o.Alignment = ClampAlignment(o.Alignment)
	return o
}
