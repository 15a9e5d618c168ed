package parallax

import (
	"time"
)

// frameStats holds per-frame timing and compositor metrics.
// Only populated when Options.Debug is true.
type frameStats struct {
	geometryTime time.Duration
	composeTime  time.Duration
	layers       int
	placed       int
	quads        int
	drawCalls    int
}

// collect fills the counters that do not depend on timing.
func (s *frameStats) collect(e *Engine) {
	s.layers = len(e.stack.Layers)
	s.placed = 0
	for _, r := range e.rects {
		if r != nil {
			s.placed++
		}
	}
	if e.hw != nil {
		s.quads = e.hw.stats.quads
		s.drawCalls = e.hw.stats.drawCalls
	}
}

// debugLog writes frame stats at debug level.
func (e *Engine) debugLog(stats frameStats) {
	if !e.opts.Debug {
		return
	}
	Logger().Debug("parallax: frame",
		"frame", e.frames,
		"geometry", stats.geometryTime,
		"compose", stats.composeTime,
		"total", stats.geometryTime+stats.composeTime,
		"layers", stats.layers,
		"placed", stats.placed,
		"quads", stats.quads,
		"drawCalls", stats.drawCalls,
		"delayed", e.smoother.Delayed,
	)
}

// debugCheckRects warns when a sized layer received no rect, which only
// happens when the viewport is empty.
func debugCheckRects(e *Engine) {
	for i, l := range e.stack.Layers {
		if !l.HasSize() {
			Logger().Warn("parallax: layer has no size", "layer", i)
			continue
		}
		if i < len(e.rects) && e.rects[i] == nil {
			Logger().Warn("parallax: layer not placed", "layer", i, "viewport", e.viewport)
		}
	}
}
