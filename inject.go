package parallax

// InjectPointer queues a synthetic pointer position in viewport
// coordinates. One queued position is consumed per tick, in place of the
// real pointer.
func (e *Engine) InjectPointer(x, y float64) {
	if !e.listening {
		return
	}
	e.injectQueue = append(e.injectQueue, PointerCommand{Pos: Vec2{x, y}})
}

// InjectPointerPath queues a pointer sweep from (fromX, fromY) to (toX, toY)
// over the given number of ticks, both ends included. Minimum frames is 2.
func (e *Engine) InjectPointerPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		e.InjectPointer(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// processInjectedInput pops one injected position and publishes it against
// container. Returns true if an event was consumed, so the real pointer is
// skipped this tick.
func (e *Engine) processInjectedInput(container Rect) bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	cmd := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	cmd.Bounds = container
	e.bus.publish(cmd)
	return true
}
