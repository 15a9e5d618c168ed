package parallax

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Command is a state change requested by an input source. Commands are
// queued when published and applied in order at the start of the next
// tick, so the frame step always sees the latest write.
type Command interface {
	apply(e *Engine)
}

// ShiftCommand forces the raw shift.
type ShiftCommand struct {
	Shift Vec2
}

// PointerCommand reports a pointer position over a surface.
type PointerCommand struct {
	Pos    Vec2
	Bounds Rect
}

// TiltCommand reports a device orientation reading.
type TiltCommand struct {
	Sample TiltSample
}

// ResizeCommand reports a new viewport size.
type ResizeCommand struct {
	Viewport Vec2
}

func (c ShiftCommand) apply(e *Engine) {
	e.smoother.SetRaw(c.Shift)
}

func (c PointerCommand) apply(e *Engine) {
	e.smoother.SetRaw(PointerShift(c.Pos, c.Bounds))
}

func (c TiltCommand) apply(e *Engine) {
	e.smoother.SetRaw(e.tilt.Update(c.Sample))
}

func (c ResizeCommand) apply(e *Engine) {
	e.resize(c.Viewport)
}

// CommandEventType carries every Command through a donburi world. Each
// engine owns its own world, so queues never mix between engines.
var CommandEventType = events.NewEventType[Command]()

// commandBus queues commands on a donburi world until drained.
type commandBus struct {
	world      donburi.World
	subscriber events.Subscriber[Command]
	open       bool
}

func newCommandBus(handle func(Command)) *commandBus {
	b := &commandBus{world: donburi.NewWorld(), open: true}
	b.subscriber = func(_ donburi.World, c Command) {
		handle(c)
	}
	CommandEventType.Subscribe(b.world, b.subscriber)
	return b
}

// publish queues c. Commands published after close are dropped.
func (b *commandBus) publish(c Command) {
	if !b.open {
		return
	}
	CommandEventType.Publish(b.world, c)
}

// drain applies every queued command in publish order.
func (b *commandBus) drain() {
	if !b.open {
		return
	}
	CommandEventType.ProcessEvents(b.world)
}

// close unsubscribes the handler. Safe to call more than once.
func (b *commandBus) close() {
	if !b.open {
		return
	}
	b.open = false
	CommandEventType.Unsubscribe(b.world, b.subscriber)
}
