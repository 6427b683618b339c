package view

import "github.com/phanxgames/orchard"

// syntheticPointerEvent represents a single injected pointer event. Screen
// coordinates are logical game coordinates, identical to what a screenshot
// shows.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	leave   bool
}

// InjectPress queues a pointer press at the given coordinates. The event is
// consumed on the next Update.
func (g *Game) InjectPress(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (g *Game) InjectMove(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectHover queues a pointer move with the button up.
func (g *Game) InjectHover(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectRelease queues a pointer release at the given coordinates.
func (g *Game) InjectRelease(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectLeave queues the pointer leaving the canvas.
func (g *Game) InjectLeave() {
	g.injectQueue = append(g.injectQueue, syntheticPointerEvent{leave: true})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (g *Game) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (g *Game) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	g.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	g.InjectRelease(toX, toY)
}

// Pending returns the number of injected events not yet consumed.
func (g *Game) Pending() int {
	return len(g.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the pointer state machine. Returns true if an event was consumed
// (real mouse input should be skipped).
func (g *Game) processInjectedInput() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	if evt.leave {
		g.input.feed(g.world, orchard.Vec2{}, false, false)
		return true
	}
	g.input.feed(g.world, orchard.Vec2{X: evt.x, Y: evt.y}, evt.pressed, true)
	return true
}
