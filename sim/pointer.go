package sim

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/phanxgames/orchard"
)

// pointerState is the mouse constraint. A press remembers the topmost
// grabbable body; once the pointer travels past the dead zone the body is
// grabbed and a pivot joint pulls the grabbed point toward the pointer until
// release.
type pointerState struct {
	pos       orchard.Vec2
	down      bool
	start     orchard.Vec2
	candidate orchard.BodyID
	dragging  bool
	grabbed   orchard.BodyID
	anchor    cp.Vector // grab point in the body's local frame
}

func newPointerState() pointerState {
	return pointerState{pos: orchard.Vec2{X: math.NaN(), Y: math.NaN()}}
}

// Pointer returns the last known pointer position, NaN before the first
// event.
func (w *World) Pointer() orchard.Vec2 {
	return w.pointer.pos
}

// Grabbed returns the body held by the pointer constraint, or zero.
func (w *World) Grabbed() orchard.BodyID {
	return w.pointer.grabbed
}

// grabbableAt returns the grabbable bodies under p, topmost first.
func (w *World) grabbableAt(p orchard.Vec2) []orchard.BodyID {
	w.hitBuf = w.hitBuf[:0]
	for i := len(w.order) - 1; i >= 0; i-- {
		b := w.bodies[w.order[i]]
		if b.def.Grabbable && contains(b, p) {
			w.hitBuf = append(w.hitBuf, b.id)
		}
	}
	return w.hitBuf
}

// PointerDown presses the pointer at p. The event names the topmost
// grabbable body under p, or zero.
func (w *World) PointerDown(p orchard.Vec2) {
	ps := &w.pointer
	ps.pos = p
	ps.down = true
	ps.start = p
	ps.dragging = false
	ps.candidate = 0
	if hits := w.grabbableAt(p); len(hits) > 0 {
		ps.candidate = hits[0]
	}
	w.emit(orchard.Event{Type: orchard.EventPointerDown, Body: ps.candidate, Pointer: p})
}

// PointerMove moves the pointer to p. While pressed it starts the drag once
// the dead zone is exceeded, firing a drag start for every grabbable body
// under the press point from bottom to top; the topmost one is grabbed.
func (w *World) PointerMove(p orchard.Vec2) {
	ps := &w.pointer
	if ps.pos == p {
		return
	}
	ps.pos = p

	if !ps.down {
		w.emit(orchard.Event{Type: orchard.EventPointerMove, Pointer: p})
		return
	}

	if !ps.dragging && ps.candidate != 0 {
		dx, dy := p.X-ps.start.X, p.Y-ps.start.Y
		if math.Sqrt(dx*dx+dy*dy) > w.cfg.DragDeadZone {
			w.startDrag(p)
		}
	}
	w.emit(orchard.Event{Type: orchard.EventDrag, Body: ps.grabbed, Pointer: p})
}

func (w *World) startDrag(p orchard.Vec2) {
	ps := &w.pointer
	hits := w.grabbableAt(ps.start)
	if len(hits) == 0 {
		ps.candidate = 0
		return
	}
	ps.dragging = true
	top := hits[0]
	ps.grabbed = top
	b := w.bodies[top]
	ps.anchor = b.body.WorldToLocal(vec(ps.start))

	// Copy: handlers may query the world and reuse hitBuf.
	ids := append([]orchard.BodyID(nil), hits...)
	for i := len(ids) - 1; i >= 0; i-- {
		w.emit(orchard.Event{Type: orchard.EventDragStart, Body: ids[i], Pointer: p})
	}
}

// PointerUp releases the pointer at p and ends any drag.
func (w *World) PointerUp(p orchard.Vec2) {
	ps := &w.pointer
	if p.Finite() {
		ps.pos = p
	}
	grabbed := ps.grabbed
	dragging := ps.dragging
	ps.down = false
	ps.dragging = false
	ps.candidate = 0
	ps.grabbed = 0
	w.dropJoint()
	if dragging {
		w.emit(orchard.Event{Type: orchard.EventDragEnd, Body: grabbed, Pointer: ps.pos})
	}
}

// PointerLeave drops the constraint without a drag end; the receiver is
// expected to treat the leave as the release.
func (w *World) PointerLeave() {
	ps := &w.pointer
	ps.down = false
	ps.dragging = false
	ps.candidate = 0
	ps.grabbed = 0
	w.dropJoint()
	w.emit(orchard.Event{Type: orchard.EventPointerLeave, Pointer: ps.pos})
}
