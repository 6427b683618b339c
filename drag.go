package orchard

// dragPhase is the claim state of the single drag target.
type dragPhase uint8

const (
	dragIdle      dragPhase = iota
	dragPending             // a start was seen; ownership is checked next frame
	dragConfirmed           // the engine still holds the body; it is ours
)

// dragState is the drag controller's whole state. Transitions on it are pure;
// the stage applies the side effects.
type dragState struct {
	phase  dragPhase
	target FruitID
}

// claim records a pending claim on body. A confirmed drag is never replaced;
// a pending one is overwritten by the latest start of the same input burst.
func (d dragState) claim(body FruitID, live bool) dragState {
	if !live || d.phase == dragConfirmed {
		return d
	}
	return dragState{phase: dragPending, target: body}
}

// resolve settles a pending claim against the body the engine actually holds.
func (d dragState) resolve(grabbed BodyID, live bool) dragState {
	if d.phase != dragPending {
		return d
	}
	if grabbed != d.target || !live {
		return dragState{}
	}
	return dragState{phase: dragConfirmed, target: d.target}
}

// release drops the target.
func (d dragState) release() dragState {
	return dragState{}
}

// active reports whether a pending or confirmed target exists.
func (d dragState) active() bool {
	return d.phase != dragIdle && d.target != 0
}

// HandleEvent feeds one pointer event through the drag controller. Events
// about bodies the store does not know are ignored.
func (s *Stage) HandleEvent(ev Event) {
	switch ev.Type {
	case EventPointerDown:
		s.cursor.Pointer = ev.Pointer
		s.pointerDown(ev)
	case EventDragStart:
		s.cursor.Pointer = ev.Pointer
		s.dragStart(ev)
	case EventDrag:
		s.cursor.Pointer = ev.Pointer
		s.dragMove(ev.Pointer)
	case EventPointerMove:
		s.cursor.Pointer = ev.Pointer
		if !s.drag.active() {
			s.closeBin()
		}
	case EventDragEnd:
		s.cursor.Pointer = ev.Pointer
		s.dragEnd(ev)
	case EventPointerLeave:
		if s.drag.active() {
			s.dragEnd(Event{Type: EventDragEnd, Body: s.drag.target, Pointer: ev.Pointer})
		}
	}
}

// Dragged returns the current drag target, pending or confirmed, or zero.
func (s *Stage) Dragged() FruitID {
	if !s.drag.active() {
		return 0
	}
	return s.drag.target
}

// DragConfirmed reports whether the current target has been confirmed.
func (s *Stage) DragConfirmed() bool {
	return s.drag.phase == dragConfirmed
}

// grabbable reports whether id is a live fruit that may be picked up.
func (s *Stage) grabbable(id BodyID) bool {
	f, ok := s.store.Get(id)
	return ok && f.Interactive && f.Location != LocationClearing
}

func (s *Stage) dragStart(ev Event) {
	s.drag = s.drag.claim(ev.Body, s.grabbable(ev.Body))
}

// resolveClaim runs at the start of every frame. Overlapping bodies may each
// have fired a start in the same burst; only the one the engine still holds
// is confirmed.
func (s *Stage) resolveClaim() {
	if s.drag.phase != dragPending {
		return
	}
	target := s.drag.target
	s.drag = s.drag.resolve(s.engine.Grabbed(), s.grabbable(target))
	if s.drag.phase != dragConfirmed {
		return
	}
	s.engine.SetStatic(target, false)
	s.emit(StageEvent{Type: StageDragClaimed, Fruit: target, Position: s.engine.Position(target)})
}

func (s *Stage) dragMove(pointer Vec2) {
	if !s.drag.active() {
		s.closeBin()
		return
	}
	f, ok := s.store.Get(s.drag.target)
	if !ok {
		s.drag = s.drag.release()
		s.closeBin()
		return
	}
	pos := f.Position()
	if !pos.Finite() {
		return
	}

	if s.zones.Contains(pos, ZoneMatrix) {
		s.engine.SetCategory(f.ID, CategoryFruitsInTree)
		s.store.recolor(f, nil)
		s.store.rotateUp(f)
		s.closeBin()
		return
	}
	if !pointer.Finite() {
		return
	}

	if s.zones.Contains(pointer, ZoneBin) {
		f.Field.TargetingBin = true
		s.engine.SetMask(f.ID, CategoryTree)
		s.openBin()
	} else {
		f.Field.TargetingBin = false
		s.engine.SetMask(f.ID, CategoryDefault)
		s.closeBin()
	}
	s.engine.SetCategory(f.ID, CategoryDefault)
}

func (s *Stage) dragEnd(ev Event) {
	id := ev.Body
	if id == 0 {
		id = s.drag.target
	}
	wasDragged := s.drag.active() && s.drag.target == id
	s.drag = s.drag.release()
	s.closeBin()

	// A fruit whose drag was cut short by EmptyContainer is still held by
	// the engine but already belongs to the shove.
	f, ok := s.store.Get(id)
	if !ok || f.Location == LocationClearing || !wasDragged || !f.Interactive {
		return
	}
	s.emit(StageEvent{Type: StageDragReleased, Fruit: id, Position: f.Position()})
	f.Field.TargetingBin = false

	pos := f.Position()
	if !pos.Finite() {
		return
	}
	prev := f.Location

	switch {
	case s.zones.Contains(pos, ZoneMatrix):
		s.store.settle(f, LocationMatrix)
	case s.zones.Contains(pos, ZoneBin):
		s.ClearFruit(id, s.cfg.ClearDelay)
		return
	default:
		s.store.settle(f, LocationFloor)
		s.engine.SetMask(f.ID, CategoryDefault)
	}
	if f.Location != prev {
		s.emit(StageEvent{Type: StageFruitRelocated, Fruit: id, From: prev, To: f.Location})
	}
}

// pointerDown plants a new fruit when the tree is clicked on empty canvas.
func (s *Stage) pointerDown(ev Event) {
	if s.drag.active() || s.store.Has(ev.Body) {
		return
	}
	if !s.zones.Contains(ev.Pointer, ZoneMatrix) {
		return
	}
	f := s.CreateFruit(ev.Pointer.X, ev.Pointer.Y, FruitConfig{})
	f.Field.Visible = true
	f.Field.Interactive = true
}

func (s *Stage) openBin() {
	s.binOpen = true
	if s.geometry.Lid != 0 {
		s.transitions.Rotate(s.geometry.Lid, s.cfg.LidOpenAngle)
	}
}

func (s *Stage) closeBin() {
	s.binOpen = false
	if s.geometry.Lid != 0 {
		s.transitions.Rotate(s.geometry.Lid, 0)
	}
}

// BinOpen reports whether the bin lid is open or opening.
func (s *Stage) BinOpen() bool {
	return s.binOpen
}
