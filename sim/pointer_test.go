package sim

import (
	"math"
	"testing"

	"github.com/phanxgames/orchard"
)

type eventLog struct {
	events []orchard.Event
}

func (l *eventLog) handle(ev orchard.Event) {
	l.events = append(l.events, ev)
}

func (l *eventLog) types() []orchard.EventType {
	out := make([]orchard.EventType, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Type
	}
	return out
}

func TestPointerClickOnEmptySpace(t *testing.T) {
	w := newTestWorld()
	log := &eventLog{}
	w.SetEventHandler(log.handle)

	p := orchard.Vec2{X: 500, Y: 500}
	w.PointerDown(p)
	w.PointerUp(p)

	if len(log.events) != 1 || log.events[0].Type != orchard.EventPointerDown || log.events[0].Body != 0 {
		t.Errorf("events = %+v, want a single bodiless pointer down", log.events)
	}
}

func TestPointerDragSequence(t *testing.T) {
	w := newWeightlessWorld()
	log := &eventLog{}
	w.SetEventHandler(log.handle)

	lower := addBall(w, 800, 800)
	upper := addBall(w, 810, 800)

	w.PointerDown(orchard.Vec2{X: 805, Y: 800})
	if log.events[0].Body != upper {
		t.Errorf("pointer down body = %d, want topmost %d", log.events[0].Body, upper)
	}

	// Inside the dead zone nothing is grabbed.
	w.PointerMove(orchard.Vec2{X: 807, Y: 800})
	if w.Grabbed() != 0 {
		t.Fatal("grabbed inside the dead zone")
	}

	w.PointerMove(orchard.Vec2{X: 905, Y: 800})
	if w.Grabbed() != upper {
		t.Fatalf("Grabbed = %d, want %d", w.Grabbed(), upper)
	}
	var starts []orchard.BodyID
	for _, ev := range log.events {
		if ev.Type == orchard.EventDragStart {
			starts = append(starts, ev.Body)
		}
	}
	if len(starts) != 2 || starts[0] != lower || starts[1] != upper {
		t.Errorf("drag starts = %v, want [%d %d] bottom to top", starts, lower, upper)
	}

	// The grab point sits 5 px left of the center and stays under the
	// pointer, whatever the body's spin.
	step(w, 60)
	if d := distance(w.Position(upper), orchard.Vec2{X: 905, Y: 800}); math.Abs(d-5) > 1 {
		t.Errorf("grabbed body at %v, %v px from the pointer, want 5", w.Position(upper), d)
	}

	w.PointerUp(orchard.Vec2{X: 905, Y: 800})
	last := log.events[len(log.events)-1]
	if last.Type != orchard.EventDragEnd || last.Body != upper {
		t.Errorf("last event = %+v, want drag end of %d", last, upper)
	}
	if w.Grabbed() != 0 {
		t.Error("still grabbed after release")
	}
}

func TestPointerStaticBodyNotMoved(t *testing.T) {
	w := newTestWorld()
	ball := addBall(w, 800, 800)
	w.SetStatic(ball, true)

	w.PointerDown(orchard.Vec2{X: 800, Y: 800})
	w.PointerMove(orchard.Vec2{X: 900, Y: 800})
	w.Step(1.0 / 60)
	if got := w.Position(ball); got != (orchard.Vec2{X: 800, Y: 800}) {
		t.Errorf("static grabbed body moved to %v", got)
	}

	w.SetStatic(ball, false)
	step(w, 60)
	if d := distance(w.Position(ball), orchard.Vec2{X: 900, Y: 800}); d > 2 {
		t.Errorf("released body at %v, want held at {900 800}", w.Position(ball))
	}

	w.PointerUp(orchard.Vec2{X: 900, Y: 800})
	step(w, 30)
	if w.Position(ball).Y <= 800 {
		t.Error("body still held after pointer up")
	}
}

func TestPointerFollowsAcrossSteps(t *testing.T) {
	w := newTestWorld()
	ball := addBall(w, 800, 800)

	w.PointerDown(orchard.Vec2{X: 800, Y: 800})
	for i := 1; i <= 30; i++ {
		w.PointerMove(orchard.Vec2{X: 800 - float64(i)*4, Y: 800 + float64(i)*20})
		w.Step(1.0 / 60)
	}
	step(w, 30)
	if d := distance(w.Position(ball), orchard.Vec2{X: 680, Y: 1400}); d > 4 {
		t.Errorf("body at %v, want near the pointer at {680 1400}", w.Position(ball))
	}
}

func TestPointerLeaveDropsWithoutDragEnd(t *testing.T) {
	w := newTestWorld()
	log := &eventLog{}
	w.SetEventHandler(log.handle)
	addBall(w, 800, 800)

	w.PointerDown(orchard.Vec2{X: 800, Y: 800})
	w.PointerMove(orchard.Vec2{X: 900, Y: 800})
	w.PointerLeave()

	if w.Grabbed() != 0 {
		t.Error("constraint survived pointer leave")
	}
	for _, ev := range log.events {
		if ev.Type == orchard.EventDragEnd {
			t.Error("pointer leave produced a drag end")
		}
	}
	if got := log.types(); got[len(got)-1] != orchard.EventPointerLeave {
		t.Errorf("events = %v, want trailing pointer leave", got)
	}
}

func TestRemoveGrabbedBody(t *testing.T) {
	w := newTestWorld()
	ball := addBall(w, 800, 800)
	w.PointerDown(orchard.Vec2{X: 800, Y: 800})
	w.PointerMove(orchard.Vec2{X: 900, Y: 800})
	w.Step(1.0 / 60)
	w.RemoveBody(ball)
	if w.Grabbed() != 0 {
		t.Error("removed body still grabbed")
	}
	if w.joint != nil {
		t.Error("pivot joint survived its body")
	}
	w.Step(1.0 / 60)
}

func distance(a, b orchard.Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
