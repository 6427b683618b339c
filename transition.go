package orchard

import "math"

// ExpDecay moves a toward b by exponential decay over dt seconds. It is
// framerate independent: two steps of dt/2 land where one step of dt does.
func ExpDecay(a, b, decay, dt float64) float64 {
	return b + (a-b)*math.Exp(-decay*dt)
}

type translateTarget struct {
	target Vec2
}

// transitionSet holds the in-flight channels of one body. A nil channel is
// inactive.
type transitionSet struct {
	scale     *float64
	angle     *float64
	translate *translateTarget
}

func (ts *transitionSet) empty() bool {
	return ts.scale == nil && ts.angle == nil && ts.translate == nil
}

// Transitions animates scale, angle and translation of engine bodies toward
// requested targets. There is no global animation manager; the stage calls
// Update once per render frame.
type Transitions struct {
	engine    Engine
	decay     float64
	precision float64 // 10^decimals
	bodies    map[BodyID]*transitionSet
}

// NewTransitions creates an animator with the given decay rate (per second)
// and snap precision in decimals.
func NewTransitions(engine Engine, decay float64, decimals int) *Transitions {
	return &Transitions{
		engine:    engine,
		decay:     decay,
		precision: math.Pow(10, float64(decimals)),
		bodies:    make(map[BodyID]*transitionSet),
	}
}

func (t *Transitions) set(id BodyID) *transitionSet {
	ts, ok := t.bodies[id]
	if !ok {
		ts = &transitionSet{}
		t.bodies[id] = ts
	}
	return ts
}

// Grow requests the body's scale to converge on scale.
func (t *Transitions) Grow(id BodyID, scale float64) {
	t.set(id).scale = &scale
}

// Shrink requests the body's scale to converge on scale, usually zero.
func (t *Transitions) Shrink(id BodyID, scale float64) {
	t.set(id).scale = &scale
}

// Rotate requests the body's angle to converge on radians.
func (t *Transitions) Rotate(id BodyID, radians float64) {
	t.set(id).angle = &radians
}

// Translate requests the body to slide by (dx, dy) from where it is now.
func (t *Transitions) Translate(id BodyID, dx, dy float64) {
	p := t.engine.Position(id)
	t.TranslateTo(id, Vec2{p.X + dx, p.Y + dy})
}

// TranslateTo requests the body to slide to an absolute position.
func (t *Transitions) TranslateTo(id BodyID, target Vec2) {
	t.set(id).translate = &translateTarget{target: target}
}

// Forget drops every channel of a body.
func (t *Transitions) Forget(id BodyID) {
	delete(t.bodies, id)
}

// Active reports whether the body has any channel in flight.
func (t *Transitions) Active(id BodyID) bool {
	ts, ok := t.bodies[id]
	return ok && !ts.empty()
}

// Channels reports which channels of the body are in flight.
func (t *Transitions) Channels(id BodyID) (scale, angle, translate bool) {
	ts, ok := t.bodies[id]
	if !ok {
		return false, false, false
	}
	return ts.scale != nil, ts.angle != nil, ts.translate != nil
}

// Len returns the number of bodies with at least one channel in flight.
func (t *Transitions) Len() int {
	return len(t.bodies)
}

// Update advances every channel by dt seconds. Channels that round to their
// target snap exactly onto it and are cleared.
func (t *Transitions) Update(dt float64) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}
	for id, ts := range t.bodies {
		if !t.engine.HasBody(id) {
			delete(t.bodies, id)
			continue
		}
		if ts.scale != nil {
			t.updateScale(id, ts, dt)
		}
		if ts.angle != nil {
			t.updateAngle(id, ts, dt)
		}
		if ts.translate != nil {
			t.updateTranslate(id, ts, dt)
		}
		if ts.empty() {
			delete(t.bodies, id)
		}
	}
}

func (t *Transitions) updateScale(id BodyID, ts *transitionSet, dt float64) {
	target := *ts.scale
	v := ExpDecay(t.engine.Scale(id), target, t.decay, dt)
	if t.snaps(v, target) {
		t.engine.SetScale(id, target)
		ts.scale = nil
		return
	}
	t.engine.SetScale(id, v)
}

func (t *Transitions) updateAngle(id BodyID, ts *transitionSet, dt float64) {
	target := *ts.angle
	v := ExpDecay(t.engine.Angle(id), target, t.decay, dt)
	if t.snaps(v, target) {
		t.engine.SetAngle(id, target)
		ts.angle = nil
		return
	}
	t.engine.SetAngle(id, v)
}

func (t *Transitions) updateTranslate(id BodyID, ts *transitionSet, dt float64) {
	target := ts.translate.target
	cur := t.engine.Position(id)
	if !cur.Finite() {
		return
	}
	v := Vec2{
		X: ExpDecay(cur.X, target.X, t.decay, dt),
		Y: ExpDecay(cur.Y, target.Y, t.decay, dt),
	}
	if t.snaps(v.X, target.X) && t.snaps(v.Y, target.Y) {
		t.engine.SetPosition(id, target)
		ts.translate = nil
		return
	}
	t.engine.SetPosition(id, v)
}

// snaps reports whether v and target agree at the configured precision.
func (t *Transitions) snaps(v, target float64) bool {
	return math.Round(v*t.precision) == math.Round(target*t.precision)
}
