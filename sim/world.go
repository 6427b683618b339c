// Package sim is a Chipmunk2D world implementing orchard.Engine. Bodies are
// circles and boxes in a cp.Space; a pointer constraint picks dynamic bodies
// up with a pivot joint on a kinematic mouse body.
//
// A static orchard body is a kinematic cp body: it is never moved by gravity
// or contacts, but transitions may still move it and dynamic bodies collide
// with it.
package sim

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/phanxgames/orchard"
)

// Config holds the world tuning. Speeds are in pixels per second.
type Config struct {
	Gravity     float64 // downward acceleration
	Damping     float64 // velocity kept per 1/60 s
	MaxVelocity float64 // clamp to prevent tunneling

	// Iterations is the number of solver iterations per step. More
	// iterations means less clipping.
	Iterations int

	// DragDeadZone is the pointer travel in pixels before a press on a
	// body becomes a drag.
	DragDeadZone float64

	// GrabCorrection is the fraction of the distance between the grabbed
	// point and the pointer closed every 1/60 s.
	GrabCorrection float64
}

// DefaultConfig returns tuning for the 1600x1600 stage at 60 steps per
// second.
func DefaultConfig() Config {
	return Config{
		Gravity:        1800,
		Damping:        0.98,
		MaxVelocity:    1800,
		Iterations:     10,
		DragDeadZone:   4,
		GrabCorrection: 0.3,
	}
}

type body struct {
	id       orchard.BodyID
	def      orchard.BodyDef
	body     *cp.Body
	shape    *cp.Shape
	static   bool
	category orchard.Category
	mask     orchard.Category
	scale    float64
}

// World is a simulation of bodies. It is not safe for concurrent use; the
// host drives it from its update loop.
type World struct {
	cfg    Config
	space  *cp.Space
	next   orchard.BodyID
	bodies map[orchard.BodyID]*body
	order  []orchard.BodyID

	pointer pointerState
	mouse   *cp.Body
	joint   *cp.Constraint
	jointOn orchard.BodyID
	handler func(orchard.Event)

	hitBuf []orchard.BodyID
}

// New creates an empty world.
func New(cfg Config) *World {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 1
	}
	if cfg.Damping <= 0 || cfg.Damping > 1 {
		cfg.Damping = 1
	}
	if cfg.GrabCorrection <= 0 || cfg.GrabCorrection > 1 {
		cfg.GrabCorrection = 1
	}

	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})
	// cp damping is the fraction of velocity kept per second.
	space.SetDamping(math.Pow(cfg.Damping, 60))
	space.Iterations = uint(cfg.Iterations)

	return &World{
		cfg:     cfg,
		space:   space,
		bodies:  make(map[orchard.BodyID]*body),
		pointer: newPointerState(),
		mouse:   cp.NewKinematicBody(),
	}
}

// Config returns the world configuration.
func (w *World) Config() Config {
	return w.cfg
}

func vec(p orchard.Vec2) cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

func point(v cp.Vector) orchard.Vec2 {
	return orchard.Vec2{X: v.X, Y: v.Y}
}

func filterFor(category, mask orchard.Category) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, uint(category), uint(mask))
}

// massFor gives circles a mass proportional to their radius and boxes one
// proportional to their area, so fruits of one size weigh the same.
func massFor(def orchard.BodyDef) float64 {
	switch def.Shape {
	case orchard.ShapeCircle:
		if def.Radius > 0 {
			return def.Radius / 20
		}
	case orchard.ShapeRect:
		if a := def.Width * def.Height; a > 0 {
			return a / 1600
		}
	}
	return 1
}

// CreateBody adds a body and returns its ID. IDs start at 1 and are never
// reused.
func (w *World) CreateBody(def orchard.BodyDef) orchard.BodyID {
	w.next++
	b := &body{
		id:       w.next,
		def:      def,
		static:   def.Static,
		category: def.Category,
		mask:     def.Mask,
		scale:    1,
	}

	if def.Static {
		b.body = cp.NewKinematicBody()
	} else {
		b.body = cp.NewBody(0, 0)
	}
	b.body.SetVelocityUpdateFunc(w.updateVelocity)
	w.space.AddBody(b.body)
	b.body.SetPosition(vec(def.Position))
	b.body.SetAngle(def.Angle)

	switch def.Shape {
	case orchard.ShapeRect:
		b.shape = cp.NewBox(b.body, def.Width, def.Height, 0)
	default:
		b.shape = cp.NewCircle(b.body, def.Radius, cp.Vector{})
	}
	b.shape.SetElasticity(def.Restitution)
	b.shape.SetFriction(def.Friction)
	b.shape.SetFilter(filterFor(def.Category, def.Mask))
	b.shape.UserData = b.id
	w.space.AddShape(b.shape)
	// Mass lives on the shape so the body regains it when it turns dynamic.
	b.shape.SetMass(massFor(def))

	w.bodies[b.id] = b
	w.order = append(w.order, b.id)
	return b.id
}

// updateVelocity integrates gravity and damping, then clamps the speed.
func (w *World) updateVelocity(b *cp.Body, gravity cp.Vector, damping, dt float64) {
	cp.BodyUpdateVelocity(b, gravity, damping, dt)
	if limit := w.cfg.MaxVelocity; limit > 0 {
		v := b.Velocity().Clamp(limit)
		b.SetVelocity(v.X, v.Y)
	}
}

// RemoveBody deletes a body. A body held by the pointer is dropped without a
// drag end.
func (w *World) RemoveBody(id orchard.BodyID) {
	b, ok := w.bodies[id]
	if !ok {
		return
	}
	if w.jointOn == id {
		w.dropJoint()
	}
	if w.pointer.grabbed == id {
		w.pointer.grabbed = 0
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	delete(w.bodies, id)
	for i, o := range w.order {
		if o == id {
			copy(w.order[i:], w.order[i+1:])
			w.order = w.order[:len(w.order)-1]
			break
		}
	}
}

// HasBody reports whether id is a live body.
func (w *World) HasBody(id orchard.BodyID) bool {
	_, ok := w.bodies[id]
	return ok
}

// Def returns the definition a body was created with.
func (w *World) Def(id orchard.BodyID) (orchard.BodyDef, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return orchard.BodyDef{}, false
	}
	return b.def, true
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

func (w *World) Position(id orchard.BodyID) orchard.Vec2 {
	if b, ok := w.bodies[id]; ok {
		return point(b.body.Position())
	}
	return orchard.Vec2{}
}

// SetPosition teleports a body. Velocity is left untouched.
func (w *World) SetPosition(id orchard.BodyID, p orchard.Vec2) {
	if b, ok := w.bodies[id]; ok && p.Finite() {
		b.body.SetPosition(vec(p))
		b.shape.CacheBB()
	}
}

func (w *World) Angle(id orchard.BodyID) float64 {
	if b, ok := w.bodies[id]; ok {
		return b.body.Angle()
	}
	return 0
}

func (w *World) SetAngle(id orchard.BodyID, radians float64) {
	if b, ok := w.bodies[id]; ok && !math.IsNaN(radians) && !math.IsInf(radians, 0) {
		b.body.SetAngle(radians)
		b.shape.CacheBB()
	}
}

// Velocity returns a body's linear velocity.
func (w *World) Velocity(id orchard.BodyID) orchard.Vec2 {
	if b, ok := w.bodies[id]; ok {
		return point(b.body.Velocity())
	}
	return orchard.Vec2{}
}

func (w *World) SetVelocity(id orchard.BodyID, v orchard.Vec2) {
	if b, ok := w.bodies[id]; ok && !b.static && v.Finite() {
		b.body.SetVelocity(v.X, v.Y)
	}
}

func (w *World) SetAngularVelocity(id orchard.BodyID, spin float64) {
	if b, ok := w.bodies[id]; ok && !b.static {
		b.body.SetAngularVelocity(spin)
	}
}

func (w *World) Static(id orchard.BodyID) bool {
	if b, ok := w.bodies[id]; ok {
		return b.static
	}
	return false
}

// SetStatic freezes or releases a body. Freezing zeroes its velocity and
// lets go of the pointer joint; the joint is reattached on the next step if
// the body is still grabbed and dynamic again.
func (w *World) SetStatic(id orchard.BodyID, static bool) {
	b, ok := w.bodies[id]
	if !ok || b.static == static {
		return
	}
	b.static = static
	if static {
		if w.jointOn == id {
			w.dropJoint()
		}
		b.body.SetType(cp.BODY_KINEMATIC)
		b.body.SetVelocity(0, 0)
		b.body.SetAngularVelocity(0)
		return
	}
	b.body.SetType(cp.BODY_DYNAMIC)
}

func (w *World) Filter(id orchard.BodyID) (orchard.Category, orchard.Category) {
	if b, ok := w.bodies[id]; ok {
		return b.category, b.mask
	}
	return orchard.CategoryNone, orchard.CategoryNone
}

func (w *World) SetCategory(id orchard.BodyID, c orchard.Category) {
	if b, ok := w.bodies[id]; ok && b.category != c {
		b.category = c
		b.shape.SetFilter(filterFor(b.category, b.mask))
	}
}

func (w *World) SetMask(id orchard.BodyID, m orchard.Category) {
	if b, ok := w.bodies[id]; ok && b.mask != m {
		b.mask = m
		b.shape.SetFilter(filterFor(b.category, b.mask))
	}
}

// Scale is a render property only; the collision shape keeps its size.
func (w *World) Scale(id orchard.BodyID) float64 {
	if b, ok := w.bodies[id]; ok {
		return b.scale
	}
	return 0
}

func (w *World) SetScale(id orchard.BodyID, s float64) {
	if b, ok := w.bodies[id]; ok {
		b.scale = s
	}
}

// BodiesAt returns every body whose shape contains p, topmost first. The
// test ignores collision filters, so bodies that collide with nothing are
// still found.
func (w *World) BodiesAt(p orchard.Vec2) []orchard.BodyID {
	if !p.Finite() {
		return nil
	}
	var out []orchard.BodyID
	for i := len(w.order) - 1; i >= 0; i-- {
		if b := w.bodies[w.order[i]]; contains(b, p) {
			out = append(out, b.id)
		}
	}
	return out
}

// contains reports whether p lies inside or on the body's shape.
func contains(b *body, p orchard.Vec2) bool {
	return b.shape.PointQuery(vec(p)).Distance <= 0
}

// DrawOrder returns a copy of the paint order.
func (w *World) DrawOrder() []orchard.BodyID {
	out := make([]orchard.BodyID, len(w.order))
	copy(out, w.order)
	return out
}

// SetDrawOrder replaces the paint order. Unknown IDs are dropped and bodies
// missing from order keep their relative position at the bottom.
func (w *World) SetDrawOrder(order []orchard.BodyID) {
	seen := make(map[orchard.BodyID]bool, len(order))
	next := make([]orchard.BodyID, 0, len(w.bodies))
	for _, id := range order {
		if _, ok := w.bodies[id]; ok && !seen[id] {
			seen[id] = true
			next = append(next, id)
		}
	}
	missing := make([]orchard.BodyID, 0, len(w.bodies)-len(next))
	for _, id := range w.order {
		if !seen[id] {
			missing = append(missing, id)
		}
	}
	w.order = append(missing, next...)
}

// SetEventHandler registers the single receiver of pointer events.
func (w *World) SetEventHandler(fn func(orchard.Event)) {
	w.handler = fn
}

func (w *World) emit(ev orchard.Event) {
	if w.handler != nil {
		w.handler(ev)
	}
}

var (
	_ orchard.Engine      = (*World)(nil)
	_ orchard.EventSource = (*World)(nil)
)
