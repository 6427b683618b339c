package sim

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Step advances the world by dt seconds. The mouse body is moved onto the
// pointer first so the pivot joint drags the grabbed body along during the
// space step.
func (w *World) Step(dt float64) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}
	w.syncJoint()
	if w.joint != nil {
		target := vec(w.pointer.pos)
		prev := w.mouse.Position()
		w.mouse.SetVelocity((target.X-prev.X)/dt, (target.Y-prev.Y)/dt)
		w.mouse.SetPosition(target)
	}
	w.space.Step(dt)
}

// syncJoint attaches the pivot joint to the grabbed body while it is
// dynamic. A static body cannot be pulled, and a joint between two
// kinematic bodies has no mass to solve for.
func (w *World) syncJoint() {
	id := w.pointer.grabbed
	b, ok := w.bodies[id]
	if !ok || b.static || !w.pointer.pos.Finite() {
		w.dropJoint()
		return
	}
	if w.joint != nil && w.jointOn == id {
		return
	}
	w.dropJoint()

	w.mouse.SetPosition(vec(w.pointer.pos))
	w.mouse.SetVelocity(0, 0)
	w.joint = cp.NewPivotJoint2(w.mouse, b.body, cp.Vector{}, w.pointer.anchor)
	w.joint.SetErrorBias(math.Pow(1-w.cfg.GrabCorrection, 60))
	w.space.AddConstraint(w.joint)
	w.jointOn = id
}

func (w *World) dropJoint() {
	if w.joint == nil {
		return
	}
	w.space.RemoveConstraint(w.joint)
	w.joint = nil
	w.jointOn = 0
}
