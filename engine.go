package orchard

// Shape selects the collision geometry of a body.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeRect
)

// BodyDef describes a body to create. Rectangles are centered on Position.
type BodyDef struct {
	Label       string
	Shape       Shape
	Position    Vec2
	Radius      float64 // ShapeCircle
	Width       float64 // ShapeRect
	Height      float64 // ShapeRect
	Angle       float64
	Static      bool
	Category    Category
	Mask        Category
	Grabbable   bool // the pointer constraint may pick this body up
	Hidden      bool // collision only, never drawn
	Restitution float64
	Friction    float64
}

// Engine is the simulation and rendering collaborator. Orchard never steps
// physics itself; it only reads and adjusts bodies through this interface.
// Methods taking an unknown BodyID must be no-ops (setters) or return zero
// values (getters).
type Engine interface {
	CreateBody(def BodyDef) BodyID
	RemoveBody(id BodyID)
	HasBody(id BodyID) bool

	Position(id BodyID) Vec2
	SetPosition(id BodyID, p Vec2)
	Angle(id BodyID) float64
	SetAngle(id BodyID, radians float64)
	SetVelocity(id BodyID, v Vec2)
	SetAngularVelocity(id BodyID, w float64)
	Static(id BodyID) bool
	SetStatic(id BodyID, static bool)

	// Filter returns the body's collision category and mask.
	Filter(id BodyID) (category, mask Category)
	SetCategory(id BodyID, c Category)
	SetMask(id BodyID, m Category)

	// Scale is the render scale of the body's sprite (1 = natural size).
	Scale(id BodyID) float64
	SetScale(id BodyID, s float64)

	// BodiesAt returns the bodies whose shape contains p, topmost first.
	BodiesAt(p Vec2) []BodyID
	// Grabbed returns the body currently held by the pointer constraint,
	// or zero.
	Grabbed() BodyID

	// DrawOrder returns all bodies in paint order. The caller may keep the
	// slice; the engine must not reuse it.
	DrawOrder() []BodyID
	SetDrawOrder(order []BodyID)
}

// EventSource delivers pointer events to a single handler.
type EventSource interface {
	SetEventHandler(fn func(Event))
}
