package orchard

import (
	"errors"
	"math"
	"testing"
)

// fakeBody is a body of fakeEngine. Nothing moves unless a test moves it.
type fakeBody struct {
	def      BodyDef
	pos      Vec2
	angle    float64
	vel      Vec2
	spin     float64
	static   bool
	category Category
	mask     Category
	scale    float64
}

// fakeEngine is an Engine with no dynamics, used to drive a Stage
// deterministically.
type fakeEngine struct {
	next    BodyID
	bodies  map[BodyID]*fakeBody
	order   []BodyID
	grabbed BodyID
	handler func(Event)
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{bodies: make(map[BodyID]*fakeBody)}
}

func (e *fakeEngine) CreateBody(def BodyDef) BodyID {
	e.next++
	e.bodies[e.next] = &fakeBody{
		def:      def,
		pos:      def.Position,
		angle:    def.Angle,
		static:   def.Static,
		category: def.Category,
		mask:     def.Mask,
		scale:    1,
	}
	e.order = append(e.order, e.next)
	return e.next
}

func (e *fakeEngine) RemoveBody(id BodyID) {
	if _, ok := e.bodies[id]; !ok {
		return
	}
	delete(e.bodies, id)
	for i, b := range e.order {
		if b == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	if e.grabbed == id {
		e.grabbed = 0
	}
}

func (e *fakeEngine) HasBody(id BodyID) bool {
	_, ok := e.bodies[id]
	return ok
}

func (e *fakeEngine) Position(id BodyID) Vec2 {
	if b, ok := e.bodies[id]; ok {
		return b.pos
	}
	return Vec2{}
}

func (e *fakeEngine) SetPosition(id BodyID, p Vec2) {
	if b, ok := e.bodies[id]; ok {
		b.pos = p
	}
}

func (e *fakeEngine) Angle(id BodyID) float64 {
	if b, ok := e.bodies[id]; ok {
		return b.angle
	}
	return 0
}

func (e *fakeEngine) SetAngle(id BodyID, radians float64) {
	if b, ok := e.bodies[id]; ok {
		b.angle = radians
	}
}

func (e *fakeEngine) SetVelocity(id BodyID, v Vec2) {
	if b, ok := e.bodies[id]; ok {
		b.vel = v
	}
}

func (e *fakeEngine) SetAngularVelocity(id BodyID, w float64) {
	if b, ok := e.bodies[id]; ok {
		b.spin = w
	}
}

func (e *fakeEngine) Static(id BodyID) bool {
	if b, ok := e.bodies[id]; ok {
		return b.static
	}
	return false
}

func (e *fakeEngine) SetStatic(id BodyID, static bool) {
	if b, ok := e.bodies[id]; ok {
		b.static = static
	}
}

func (e *fakeEngine) Filter(id BodyID) (Category, Category) {
	if b, ok := e.bodies[id]; ok {
		return b.category, b.mask
	}
	return 0, 0
}

func (e *fakeEngine) SetCategory(id BodyID, c Category) {
	if b, ok := e.bodies[id]; ok {
		b.category = c
	}
}

func (e *fakeEngine) SetMask(id BodyID, m Category) {
	if b, ok := e.bodies[id]; ok {
		b.mask = m
	}
}

func (e *fakeEngine) Scale(id BodyID) float64 {
	if b, ok := e.bodies[id]; ok {
		return b.scale
	}
	return 0
}

func (e *fakeEngine) SetScale(id BodyID, s float64) {
	if b, ok := e.bodies[id]; ok {
		b.scale = s
	}
}

func (e *fakeEngine) BodiesAt(p Vec2) []BodyID {
	var out []BodyID
	for i := len(e.order) - 1; i >= 0; i-- {
		b := e.bodies[e.order[i]]
		switch b.def.Shape {
		case ShapeCircle:
			dx, dy := p.X-b.pos.X, p.Y-b.pos.Y
			if dx*dx+dy*dy <= b.def.Radius*b.def.Radius {
				out = append(out, e.order[i])
			}
		case ShapeRect:
			if math.Abs(p.X-b.pos.X) <= b.def.Width/2 && math.Abs(p.Y-b.pos.Y) <= b.def.Height/2 {
				out = append(out, e.order[i])
			}
		}
	}
	return out
}

func (e *fakeEngine) Grabbed() BodyID {
	return e.grabbed
}

func (e *fakeEngine) DrawOrder() []BodyID {
	out := make([]BodyID, len(e.order))
	copy(out, e.order)
	return out
}

func (e *fakeEngine) SetDrawOrder(order []BodyID) {
	e.order = order
}

func (e *fakeEngine) SetEventHandler(fn func(Event)) {
	e.handler = fn
}

// bodyByLabel returns the first body created with label.
func (e *fakeEngine) bodyByLabel(label string) BodyID {
	for _, id := range e.order {
		if e.bodies[id].def.Label == label {
			return id
		}
	}
	return 0
}

// memoryKV is an in-memory KeyValueStore.
type memoryKV struct {
	data    map[string][]byte
	saves   int
	saveErr error
	loadErr error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string][]byte)}
}

func (m *memoryKV) Load(key string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.data[key], nil
}

func (m *memoryKV) Save(key string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.data[key] = append([]byte(nil), data...)
	return nil
}

// recordingSink collects stage events.
type recordingSink struct {
	events []StageEvent
}

func (r *recordingSink) EmitEvent(ev StageEvent) {
	r.events = append(r.events, ev)
}

func (r *recordingSink) count(t StageEventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// newTestStage returns an initialized stage over a fake engine.
func newTestStage(t *testing.T) (*Stage, *fakeEngine) {
	t.Helper()
	e := newFakeEngine()
	s := NewStage(e, DefaultConfig())
	s.Init(nil)
	return s, e
}

// runFrames advances both loops n times at 60 Hz.
func runFrames(s *Stage, n int) {
	const dt = 1.0 / 60
	for i := 0; i < n; i++ {
		s.Tick(dt)
		s.Frame(dt)
	}
}

// grab simulates the engine picking up id under the pointer and the next
// frame confirming it.
func grab(s *Stage, e *fakeEngine, id BodyID) {
	e.grabbed = id
	s.HandleEvent(Event{Type: EventDragStart, Body: id, Pointer: e.Position(id)})
	s.Frame(1.0 / 60)
}

// release moves id to p and releases it.
func release(s *Stage, e *fakeEngine, id BodyID, p Vec2) {
	e.SetPosition(id, p)
	s.HandleEvent(Event{Type: EventDrag, Body: id, Pointer: p})
	e.grabbed = 0
	s.HandleEvent(Event{Type: EventDragEnd, Body: id, Pointer: p})
}

func TestFakeEngineSatisfiesInterfaces(t *testing.T) {
	var _ Engine = newFakeEngine()
	var _ EventSource = newFakeEngine()
	var _ KeyValueStore = newMemoryKV()
	var _ EventSink = &recordingSink{}
}

func TestInitWiresEventSource(t *testing.T) {
	e := newFakeEngine()
	s := NewStage(e, nil)
	s.Init(nil)
	if e.handler == nil {
		t.Fatal("Init did not register an event handler")
	}
	e.handler(Event{Type: EventPointerDown, Pointer: Vec2{800, 672}})
	if s.Store().Len() != 1 {
		t.Errorf("fruits = %d, want 1 after pointer down in the tree", s.Store().Len())
	}
}

var errBoom = errors.New("boom")
