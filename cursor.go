package orchard

import "math"

// CursorStyle is the pointer style the front end should show.
type CursorStyle string

const (
	CursorDefault CursorStyle = ""
	CursorGrab    CursorStyle = "grab"
	CursorPointer CursorStyle = "pointer"
)

// Cursor is the per-frame pointer feedback.
type Cursor struct {
	Style   CursorStyle
	Hovered FruitID // zero when no fruit is hovered
	Pointer Vec2    // NaN until the pointer first enters the canvas
}

func newCursor() Cursor {
	return Cursor{Pointer: Vec2{math.NaN(), math.NaN()}}
}

// updateCursor picks the hovered fruit and drives the flower that follows
// the pointer over the tree.
func (s *Stage) updateCursor(dt float64) {
	flower := s.geometry.Flower

	if id := s.Dragged(); id != 0 {
		s.cursor.Hovered = id
		s.cursor.Style = CursorGrab
		s.shrinkFlower(flower)
		return
	}

	if id := s.fruitAt(s.cursor.Pointer); id != 0 {
		s.cursor.Style = CursorGrab
		s.cursor.Hovered = id
		s.shrinkFlower(flower)
		return
	}

	s.cursor.Style = CursorDefault
	s.cursor.Hovered = 0

	p := s.cursor.Pointer
	if !p.Finite() || flower == 0 {
		return
	}
	s.engine.SetPosition(flower, p)
	if dt > 0 {
		s.engine.SetAngle(flower, s.engine.Angle(flower)+s.cfg.FlowerSpin*dt)
	}

	if s.zones.Contains(p, ZoneMatrix) {
		s.cursor.Style = CursorPointer
		s.transitions.Grow(flower, 1)
		return
	}
	s.shrinkFlower(flower)
}

func (s *Stage) shrinkFlower(flower BodyID) {
	if flower != 0 {
		s.transitions.Shrink(flower, 0)
	}
}

// fruitAt returns the topmost interactive fruit under p.
func (s *Stage) fruitAt(p Vec2) FruitID {
	if !p.Finite() {
		return 0
	}
	for _, id := range s.engine.BodiesAt(p) {
		if f, ok := s.store.Get(id); ok && f.Interactive {
			return id
		}
	}
	return 0
}

// updateFields lays out every label over its fruit. Only the hovered label
// is shown, and it accepts typing unless its fruit is being dragged.
func (s *Stage) updateFields() {
	dragged := s.Dragged()
	for _, f := range s.store.All() {
		s.store.layoutField(f)
		hovered := f.ID == s.cursor.Hovered
		f.Field.Visible = hovered
		f.Field.Interactive = hovered && f.ID != dragged && f.Interactive
	}
}

// Cursor returns the current pointer feedback.
func (s *Stage) Cursor() Cursor {
	return s.cursor
}

// editable returns the fruit whose label currently takes keyboard input.
func (s *Stage) editable() (*Fruit, bool) {
	f, ok := s.store.Get(s.cursor.Hovered)
	if !ok || !f.Field.Interactive {
		return nil, false
	}
	return f, true
}

// TypeText appends runes to the interactive label. It reports whether a
// label took the input.
func (s *Stage) TypeText(runes []rune) bool {
	f, ok := s.editable()
	if !ok || len(runes) == 0 {
		return false
	}
	f.Field.Value += string(runes)
	return true
}

// Backspace deletes the last rune of the interactive label.
func (s *Stage) Backspace() bool {
	f, ok := s.editable()
	if !ok {
		return false
	}
	r := []rune(f.Field.Value)
	if len(r) == 0 {
		return false
	}
	f.Field.Value = string(r[:len(r)-1])
	return true
}
