package orchard

import (
	"fmt"
	"math"
)

// Vec2 is a 2D vector used for positions, offsets and pointer coordinates.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Finite reports whether both components are neither NaN nor infinite.
func (v Vec2) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) &&
		!math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Rect is an axis-aligned rectangle in world space. The coordinate system has
// its origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// RectCentered builds a Rect from its center and size, the way bodies are
// described to the engine.
func RectCentered(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, Width: w, Height: h}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// ContainsStrict reports whether p lies strictly inside r.
// Points on the edge are outside.
func (r Rect) ContainsStrict(p Vec2) bool {
	return p.X > r.X && p.X < r.X+r.Width &&
		p.Y > r.Y && p.Y < r.Y+r.Height
}

// BodyID identifies a body inside the Engine. Zero is never a valid body.
type BodyID uint32

// FruitID identifies a fruit. It is always the ID of the fruit's body.
type FruitID = BodyID

// Location is the logical zone a fruit occupies.
type Location uint8

const (
	LocationMatrix   Location = iota // resting in the tree canopy (default)
	LocationFloor                    // loose on the ground
	LocationCart                     // inside the cart
	LocationClearing                 // being removed
)

var locationNames = [...]string{"matrix", "floor", "cart", "clearing"}

// String returns the persisted name of the location.
func (l Location) String() string {
	if int(l) < len(locationNames) {
		return locationNames[l]
	}
	return fmt.Sprintf("Location(%d)", uint8(l))
}

// MarshalText implements encoding.TextMarshaler.
func (l Location) MarshalText() ([]byte, error) {
	if int(l) >= len(locationNames) {
		return nil, fmt.Errorf("orchard: unknown location %d", uint8(l))
	}
	return []byte(locationNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Location) UnmarshalText(text []byte) error {
	loc, ok := ParseLocation(string(text))
	if !ok {
		return fmt.Errorf("orchard: unknown location %q", text)
	}
	*l = loc
	return nil
}

// ParseLocation maps a persisted location name back to a Location.
func ParseLocation(name string) (Location, bool) {
	for i, n := range locationNames {
		if n == name {
			return Location(i), true
		}
	}
	return LocationMatrix, false
}

// Category is a collision bit. Bodies collide when each one's mask contains
// the other's category.
type Category uint16

const (
	CategoryNone         Category = 0x0000
	CategoryDefault      Category = 0x0001 // walls, floor fruits, cart geometry
	CategoryTree         Category = 0x0002 // the canopy body
	CategoryFruitsInTree Category = 0x0004 // fruits held by the tree
	CategoryHitZone      Category = 0x0008 // cart and bin hit-zones
	CategoryAll          Category = 0xFFFF
)

// CanCollide reports whether two bodies with the given filters interact.
func CanCollide(catA, maskA, catB, maskB Category) bool {
	return maskA&catB != 0 && maskB&catA != 0
}

// EventType identifies a kind of pointer event delivered by the engine.
type EventType uint8

const (
	EventPointerDown  EventType = iota // fires when the pointer is pressed, on a body or not
	EventDragStart                     // fires when the engine grabs a body under the pointer
	EventDrag                          // fires on every pointer move while the button is held
	EventDragEnd                       // fires when the grabbed body is released
	EventPointerMove                   // fires on hover moves with no button held
	EventPointerLeave                  // fires when the pointer leaves the canvas
)

var eventNames = [...]string{"pointerdown", "dragstart", "drag", "dragend", "pointermove", "pointerleave"}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// Event is a pointer event. Body is zero when the event does not concern a
// specific body. Pointer holds the world-space pointer position and may be
// non-finite before the pointer has ever entered the canvas.
type Event struct {
	Type    EventType
	Body    BodyID
	Pointer Vec2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LinearScale maps a domain onto [0, 100] with clamping.
type LinearScale struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Map projects v into [0, 100]. A degenerate domain maps everything to 0.
func (s LinearScale) Map(v float64) float64 {
	span := s.Max - s.Min
	if span == 0 || math.IsNaN(v) {
		return 0
	}
	return clamp((v-s.Min)/span*100, 0, 100)
}
