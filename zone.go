package orchard

// ZoneName names one of the fixed stage regions.
type ZoneName string

const (
	ZoneMatrix ZoneName = "matrix"
	ZoneCart   ZoneName = "cart"
	ZoneBin    ZoneName = "bin"
)

// Zones is the registry of named zone rectangles. It is built once and never
// mutated afterwards.
type Zones struct {
	rects map[ZoneName]Rect
}

// NewZones builds the registry from the configured boxes.
func NewZones(cfg ZonesConfig) *Zones {
	return &Zones{rects: map[ZoneName]Rect{
		ZoneMatrix: cfg.Matrix.Rect(),
		ZoneCart:   cfg.Cart.Rect(),
		ZoneBin:    cfg.Bin.Rect(),
	}}
}

// Rect returns the bounds of the named zone.
func (z *Zones) Rect(name ZoneName) (Rect, bool) {
	r, ok := z.rects[name]
	return r, ok
}

// Contains reports whether p lies strictly inside the named zone. Unknown
// zones and non-finite points never match.
func (z *Zones) Contains(p Vec2, name ZoneName) bool {
	if !p.Finite() {
		return false
	}
	r, ok := z.rects[name]
	if !ok {
		return false
	}
	return r.ContainsStrict(p)
}

// Geometry holds the static bodies registered for the zones and the stage
// decorations that orchard animates.
type Geometry struct {
	Tree      BodyID
	Walls     []BodyID
	Cart      BodyID   // cart hit-zone
	CartParts []BodyID // hit-zone plus the cart's walls and floor
	Bin       BodyID   // bin hit-zone
	Lid       BodyID
	Flower    BodyID // cursor marker
}

// Depths used by the render order.
const (
	depthDefault = 0
	depthFlower  = 1
	depthFruit   = 2
	depthCart    = 3
)

// registerGeometry creates the static bodies matching the zone rectangles so
// that what is drawn and what is tested agree.
func registerGeometry(e Engine, z *Zones, cfg *Config, depth *depthManager) Geometry {
	var g Geometry

	tree := z.rects[ZoneMatrix]
	g.Tree = e.CreateBody(BodyDef{
		Label: "tree", Shape: ShapeRect, Position: tree.Center(),
		Width: tree.Width, Height: tree.Height, Static: true, Hidden: true,
		Category: CategoryTree, Mask: CategoryFruitsInTree,
	})

	w, h := cfg.WorldWidth, cfg.WorldHeight
	wall := w
	walls := []BodyDef{
		{Label: "wall-left", Position: Vec2{-wall / 2, h / 2}, Width: wall, Height: h * 3, Hidden: true},
		{Label: "wall-right", Position: Vec2{w + wall/2, h / 2}, Width: wall, Height: h * 3, Hidden: true},
		{Label: "wall-top", Position: Vec2{w / 2, -wall / 2}, Width: w * 3, Height: wall, Hidden: true},
		{Label: "ground", Position: Vec2{w / 2, h - cfg.Ground + wall/2}, Width: w * 3, Height: wall},
	}
	for _, def := range walls {
		def.Shape = ShapeRect
		def.Static = true
		def.Friction = 2
		def.Category = CategoryDefault
		def.Mask = CategoryAll
		g.Walls = append(g.Walls, e.CreateBody(def))
	}

	cart := z.rects[ZoneCart]
	cc := cart.Center()
	g.Cart = e.CreateBody(BodyDef{
		Label: "cart", Shape: ShapeRect, Position: cc,
		Width: cart.Width, Height: cart.Height, Static: true,
		Category: CategoryHitZone, Mask: CategoryAll,
	})
	depth.set(g.Cart, depthCart)
	g.CartParts = append(g.CartParts, g.Cart)
	for _, def := range []BodyDef{
		{Label: "cart-left", Position: Vec2{cc.X - cart.Width/2 + 16, cc.Y + 32}, Width: 32, Height: 224},
		{Label: "cart-right", Position: Vec2{cc.X + cart.Width/2 - 16, cc.Y + 32}, Width: 32, Height: 224},
		{Label: "cart-floor", Position: Vec2{cc.X, cc.Y + 176}, Width: cart.Width, Height: 192, Friction: 2},
	} {
		def.Shape = ShapeRect
		def.Static = true
		def.Hidden = true
		def.Category = CategoryDefault
		def.Mask = CategoryAll
		g.CartParts = append(g.CartParts, e.CreateBody(def))
	}

	bin := z.rects[ZoneBin]
	bc := bin.Center()
	g.Bin = e.CreateBody(BodyDef{
		Label: "bin", Shape: ShapeRect, Position: bc,
		Width: bin.Width, Height: bin.Height, Static: true,
		Category: CategoryHitZone, Mask: CategoryAll,
	})
	e.CreateBody(BodyDef{
		Label: "bin-can", Shape: ShapeRect, Position: Vec2{bc.X, bc.Y + 56},
		Width: bin.Width + 32, Height: bin.Height + 144, Static: true, Hidden: true,
		Category: CategoryDefault, Mask: CategoryAll,
	})
	g.Lid = e.CreateBody(BodyDef{
		Label: "bin-lid", Shape: ShapeRect, Position: Vec2{bc.X, bc.Y - 94},
		Width: bin.Width, Height: 32, Static: true,
		Category: CategoryDefault, Mask: CategoryNone,
	})

	g.Flower = e.CreateBody(BodyDef{
		Label: "flower", Shape: ShapeCircle, Position: Vec2{-32, -32},
		Radius: 32, Static: true, Category: CategoryDefault, Mask: CategoryNone,
	})
	e.SetScale(g.Flower, 0)
	depth.set(g.Flower, depthFlower)

	depth.apply(e)
	return g
}
