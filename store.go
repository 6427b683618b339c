package orchard

// ChangeKind says what happened to the store.
type ChangeKind uint8

const (
	FruitAdded ChangeKind = iota
	FruitRemoved
)

// StoreChange is passed to store observers after every add and remove.
type StoreChange struct {
	Kind  ChangeKind
	Fruit *Fruit
}

// Store maps fruit identities to their records. Iteration follows insertion
// order so persistence and listings are deterministic.
type Store struct {
	engine    Engine
	cfg       *Config
	fruits    []*Fruit
	byID      map[FruitID]*Fruit
	observers []func(StoreChange)
}

// NewStore creates an empty store whose fruits live in engine.
func NewStore(engine Engine, cfg *Config) *Store {
	if engine == nil {
		panic("orchard: store needs an engine")
	}
	return &Store{
		engine: engine,
		cfg:    cfg,
		byID:   make(map[FruitID]*Fruit),
	}
}

// Observe registers fn to be called after every add and remove.
func (s *Store) Observe(fn func(StoreChange)) {
	s.observers = append(s.observers, fn)
}

func (s *Store) notify(kind ChangeKind, f *Fruit) {
	for _, fn := range s.observers {
		fn(StoreChange{Kind: kind, Fruit: f})
	}
}

// Create allocates a circular body at (x, y) with a label field. Matrix
// fruits are forced upright, static, and into the fruits-in-tree category.
func (s *Store) Create(x, y float64, cfg FruitConfig) *Fruit {
	id := s.engine.CreateBody(BodyDef{
		Label:       "fruit",
		Shape:       ShapeCircle,
		Position:    Vec2{x, y},
		Radius:      s.cfg.FruitRadius,
		Angle:       cfg.Angle,
		Category:    CategoryDefault,
		Mask:        CategoryDefault,
		Grabbable:   true,
		Restitution: 0.25,
		Friction:    2,
	})

	f := &Fruit{
		ID:          id,
		Location:    cfg.Location,
		Field:       newField(cfg.Text),
		Interactive: true,
		store:       s,
	}
	if cfg.HasRipeness {
		s.recolor(f, &cfg.Ripeness)
	} else {
		s.recolor(f, nil)
	}
	s.layoutField(f)

	s.fruits = append(s.fruits, f)
	s.byID[id] = f

	if cfg.Location == LocationMatrix {
		s.settle(f, LocationMatrix)
	}
	s.notify(FruitAdded, f)
	return f
}

// Remove detaches the fruit's field and engine body. Unknown ids are ignored.
func (s *Store) Remove(id FruitID) {
	f, ok := s.byID[id]
	if !ok {
		return
	}
	delete(s.byID, id)
	for i, item := range s.fruits {
		if item == f {
			copy(s.fruits[i:], s.fruits[i+1:])
			s.fruits[len(s.fruits)-1] = nil
			s.fruits = s.fruits[:len(s.fruits)-1]
			break
		}
	}
	f.Field.detach()
	f.Interactive = false
	s.engine.RemoveBody(id)
	s.notify(FruitRemoved, f)
}

// RemoveAll removes every fruit at once, with no animation.
func (s *Store) RemoveAll() {
	for len(s.fruits) > 0 {
		s.Remove(s.fruits[len(s.fruits)-1].ID)
	}
}

// Get returns the live fruit with the given id.
func (s *Store) Get(id FruitID) (*Fruit, bool) {
	f, ok := s.byID[id]
	return f, ok
}

// Has reports whether id belongs to a live fruit. Every other body is
// collaborator geometry.
func (s *Store) Has(id BodyID) bool {
	_, ok := s.byID[id]
	return ok
}

// All returns the fruits in insertion order. The returned slice MUST NOT be
// mutated by the caller.
func (s *Store) All() []*Fruit {
	return s.fruits
}

// Len returns the number of live fruits.
func (s *Store) Len() int {
	return len(s.fruits)
}

// Impact projects the fruit's x into the [0, 100] reporting space.
func (s *Store) Impact(f *Fruit) float64 {
	return s.cfg.Impact.Map(f.Position().X)
}

// Effort projects the fruit's y into the [0, 100] reporting space.
func (s *Store) Effort(f *Fruit) float64 {
	return s.cfg.Effort.Map(f.Position().Y)
}

// recolor sets the ripeness, deriving it from the current x unless an
// explicit value is given.
func (s *Store) recolor(f *Fruit, ripeness *float64) {
	if ripeness != nil {
		f.Ripeness = clamp(*ripeness, 0, 100)
		return
	}
	f.Ripeness = bucketRipeness(s.Impact(f))
}

// rotateUp zeroes angle and spin.
func (s *Store) rotateUp(f *Fruit) {
	s.engine.SetAngle(f.ID, 0)
	s.engine.SetAngularVelocity(f.ID, 0)
}

// settle applies the placement implied by loc.
func (s *Store) settle(f *Fruit, loc Location) {
	p := placementFor(loc)
	f.Location = loc
	if p.Upright {
		s.rotateUp(f)
	}
	s.engine.SetCategory(f.ID, p.Category)
	s.engine.SetStatic(f.ID, p.Static)
}

// layoutField positions the label over the fruit in world percentages.
func (s *Store) layoutField(f *Fruit) {
	p := f.Position()
	if !p.Finite() {
		return
	}
	f.Field.X = p.X / s.cfg.WorldWidth * 100
	f.Field.Y = p.Y / s.cfg.WorldHeight * 100
}
