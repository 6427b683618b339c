package orchard

import "time"

// Stage owns every piece of orchard state: the store, the zones, the drag
// target, the transitions and the delayed actions. There are no globals; a
// program may run several stages against different engines.
//
// A Stage is driven from a single goroutine. The host calls HandleEvent for
// pointer input, Tick once per physics step and Frame once per rendered
// frame.
type Stage struct {
	cfg         *Config
	engine      Engine
	zones       *Zones
	store       *Store
	transitions *Transitions
	depth       *depthManager
	clock       scheduler
	geometry    Geometry

	drag    dragState
	cursor  Cursor
	binOpen bool

	kv          KeyValueStore
	lastPersist float64
	emptying    bool
	ready       bool

	sink  EventSink
	debug bool
	stats debugStats
}

// NewStage creates a stage over engine. A nil cfg uses DefaultConfig. The
// stage is inert until Init registers its geometry.
func NewStage(engine Engine, cfg *Config) *Stage {
	if engine == nil {
		panic("orchard: stage needs an engine")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Stage{
		cfg:         cfg,
		engine:      engine,
		zones:       NewZones(cfg.Zones),
		store:       NewStore(engine, cfg),
		transitions: NewTransitions(engine, cfg.Decay, cfg.Precision),
		depth:       newDepthManager(),
		cursor:      newCursor(),
	}
	s.store.Observe(s.onStoreChange)
	return s
}

// Init registers the zone geometry with the engine and recreates the fruits
// saved in kv. kv may be nil, in which case nothing is restored or saved.
// It returns the number of fruits restored.
func (s *Stage) Init(kv KeyValueStore) int {
	if s.ready {
		return 0
	}
	s.ready = true
	s.kv = kv
	s.geometry = registerGeometry(s.engine, s.zones, s.cfg, s.depth)
	if src, ok := s.engine.(EventSource); ok {
		src.SetEventHandler(s.HandleEvent)
	}
	n := s.restoreFruits(s.Restore())
	s.logf("restored %d fruits", n)
	return n
}

// CreateFruit adds a fruit at (x, y) that grows in from nothing.
func (s *Stage) CreateFruit(x, y float64, cfg FruitConfig) *Fruit {
	f := s.store.Create(x, y, cfg)
	s.engine.SetScale(f.ID, 0)
	s.transitions.Grow(f.ID, 1)
	return f
}

// Tick runs once per physics step: delayed actions fall due, loose fruits are
// re-zoned, and a snapshot is written at most once per persist interval.
func (s *Stage) Tick(dt float64) {
	var start time.Time
	if s.debug {
		start = time.Now()
	}

	s.clock.advance(dt)

	var classifyStart time.Time
	if s.debug {
		classifyStart = time.Now()
	}
	s.classifyAll()
	if s.debug {
		s.stats.classifyTime = time.Since(classifyStart)
	}

	if s.kv != nil && s.clock.now-s.lastPersist > s.cfg.PersistInterval {
		s.persistBestEffort()
		s.lastPersist = s.clock.now
	}

	if s.debug {
		s.stats.tickTime = time.Since(start)
		s.stats.pending = s.clock.pending()
	}
}

// Frame runs once per rendered frame with the elapsed time since the last
// one: the drag claim is settled, transitions and label fades advance, and
// the cursor and labels are refreshed.
func (s *Stage) Frame(dt float64) {
	var start time.Time
	if s.debug {
		start = time.Now()
	}

	s.resolveClaim()
	s.transitions.Update(dt)
	for _, f := range s.store.All() {
		f.Field.update(dt)
	}
	s.updateCursor(dt)
	s.updateFields()

	if s.debug {
		s.stats.frameTime = time.Since(start)
		s.stats.transitions = s.transitions.Len()
		s.debugLog()
	}
}

// Teardown writes a final snapshot regardless of the debounce interval.
func (s *Stage) Teardown() error {
	if s.drag.active() {
		s.dragEnd(Event{Type: EventDragEnd, Body: s.drag.target, Pointer: s.cursor.Pointer})
	}
	return s.Persist()
}

// Config returns the stage configuration. It must not be modified.
func (s *Stage) Config() *Config {
	return s.cfg
}

// Engine returns the engine the stage drives.
func (s *Stage) Engine() Engine {
	return s.engine
}

// Store returns the fruit store.
func (s *Stage) Store() *Store {
	return s.store
}

// Zones returns the zone registry.
func (s *Stage) Zones() *Zones {
	return s.zones
}

// Geometry returns the bodies registered by Init.
func (s *Stage) Geometry() Geometry {
	return s.geometry
}

// Transitions returns the stage animator.
func (s *Stage) Transitions() *Transitions {
	return s.transitions
}

// Fruits returns the live fruits in insertion order.
func (s *Stage) Fruits() []*Fruit {
	return s.store.All()
}

// Fruit returns the live fruit with the given id.
func (s *Stage) Fruit(id FruitID) (*Fruit, bool) {
	return s.store.Get(id)
}

// Now returns the stage clock in seconds.
func (s *Stage) Now() float64 {
	return s.clock.now
}
