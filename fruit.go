package orchard

// Fruit is a task marker. Its position and angle live in the Engine; the
// record keeps everything the engine does not know about.
type Fruit struct {
	ID       FruitID
	Location Location
	Ripeness float64
	Field    *Field

	// Interactive is false once the fruit starts clearing; it can no longer
	// be grabbed or edited.
	Interactive bool

	store *Store
}

// FruitConfig holds the optional creation parameters. The zero value creates
// an empty matrix fruit with derived ripeness.
type FruitConfig struct {
	Text     string
	Angle    float64
	Location Location

	// Ripeness is used only when HasRipeness is set; otherwise it is derived
	// from the horizontal position.
	Ripeness    float64
	HasRipeness bool
}

// Position returns the fruit's world position.
func (f *Fruit) Position() Vec2 {
	return f.store.engine.Position(f.ID)
}

// Angle returns the fruit's rotation in radians.
func (f *Fruit) Angle() float64 {
	return f.store.engine.Angle(f.ID)
}

// Static reports whether the engine holds the fruit immobile.
func (f *Fruit) Static() bool {
	return f.store.engine.Static(f.ID)
}

// Category returns the fruit's collision category.
func (f *Fruit) Category() Category {
	c, _ := f.store.engine.Filter(f.ID)
	return c
}

// Mask returns the fruit's collision mask.
func (f *Fruit) Mask() Category {
	_, m := f.store.engine.Filter(f.ID)
	return m
}

// Text returns the label value.
func (f *Fruit) Text() string {
	if f.Field == nil {
		return ""
	}
	return f.Field.Value
}

// Placement is the physical state implied by a location.
type Placement struct {
	Static   bool
	Category Category
	Upright  bool
}

// placementFor returns the static flag, collision category and orientation a
// fruit takes when it settles in loc.
func placementFor(loc Location) Placement {
	switch loc {
	case LocationMatrix:
		return Placement{Static: true, Category: CategoryFruitsInTree, Upright: true}
	case LocationClearing:
		return Placement{Static: true, Category: CategoryDefault}
	default:
		return Placement{Static: false, Category: CategoryDefault}
	}
}

// bucketRipeness splits the impact axis into the two sprite buckets.
func bucketRipeness(impact float64) float64 {
	if impact < 50 {
		return 0
	}
	return 100
}
