package orchard

import (
	"math"
	"testing"
)

func TestStoreCreateMatrixPlacement(t *testing.T) {
	e := newFakeEngine()
	st := NewStore(e, DefaultConfig())

	f := st.Create(600, 500, FruitConfig{Text: "water plants", Angle: 1.2})
	if f.Location != LocationMatrix {
		t.Errorf("location = %v, want matrix", f.Location)
	}
	if !f.Static() {
		t.Error("matrix fruit is not static")
	}
	if f.Angle() != 0 {
		t.Errorf("angle = %v, want 0", f.Angle())
	}
	if f.Category() != CategoryFruitsInTree {
		t.Errorf("category = %v, want FruitsInTree", f.Category())
	}
	if f.Mask() != CategoryDefault {
		t.Errorf("mask = %v, want Default", f.Mask())
	}
	if f.Text() != "water plants" {
		t.Errorf("text = %q", f.Text())
	}
	if !f.Interactive {
		t.Error("new fruit is not interactive")
	}
}

func TestStoreCreateLoosePlacement(t *testing.T) {
	e := newFakeEngine()
	st := NewStore(e, DefaultConfig())

	f := st.Create(600, 1500, FruitConfig{Angle: 1.2, Location: LocationFloor})
	if f.Static() {
		t.Error("floor fruit is static")
	}
	if f.Angle() != 1.2 {
		t.Errorf("angle = %v, want 1.2 kept", f.Angle())
	}
	if f.Category() != CategoryDefault {
		t.Errorf("category = %v, want Default", f.Category())
	}
}

func TestStoreRipeness(t *testing.T) {
	e := newFakeEngine()
	st := NewStore(e, DefaultConfig())

	tests := []struct {
		name string
		x    float64
		cfg  FruitConfig
		want float64
	}{
		{"left of midpoint", 700, FruitConfig{}, 0},
		{"midpoint is ripe", 800, FruitConfig{}, 100},
		{"far right clamps", 1500, FruitConfig{}, 100},
		{"far left clamps", 0, FruitConfig{}, 0},
		{"explicit wins", 1200, FruitConfig{Ripeness: 0, HasRipeness: true}, 0},
		{"explicit clamps", 400, FruitConfig{Ripeness: 140, HasRipeness: true}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := st.Create(tt.x, 600, tt.cfg)
			if f.Ripeness != tt.want {
				t.Errorf("ripeness = %v, want %v", f.Ripeness, tt.want)
			}
		})
	}
}

func TestStoreInsertionOrderAndRemove(t *testing.T) {
	e := newFakeEngine()
	st := NewStore(e, DefaultConfig())

	var changes []StoreChange
	st.Observe(func(c StoreChange) { changes = append(changes, c) })

	a := st.Create(500, 500, FruitConfig{Text: "a"})
	b := st.Create(600, 500, FruitConfig{Text: "b"})
	c := st.Create(700, 500, FruitConfig{Text: "c"})

	st.Remove(b.ID)
	st.Remove(b.ID) // unknown now, no-op
	st.Remove(9999)

	all := st.All()
	if len(all) != 2 || all[0] != a || all[1] != c {
		t.Fatalf("All = %v, want [a c]", all)
	}
	if e.HasBody(b.ID) {
		t.Error("removed fruit still has a body")
	}
	if !b.Field.Detached() {
		t.Error("removed fruit field not detached")
	}
	if len(changes) != 4 {
		t.Fatalf("observed %d changes, want 4", len(changes))
	}
	if changes[3].Kind != FruitRemoved || changes[3].Fruit != b {
		t.Errorf("last change = %+v, want removal of b", changes[3])
	}
}

func TestStoreRemoveAll(t *testing.T) {
	e := newFakeEngine()
	st := NewStore(e, DefaultConfig())
	for i := 0; i < 5; i++ {
		st.Create(400+float64(i)*100, 500, FruitConfig{})
	}
	st.RemoveAll()
	if st.Len() != 0 {
		t.Errorf("Len = %d, want 0", st.Len())
	}
	if len(e.bodies) != 0 {
		t.Errorf("engine holds %d bodies, want 0", len(e.bodies))
	}
}

func TestStoreImpactEffort(t *testing.T) {
	e := newFakeEngine()
	st := NewStore(e, DefaultConfig())

	f := st.Create(800, 672, FruitConfig{})
	if got := st.Impact(f); got != 50 {
		t.Errorf("impact = %v, want 50", got)
	}
	if got := st.Effort(f); got != 50 {
		t.Errorf("effort = %v, want 50", got)
	}
	e.SetPosition(f.ID, Vec2{0, 1600})
	if got := st.Impact(f); got != 0 {
		t.Errorf("impact = %v, want clamped 0", got)
	}
	if got := st.Effort(f); got != 100 {
		t.Errorf("effort = %v, want clamped 100", got)
	}
}

func TestLinearScaleDegenerate(t *testing.T) {
	if got := (LinearScale{Min: 5, Max: 5}).Map(7); got != 0 {
		t.Errorf("degenerate Map = %v, want 0", got)
	}
	if got := (LinearScale{Min: 0, Max: 10}).Map(math.NaN()); got != 0 {
		t.Errorf("Map(NaN) = %v, want 0", got)
	}
}

func TestNewStorePanicsWithoutEngine(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewStore(nil) did not panic")
		}
	}()
	NewStore(nil, DefaultConfig())
}

func TestLocationText(t *testing.T) {
	for _, loc := range []Location{LocationMatrix, LocationFloor, LocationCart, LocationClearing} {
		text, err := loc.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", loc, err)
		}
		var back Location
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != loc {
			t.Errorf("round trip %v -> %q -> %v", loc, text, back)
		}
	}
	var l Location
	if err := l.UnmarshalText([]byte("pond")); err == nil {
		t.Error("UnmarshalText accepted an unknown location")
	}
}
