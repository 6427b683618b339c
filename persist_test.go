package orchard

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSerializeBuyMilk(t *testing.T) {
	tests := []struct {
		name         string
		x            float64
		wantRipeness float64
	}{
		{"low bucket", 500, 0},
		{"high bucket", 1100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStage(t)
			s.CreateFruit(tt.x, 600, FruitConfig{Text: "Buy milk"})

			records := s.Records()
			if len(records) != 1 {
				t.Fatalf("records = %d, want 1", len(records))
			}
			r := records[0]
			if r.Location != LocationMatrix {
				t.Errorf("location = %v, want matrix", r.Location)
			}
			if r.Text != "Buy milk" {
				t.Errorf("text = %q, want %q", r.Text, "Buy milk")
			}
			if r.Ripeness != tt.wantRipeness {
				t.Errorf("ripeness = %v, want %v", r.Ripeness, tt.wantRipeness)
			}
			if r.X != tt.x || r.Y != 600 {
				t.Errorf("position = (%v, %v), want (%v, 600)", r.X, r.Y, tt.x)
			}
		})
	}
}

func TestRecordJSONSchema(t *testing.T) {
	data, err := EncodeRecords([]Record{{
		ID: 7, Angle: 0.5, Text: "t", X: 800, Y: 672,
		Impact: 50, Effort: 50, Location: LocationCart, Ripeness: 100,
	}})
	if err != nil {
		t.Fatal(err)
	}
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if len(raw) != 1 {
		t.Fatalf("entries = %d, want 1", len(raw))
	}
	for _, key := range []string{"id", "angle", "text", "x", "y", "impact", "effort", "location", "ripeness"} {
		if _, ok := raw[0][key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	if raw[0]["location"] != "cart" {
		t.Errorf("location = %v, want \"cart\"", raw[0]["location"])
	}

	empty, err := EncodeRecords(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(empty) != "[]" {
		t.Errorf("empty encoding = %s, want []", empty)
	}
}

func TestPersistRoundTrip(t *testing.T) {
	kv := newMemoryKV()
	e := newFakeEngine()
	s := NewStage(e, nil)
	s.Init(kv)

	s.CreateFruit(500, 600, FruitConfig{Text: "tree task"})
	s.CreateFruit(600, 1500, FruitConfig{Text: "floor task", Location: LocationFloor, Angle: 0.7})
	s.CreateFruit(1248, 1392, FruitConfig{Text: "cart task", Location: LocationCart, Ripeness: 0, HasRipeness: true})
	if err := s.Persist(); err != nil {
		t.Fatal(err)
	}
	before := s.Records()

	e2 := newFakeEngine()
	s2 := NewStage(e2, nil)
	if n := s2.Init(kv); n != 3 {
		t.Fatalf("restored %d fruits, want 3", n)
	}
	after := s2.Records()
	if len(after) != len(before) {
		t.Fatalf("records = %d, want %d", len(after), len(before))
	}
	for i := range before {
		b, a := before[i], after[i]
		if a.X != b.X || a.Y != b.Y || a.Text != b.Text || a.Ripeness != b.Ripeness || a.Location != b.Location {
			t.Errorf("record %d: got %+v, want %+v", i, a, b)
		}
	}
	if f := s2.Fruits()[1]; f.Angle() != 0.7 {
		t.Errorf("floor fruit angle = %v, want 0.7", f.Angle())
	}
	if f := s2.Fruits()[0]; !f.Static() || f.Category() != CategoryFruitsInTree {
		t.Error("restored matrix fruit not pinned")
	}
}

func TestRestoreSkipsClearing(t *testing.T) {
	kv := newMemoryKV()
	kv.data["data"] = []byte(`[
		{"id":1,"angle":0,"text":"keep","x":600,"y":600,"impact":0,"effort":0,"location":"matrix","ripeness":0},
		{"id":2,"angle":0,"text":"gone","x":384,"y":1438,"impact":0,"effort":0,"location":"clearing","ripeness":0}
	]`)
	s := NewStage(newFakeEngine(), nil)
	if n := s.Init(kv); n != 1 {
		t.Fatalf("restored %d, want 1", n)
	}
	if s.Fruits()[0].Text() != "keep" {
		t.Errorf("restored %q, want keep", s.Fruits()[0].Text())
	}
}

func TestRestoreMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{"absent", "", nil},
		{"not json", "{{{", nil},
		{"object instead of array", `{"id":1}`, nil},
		{"unknown location", `[{"id":1,"x":1,"y":1,"location":"pond"}]`, nil},
		{"null", "null", nil},
		{"load error", "", errBoom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newMemoryKV()
			if tt.data != "" {
				kv.data["data"] = []byte(tt.data)
			}
			kv.loadErr = tt.err
			s := NewStage(newFakeEngine(), nil)
			if n := s.Init(kv); n != 0 {
				t.Errorf("restored %d fruits, want 0", n)
			}
			if got := s.Restore(); got == nil || len(got) != 0 {
				t.Errorf("Restore = %v, want empty non-nil", got)
			}
		})
	}
}

func TestPersistDebounced(t *testing.T) {
	kv := newMemoryKV()
	s := NewStage(newFakeEngine(), nil)
	s.Init(kv)
	s.CreateFruit(600, 600, FruitConfig{})

	for i := 0; i < 59; i++ {
		s.Tick(1.0 / 60)
	}
	if kv.saves != 0 {
		t.Fatalf("saves = %d before the interval, want 0", kv.saves)
	}
	for i := 0; i < 5*60; i++ {
		s.Tick(1.0 / 60)
	}
	if kv.saves < 4 || kv.saves > 5 {
		t.Errorf("saves = %d over ~6s, want one per second", kv.saves)
	}
	if !strings.Contains(string(kv.data["data"]), `"location":"matrix"`) {
		t.Errorf("stored %s", kv.data["data"])
	}
}

func TestPersistFailureSwallowed(t *testing.T) {
	kv := newMemoryKV()
	kv.saveErr = errBoom
	s := NewStage(newFakeEngine(), nil)
	s.Init(kv)
	s.CreateFruit(600, 600, FruitConfig{})

	for i := 0; i < 3*60; i++ {
		s.Tick(1.0 / 60)
	}
	if err := s.Teardown(); err == nil {
		t.Error("Teardown hid the save error from its caller")
	}
	if s.Store().Len() != 1 {
		t.Error("failed save disturbed the store")
	}
}

func TestTeardownWritesImmediately(t *testing.T) {
	kv := newMemoryKV()
	s := NewStage(newFakeEngine(), nil)
	s.Init(kv)
	s.CreateFruit(600, 600, FruitConfig{Text: "last"})

	if err := s.Teardown(); err != nil {
		t.Fatal(err)
	}
	if kv.saves != 1 {
		t.Errorf("saves = %d, want 1", kv.saves)
	}
	records, err := DecodeRecords(kv.data["data"])
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Text != "last" {
		t.Errorf("records = %+v", records)
	}
}

func TestPersistWithoutStore(t *testing.T) {
	s, _ := newTestStage(t)
	s.CreateFruit(600, 600, FruitConfig{})
	if err := s.Persist(); err != nil {
		t.Errorf("Persist without a store = %v, want nil", err)
	}
}
