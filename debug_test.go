package orchard

import "testing"

func TestDebugModeCollectsStats(t *testing.T) {
	s, _ := newTestStage(t)
	f := s.CreateFruit(600, 600, FruitConfig{})
	runFrames(s, 120) // let the grow finish so the shrink has ground to cover

	s.SetDebugMode(true)
	s.ClearFruit(f.ID, 0.6)

	s.Tick(1.0 / 60)
	s.Frame(1.0 / 60)

	if s.stats.pending != 1 {
		t.Errorf("pending = %d, want 1", s.stats.pending)
	}
	if s.stats.transitions == 0 {
		t.Error("no transitions counted")
	}

	s.SetDebugMode(false)
	s.stats = debugStats{}
	s.Frame(1.0 / 60)
	if s.stats.transitions != 0 {
		t.Error("stats collected with debug off")
	}
}
