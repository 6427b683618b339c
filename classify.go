package orchard

// classify returns the location a loose fruit at pos belongs to. Matrix and
// clearing are owned by the drag controller and the clear operations, so they
// are returned unchanged. The second result is false when pos is not finite
// and the fruit must keep its current location this tick.
func classify(loc Location, pos Vec2, zones *Zones) (Location, bool) {
	if loc == LocationMatrix || loc == LocationClearing {
		return loc, true
	}
	if !pos.Finite() {
		return loc, false
	}
	if zones.Contains(pos, ZoneCart) {
		return LocationCart, true
	}
	return LocationFloor, true
}

// classifyAll re-zones every loose fruit except the one being dragged, whose
// zone is settled when the drag ends.
func (s *Stage) classifyAll() {
	dragged := s.drag.target
	for _, f := range s.store.All() {
		if f.ID == dragged && dragged != 0 {
			continue
		}
		next, ok := classify(f.Location, f.Position(), s.zones)
		if !ok || next == f.Location {
			continue
		}
		prev := f.Location
		f.Location = next
		s.emit(StageEvent{Type: StageFruitRelocated, Fruit: f.ID, From: prev, To: next})
	}
}
