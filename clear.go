package orchard

// ClearFruit starts the two-phase removal of a fruit: it is frozen, made
// non-interactive and shrunk at once, and removed from the store and the
// engine after delay seconds. A fruit already clearing is left alone, and a
// non-positive delay removes it immediately.
func (s *Stage) ClearFruit(id FruitID, delay float64) {
	f, ok := s.store.Get(id)
	if !ok || f.Location == LocationClearing {
		return
	}
	if s.drag.active() && s.drag.target == id {
		s.drag = s.drag.release()
		s.closeBin()
	}
	if delay <= 0 {
		s.removeFruit(id)
		return
	}

	prev := f.Location
	s.store.settle(f, LocationClearing)
	f.Interactive = false
	f.Field.beginClearing(delay)
	s.transitions.Shrink(id, 0)
	s.emit(StageEvent{Type: StageFruitClearing, Fruit: id, From: prev, To: LocationClearing, Text: f.Text()})

	s.clock.after(delay, func() {
		s.removeFruit(id)
	})
}

// ClearAll clears every fruit. A delay of zero removes them all at once with
// no animation, for resets and failure paths.
func (s *Stage) ClearAll(delay float64) {
	if delay <= 0 {
		s.drag = s.drag.release()
		s.closeBin()
		s.store.RemoveAll()
		return
	}
	// ClearFruit never removes synchronously here, so ranging over the live
	// slice is safe.
	for _, f := range s.store.All() {
		s.ClearFruit(f.ID, delay)
	}
}

// EmptyContainer shoves every fruit in the named container out of the scene
// and clears it. Fruits elsewhere are frozen for the duration so they do not
// roll into the vacated space. Only the cart is a container; another empty
// may not start until the previous one has finished. It reports whether the
// operation started.
func (s *Stage) EmptyContainer(zone ZoneName) bool {
	if zone != ZoneCart || s.emptying {
		return false
	}
	delay := s.cfg.ClearDelay
	shove := s.cfg.ShoveDistance
	s.emptying = true
	s.logf("emptying %s", zone)

	for _, id := range s.geometry.CartParts {
		_, mask := s.engine.Filter(id)
		home := s.engine.Position(id)
		s.engine.SetMask(id, CategoryNone)
		s.transitions.Translate(id, shove, 0)
		s.clock.after(delay, func() {
			s.transitions.TranslateTo(id, home)
			s.clock.after(delay, func() {
				s.engine.SetMask(id, mask)
			})
		})
	}

	dragged := s.Dragged()
	for _, f := range s.store.All() {
		if f.Location == LocationClearing {
			continue
		}
		id := f.ID
		if f.Location != LocationCart {
			if id == dragged {
				continue
			}
			s.engine.SetStatic(id, true)
			s.clock.after(2*delay, func() {
				s.unfreeze(id)
			})
			continue
		}

		if id == dragged {
			s.drag = s.drag.release()
		}
		f.Interactive = false
		f.Field.Interactive = false
		s.engine.SetMask(id, CategoryNone)
		s.engine.SetStatic(id, true)
		s.transitions.Translate(id, shove, 0)
		s.clock.after(delay, func() {
			s.ClearFruit(id, delay)
		})
	}

	s.clock.after(2*delay, func() {
		s.emptying = false
	})
	return true
}

// Emptying reports whether an EmptyContainer is still running.
func (s *Stage) Emptying() bool {
	return s.emptying
}

// unfreeze gives a fruit frozen by EmptyContainer the static flag of the
// zone it is in now, which may differ from where it was frozen if it was
// dragged and settled in the meantime. Removed, clearing and held fruits are
// left alone.
func (s *Stage) unfreeze(id FruitID) {
	f, ok := s.store.Get(id)
	if !ok || f.Location == LocationClearing || s.Dragged() == id {
		return
	}
	s.engine.SetStatic(id, placementFor(f.Location).Static)
}

// removeFruit is the second phase of a clear.
func (s *Stage) removeFruit(id FruitID) {
	if s.drag.target == id {
		s.drag = s.drag.release()
	}
	s.store.Remove(id)
}
