package orchard

import "sort"

// dueEpsilon absorbs float drift from summing many frame deltas.
const dueEpsilon = 1e-9

type delayedAction struct {
	due float64
	seq uint64
	fn  func()
}

// scheduler runs actions after fixed delays measured on the stage clock.
// Actions cannot be cancelled; operations guard against stale targets
// themselves.
type scheduler struct {
	now   float64
	seq   uint64
	queue []delayedAction // sorted by (due, seq)
}

// after queues fn to run once delay seconds have elapsed.
func (s *scheduler) after(delay float64, fn func()) {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	a := delayedAction{due: s.now + delay, seq: s.seq, fn: fn}
	i := sort.Search(len(s.queue), func(i int) bool {
		return s.queue[i].due > a.due
	})
	s.queue = append(s.queue, delayedAction{})
	copy(s.queue[i+1:], s.queue[i:])
	s.queue[i] = a
}

// advance moves the clock forward and runs every action that fell due,
// including ones queued by actions that just ran.
func (s *scheduler) advance(dt float64) {
	if dt > 0 {
		s.now += dt
	}
	for len(s.queue) > 0 && s.queue[0].due <= s.now+dueEpsilon {
		a := s.queue[0]
		copy(s.queue, s.queue[1:])
		s.queue[len(s.queue)-1] = delayedAction{}
		s.queue = s.queue[:len(s.queue)-1]
		a.fn()
	}
}

// pending returns the number of queued actions.
func (s *scheduler) pending() int {
	return len(s.queue)
}
