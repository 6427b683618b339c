package orchard

import (
	"fmt"
	"log"
	"os"
	"time"
)

// debugStats holds per-tick and per-frame timings.
// Only populated when Stage.debug is true.
type debugStats struct {
	tickTime     time.Duration
	classifyTime time.Duration
	frameTime    time.Duration
	transitions  int
	pending      int
}

// SetDebugMode enables timing output and operation traces on stderr.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// debugLog prints the last tick and frame timings to stderr.
func (s *Stage) debugLog() {
	if !s.debug {
		return
	}
	st := s.stats
	_, _ = fmt.Fprintf(os.Stderr,
		"[orchard] tick: %v | classify: %v | frame: %v\n",
		st.tickTime, st.classifyTime, st.frameTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[orchard] fruits: %d | transitions: %d | delayed: %d\n",
		s.store.Len(), st.transitions, st.pending)
}

// logf traces an operation when debug mode is on.
func (s *Stage) logf(format string, args ...any) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[orchard] "+format+"\n", args...)
}

// warnf reports a swallowed failure. These are always logged.
func warnf(format string, args ...any) {
	log.Printf("[orchard] "+format, args...)
}
