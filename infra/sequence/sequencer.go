// Package sequence hands out monotonically increasing identifiers.
package sequence

import "sync/atomic"

// Sequencer issues ids starting at start+1. It is safe for concurrent use.
type Sequencer struct {
	last atomic.Uint64
}

// New returns a sequencer whose first Next is start+1.
// Fresh state: start = 0. Reloaded state: start = highest id seen.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.last.Store(start)
	return s
}

func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// Current returns the last issued id, 0 if none.
func (s *Sequencer) Current() uint64 {
	return s.last.Load()
}

// Observe raises the last issued id to v if v is higher.
// Used while reloading persisted entities in arbitrary order.
func (s *Sequencer) Observe(v uint64) {
	for {
		cur := s.last.Load()
		if v <= cur || s.last.CompareAndSwap(cur, v) {
			return
		}
	}
}
