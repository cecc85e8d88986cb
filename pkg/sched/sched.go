// Package sched owns every delayed callback in the system. Components
// schedule through a Scheduler and hold the returned cancel token, so a
// timer's lifetime is independent of any particular caller's state and
// teardown can prove nothing is left pending.
package sched

import (
	"sync"
	"time"
)

// CancelFunc cancels a scheduled callback. Calling it after the callback
// ran (or twice) is a no-op.
type CancelFunc func()

// Scheduler tracks pending timers against a Clock.
type Scheduler struct {
	mu      sync.Mutex
	clock   Clock
	nextID  int
	pending map[int]Timer
	closed  bool
}

// New creates a scheduler on the given clock. A nil clock means wall time.
func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = System()
	}
	return &Scheduler{clock: clock, pending: make(map[int]Timer)}
}

// Clock exposes the scheduler's clock for callers that need Now.
func (s *Scheduler) Clock() Clock { return s.clock }

// After runs fn once after d has elapsed and returns its cancel token.
// After Stop, scheduling becomes a no-op that returns an inert token.
func (s *Scheduler) After(d time.Duration, fn func()) CancelFunc {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	id := s.nextID
	s.nextID++

	t := s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.pending[id]
		delete(s.pending, id)
		closed := s.closed
		s.mu.Unlock()
		// A timer that lost the race against cancel/Stop must not fire.
		if !live || closed {
			return
		}
		fn()
	})
	s.pending[id] = t
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		t, ok := s.pending[id]
		if ok {
			delete(s.pending, id)
		}
		s.mu.Unlock()
		if ok {
			t.Stop()
		}
	}
}

// Pending reports how many callbacks are still scheduled.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels every pending callback and rejects new ones.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.closed = true
	timers := make([]Timer, 0, len(s.pending))
	for _, t := range s.pending {
		timers = append(timers, t)
	}
	s.pending = make(map[int]Timer)
	s.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
}
