package internal

import "sync/atomic"

type Scheduler struct {
	// incremented each time a write is propagated
	clock int

	running bool

	// goroutine id running the current write, 0 when idle
	owner atomic.Int64
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		clock:   0,
		running: false,
	}
}

// Run executes one propagation. The state is restored even if fn panics.
func (s *Scheduler) Run(fn func()) {
	s.running = true
	s.owner.Store(getGID())
	defer func() {
		s.owner.Store(0)
		s.running = false
	}()

	s.clock++
	fn()
}

// RunningOn reports whether the given goroutine is inside a propagation.
func (s *Scheduler) RunningOn(gid int64) bool {
	return s.owner.Load() == gid
}

func (s *Scheduler) Running() bool {
	return s.running
}

func (s *Scheduler) Time() int {
	return s.clock
}
