package fixsession

import (
	"sync"
	"time"
)

// Scheduler is the session's only cancellation primitive for deferred
// work: every ScheduleIn/ScheduleEvery call is keyed by a task handle, and
// a second call on the same handle cancels whatever occupant was there
// before scheduling the replacement. This backs both heartbeat ticks and
// the TestRequest/logon-response timeouts.
type Scheduler struct {
	clock Clock
	mu    sync.Mutex
	tasks map[string]Timer
}

// NewScheduler creates a Scheduler driven by clock.
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{clock: clock, tasks: make(map[string]Timer)}
}

// ScheduleIn cancels any task already registered under handle and arms cb
// to fire once, after d.
func (s *Scheduler) ScheduleIn(d time.Duration, handle string, cb func()) {
	s.Cancel(handle)
	t := s.clock.AfterFunc(d, cb)
	s.mu.Lock()
	s.tasks[handle] = t
	s.mu.Unlock()
}

// ScheduleEvery arms cb to fire every d, re-arming itself under the same
// handle after each firing, until Cancel(handle) is called.
func (s *Scheduler) ScheduleEvery(d time.Duration, handle string, cb func()) {
	var wrapper func()
	wrapper = func() {
		cb()
		s.mu.Lock()
		_, stillArmed := s.tasks[handle]
		s.mu.Unlock()
		if stillArmed {
			s.rearm(d, handle, wrapper)
		}
	}
	s.ScheduleIn(d, handle, wrapper)
}

func (s *Scheduler) rearm(d time.Duration, handle string, wrapper func()) {
	t := s.clock.AfterFunc(d, wrapper)
	s.mu.Lock()
	s.tasks[handle] = t
	s.mu.Unlock()
}

// Cancel stops and removes the task registered under handle, if any.
func (s *Scheduler) Cancel(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tasks[handle]; ok {
		t.Stop()
		delete(s.tasks, handle)
	}
}

// CancelAll stops every outstanding task, used when the session tears down.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for h, t := range s.tasks {
		t.Stop()
		delete(s.tasks, h)
	}
}
