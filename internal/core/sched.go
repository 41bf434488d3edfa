package core

import (
	"sort"
	"time"
)

// TaskID identifies a scheduled task. The zero value never refers to a task.
type TaskID uint64

type task struct {
	id  TaskID
	due time.Duration
	fn  func()
}

// Scheduler runs callbacks on a virtual clock that only moves when Advance is
// called. Games drive it from Step so timers stay deterministic and paused
// games do not fire them.
type Scheduler struct {
	now   time.Duration
	last  TaskID
	tasks []task // sorted by (due, id)
}

// NewScheduler creates a scheduler at virtual time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once d has elapsed on the virtual clock.
func (s *Scheduler) After(d time.Duration, fn func()) TaskID {
	if d < 0 {
		d = 0
	}
	s.last++
	t := task{id: s.last, due: s.now + d, fn: fn}

	i := sort.Search(len(s.tasks), func(i int) bool {
		return s.tasks[i].due > t.due
	})
	s.tasks = append(s.tasks, task{})
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = t
	return t.id
}

// Cancel removes a pending task. Returns false if it already ran or never existed.
func (s *Scheduler) Cancel(id TaskID) bool {
	if id == 0 {
		return false
	}
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending task.
func (s *Scheduler) CancelAll() {
	s.tasks = s.tasks[:0]
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Advance moves the clock forward by dt, running due tasks in order.
// Tasks scheduled by a running task are measured from that task's due time
// and run in the same call if they fall inside the window.
func (s *Scheduler) Advance(dt time.Duration) {
	target := s.now + dt
	for len(s.tasks) > 0 && s.tasks[0].due <= target {
		t := s.tasks[0]
		s.tasks = s.tasks[1:]
		if t.due > s.now {
			s.now = t.due
		}
		t.fn()
	}
	s.now = target
}
