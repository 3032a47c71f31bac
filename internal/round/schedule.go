package round

import "time"

// TaskID identifies a scheduled task.
type TaskID uint64

type task struct {
	id  TaskID
	due time.Duration
	gen uint64
	fn  func()
}

// Scheduler runs deferred callbacks on a virtual clock advanced by the caller.
// Every task remembers the generation that was current when it was
// scheduled; if the generation has moved on by the time the task is due,
// the task is dropped without running.
type Scheduler struct {
	gen    func() uint64
	now    time.Duration
	nextID TaskID
	tasks  []task
}

// NewScheduler creates a scheduler tagging tasks with gen(). A nil gen
// tags every task with zero, so tasks are never considered stale.
func NewScheduler(gen func() uint64) *Scheduler {
	if gen == nil {
		gen = func() uint64 { return 0 }
	}
	return &Scheduler{gen: gen}
}

// After schedules fn to run once delay has elapsed on the virtual clock.
func (s *Scheduler) After(delay time.Duration, fn func()) TaskID {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.tasks = append(s.tasks, task{
		id:  s.nextID,
		due: s.now + delay,
		gen: s.gen(),
		fn:  fn,
	})
	return s.nextID
}

// Advance moves the clock forward by dt and runs every due task whose
// generation still matches, in due order. Stale tasks are discarded.
// Tasks scheduled while Advance runs wait for the next call.
// Returns the number of tasks that ran.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}

	limit := s.nextID
	ran := 0
	for {
		idx := -1
		for i, t := range s.tasks {
			if t.id > limit || t.due > s.now {
				continue
			}
			if idx < 0 || t.due < s.tasks[idx].due {
				idx = i
			}
		}
		if idx < 0 {
			return ran
		}

		t := s.tasks[idx]
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
		if t.gen != s.gen() {
			continue
		}
		t.fn()
		ran++
	}
}

// Cancel removes a pending task. Returns false if it already ran or was
// never scheduled.
func (s *Scheduler) Cancel(id TaskID) bool {
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
	s.tasks = nil
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Now returns the virtual clock reading.
func (s *Scheduler) Now() time.Duration {
	return s.now
}
