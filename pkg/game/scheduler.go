package game

import (
	"sort"
	"time"
)

// TaskID identifies a scheduled task
type TaskID uint64

type task struct {
	id        TaskID
	due       time.Time
	every     time.Duration // zero for one-shot tasks
	fn        func(now time.Time)
	cancelled bool
}

// Scheduler runs timed callbacks cooperatively. Nothing fires on its own:
// the owner calls Advance from its update loop, so tasks never run
// concurrently with a tick and never run while the owner is not advancing.
type Scheduler struct {
	tasks  []*task
	nextID TaskID
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After runs fn once, d after now
func (s *Scheduler) After(now time.Time, d time.Duration, fn func(now time.Time)) TaskID {
	return s.add(&task{due: now.Add(d), fn: fn})
}

// Every runs fn each d, first at now+d. Non-positive intervals are ignored.
func (s *Scheduler) Every(now time.Time, d time.Duration, fn func(now time.Time)) TaskID {
	if d <= 0 {
		return 0
	}
	return s.add(&task{due: now.Add(d), every: d, fn: fn})
}

func (s *Scheduler) add(t *task) TaskID {
	s.nextID++
	t.id = s.nextID
	s.tasks = append(s.tasks, t)
	return t.id
}

// Cancel removes a pending task. It reports whether the task was pending.
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			t.cancelled = true
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending task, including tasks due in an Advance
// that is currently running.
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
	s.tasks = nil
}

// Shift moves every pending deadline d later. Owners call it when they
// resume after a pause so paused time does not count towards any task.
func (s *Scheduler) Shift(d time.Duration) {
	if d <= 0 {
		return
	}
	for _, t := range s.tasks {
		t.due = t.due.Add(d)
	}
}

// Pending is the number of scheduled tasks
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Advance runs every task due at or before now, oldest deadline first, and
// returns how many ran. A repeating task that missed several periods runs
// once and is rescheduled on its original cadence.
func (s *Scheduler) Advance(now time.Time) int {
	var due []*task
	for _, t := range s.tasks {
		if !t.due.After(now) {
			due = append(due, t)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].due.Before(due[j].due)
	})

	ran := 0
	for _, t := range due {
		if t.cancelled {
			continue
		}
		if t.every > 0 {
			for !t.due.After(now) {
				t.due = t.due.Add(t.every)
			}
		} else {
			s.Cancel(t.id)
		}
		t.fn(now)
		ran++
	}
	return ran
}
