package loop

import (
	"sort"
	"time"
)

// Manual is a scheduler on a virtual clock. Nothing runs until the clock is
// advanced, and callbacks run on the caller's goroutine in due order.
type Manual struct {
	now     time.Time
	seq     uint64
	pending []*manualTask
}

type manualTask struct {
	due       time.Time
	seq       uint64
	fn        func()
	cancelled bool
}

// NewManual creates a Manual clock starting at the Unix epoch.
func NewManual() *Manual {
	return &Manual{now: time.Unix(0, 0).UTC()}
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time {
	return m.now
}

// AfterFunc schedules fn to run when the clock reaches now+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) func() {
	if d < 0 {
		d = 0
	}
	m.seq++
	task := &manualTask{
		due: m.now.Add(d),
		seq: m.seq,
		fn:  fn,
	}
	m.pending = append(m.pending, task)

	return func() {
		task.cancelled = true
	}
}

// Advance moves the clock forward by d, running every callback that falls due,
// including callbacks scheduled by those callbacks.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)

	for {
		task := m.next(target)
		if task == nil {
			break
		}
		m.now = task.due
		task.fn()
	}

	m.now = target
}

// Flush runs the callbacks that are already due without moving the clock.
func (m *Manual) Flush() {
	m.Advance(0)
}

// Pending returns the number of callbacks waiting to run.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.pending {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// next removes and returns the earliest live task due at or before target.
func (m *Manual) next(target time.Time) *manualTask {
	live := m.pending[:0]
	for _, t := range m.pending {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.pending = live

	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].due.Equal(m.pending[j].due) {
			return m.pending[i].seq < m.pending[j].seq
		}
		return m.pending[i].due.Before(m.pending[j].due)
	})

	if len(m.pending) == 0 || m.pending[0].due.After(target) {
		return nil
	}

	task := m.pending[0]
	m.pending = m.pending[1:]
	return task
}
