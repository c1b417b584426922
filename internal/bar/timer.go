package bar

import "time"

// Scheduler runs fn on the host event loop after d has elapsed.
// The returned cancel function prevents fn from running if it has not run yet;
// calling it more than once, or after fn ran, is a no-op.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// Timer is a single-slot delayed callback. Scheduling replaces any armed
// registration, so at most one callback is pending at a time.
type Timer struct {
	sched  Scheduler
	cancel func()
	gen    uint64
	armed  bool
}

// NewTimer creates an unarmed timer on sched.
func NewTimer(sched Scheduler) *Timer {
	return &Timer{sched: sched}
}

// Schedule arms the timer to call fn after d, cancelling any previous registration.
func (t *Timer) Schedule(d time.Duration, fn func()) {
	t.Cancel()

	gen := t.gen
	t.armed = true
	t.cancel = t.sched.AfterFunc(d, func() {
		// A stale registration can still be dispatched by a host whose cancel
		// raced with delivery; the generation check drops it.
		if !t.armed || t.gen != gen {
			return
		}
		t.armed = false
		t.cancel = nil
		fn()
	})
}

// Cancel disarms the timer. It is safe to call on an unarmed or fired timer.
func (t *Timer) Cancel() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.armed = false
	t.gen++
}

// Armed reports whether a callback is pending.
func (t *Timer) Armed() bool {
	return t.armed
}
