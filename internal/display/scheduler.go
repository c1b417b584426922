package display

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/core/glib"
)

// Scheduler runs callbacks on the glib main loop.
type Scheduler struct{}

// NewScheduler returns a Scheduler. It only works while a glib main loop runs.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// AfterFunc implements bar.Scheduler. A zero delay runs fn from an idle source.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) func() {
	fired := false
	removed := false
	cb := func() bool {
		fired = true
		fn()
		return false
	}

	var src glib.SourceHandle
	if d <= 0 {
		src = glib.IdleAdd(cb)
	} else {
		src = glib.TimeoutAdd(uint(d.Milliseconds()), cb)
	}

	// Cancel runs on the main loop too, so fired cannot change underneath it.
	// Removing a source that already ran makes glib log a critical.
	return func() {
		if fired || removed {
			return
		}
		removed = true
		glib.SourceRemove(src)
	}
}

// Post queues fn on the glib main loop. Safe to call from any goroutine.
func Post(fn func()) {
	glib.IdleAdd(func() bool {
		fn()
		return false
	})
}

// Invoke runs fn on the glib main loop and waits for it to return.
// It must not be called from the main loop itself.
func Invoke(fn func()) {
	done := make(chan struct{})
	Post(func() {
		defer close(done)
		fn()
	})
	<-done
}
