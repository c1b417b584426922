package bar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/messagebar/internal/loop"
)

func TestTimer_ScheduleReplaces(t *testing.T) {
	clock := loop.NewManual()
	timer := NewTimer(clock)
	var fired []string

	timer.Schedule(time.Second, func() { fired = append(fired, "first") })
	timer.Schedule(2*time.Second, func() { fired = append(fired, "second") })
	assert.True(t, timer.Armed())
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(5 * time.Second)
	assert.Equal(t, []string{"second"}, fired)
	assert.False(t, timer.Armed())
}

func TestTimer_Cancel(t *testing.T) {
	clock := loop.NewManual()
	timer := NewTimer(clock)
	fired := false

	timer.Cancel()
	timer.Schedule(time.Second, func() { fired = true })
	timer.Cancel()
	timer.Cancel()

	clock.Advance(time.Minute)
	assert.False(t, fired)
	assert.False(t, timer.Armed())
}

// leakyScheduler ignores cancellation, like a host whose cancel raced with dispatch.
type leakyScheduler struct {
	fns []func()
}

func (s *leakyScheduler) AfterFunc(_ time.Duration, fn func()) func() {
	s.fns = append(s.fns, fn)
	return func() {}
}

func TestTimer_StaleDispatchIgnored(t *testing.T) {
	sched := &leakyScheduler{}
	timer := NewTimer(sched)
	calls := 0

	timer.Schedule(time.Second, func() { calls++ })
	timer.Schedule(time.Second, func() { calls += 10 })

	for _, fn := range sched.fns {
		fn()
	}
	assert.Equal(t, 10, calls)

	// A second delivery of the live registration is dropped too.
	sched.fns[1]()
	assert.Equal(t, 10, calls)
}
