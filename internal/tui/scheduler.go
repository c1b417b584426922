package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerMsg is delivered when a scheduled callback falls due.
type timerMsg struct {
	id uint64
}

type pendingTick struct {
	id uint64
	d  time.Duration
}

// Scheduler is a bar.Scheduler on the Bubble Tea update loop. Registrations
// are turned into tea.Tick commands by Cmds, and run by Fire when their
// timerMsg comes back through Update.
type Scheduler struct {
	nextID uint64
	timers map[uint64]func()
	ticks  []pendingTick
}

// NewScheduler creates an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[uint64]func())}
}

// AfterFunc implements bar.Scheduler.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) func() {
	s.nextID++
	id := s.nextID
	s.timers[id] = fn
	s.ticks = append(s.ticks, pendingTick{id: id, d: d})

	return func() {
		delete(s.timers, id)
	}
}

// Cmds returns tick commands for the callbacks registered since the last call.
func (s *Scheduler) Cmds() []tea.Cmd {
	if len(s.ticks) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(s.ticks))
	for _, p := range s.ticks {
		id := p.id
		if _, ok := s.timers[id]; !ok {
			continue // cancelled before it was handed out
		}
		cmds = append(cmds, tea.Tick(p.d, func(time.Time) tea.Msg {
			return timerMsg{id: id}
		}))
	}
	s.ticks = s.ticks[:0]
	return cmds
}

// Fire runs the callback registered as id, unless it was cancelled.
func (s *Scheduler) Fire(id uint64) bool {
	fn, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	fn()
	return true
}

// Pending returns the number of live registrations.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}
