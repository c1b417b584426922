package daemon

import (
	"errors"
	"testing"
	"time"

	"github.com/jmylchreest/messagebar/internal/audio"
	"github.com/jmylchreest/messagebar/internal/bar"
	"github.com/jmylchreest/messagebar/internal/dbus"
	"github.com/jmylchreest/messagebar/internal/loop"
)

type invocation struct {
	id  uint32
	key string
}

type closure struct {
	id     uint32
	reason dbus.CloseReason
}

// fakeServer mirrors NotificationServer's ID tracking without a bus.
type fakeServer struct {
	nextID  uint32
	handler dbus.NotificationHandler
	active  map[uint32]bool
	invoked []invocation
	closed  []closure
}

func newFakeServer() *fakeServer {
	return &fakeServer{active: make(map[uint32]bool)}
}

func (s *fakeServer) NotifyInternal(n *dbus.Notification) uint32 {
	s.nextID++
	id := s.nextID
	s.active[id] = true
	if s.handler != nil {
		s.handler(n, id)
	}
	return id
}

func (s *fakeServer) InvokeAction(id uint32, key string) error {
	if !s.active[id] {
		return nil
	}
	s.invoked = append(s.invoked, invocation{id, key})
	return s.CloseWithReason(id, dbus.CloseReasonDismissed)
}

func (s *fakeServer) CloseWithReason(id uint32, reason dbus.CloseReason) error {
	if !s.active[id] {
		return nil
	}
	delete(s.active, id)
	s.closed = append(s.closed, closure{id, reason})
	return nil
}

type nopSurface struct{}

func (nopSurface) SetVisible(bool)                {}
func (nopSurface) SetText(string)                 {}
func (nopSurface) SetTextAlignment(bar.Alignment) {}
func (nopSurface) SetButtonVisible(bool)          {}
func (nopSurface) SetButton(string, bar.Icon)     {}

type fakeChime struct {
	cues []audio.Cue
	err  error
}

func (c *fakeChime) Play(cue audio.Cue) error {
	c.cues = append(c.cues, cue)
	return c.err
}

var errNoSpeaker = errors.New("no speaker")

type fixture struct {
	clock  *loop.Manual
	bar    *bar.Bar[Token]
	server *fakeServer
	chime  *fakeChime
	daemon *Daemon
}

// newFixture runs the daemon on a manual clock; Post runs inline.
func newFixture(t *testing.T, statePath string) *fixture {
	t.Helper()

	clock := loop.NewManual()
	b := bar.New[Token](nopSurface{}, nil, clock, nil)
	server := newFakeServer()
	chime := &fakeChime{}

	d := New(b, Options{
		Server:    server,
		Post:      func(fn func()) error { fn(); return nil },
		Chime:     chime,
		StatePath: statePath,
	})
	server.handler = d.HandleNotification

	return &fixture{clock: clock, bar: b, server: server, chime: chime, daemon: d}
}

func (f *fixture) expireAll() {
	f.clock.Advance(time.Minute)
}

func pendingTexts(b *bar.Bar[Token]) []string {
	var out []string
	for _, m := range b.Pending() {
		out = append(out, m.Text())
	}
	return out
}
