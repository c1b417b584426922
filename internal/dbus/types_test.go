package dbus

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseReasonString(t *testing.T) {
	tests := []struct {
		reason   CloseReason
		expected string
	}{
		{CloseReasonExpired, "expired"},
		{CloseReasonDismissed, "dismissed"},
		{CloseReasonClosed, "closed"},
		{CloseReasonUndefined, "undefined"},
		{CloseReason(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.reason.String())
		})
	}
}

func TestParsedActions(t *testing.T) {
	tests := []struct {
		name     string
		actions  []string
		expected []Action
	}{
		{
			name:     "empty",
			actions:  nil,
			expected: []Action{},
		},
		{
			name:     "single action",
			actions:  []string{"default", "Open"},
			expected: []Action{{Key: "default", Label: "Open"}},
		},
		{
			name:     "odd number (incomplete pair ignored)",
			actions:  []string{"undo", "Undo", "orphan"},
			expected: []Action{{Key: "undo", Label: "Undo"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &Notification{Actions: tt.actions}
			assert.Equal(t, tt.expected, n.ParsedActions())
		})
	}
}

func TestPrimaryAction(t *testing.T) {
	tests := []struct {
		name    string
		actions []string
		want    Action
		ok      bool
	}{
		{name: "none", actions: nil, ok: false},
		{name: "first wins", actions: []string{"undo", "Undo", "redo", "Redo"}, want: Action{Key: "undo", Label: "Undo"}, ok: true},
		{name: "default preferred", actions: []string{"reply", "Reply", "default", "Open"}, want: Action{Key: "default", Label: "Open"}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &Notification{Actions: tt.actions}
			got, ok := n.PrimaryAction()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNotificationText(t *testing.T) {
	tests := []struct {
		summary, body, want string
	}{
		{"Saved", "", "Saved"},
		{"", "body only", "body only"},
		{"Mail", "3 new messages", "Mail: 3 new messages"},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			n := &Notification{Summary: tt.summary, Body: tt.body}
			assert.Equal(t, tt.want, n.Text())
		})
	}
}

func TestHints(t *testing.T) {
	n := &Notification{Hints: map[string]dbus.Variant{
		"desktop-entry":  dbus.MakeVariant("firefox"),
		"sound-file":     dbus.MakeVariant("/tmp/ding.wav"),
		"suppress-sound": dbus.MakeVariant(true),
		"transient":      dbus.MakeVariant("not a bool"),
	}}

	assert.Equal(t, "firefox", n.DesktopEntry())
	assert.Equal(t, "/tmp/ding.wav", n.SoundFile())
	assert.True(t, n.SuppressSound())
	assert.False(t, n.Transient())

	empty := &Notification{}
	assert.Equal(t, "", empty.DesktopEntry())
	assert.False(t, empty.SuppressSound())
}

func TestParseNotify(t *testing.T) {
	body := []interface{}{
		"app", uint32(0), "icon", "Summary", "Body",
		[]string{"default", "Open"},
		map[string]dbus.Variant{"transient": dbus.MakeVariant(true)},
		int32(-1),
	}

	n, err := parseNotify(body)
	require.NoError(t, err)
	assert.Equal(t, "app", n.AppName)
	assert.Equal(t, "icon", n.AppIcon)
	assert.Equal(t, "Summary: Body", n.Text())
	assert.True(t, n.Transient())
	assert.Equal(t, int32(-1), n.ExpireTimeout)

	_, err = parseNotify(body[:3])
	assert.Error(t, err)

	bad := append([]interface{}{42}, body[1:]...)
	_, err = parseNotify(bad)
	assert.Error(t, err)
}

func TestNotifyInternal(t *testing.T) {
	s := NewNotificationServer(nil)
	var got []uint32
	s.SetNotifyHandler(func(_ *Notification, id uint32) { got = append(got, id) })

	first := s.NotifyInternal(&Notification{Summary: "a"})
	second := s.NotifyInternal(&Notification{Summary: "b"})
	replaced := s.NotifyInternal(&Notification{Summary: "c", ReplacesID: first})

	assert.Equal(t, []uint32{first, second, first}, got)
	assert.NotEqual(t, first, second)
	assert.Equal(t, first, replaced)
	assert.True(t, s.IsActive(second))
}

func TestCloseWithReason_OnlyActive(t *testing.T) {
	s := NewNotificationServer(nil)

	// Unknown IDs are ignored without touching the bus
	assert.NoError(t, s.CloseWithReason(42, CloseReasonExpired))
	assert.NoError(t, s.InvokeAction(42, "default"))

	id := s.NotifyInternal(&Notification{Summary: "x"})
	assert.True(t, s.IsActive(id))

	// Not connected, so the signal fails, but the ID is closed exactly once
	assert.Error(t, s.CloseWithReason(id, CloseReasonExpired))
	assert.False(t, s.IsActive(id))
	assert.NoError(t, s.CloseWithReason(id, CloseReasonExpired))
}

func TestCloseNotification_Acknowledged(t *testing.T) {
	s := NewNotificationServer(nil)
	var closed []uint32
	s.SetCloseHandler(func(id uint32) { closed = append(closed, id) })

	id := s.NotifyInternal(&Notification{Summary: "x"})

	assert.Nil(t, s.CloseNotification(id))
	assert.Nil(t, s.CloseNotification(id))
	assert.Equal(t, []uint32{id}, closed)
	assert.False(t, s.IsActive(id))
}

type fakeController struct {
	shown   []string
	cleared int
	clicked int
}

func (f *fakeController) Show(text, label, icon string) uint32 {
	f.shown = append(f.shown, text+"|"+label+"|"+icon)
	return uint32(len(f.shown))
}
func (f *fakeController) Clear() { f.cleared++ }
func (f *fakeController) Click() { f.clicked++ }
func (f *fakeController) Status() Status {
	return Status{State: "showing", Current: "hello", Queued: 2}
}

func TestControlObject(t *testing.T) {
	s := NewNotificationServer(nil)
	ctrl := &controlObject{server: s}

	_, derr := ctrl.Show("x", "", "")
	assert.NotNil(t, derr, "calls fail until a controller is set")

	fake := &fakeController{}
	s.SetController(fake)

	id, derr := ctrl.Show("Saved", "Undo", "edit-undo")
	assert.Nil(t, derr)
	assert.Equal(t, uint32(1), id)
	assert.Nil(t, ctrl.Clear())
	assert.Nil(t, ctrl.Click())

	state, current, queued, derr := ctrl.Status()
	assert.Nil(t, derr)
	assert.Equal(t, "showing", state)
	assert.Equal(t, "hello", current)
	assert.Equal(t, uint32(2), queued)

	assert.Equal(t, []string{"Saved|Undo|edit-undo"}, fake.shown)
	assert.Equal(t, 1, fake.cleared)
	assert.Equal(t, 1, fake.clicked)
}

func TestDefaultServerInfo(t *testing.T) {
	info := DefaultServerInfo()
	assert.Equal(t, "messagebard", info.Name)
	assert.Equal(t, "messagebar", info.Vendor)
	assert.Equal(t, "1.2", info.SpecVersion)
}

func TestServerCapabilities(t *testing.T) {
	assert.Contains(t, ServerCapabilities, "actions")
	assert.Contains(t, ServerCapabilities, "persistence")
	assert.NotContains(t, ServerCapabilities, "body-markup")
}
