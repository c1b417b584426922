package daemon

import (
	"github.com/jmylchreest/messagebar/internal/bar"
	"github.com/jmylchreest/messagebar/internal/dbus"
)

// Token correlates a bar message with the notification it came from.
type Token struct {
	ID        uint32 `json:"id" yaml:"id"`
	ActionKey string `json:"action_key,omitempty" yaml:"action_key,omitempty"`
	Transient bool   `json:"transient,omitempty" yaml:"transient,omitempty"`
}

// MessageFor maps a notification onto a bar message. The primary action
// becomes the button and app_icon its icon; notifications without actions
// are shown as text only.
func MessageFor(n *dbus.Notification, id uint32) bar.Message[Token] {
	token := Token{
		ID:        id,
		Transient: n.Transient(),
	}

	m := bar.NewMessage[Token](n.Text())
	if action, ok := n.PrimaryAction(); ok {
		token.ActionKey = action.Key
		m = m.WithAction(action.Label, bar.Icon(n.AppIcon))
	}
	return m.WithToken(token)
}

// persistable drops transient messages from rec. A transient current message
// is replaced by the first persistent queued one.
func persistable(rec bar.StateRecord[Token]) bar.StateRecord[Token] {
	out := bar.StateRecord[Token]{Queue: []bar.Message[Token]{}}

	var msgs []bar.Message[Token]
	if rec.Current != nil {
		msgs = append(msgs, *rec.Current)
	}
	msgs = append(msgs, rec.Queue...)

	for _, m := range msgs {
		if token, ok := m.Token(); ok && token.Transient {
			continue
		}
		if out.Current == nil {
			cur := m
			out.Current = &cur
			continue
		}
		out.Queue = append(out.Queue, m)
	}
	return out
}

// detached clears the notification IDs in rec. IDs from a previous server
// instance may already belong to new notifications, so restored messages
// must not signal through them.
func detached(rec bar.StateRecord[Token]) bar.StateRecord[Token] {
	detach := func(m bar.Message[Token]) bar.Message[Token] {
		token, ok := m.Token()
		if !ok {
			return m
		}
		token.ID = 0
		return m.WithToken(token)
	}

	out := bar.StateRecord[Token]{Queue: make([]bar.Message[Token], 0, len(rec.Queue))}
	if rec.Current != nil {
		cur := detach(*rec.Current)
		out.Current = &cur
	}
	for _, m := range rec.Queue {
		out.Queue = append(out.Queue, detach(m))
	}
	return out
}

// statusOf summarizes the bar for the control interface.
func statusOf(b *bar.Bar[Token]) dbus.Status {
	status := dbus.Status{
		State:  b.State().String(),
		Queued: uint32(len(b.Pending())),
	}
	if cur, ok := b.Current(); ok {
		status.Current = cur.Text()
	}
	return status
}
