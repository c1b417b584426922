package daemon

import (
	"github.com/jmylchreest/messagebar/internal/dbus"
)

// Controller returns the dbus.Controller serving the control interface.
func (d *Daemon) Controller() dbus.Controller {
	return controller{d}
}

type controller struct {
	d *Daemon
}

// Show goes through the notification path so the message gets an ID and
// its click is reported as ActionInvoked like any other notification.
func (c controller) Show(text, label, icon string) uint32 {
	n := &dbus.Notification{
		AppName: "messagebar",
		AppIcon: icon,
		Summary: text,
	}
	if label != "" {
		n.Actions = []string{dbus.DefaultActionKey, label}
	}
	return c.d.server.NotifyInternal(n)
}

func (c controller) Clear() {
	if err := c.d.call(c.d.Clear); err != nil {
		c.d.logger.Warn("clear failed", "error", err)
	}
}

func (c controller) Click() {
	if err := c.d.call(c.d.bar.Click); err != nil {
		c.d.logger.Warn("click failed", "error", err)
	}
}

func (c controller) Status() dbus.Status {
	var status dbus.Status
	if err := c.d.call(func() { status = statusOf(c.d.bar) }); err != nil {
		c.d.logger.Warn("status failed", "error", err)
		return dbus.Status{State: "unknown"}
	}
	return status
}
