package dbus

import (
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

// errNoController is returned while the daemon has not wired its bar yet.
var errNoController = dbus.NewError(ControlInterface+".Error.NotReady", []interface{}{"message bar not ready"})

// controlObject is exported on ControlPath. It is a separate value so that
// the control methods do not appear on the notification interface.
type controlObject struct {
	server *NotificationServer
}

// Show queues a message and returns its notification ID. An empty label
// shows a text-only message.
// D-Bus method: Show(sss) -> u
func (c *controlObject) Show(text, label, icon string) (uint32, *dbus.Error) {
	ctrl := c.server.controller
	if ctrl == nil {
		return 0, errNoController
	}
	c.server.logger.Debug("control Show called", "has_action", label != "")
	return ctrl.Show(text, label, icon), nil
}

// Clear drops every message.
// D-Bus method: Clear()
func (c *controlObject) Clear() *dbus.Error {
	ctrl := c.server.controller
	if ctrl == nil {
		return errNoController
	}
	c.server.logger.Debug("control Clear called")
	ctrl.Clear()
	return nil
}

// Click presses the action button of the visible message.
// D-Bus method: Click()
func (c *controlObject) Click() *dbus.Error {
	ctrl := c.server.controller
	if ctrl == nil {
		return errNoController
	}
	c.server.logger.Debug("control Click called")
	ctrl.Click()
	return nil
}

// Status reports the bar state.
// D-Bus method: Status() -> (ssu)
func (c *controlObject) Status() (string, string, uint32, *dbus.Error) {
	ctrl := c.server.controller
	if ctrl == nil {
		return "", "", 0, errNoController
	}
	st := ctrl.Status()
	return st.State, st.Current, st.Queued, nil
}

// controlMethods returns the control interface introspection data.
func controlMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "Show",
			Args: []introspect.Arg{
				{Name: "text", Type: "s", Direction: "in"},
				{Name: "label", Type: "s", Direction: "in"},
				{Name: "icon", Type: "s", Direction: "in"},
				{Name: "id", Type: "u", Direction: "out"},
			},
		},
		{Name: "Clear"},
		{Name: "Click"},
		{
			Name: "Status",
			Args: []introspect.Arg{
				{Name: "state", Type: "s", Direction: "out"},
				{Name: "current", Type: "s", Direction: "out"},
				{Name: "queued", Type: "u", Direction: "out"},
			},
		},
	}
}
