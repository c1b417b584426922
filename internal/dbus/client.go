package dbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// ErrNotRunning is returned when no messagebard owns the control bus name.
var ErrNotRunning = errors.New("messagebard is not running")

// Client calls the control interface of a running messagebard.
type Client struct {
	obj dbus.BusObject
}

// Dial connects to the session bus and checks that messagebard is running.
func Dial(ctx context.Context) (*Client, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	var hasOwner bool
	err = conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.NameHasOwner", 0, ControlBusName).Store(&hasOwner)
	if err != nil {
		return nil, fmt.Errorf("failed to query bus name %s: %w", ControlBusName, err)
	}
	if !hasOwner {
		return nil, ErrNotRunning
	}

	return &Client{obj: conn.Object(ControlBusName, ControlPath)}, nil
}

// Show queues a message. An empty label shows a text-only message.
func (c *Client) Show(ctx context.Context, text, label, icon string) (uint32, error) {
	var id uint32
	if err := c.obj.CallWithContext(ctx, ControlInterface+".Show", 0, text, label, icon).Store(&id); err != nil {
		return 0, fmt.Errorf("show failed: %w", err)
	}
	return id, nil
}

// Clear drops every message.
func (c *Client) Clear(ctx context.Context) error {
	if err := c.obj.CallWithContext(ctx, ControlInterface+".Clear", 0).Err; err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	return nil
}

// Click presses the action button of the visible message.
func (c *Client) Click(ctx context.Context) error {
	if err := c.obj.CallWithContext(ctx, ControlInterface+".Click", 0).Err; err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

// Status returns the bar state.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var st Status
	err := c.obj.CallWithContext(ctx, ControlInterface+".Status", 0).Store(&st.State, &st.Current, &st.Queued)
	if err != nil {
		return Status{}, fmt.Errorf("status failed: %w", err)
	}
	return st, nil
}
