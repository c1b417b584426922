package dbus

import (
	"fmt"
)

// EmitNotificationClosed emits the NotificationClosed signal.
func (s *NotificationServer) EmitNotificationClosed(id uint32, reason CloseReason) error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	err := s.conn.Emit(DBusPath, DBusInterface+".NotificationClosed", id, uint32(reason))
	if err != nil {
		return fmt.Errorf("failed to emit NotificationClosed signal: %w", err)
	}

	s.logger.Debug("emitted NotificationClosed signal", "id", id, "reason", reason.String())
	return nil
}

// EmitActionInvoked emits the ActionInvoked signal.
func (s *NotificationServer) EmitActionInvoked(id uint32, actionKey string) error {
	if s.conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}

	err := s.conn.Emit(DBusPath, DBusInterface+".ActionInvoked", id, actionKey)
	if err != nil {
		return fmt.Errorf("failed to emit ActionInvoked signal: %w", err)
	}

	s.logger.Debug("emitted ActionInvoked signal", "id", id, "action_key", actionKey)
	return nil
}

// CloseWithReason closes an active notification and emits NotificationClosed.
// Notifications that are no longer active are ignored, so each ID is closed
// at most once.
func (s *NotificationServer) CloseWithReason(id uint32, reason CloseReason) error {
	if !s.markClosed(id) {
		return nil
	}
	return s.EmitNotificationClosed(id, reason)
}

// InvokeAction emits ActionInvoked for an active notification and then
// closes it as dismissed.
func (s *NotificationServer) InvokeAction(id uint32, actionKey string) error {
	if !s.IsActive(id) {
		return nil
	}
	if err := s.EmitActionInvoked(id, actionKey); err != nil {
		return err
	}
	return s.CloseWithReason(id, CloseReasonDismissed)
}
