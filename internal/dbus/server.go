package dbus

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	// DBusInterface is the notification interface name.
	DBusInterface = "org.freedesktop.Notifications"
	// DBusPath is the notification object path.
	DBusPath = "/org/freedesktop/Notifications"
	// DBusBusName is the notification bus name.
	DBusBusName = "org.freedesktop.Notifications"

	// ControlInterface is the messagebar control interface name.
	ControlInterface = "io.github.jmylchreest.MessageBar"
	// ControlPath is the control object path.
	ControlPath = "/io/github/jmylchreest/MessageBar"
	// ControlBusName is the bus name messagebard always claims.
	ControlBusName = "io.github.jmylchreest.MessageBar"

	introspectableInterface = "org.freedesktop.DBus.Introspectable"
)

// NotificationHandler is called when a new notification is received.
type NotificationHandler func(notification *Notification, id uint32)

// CloseHandler is called when CloseNotification is requested for an active ID.
type CloseHandler func(id uint32)

// Controller executes control interface calls against the bar.
// Methods are called on godbus goroutines.
type Controller interface {
	Show(text, label, icon string) uint32
	Clear()
	Click()
	Status() Status
}

// NotificationServer serves org.freedesktop.Notifications and the control
// interface on the session bus.
type NotificationServer struct {
	conn   *dbus.Conn
	logger *slog.Logger

	nextID atomic.Uint32

	notifyHandler NotificationHandler
	closeHandler  CloseHandler
	controller    Controller

	// Tracking active notifications for signal emission
	mu                 sync.RWMutex
	activeIDs          map[uint32]bool
	serverInfo         ServerInfo
	claimNotifications bool
	ownsNotifications  bool
	running            bool
}

// NewNotificationServer creates a new NotificationServer.
func NewNotificationServer(logger *slog.Logger) *NotificationServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationServer{
		logger:             logger,
		activeIDs:          make(map[uint32]bool),
		serverInfo:         DefaultServerInfo(),
		claimNotifications: true,
	}
}

// SetNotifyHandler sets the handler called when a notification is received.
func (s *NotificationServer) SetNotifyHandler(handler NotificationHandler) {
	s.notifyHandler = handler
}

// SetCloseHandler sets the handler called when CloseNotification is requested.
func (s *NotificationServer) SetCloseHandler(handler CloseHandler) {
	s.closeHandler = handler
}

// SetController sets the target of control interface calls.
func (s *NotificationServer) SetController(c Controller) {
	s.controller = c
}

// SetServerInfo sets the server information returned by GetServerInformation.
func (s *NotificationServer) SetServerInfo(info ServerInfo) {
	s.serverInfo = info
}

// SetClaimNotifications controls whether Start requests the
// org.freedesktop.Notifications name. Must be called before Start.
func (s *NotificationServer) SetClaimNotifications(claim bool) {
	s.claimNotifications = claim
}

// OwnsNotifications reports whether the server holds the notification bus name.
func (s *NotificationServer) OwnsNotifications() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ownsNotifications
}

// Start connects to the session bus, exports both objects and claims the bus
// names. Failing to claim org.freedesktop.Notifications is not fatal: another
// notification daemon may own it, and the control interface still works.
func (s *NotificationServer) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}
	s.mu.Unlock()

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	s.conn = conn

	if err := s.export(DBusPath, DBusInterface, s, notificationMethods(), notificationSignals()); err != nil {
		return err
	}
	if err := s.export(ControlPath, ControlInterface, &controlObject{server: s}, controlMethods(), nil); err != nil {
		return err
	}

	if err := s.requestName(ControlBusName); err != nil {
		return err
	}

	owns := false
	if s.claimNotifications {
		if err := s.requestName(DBusBusName); err != nil {
			s.logger.Warn("not serving notifications", "error", err)
		} else {
			owns = true
		}
	}

	s.mu.Lock()
	s.running = true
	s.ownsNotifications = owns
	s.mu.Unlock()

	s.logger.Info("D-Bus server started",
		"control", ControlBusName,
		"notifications", owns,
	)
	return nil
}

func (s *NotificationServer) export(path dbus.ObjectPath, iface string, v interface{}, methods []introspect.Method, signals []introspect.Signal) error {
	if err := s.conn.Export(v, path, iface); err != nil {
		return fmt.Errorf("failed to export %s: %w", iface, err)
	}

	node := &introspect.Node{
		Name: string(path),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    iface,
				Methods: methods,
				Signals: signals,
			},
		},
	}
	if err := s.conn.Export(introspect.NewIntrospectable(node), path, introspectableInterface); err != nil {
		return fmt.Errorf("failed to export introspectable for %s: %w", iface, err)
	}
	return nil
}

func (s *NotificationServer) requestName(name string) error {
	reply, err := s.conn.RequestName(name, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name %s: %w", name, err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("bus name %s already taken", name)
	}
	return nil
}

// Stop releases the bus names.
func (s *NotificationServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		names := []string{ControlBusName}
		if s.ownsNotifications {
			names = append(names, DBusBusName)
		}
		for _, name := range names {
			if _, err := s.conn.ReleaseName(name); err != nil {
				s.logger.Warn("failed to release bus name", "name", name, "error", err)
			}
		}
		// Don't close the connection as it's shared (SessionBus)
	}
	s.ownsNotifications = false

	s.logger.Info("D-Bus server stopped")
	return nil
}

// GetCapabilities returns the list of capabilities supported by this server.
// D-Bus method: GetCapabilities() -> as
func (s *NotificationServer) GetCapabilities() ([]string, *dbus.Error) {
	s.logger.Debug("GetCapabilities called")
	return ServerCapabilities, nil
}

// GetServerInformation returns information about the notification server.
// D-Bus method: GetServerInformation() -> (ssss)
func (s *NotificationServer) GetServerInformation() (string, string, string, string, *dbus.Error) {
	s.logger.Debug("GetServerInformation called")
	return s.serverInfo.Name, s.serverInfo.Vendor, s.serverInfo.Version, s.serverInfo.SpecVersion, nil
}

// Notify handles incoming notification requests.
// D-Bus method: Notify(susssasa{sv}i) -> u
func (s *NotificationServer) Notify(
	appName string,
	replacesID uint32,
	appIcon string,
	summary string,
	body string,
	actions []string,
	hints map[string]dbus.Variant,
	expireTimeout int32,
) (uint32, *dbus.Error) {
	notification := &Notification{
		AppName:       appName,
		ReplacesID:    replacesID,
		AppIcon:       appIcon,
		Summary:       summary,
		Body:          body,
		Actions:       actions,
		Hints:         hints,
		ExpireTimeout: expireTimeout,
	}
	return s.NotifyInternal(notification), nil
}

// NotifyInternal accepts a notification without going through D-Bus and
// returns its ID. A non-zero ReplacesID is reused as the ID; the replaced
// message is not interrupted.
func (s *NotificationServer) NotifyInternal(notification *Notification) uint32 {
	id := notification.ReplacesID
	if id == 0 {
		id = s.nextID.Add(1)
	}

	s.logger.Debug("Notify called",
		"app_name", notification.AppName,
		"replaces_id", notification.ReplacesID,
		"summary", notification.Summary,
		"id", id,
	)

	s.mu.Lock()
	s.activeIDs[id] = true
	s.mu.Unlock()

	if s.notifyHandler != nil {
		s.notifyHandler(notification, id)
	}

	return id
}

// CloseNotification acknowledges a close request. The notification is marked
// closed and NotificationClosed is emitted, but a visible message stays up
// until its delay elapses.
// D-Bus method: CloseNotification(u) -> nothing
func (s *NotificationServer) CloseNotification(id uint32) *dbus.Error {
	s.logger.Debug("CloseNotification called", "id", id)

	if !s.markClosed(id) {
		return nil
	}

	if s.closeHandler != nil {
		s.closeHandler(id)
	}

	if err := s.EmitNotificationClosed(id, CloseReasonClosed); err != nil {
		s.logger.Warn("failed to emit NotificationClosed signal", "id", id, "error", err)
	}

	return nil
}

// markClosed removes id from active tracking and reports whether it was active.
func (s *NotificationServer) markClosed(id uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeIDs[id] {
		return false
	}
	delete(s.activeIDs, id)
	return true
}

// IsActive returns true if the notification ID is currently active.
func (s *NotificationServer) IsActive(id uint32) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeIDs[id]
}

// notificationMethods returns the D-Bus method introspection data.
func notificationMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "GetCapabilities",
			Args: []introspect.Arg{
				{Name: "capabilities", Type: "as", Direction: "out"},
			},
		},
		{
			Name: "GetServerInformation",
			Args: []introspect.Arg{
				{Name: "name", Type: "s", Direction: "out"},
				{Name: "vendor", Type: "s", Direction: "out"},
				{Name: "version", Type: "s", Direction: "out"},
				{Name: "spec_version", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "Notify",
			Args: []introspect.Arg{
				{Name: "app_name", Type: "s", Direction: "in"},
				{Name: "replaces_id", Type: "u", Direction: "in"},
				{Name: "app_icon", Type: "s", Direction: "in"},
				{Name: "summary", Type: "s", Direction: "in"},
				{Name: "body", Type: "s", Direction: "in"},
				{Name: "actions", Type: "as", Direction: "in"},
				{Name: "hints", Type: "a{sv}", Direction: "in"},
				{Name: "expire_timeout", Type: "i", Direction: "in"},
				{Name: "id", Type: "u", Direction: "out"},
			},
		},
		{
			Name: "CloseNotification",
			Args: []introspect.Arg{
				{Name: "id", Type: "u", Direction: "in"},
			},
		},
	}
}

// notificationSignals returns the D-Bus signal introspection data.
func notificationSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "NotificationClosed",
			Args: []introspect.Arg{
				{Name: "id", Type: "u"},
				{Name: "reason", Type: "u"},
			},
		},
		{
			Name: "ActionInvoked",
			Args: []introspect.Arg{
				{Name: "id", Type: "u"},
				{Name: "action_key", Type: "s"},
			},
		},
	}
}
