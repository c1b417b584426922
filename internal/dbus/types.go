package dbus

import (
	"github.com/godbus/dbus/v5"
)

// CloseReason represents the reason for closing a notification.
// Values are fixed by the freedesktop.org Desktop Notifications protocol.
type CloseReason uint32

const (
	// CloseReasonExpired indicates the notification expired (timeout reached).
	CloseReasonExpired CloseReason = 1
	// CloseReasonDismissed indicates the user dismissed the notification.
	CloseReasonDismissed CloseReason = 2
	// CloseReasonClosed indicates the notification was closed via CloseNotification.
	CloseReasonClosed CloseReason = 3
	// CloseReasonUndefined is reserved.
	CloseReasonUndefined CloseReason = 4
)

// String returns the string representation of the close reason.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	case CloseReasonUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// DefaultActionKey is the action invoked by clicking the notification itself.
const DefaultActionKey = "default"

// Notification represents an incoming Notify call.
type Notification struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // Alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // Ignored: the bar uses one fixed hide delay
}

// Action represents a notification action with key and label.
type Action struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ParsedActions converts the D-Bus action array to structured form.
// D-Bus actions are passed as alternating key/label pairs.
func (n *Notification) ParsedActions() []Action {
	actions := make([]Action, 0, len(n.Actions)/2)
	for i := 0; i+1 < len(n.Actions); i += 2 {
		actions = append(actions, Action{
			Key:   n.Actions[i],
			Label: n.Actions[i+1],
		})
	}
	return actions
}

// PrimaryAction returns the action shown on the bar's button: the "default"
// action if present, otherwise the first one.
func (n *Notification) PrimaryAction() (Action, bool) {
	actions := n.ParsedActions()
	if len(actions) == 0 {
		return Action{}, false
	}
	for _, a := range actions {
		if a.Key == DefaultActionKey {
			return a, true
		}
	}
	return actions[0], true
}

// Text returns the line shown on the bar: the summary, followed by the body
// when there is one.
func (n *Notification) Text() string {
	switch {
	case n.Body == "":
		return n.Summary
	case n.Summary == "":
		return n.Body
	default:
		return n.Summary + ": " + n.Body
	}
}

func (n *Notification) stringHint(key string) string {
	if v, ok := n.Hints[key]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}

func (n *Notification) boolHint(key string) bool {
	if v, ok := n.Hints[key]; ok {
		if b, ok := v.Value().(bool); ok {
			return b
		}
	}
	return false
}

// DesktopEntry extracts the desktop-entry hint.
func (n *Notification) DesktopEntry() string {
	return n.stringHint("desktop-entry")
}

// SoundFile extracts the sound-file hint.
func (n *Notification) SoundFile() string {
	return n.stringHint("sound-file")
}

// SuppressSound returns true if the suppress-sound hint is set.
func (n *Notification) SuppressSound() bool {
	return n.boolHint("suppress-sound")
}

// Transient returns true if the transient hint is set.
// Transient notifications are left out of the saved state.
func (n *Notification) Transient() bool {
	return n.boolHint("transient")
}

// ServerCapabilities lists the capabilities advertised by messagebard.
var ServerCapabilities = []string{
	"actions",     // One action button per message
	"body",        // Body is appended to the summary
	"icon-static", // Action button icon
	"persistence", // Queue survives restarts
	"sound",       // Chime on show
}

// ServerInfo contains information about the notification server.
type ServerInfo struct {
	Name        string // "messagebard"
	Vendor      string // "messagebar"
	Version     string // Build version
	SpecVersion string // "1.2"
}

// DefaultServerInfo returns the default server information.
func DefaultServerInfo() ServerInfo {
	return ServerInfo{
		Name:        "messagebard",
		Vendor:      "messagebar",
		Version:     "0.0.1", // Replaced by the build version
		SpecVersion: "1.2",
	}
}

// Status is the bar state reported over the control interface.
type Status struct {
	State   string `json:"state"`   // "hidden", "showing" or "hiding"
	Current string `json:"current"` // Visible message text, empty when hidden
	Queued  uint32 `json:"queued"`
}
