package daemon

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	godbus "github.com/godbus/dbus/v5"

	"github.com/jmylchreest/messagebar/internal/dbus"
)

// NoticeLevel indicates the severity of an internal notice.
type NoticeLevel int

const (
	// NoticeInfo is for informational notices.
	NoticeInfo NoticeLevel = iota
	// NoticeWarning is for recoverable failures.
	NoticeWarning
)

// InternalNotifier posts notices about messagebard's own events to the bar.
// Notices are transient and rate limited per key.
type InternalNotifier struct {
	mu     sync.Mutex
	logger *slog.Logger

	notifyHandler func(notification *dbus.Notification) uint32

	lastNotifyTime map[string]time.Time
	minInterval    time.Duration
	now            func() time.Time

	enabled bool
}

// NewInternalNotifier creates a new InternalNotifier.
func NewInternalNotifier(logger *slog.Logger) *InternalNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &InternalNotifier{
		logger:         logger,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    5 * time.Second,
		now:            time.Now,
		enabled:        true,
	}
}

// SetNotifyHandler sets the function that delivers a notice, normally the
// server's NotifyInternal so that notices get IDs like any notification.
func (n *InternalNotifier) SetNotifyHandler(handler func(notification *dbus.Notification) uint32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifyHandler = handler
}

// SetEnabled enables or disables notices.
func (n *InternalNotifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetMinInterval sets the minimum interval between notices with the same key.
func (n *InternalNotifier) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
}

// Notify posts a notice unless notices are disabled or key was used within
// the minimum interval.
func (n *InternalNotifier) Notify(key, summary, body string, level NoticeLevel) {
	n.mu.Lock()
	if !n.enabled {
		n.mu.Unlock()
		return
	}
	handler := n.notifyHandler
	if handler == nil {
		n.mu.Unlock()
		n.logger.Debug("notice skipped: no handler", "summary", summary)
		return
	}

	now := n.now()
	if last, ok := n.lastNotifyTime[key]; ok && now.Sub(last) < n.minInterval {
		n.mu.Unlock()
		n.logger.Debug("notice rate-limited", "key", key, "summary", summary)
		return
	}
	n.lastNotifyTime[key] = now
	n.mu.Unlock()

	icon := "dialog-information"
	if level == NoticeWarning {
		icon = "dialog-warning"
	}

	notification := &dbus.Notification{
		AppName: "messagebard",
		AppIcon: icon,
		Summary: summary,
		Body:    body,
		Hints: map[string]godbus.Variant{
			"transient":      godbus.MakeVariant(true),
			"suppress-sound": godbus.MakeVariant(true),
			"desktop-entry":  godbus.MakeVariant("messagebard"),
		},
	}

	n.logger.Debug("posting notice", "key", key, "summary", summary, "level", level)
	_ = handler(notification)
}

// NotifyConfigReloaded posts a notice that the configuration was reloaded.
func (n *InternalNotifier) NotifyConfigReloaded() {
	n.Notify("config-reload", "Configuration reloaded", "", NoticeInfo)
}

// NotifyConfigError posts a notice that a reload failed validation.
func (n *InternalNotifier) NotifyConfigError(err error) {
	n.Notify("config-error", "Configuration error", err.Error(), NoticeWarning)
}

// NotifyRestored posts a notice after queued messages were restored.
func (n *InternalNotifier) NotifyRestored(count int) {
	if count == 0 {
		return
	}
	body := "1 message"
	if count > 1 {
		body = strconv.Itoa(count) + " messages"
	}
	n.Notify("restore", "Restored", body, NoticeInfo)
}

// NotifyAudioError posts a notice that the chime could not be played.
func (n *InternalNotifier) NotifyAudioError(err error) {
	n.Notify("audio-error", "Audio error", err.Error(), NoticeWarning)
}
