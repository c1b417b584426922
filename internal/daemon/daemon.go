package daemon

import (
	"errors"
	"log/slog"
	"time"

	"github.com/jmylchreest/messagebar/internal/audio"
	"github.com/jmylchreest/messagebar/internal/bar"
	"github.com/jmylchreest/messagebar/internal/config"
	"github.com/jmylchreest/messagebar/internal/dbus"
	"github.com/jmylchreest/messagebar/internal/store"
)

// snapshotSource identifies snapshots written by the daemon.
const snapshotSource = "messagebard"

// callTimeout bounds how long a control call waits for the event loop.
const callTimeout = 2 * time.Second

// errLoopTimeout is returned when the event loop does not run a call in time.
var errLoopTimeout = errors.New("event loop did not respond")

// Server is the part of the notification server the daemon drives.
type Server interface {
	NotifyInternal(notification *dbus.Notification) uint32
	InvokeAction(id uint32, actionKey string) error
	CloseWithReason(id uint32, reason dbus.CloseReason) error
}

// Chime plays the sound for a shown message.
type Chime interface {
	Play(cue audio.Cue) error
}

// Options configures a Daemon.
type Options struct {
	Server    Server
	Post      func(fn func()) error // Runs fn on the bar's event loop
	Chime     Chime                 // Optional
	Notifier  *InternalNotifier     // Optional
	StatePath string                // Empty disables persistence
	Logger    *slog.Logger
}

// Daemon connects a bar to the notification server. The bar and every
// method that touches it run on the event loop behind Options.Post; the
// handlers registered with the server may be called from any goroutine.
type Daemon struct {
	bar       *bar.Bar[Token]
	server    Server
	post      func(fn func()) error
	chime     Chime
	notifier  *InternalNotifier
	statePath string
	logger    *slog.Logger
}

// New creates a Daemon and registers its listeners on b.
func New(b *bar.Bar[Token], opts Options) *Daemon {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	d := &Daemon{
		bar:       b,
		server:    opts.Server,
		post:      opts.Post,
		chime:     opts.Chime,
		notifier:  opts.Notifier,
		statePath: opts.StatePath,
		logger:    logger,
	}

	b.SetClickListener(d.onClick)
	b.SetHideListener(d.onHide)
	return d
}

// HandleNotification is the server's notify handler.
func (d *Daemon) HandleNotification(n *dbus.Notification, id uint32) {
	m := MessageFor(n, id)

	if d.chime != nil {
		cue := audio.Cue{SoundFile: n.SoundFile(), Suppress: n.SuppressSound()}
		if err := d.chime.Play(cue); err != nil {
			d.logger.Warn("failed to play chime", "id", id, "error", err)
			if d.notifier != nil {
				d.notifier.NotifyAudioError(err)
			}
		}
	}

	err := d.post(func() {
		d.bar.ShowMessage(m)
		d.persist()
	})
	if err != nil {
		d.logger.Warn("dropped notification", "id", id, "error", err)
	}
}

// HandleClose is the server's close handler. A queued message for id is
// dropped; the visible message is not interrupted, and since the ID is
// already closed its later signals are skipped.
func (d *Daemon) HandleClose(id uint32) {
	err := d.post(func() {
		dropped := d.bar.Drop(func(m bar.Message[Token]) bool {
			token, ok := m.Token()
			return ok && token.ID == id
		})
		d.logger.Debug("close requested", "id", id, "dropped", dropped)
		if dropped > 0 {
			d.persist()
		}
	})
	if err != nil {
		d.logger.Warn("dropped close request", "id", id, "error", err)
	}
}

// Clear hides the visible message and drops the queue. Every dropped
// notification is closed as dismissed. Must run on the loop.
func (d *Daemon) Clear() {
	pending := d.bar.Pending()
	d.bar.Clear()

	for _, m := range pending {
		token, ok := m.Token()
		if !ok || token.ID == 0 {
			continue
		}
		if err := d.server.CloseWithReason(token.ID, dbus.CloseReasonDismissed); err != nil {
			d.logger.Warn("failed to close notification", "id", token.ID, "error", err)
		}
	}
}

func (d *Daemon) onClick(token Token) {
	if token.ID == 0 {
		return
	}
	if err := d.server.InvokeAction(token.ID, token.ActionKey); err != nil {
		d.logger.Warn("failed to invoke action", "id", token.ID, "error", err)
	}
}

func (d *Daemon) onHide(m bar.Message[Token], reason bar.HideReason) {
	defer d.persist()

	token, ok := m.Token()
	if !ok || token.ID == 0 {
		return
	}

	var closeReason dbus.CloseReason
	switch reason {
	case bar.HideExpired:
		closeReason = dbus.CloseReasonExpired
	case bar.HideCleared:
		closeReason = dbus.CloseReasonDismissed
	default:
		return // clicks are closed by InvokeAction
	}

	if err := d.server.CloseWithReason(token.ID, closeReason); err != nil {
		d.logger.Warn("failed to close notification", "id", token.ID, "reason", closeReason.String(), "error", err)
	}
}

// persist writes the persistent part of the bar state. Must run on the loop.
func (d *Daemon) persist() {
	if d.statePath == "" {
		return
	}
	snap := store.NewSnapshot(persistable(d.bar.SaveState()), snapshotSource)
	if err := store.Save(d.statePath, snap); err != nil {
		d.logger.Warn("failed to save state", "path", d.statePath, "error", err)
	}
}

// Restore loads the saved queue onto the bar and returns the number of
// messages restored. Must run on the loop.
func (d *Daemon) Restore() (int, error) {
	if d.statePath == "" {
		return 0, nil
	}

	snap, err := store.Load[Token](d.statePath)
	if err != nil {
		return 0, err
	}

	d.bar.RestoreState(detached(snap.State))
	count := 0
	if snap.State.Current != nil {
		count = snap.State.Len()
	}

	d.logger.Info("restored state", "path", d.statePath, "messages", count)
	if d.notifier != nil {
		d.notifier.NotifyRestored(count)
	}
	return count, nil
}

// Save writes the bar state now. Must run on the loop.
func (d *Daemon) Save() {
	d.persist()
}

// ApplyConfig applies a reloaded configuration to the bar. Must run on the loop.
func (d *Daemon) ApplyConfig(cfg *config.Config) {
	d.bar.SetTiming(cfg.Timing.HideDelay.Duration(), cfg.Timing.FadeDuration.Duration())
	if d.notifier != nil {
		d.notifier.SetEnabled(cfg.Notices.Enabled)
	}
}

// call runs fn on the loop and waits for it.
func (d *Daemon) call(fn func()) error {
	done := make(chan struct{})
	if err := d.post(func() {
		fn()
		close(done)
	}); err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-time.After(callTimeout):
		return errLoopTimeout
	}
}
