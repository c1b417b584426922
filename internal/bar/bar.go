package bar

import (
	"log/slog"
	"time"
)

// Default timings.
const (
	DefaultHideDelay    = 5000 * time.Millisecond
	DefaultFadeDuration = 600 * time.Millisecond
)

// State is the sequencer state of a Bar.
type State int

const (
	// StateHidden means nothing is on the surface.
	StateHidden State = iota
	// StateShowing means a message is visible and its hide timer is armed.
	StateShowing
	// StateHiding means the visible message is fading out.
	StateHiding
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateShowing:
		return "showing"
	case StateHiding:
		return "hiding"
	default:
		return "unknown"
	}
}

// HideReason tells why a message left the surface.
type HideReason int

const (
	// HideExpired means the hide delay elapsed and the message faded out.
	HideExpired HideReason = iota
	// HideClicked means the action button was clicked.
	HideClicked
	// HideCleared means Clear dropped the message.
	HideCleared
)

// String returns the string representation of HideReason.
func (r HideReason) String() string {
	switch r {
	case HideExpired:
		return "expired"
	case HideClicked:
		return "clicked"
	case HideCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// ClickListener receives the token of the message whose action was clicked.
// Messages without a token deliver the zero T.
type ClickListener[T any] func(token T)

// HideListener is called after a message leaves the surface.
type HideListener[T any] func(m Message[T], reason HideReason)

// Bar sequences messages onto one Surface. See the package documentation for
// the threading contract.
type Bar[T any] struct {
	surface  Surface
	animator Animator
	timer    *Timer
	logger   *slog.Logger

	hideDelay    time.Duration
	fadeDuration time.Duration

	state      State
	current    Message[T]
	hasCurrent bool
	queue      *Queue[T]

	// fadeGen identifies the fade-out whose completion may still advance the bar.
	fadeGen    uint64
	hideReason HideReason

	onClick ClickListener[T]
	onHide  HideListener[T]
}

// New creates a hidden Bar drawing on surface. Transitions run on animator and
// the hide timer on sched; both must deliver callbacks on the host event loop.
func New[T any](surface Surface, animator Animator, sched Scheduler, logger *slog.Logger) *Bar[T] {
	if logger == nil {
		logger = slog.Default()
	}
	if animator == nil {
		animator = NewFadeAnimator(sched, nil)
	}

	return &Bar[T]{
		surface:      surface,
		animator:     animator,
		timer:        NewTimer(sched),
		logger:       logger,
		hideDelay:    DefaultHideDelay,
		fadeDuration: DefaultFadeDuration,
		queue:        NewQueue[T](),
	}
}

// SetClickListener sets the listener notified on action clicks.
// Clicks are ignored while no listener is set.
func (b *Bar[T]) SetClickListener(listener ClickListener[T]) {
	b.onClick = listener
}

// SetHideListener sets the listener notified when a message leaves the surface.
func (b *Bar[T]) SetHideListener(listener HideListener[T]) {
	b.onHide = listener
}

// SetTiming changes the hide delay and fade duration used by subsequent
// transitions. Non-positive hide delays and negative fades are ignored.
func (b *Bar[T]) SetTiming(hideDelay, fadeDuration time.Duration) {
	if hideDelay > 0 {
		b.hideDelay = hideDelay
	}
	if fadeDuration >= 0 {
		b.fadeDuration = fadeDuration
	}
}

// HideDelay returns how long a message stays up before fading out.
func (b *Bar[T]) HideDelay() time.Duration {
	return b.hideDelay
}

// FadeDuration returns the duration of fade transitions.
func (b *Bar[T]) FadeDuration() time.Duration {
	return b.fadeDuration
}

// State returns the current sequencer state.
func (b *Bar[T]) State() State {
	return b.state
}

// Visible reports whether a message is on the surface, including mid-fade.
func (b *Bar[T]) Visible() bool {
	return b.hasCurrent
}

// Current returns the message on the surface.
func (b *Bar[T]) Current() (Message[T], bool) {
	return b.current, b.hasCurrent
}

// Pending returns a copy of the queued messages, oldest first.
func (b *Bar[T]) Pending() []Message[T] {
	return b.queue.Snapshot()
}

// Drop removes queued messages for which match returns true and returns how
// many were removed. The visible message is never touched and listeners are
// not called.
func (b *Bar[T]) Drop(match func(Message[T]) bool) int {
	n := b.queue.RemoveFunc(match)
	if n > 0 {
		b.logger.Debug("dropped queued messages",
			"dropped", n,
			"queue_size", b.queue.Len(),
		)
	}
	return n
}

// Show displays a text-only message, or queues it behind the visible one.
func (b *Bar[T]) Show(text string) {
	b.ShowMessage(NewMessage[T](text))
}

// ShowAction displays a message with an action button.
func (b *Bar[T]) ShowAction(text, label string, icon Icon) {
	b.ShowMessage(NewMessage[T](text).WithAction(label, icon))
}

// ShowToken displays a message with an action button and a token that is
// handed to the click listener when the action is clicked.
func (b *Bar[T]) ShowToken(text, label string, icon Icon, token T) {
	b.ShowMessage(NewMessage[T](text).WithAction(label, icon).WithToken(token))
}

// ShowMessage displays m, or appends it to the queue if a message is visible.
func (b *Bar[T]) ShowMessage(m Message[T]) {
	if m.Text() == "" {
		b.logger.Debug("showing message without text", "message_id", m.ID())
	}

	if b.hasCurrent {
		b.queue.Enqueue(m)
		b.logger.Debug("queued message",
			"message_id", m.ID(),
			"queue_size", b.queue.Len(),
		)
		return
	}

	b.show(m, false)
}

// show puts m on the surface and arms the hide timer. immediate selects the
// instant fade-in used when restoring state.
func (b *Bar[T]) show(m Message[T], immediate bool) {
	b.state = StateShowing
	b.current = m
	b.hasCurrent = true

	render(b.surface, m)

	fade := b.fadeDuration
	if immediate {
		fade = 0
	}
	b.animator.Animate(FadeIn, fade, nil)
	b.timer.Schedule(b.hideDelay, b.requestHide)

	b.logger.Debug("showing message",
		"message_id", m.ID(),
		"has_action", m.HasAction(),
		"immediate", immediate,
		"hide_delay", b.hideDelay,
	)
}

// requestHide starts the fade-out of the visible message.
func (b *Bar[T]) requestHide() {
	if b.state != StateShowing {
		return
	}

	b.timer.Cancel()
	b.state = StateHiding
	b.hideReason = HideExpired
	b.fadeGen++

	gen := b.fadeGen
	b.animator.Animate(FadeOut, b.fadeDuration, func() {
		if gen != b.fadeGen || b.state != StateHiding {
			return
		}
		b.fadeOutComplete(b.current, b.hideReason)
	})

	b.logger.Debug("hiding message", "message_id", b.current.ID())
}

// fadeOutComplete advances to the next queued message, or hides the surface
// when the queue is empty. prev is the message that just left.
func (b *Bar[T]) fadeOutComplete(prev Message[T], reason HideReason) {
	if next, ok := b.queue.DequeueFirst(); ok {
		b.show(next, false)
	} else {
		b.current = Message[T]{}
		b.hasCurrent = false
		b.state = StateHidden
		b.surface.SetVisible(false)
		b.logger.Debug("message bar hidden")
	}

	if b.onHide != nil {
		b.onHide(prev, reason)
	}
}

// abortHide cancels the hide timer and any transition in flight, so that the
// completion path can run synchronously.
func (b *Bar[T]) abortHide() {
	b.timer.Cancel()
	b.animator.Stop()
	b.fadeGen++
}

// Clear drops every queued message and hides the visible one immediately.
func (b *Bar[T]) Clear() {
	dropped := b.queue.Len()
	b.queue.Clear()

	if !b.hasCurrent {
		return
	}

	prev := b.current
	b.abortHide()
	b.fadeOutComplete(prev, HideCleared)

	b.logger.Debug("cleared message bar",
		"message_id", prev.ID(),
		"dropped", dropped,
	)
}
