package bar

import "time"

// Transition names a visual transition of the surface.
type Transition int

const (
	// FadeIn brings the surface from transparent to opaque.
	FadeIn Transition = iota
	// FadeOut takes the surface from opaque to transparent.
	FadeOut
)

// String returns the string representation of the transition.
func (t Transition) String() string {
	switch t {
	case FadeIn:
		return "fade-in"
	case FadeOut:
		return "fade-out"
	default:
		return "unknown"
	}
}

// Animator drives surface transitions.
//
// Animate starts t over d and calls done once when it completes. A zero d is
// the instant variant: the end state is applied immediately. done may be nil.
// Starting a transition abandons any transition in flight. Stop abandons the
// transition in flight without calling its done.
type Animator interface {
	Animate(t Transition, d time.Duration, done func())
	Stop()
}

// Alpha applies an opacity in [0, 1] to the host surface.
type Alpha func(alpha float64)

// DefaultFrameInterval is the step between two animation frames (~60fps).
const DefaultFrameInterval = 16 * time.Millisecond

// FadeAnimator is an Animator that steps an Alpha applier on a Scheduler.
type FadeAnimator struct {
	sched  Scheduler
	apply  Alpha
	frame  time.Duration
	cancel func()
	gen    uint64
}

// NewFadeAnimator creates a FadeAnimator. apply may be nil for hosts that
// cannot render opacity; completions are still delivered on time.
func NewFadeAnimator(sched Scheduler, apply Alpha) *FadeAnimator {
	if apply == nil {
		apply = func(float64) {}
	}
	return &FadeAnimator{
		sched: sched,
		apply: apply,
		frame: DefaultFrameInterval,
	}
}

// SetFrameInterval sets the step between frames.
func (a *FadeAnimator) SetFrameInterval(d time.Duration) {
	if d > 0 {
		a.frame = d
	}
}

// Animate implements Animator.
func (a *FadeAnimator) Animate(t Transition, d time.Duration, done func()) {
	a.Stop()

	from, to := 0.0, 1.0
	if t == FadeOut {
		from, to = 1.0, 0.0
	}

	gen := a.gen
	finish := func() {
		if a.gen != gen {
			return
		}
		a.cancel = nil
		a.apply(to)
		if done != nil {
			done()
		}
	}

	if d <= 0 {
		a.apply(to)
		if done != nil {
			a.cancel = a.sched.AfterFunc(0, finish)
		}
		return
	}

	a.apply(from)

	var elapsed time.Duration
	var step func()
	step = func() {
		if a.gen != gen {
			return
		}
		elapsed += min(a.frame, d-elapsed)
		if elapsed >= d {
			finish()
			return
		}
		a.apply(from + (to-from)*float64(elapsed)/float64(d))
		a.cancel = a.sched.AfterFunc(min(a.frame, d-elapsed), step)
	}
	a.cancel = a.sched.AfterFunc(min(a.frame, d), step)
}

// Stop implements Animator.
func (a *FadeAnimator) Stop() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.gen++
}
