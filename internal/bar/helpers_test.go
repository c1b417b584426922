package bar

import (
	"time"

	"github.com/jmylchreest/messagebar/internal/loop"
)

// recordingSurface records the last value of every surface property.
type recordingSurface struct {
	visible       bool
	text          string
	align         Alignment
	buttonVisible bool
	buttonLabel   string
	buttonIcon    Icon
	hides         int
}

func (s *recordingSurface) SetVisible(visible bool) {
	if s.visible && !visible {
		s.hides++
	}
	s.visible = visible
}

func (s *recordingSurface) SetText(text string)              { s.text = text }
func (s *recordingSurface) SetTextAlignment(align Alignment) { s.align = align }
func (s *recordingSurface) SetButtonVisible(visible bool)    { s.buttonVisible = visible }

func (s *recordingSurface) SetButton(label string, icon Icon) {
	s.buttonLabel = label
	s.buttonIcon = icon
}

type fixture[T any] struct {
	clock   *loop.Manual
	surface *recordingSurface
	bar     *Bar[T]
	alpha   []float64
}

func newFixture[T any]() *fixture[T] {
	f := &fixture[T]{
		clock:   loop.NewManual(),
		surface: &recordingSurface{},
	}
	anim := NewFadeAnimator(f.clock, func(a float64) { f.alpha = append(f.alpha, a) })
	f.bar = New[T](f.surface, anim, f.clock, nil)
	return f
}

func (f *fixture[T]) advance(d time.Duration) {
	f.clock.Advance(d)
}

func (f *fixture[T]) lastAlpha() float64 {
	if len(f.alpha) == 0 {
		return -1
	}
	return f.alpha[len(f.alpha)-1]
}

func texts[T any](msgs []Message[T]) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Text())
	}
	return out
}
