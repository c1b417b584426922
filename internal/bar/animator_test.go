package bar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/messagebar/internal/loop"
)

func TestFadeAnimator_FadeIn(t *testing.T) {
	clock := loop.NewManual()
	var alpha []float64
	anim := NewFadeAnimator(clock, func(a float64) { alpha = append(alpha, a) })
	anim.SetFrameInterval(100 * time.Millisecond)
	done := 0

	anim.Animate(FadeIn, 300*time.Millisecond, func() { done++ })
	require.Equal(t, []float64{0}, alpha)

	clock.Advance(299 * time.Millisecond)
	assert.Equal(t, 0, done)

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, done)
	require.NotEmpty(t, alpha)
	assert.Equal(t, 1.0, alpha[len(alpha)-1])
	for i := 1; i < len(alpha); i++ {
		assert.GreaterOrEqual(t, alpha[i], alpha[i-1])
	}
}

func TestFadeAnimator_FadeOutUnevenFrames(t *testing.T) {
	clock := loop.NewManual()
	var last float64
	anim := NewFadeAnimator(clock, func(a float64) { last = a })
	anim.SetFrameInterval(16 * time.Millisecond)
	done := false

	anim.Animate(FadeOut, 600*time.Millisecond, func() { done = true })
	assert.Equal(t, 1.0, last)

	clock.Advance(599 * time.Millisecond)
	assert.False(t, done)
	clock.Advance(time.Millisecond)
	assert.True(t, done)
	assert.Equal(t, 0.0, last)
}

func TestFadeAnimator_Instant(t *testing.T) {
	clock := loop.NewManual()
	var last float64 = -1
	anim := NewFadeAnimator(clock, func(a float64) { last = a })
	done := false

	anim.Animate(FadeIn, 0, func() { done = true })
	assert.Equal(t, 1.0, last)
	assert.False(t, done, "completion is delivered on the loop")

	clock.Flush()
	assert.True(t, done)
}

func TestFadeAnimator_StopSuppressesDone(t *testing.T) {
	clock := loop.NewManual()
	anim := NewFadeAnimator(clock, nil)
	done := false

	anim.Animate(FadeOut, 600*time.Millisecond, func() { done = true })
	clock.Advance(300 * time.Millisecond)
	anim.Stop()
	clock.Advance(time.Second)

	assert.False(t, done)
	assert.Equal(t, 0, clock.Pending())
}

func TestFadeAnimator_RestartAbandonsPrevious(t *testing.T) {
	clock := loop.NewManual()
	anim := NewFadeAnimator(clock, nil)
	var got []string

	anim.Animate(FadeOut, 600*time.Millisecond, func() { got = append(got, "out") })
	clock.Advance(100 * time.Millisecond)
	anim.Animate(FadeIn, 600*time.Millisecond, func() { got = append(got, "in") })
	clock.Advance(time.Second)

	assert.Equal(t, []string{"in"}, got)
}

func TestTransition_String(t *testing.T) {
	assert.Equal(t, "fade-in", FadeIn.String())
	assert.Equal(t, "fade-out", FadeOut.String())
	assert.Equal(t, "unknown", Transition(9).String())
}
