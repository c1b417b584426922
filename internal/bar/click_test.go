package bar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClick_DeliversTokenAndAdvances(t *testing.T) {
	f := newFixture[int]()
	var tokens []int
	f.bar.SetClickListener(func(token int) {
		tokens = append(tokens, token)
		_, ok := f.bar.Current()
		assert.True(t, ok, "next message should already be current")
	})

	f.bar.ShowToken("first", "Open", NoIcon, 7)
	f.bar.Show("second")

	f.bar.Click()

	assert.Equal(t, []int{7}, tokens)
	cur, ok := f.bar.Current()
	require.True(t, ok)
	assert.Equal(t, "second", cur.Text())
	assert.Equal(t, StateShowing, f.bar.State())

	// The old hide timer is gone; second gets a full delay from the click.
	f.advance(DefaultHideDelay - time.Millisecond)
	assert.Equal(t, StateShowing, f.bar.State())
	f.advance(time.Millisecond)
	assert.Equal(t, StateHiding, f.bar.State())
	assert.Len(t, tokens, 1)
}

func TestClick_LastMessageHides(t *testing.T) {
	f := newFixture[string]()
	var reasons []HideReason
	var got string
	f.bar.SetClickListener(func(token string) { got = token })
	f.bar.SetHideListener(func(_ Message[string], r HideReason) { reasons = append(reasons, r) })

	f.bar.ShowToken("only", "Go", NoIcon, "tok")
	f.bar.Click()

	assert.Equal(t, "tok", got)
	assert.Equal(t, StateHidden, f.bar.State())
	assert.False(t, f.surface.visible)
	assert.Equal(t, []HideReason{HideClicked}, reasons)

	f.advance(10 * fullCycle)
	assert.Equal(t, []HideReason{HideClicked}, reasons)
	assert.Equal(t, 0, f.clock.Pending())
}

func TestClick_WithoutTokenDeliversZero(t *testing.T) {
	f := newFixture[int]()
	calls := 0
	f.bar.SetClickListener(func(token int) {
		calls++
		assert.Equal(t, 0, token)
	})

	f.bar.ShowAction("no token", "OK", NoIcon)
	f.bar.Click()

	assert.Equal(t, 1, calls)
}

func TestClick_Ignored(t *testing.T) {
	t.Run("without listener", func(t *testing.T) {
		f := newFixture[int]()
		f.bar.ShowToken("msg", "OK", NoIcon, 1)

		f.bar.Click()

		cur, ok := f.bar.Current()
		require.True(t, ok)
		assert.Equal(t, "msg", cur.Text())
		assert.Equal(t, StateShowing, f.bar.State())
	})

	t.Run("while hidden", func(t *testing.T) {
		f := newFixture[int]()
		calls := 0
		f.bar.SetClickListener(func(int) { calls++ })

		f.bar.Click()

		assert.Equal(t, 0, calls)
		assert.Equal(t, StateHidden, f.bar.State())
	})
}

func TestClick_DuringFadeOut(t *testing.T) {
	f := newFixture[int]()
	var hides []string
	f.bar.SetClickListener(func(int) {})
	f.bar.SetHideListener(func(m Message[int], r HideReason) {
		hides = append(hides, m.Text()+":"+r.String())
	})

	f.bar.ShowToken("a", "OK", NoIcon, 1)
	f.bar.Show("b")
	f.advance(DefaultHideDelay + 100*time.Millisecond)
	require.Equal(t, StateHiding, f.bar.State())

	f.bar.Click()
	cur, _ := f.bar.Current()
	assert.Equal(t, "b", cur.Text())

	// The abandoned fade-out must not advance the bar a second time.
	f.advance(DefaultFadeDuration)
	cur, ok := f.bar.Current()
	require.True(t, ok)
	assert.Equal(t, "b", cur.Text())
	assert.Equal(t, []string{"a:clicked"}, hides)
}
