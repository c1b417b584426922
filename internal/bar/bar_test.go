package bar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullCycle = DefaultHideDelay + DefaultFadeDuration

func TestBar_ShowOnHidden(t *testing.T) {
	f := newFixture[int]()

	f.bar.Show("hello")

	assert.Equal(t, StateShowing, f.bar.State())
	cur, ok := f.bar.Current()
	require.True(t, ok)
	assert.Equal(t, "hello", cur.Text())
	assert.True(t, f.surface.visible)
	assert.Equal(t, "hello", f.surface.text)
	assert.Equal(t, AlignCenter, f.surface.align)
	assert.False(t, f.surface.buttonVisible)
	assert.Empty(t, f.bar.Pending())

	f.advance(DefaultFadeDuration)
	assert.Equal(t, 1.0, f.lastAlpha())
}

func TestBar_ShowActionRendersButton(t *testing.T) {
	f := newFixture[int]()

	f.bar.ShowAction("Saved", "Undo", Icon("edit-undo"))

	assert.Equal(t, AlignLeft, f.surface.align)
	assert.True(t, f.surface.buttonVisible)
	assert.Equal(t, "Undo", f.surface.buttonLabel)
	assert.Equal(t, Icon("edit-undo"), f.surface.buttonIcon)
}

func TestBar_MessageSequence(t *testing.T) {
	f := newFixture[int]()

	f.bar.Show("Message #0")
	assert.Equal(t, StateShowing, f.bar.State())
	assert.Empty(t, f.bar.Pending())

	f.bar.Show("Message #1")
	cur, _ := f.bar.Current()
	assert.Equal(t, "Message #0", cur.Text())
	assert.Equal(t, []string{"Message #1"}, texts(f.bar.Pending()))

	f.advance(DefaultHideDelay)
	assert.Equal(t, StateHiding, f.bar.State())

	f.advance(DefaultFadeDuration)
	assert.Equal(t, StateShowing, f.bar.State())
	cur, _ = f.bar.Current()
	assert.Equal(t, "Message #1", cur.Text())
	assert.Equal(t, "Message #1", f.surface.text)
	assert.Empty(t, f.bar.Pending())

	f.advance(fullCycle)
	assert.Equal(t, StateHidden, f.bar.State())
	assert.False(t, f.surface.visible)
	_, ok := f.bar.Current()
	assert.False(t, ok)
}

func TestBar_FIFOOrder(t *testing.T) {
	f := newFixture[int]()
	var shown []string
	f.bar.SetHideListener(func(m Message[int], reason HideReason) {
		assert.Equal(t, HideExpired, reason)
		shown = append(shown, m.Text())
	})

	for _, s := range []string{"a", "b", "c", "d"} {
		f.bar.Show(s)
	}
	f.advance(4 * fullCycle)

	assert.Equal(t, []string{"a", "b", "c", "d"}, shown)
	assert.Equal(t, StateHidden, f.bar.State())
	assert.Equal(t, 1, f.surface.hides)
}

func TestBar_ShowDuringHidingQueues(t *testing.T) {
	f := newFixture[int]()

	f.bar.Show("first")
	f.advance(DefaultHideDelay + DefaultFadeDuration/2)
	require.Equal(t, StateHiding, f.bar.State())

	f.bar.Show("second")
	cur, _ := f.bar.Current()
	assert.Equal(t, "first", cur.Text())
	assert.Equal(t, []string{"second"}, texts(f.bar.Pending()))

	f.advance(DefaultFadeDuration / 2)
	cur, _ = f.bar.Current()
	assert.Equal(t, "second", cur.Text())
	assert.Equal(t, StateShowing, f.bar.State())
}

func TestBar_SetTiming(t *testing.T) {
	f := newFixture[int]()
	f.bar.SetTiming(time.Second, 100*time.Millisecond)
	f.bar.SetTiming(0, -1)

	assert.Equal(t, time.Second, f.bar.HideDelay())
	assert.Equal(t, 100*time.Millisecond, f.bar.FadeDuration())

	f.bar.Show("quick")
	f.advance(time.Second)
	assert.Equal(t, StateHiding, f.bar.State())
	f.advance(100 * time.Millisecond)
	assert.Equal(t, StateHidden, f.bar.State())
}

func TestBar_ClearIsTotal(t *testing.T) {
	f := newFixture[int]()
	var reasons []HideReason
	f.bar.SetHideListener(func(_ Message[int], reason HideReason) {
		reasons = append(reasons, reason)
	})

	f.bar.Show("a")
	f.bar.Show("b")
	f.bar.Show("c")

	f.bar.Clear()

	assert.Equal(t, StateHidden, f.bar.State())
	assert.Empty(t, f.bar.Pending())
	assert.False(t, f.surface.visible)
	assert.Equal(t, []HideReason{HideCleared}, reasons)
	assert.Equal(t, 0, f.clock.Pending())

	// Nothing scheduled before the clear may fire afterwards.
	f.advance(10 * fullCycle)
	assert.Equal(t, StateHidden, f.bar.State())
	assert.Len(t, reasons, 1)
}

func TestBar_ClearWhileHiding(t *testing.T) {
	f := newFixture[int]()
	f.bar.Show("a")
	f.bar.Show("b")
	f.advance(DefaultHideDelay + time.Millisecond)
	require.Equal(t, StateHiding, f.bar.State())

	f.bar.Clear()
	f.advance(fullCycle)

	assert.Equal(t, StateHidden, f.bar.State())
	_, ok := f.bar.Current()
	assert.False(t, ok)
}

func TestBar_ClearWhenHiddenIsNoop(t *testing.T) {
	f := newFixture[int]()
	called := false
	f.bar.SetHideListener(func(Message[int], HideReason) { called = true })

	f.bar.Clear()

	assert.False(t, called)
	assert.Equal(t, StateHidden, f.bar.State())
}

func TestBar_DropQueued(t *testing.T) {
	f := newFixture[int]()
	var hidden []string
	f.bar.SetHideListener(func(m Message[int], _ HideReason) {
		hidden = append(hidden, m.Text())
	})

	f.bar.ShowToken("a", "", NoIcon, 1)
	f.bar.ShowToken("b", "", NoIcon, 2)
	f.bar.ShowToken("c", "", NoIcon, 3)

	match := func(id int) func(Message[int]) bool {
		return func(m Message[int]) bool {
			tok, ok := m.Token()
			return ok && tok == id
		}
	}

	assert.Equal(t, 0, f.bar.Drop(match(1)), "the visible message is not dropped")
	assert.Equal(t, 1, f.bar.Drop(match(2)))
	assert.Equal(t, []string{"c"}, texts(f.bar.Pending()))
	assert.Empty(t, hidden)

	f.advance(fullCycle)
	cur, ok := f.bar.Current()
	require.True(t, ok)
	assert.Equal(t, "c", cur.Text())
	assert.Equal(t, []string{"a"}, hidden)
}

func TestBar_ShowAfterClear(t *testing.T) {
	f := newFixture[int]()
	f.bar.Show("a")
	f.bar.Clear()
	f.bar.Show("b")

	assert.Equal(t, StateShowing, f.bar.State())
	cur, _ := f.bar.Current()
	assert.Equal(t, "b", cur.Text())

	f.advance(DefaultHideDelay - time.Millisecond)
	assert.Equal(t, StateShowing, f.bar.State())
	f.advance(time.Millisecond)
	assert.Equal(t, StateHiding, f.bar.State())
}

func TestBar_EmptyText(t *testing.T) {
	f := newFixture[int]()

	f.bar.Show("")

	assert.Equal(t, StateShowing, f.bar.State())
	assert.Equal(t, "", f.surface.text)
}

func TestBar_HideTimerRestartsPerMessage(t *testing.T) {
	f := newFixture[int]()
	f.bar.Show("a")
	f.bar.Show("b")

	// b becomes current at 5600 and must stay for the full delay.
	f.advance(fullCycle)
	require.Equal(t, StateShowing, f.bar.State())
	f.advance(DefaultHideDelay - time.Millisecond)
	assert.Equal(t, StateShowing, f.bar.State())
	f.advance(time.Millisecond)
	assert.Equal(t, StateHiding, f.bar.State())
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateHidden, "hidden"},
		{StateShowing, "showing"},
		{StateHiding, "hiding"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}

func TestHideReason_String(t *testing.T) {
	assert.Equal(t, "expired", HideExpired.String())
	assert.Equal(t, "clicked", HideClicked.String())
	assert.Equal(t, "cleared", HideCleared.String())
	assert.Equal(t, "unknown", HideReason(42).String())
}
