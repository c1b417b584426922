package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/messagebar/internal/bar"
	"github.com/jmylchreest/messagebar/internal/store"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

// fireAll runs every pending callback, including ones scheduled while firing.
func fireAll(m Model) {
	for m.sched.Pending() > 0 {
		for id := uint64(1); id <= m.sched.nextID; id++ {
			m.sched.Fire(id)
		}
	}
}

func TestModel_ShowSequence(t *testing.T) {
	m := New(Options{})

	m = press(t, m, runes("s"), runes("a"))

	cur, ok := m.bar.Current()
	require.True(t, ok)
	assert.Equal(t, "Message #0", cur.Text())
	assert.False(t, cur.HasAction())
	require.Len(t, m.bar.Pending(), 1)

	next := m.bar.Pending()[0]
	label, ok := next.Action()
	require.True(t, ok)
	assert.Equal(t, "Button!", label)
	token, ok := next.Token()
	require.True(t, ok)
	assert.Equal(t, DemoToken{Count: 1}, token)
	assert.Equal(t, 2, m.state.count)
}

func TestModel_ClickReportsToken(t *testing.T) {
	m := New(Options{})

	m = press(t, m, runes("s"), runes("s"), runes("a"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.state.clicked, "text-only message has no button")
	assert.Equal(t, "Message #0", m.surface.text)

	m.bar.Clear()
	m = press(t, m, runes("a"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "You clicked message #3", m.state.clicked)
	assert.False(t, m.bar.Visible())
}

func TestModel_Clear(t *testing.T) {
	m := New(Options{})

	m = press(t, m, runes("s"), runes("s"), runes("x"))

	assert.Equal(t, bar.StateHidden, m.bar.State())
	assert.Empty(t, m.bar.Pending())
	assert.False(t, m.surface.visible)
}

func TestModel_TimersDriveHide(t *testing.T) {
	m := New(Options{})

	m = press(t, m, runes("s"))
	assert.Positive(t, m.sched.Pending())

	fireAll(m)

	assert.Equal(t, bar.StateHidden, m.bar.State())
	assert.False(t, m.surface.visible)
}

func TestModel_QuitSavesAndRestores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.json")

	m := New(Options{StatePath: path})
	m = press(t, m, runes("s"), runes("a"))

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	snap, err := store.Load[DemoToken](path)
	require.NoError(t, err)
	assert.Equal(t, "demo", snap.SavedBy)
	assert.Equal(t, "2", snap.Meta["count"])
	assert.Equal(t, 2, snap.State.Len())

	restored := New(Options{StatePath: path})
	assert.Equal(t, 2, restored.state.count)
	cur, ok := restored.bar.Current()
	require.True(t, ok)
	assert.Equal(t, "Message #0", cur.Text())
	assert.Len(t, restored.bar.Pending(), 1)
}

func TestModel_View(t *testing.T) {
	m := New(Options{})
	m = press(t, m, runes("a"))

	view := m.View()
	assert.Contains(t, view, "messagebar demo")
	assert.Contains(t, view, "Message #0")
	assert.Contains(t, view, "Button!")
}

func TestShade(t *testing.T) {
	tests := []struct {
		alpha float64
		want  string
	}{
		{-1, "236"},
		{0, "236"},
		{1, "255"},
		{2, "255"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, string(shade(tt.alpha)))
	}
}
