package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the demo.
type KeyMap struct {
	Show       key.Binding
	ShowAction key.Binding
	Click      key.Binding
	Clear      key.Binding

	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Show, k.ShowAction, k.Click, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Show, k.ShowAction},
		{k.Click, k.Clear},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Show: key.NewBinding(
			key.WithKeys("s", "t"),
			key.WithHelp("s", "show text"),
		),
		ShowAction: key.NewBinding(
			key.WithKeys("a", "b"),
			key.WithHelp("a", "show with button"),
		),
		Click: key.NewBinding(
			key.WithKeys("enter", "c"),
			key.WithHelp("enter", "click button"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x", "esc"),
			key.WithHelp("x", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
