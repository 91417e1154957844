package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the gallery browser.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// View settings
	MoreColumns  key.Binding
	FewerColumns key.Binding
	Bigger       key.Binding
	Smaller      key.Binding
	Reset        key.Binding
	TogglePanel  key.Binding

	// Actions
	Rescan key.Binding
	Like   key.Binding
	Play   key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		MoreColumns: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "columns"),
		),
		FewerColumns: key.NewBinding(
			key.WithKeys("-"),
		),
		Bigger: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]/[", "image size"),
		),
		Smaller: key.NewBinding(
			key.WithKeys("["),
		),
		Reset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset"),
		),
		TogglePanel: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "settings"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Like: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "like"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Like, k.Play, k.Rescan, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.MoreColumns, k.Bigger, k.Reset, k.TogglePanel},
		{k.Like, k.Play, k.Rescan},
		{k.Help, k.Quit},
	}
}
