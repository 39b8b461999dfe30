package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Views
	Matrix key.Binding
	Order  key.Binding
	Flow   key.Binding
	Stats  key.Binding

	// Actions
	Help   key.Binding
	Reheat key.Binding
	Escape key.Binding
	Enter  key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings
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
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Matrix: key.NewBinding(
			key.WithKeys("1", "m"),
			key.WithHelp("1", "matrix view"),
		),
		Order: key.NewBinding(
			key.WithKeys("2", "o"),
			key.WithHelp("2", "order graph"),
		),
		Flow: key.NewBinding(
			key.WithKeys("3", "f"),
			key.WithHelp("3", "flow graph"),
		),
		Stats: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "toggle stats"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Reheat: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reheat layout"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns a short help string
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Matrix, k.Order, k.Flow, k.Help, k.Quit}
}

// FullHelp returns the full help string
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Matrix, k.Order, k.Flow, k.Reheat, k.Stats},
		{k.Help, k.Escape, k.Enter, k.Quit},
	}
}
