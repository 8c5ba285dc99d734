// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings. Function keys are used so every
// printable key stays available to the typing surfaces.
type KeyMap struct {
	// Modes
	ToggleFocused key.Binding
	ToggleMusic   key.Binding
	ToggleCoffee  key.Binding

	// Overlays
	ThemePicker key.Binding
	Help        key.Binding

	// General
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ToggleFocused: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "focused mode"),
		),
		ToggleMusic: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("f3", "music mode"),
		),
		ToggleCoffee: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("f4", "coffee mode"),
		),
		ThemePicker: key.NewBinding(
			key.WithKeys("f5"),
			key.WithHelp("f5", "change theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ToggleFocused, k.ToggleMusic, k.ToggleCoffee}, // Modes
		{k.ThemePicker, k.Help, k.Quit},                  // General
	}
}

// PickerKeyMap defines the keybindings inside the theme picker.
type PickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

// DefaultPickerKeyMap returns the theme picker keybindings.
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous theme"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next theme"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply theme"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "f5"),
			key.WithHelp("esc", "close"),
		),
	}
}

// ShortHelp returns keybindings for the picker hint line.
func (k PickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Cancel}
}

// FullHelp returns keybindings for the full help view.
func (k PickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
