// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding used by the views.
type KeyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Back   key.Binding
	Submit key.Binding
	Up     key.Binding
	Down   key.Binding

	// Setup rebuilds the index from the profile file.
	Setup key.Binding

	// Refresh reloads the current view's data.
	Refresh key.Binding

	// Examples toggles the example question picker in the ask view.
	Examples key.Binding

	// PrevQuestion and NextQuestion walk the question history.
	PrevQuestion key.Binding
	NextQuestion key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "ask"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Setup: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "run setup"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Examples: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "examples"),
		),
		PrevQuestion: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "previous question"),
		),
		NextQuestion: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next question"),
		),
	}
}

// AskHelp returns the hints shown under the question input.
func (k *KeyMap) AskHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Examples, k.Setup, k.Back}
}

// BrowseHelp returns the hints shown in read-only views.
func (k *KeyMap) BrowseHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Back, k.Quit}
}

// FullHelp returns all bindings grouped for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Submit},
		{k.Examples, k.PrevQuestion, k.NextQuestion},
		{k.Setup, k.Refresh, k.Back},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
