package tui

import "github.com/charmbracelet/bubbles/key"

// globalKeys are the app-level bindings handled before the lists see the
// message. Palette-internal keys live in handlePaletteKey because several of
// them depend on query state, not just the key pressed.
type globalKeyMap struct {
	ForceQuit key.Binding
	Palette   key.Binding
	Quit      key.Binding
	Reload    key.Binding
	Back      key.Binding
	Select    key.Binding
}

var globalKeys = globalKeyMap{
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	Palette: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "paleta"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "salir"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "recargar"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "atrás"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "abrir"),
	),
}
