package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/iw2rmb/codecell/editor"
)

// keyMap holds the notebook-level bindings. They are matched before keys
// reach the focused cell editor.
type keyMap struct {
	NewCell    key.Binding
	DeleteCell key.Binding
	Prev       key.Binding
	Next       key.Binding
	Quit       key.Binding

	// Shown in help only; handled by the cell editor.
	Run key.Binding
}

func defaultKeyMap(ed editor.KeyMap) keyMap {
	return keyMap{
		NewCell:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new cell")),
		DeleteCell: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete cell")),
		Prev:       key.NewBinding(key.WithKeys("ctrl+up", "ctrl+p"), key.WithHelp("ctrl+↑", "prev cell")),
		Next:       key.NewBinding(key.WithKeys("ctrl+down"), key.WithHelp("ctrl+↓", "next cell")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		Run:        ed.Submit,
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.NewCell, k.DeleteCell, k.Prev, k.Next, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
