package editor

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the terminal key bindings that feed the dispatcher.
//
// Bindings must be portable across terminals: most cannot report
// shift+enter, so Submit also listens on alt+enter and ctrl+s.
type KeyMap struct {
	Submit  key.Binding
	Newline key.Binding

	Indent, Outdent   key.Binding
	Backspace, Delete key.Binding

	SelectAll, Copy key.Binding

	Left, Right, Up, Down key.Binding
	Home, End             key.Binding

	WordLeft, WordRight key.Binding
	DocStart, DocEnd    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit:  key.NewBinding(key.WithKeys("shift+enter", "alt+enter", "ctrl+s"), key.WithHelp("shift+enter", "run cell")),
		Newline: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),

		Indent:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "indent")),
		Outdent:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "outdent")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete left")),

		SelectAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),

		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Home:  key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "line start")),
		End:   key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),

		WordLeft:  key.NewBinding(key.WithKeys("ctrl+left", "alt+left"), key.WithHelp("ctrl+←", "word left")),
		WordRight: key.NewBinding(key.WithKeys("ctrl+right", "alt+right"), key.WithHelp("ctrl+→", "word right")),
		DocStart:  key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "cell start")),
		DocEnd:    key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "cell end")),
	}
}

// ShortHelp implements help.KeyMap.
func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Submit, km.Indent, km.Outdent, km.SelectAll}
}

// FullHelp implements help.KeyMap.
func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Submit, km.Newline, km.Indent, km.Outdent},
		{km.Backspace, km.Delete, km.SelectAll, km.Copy},
		{km.Left, km.Right, km.Up, km.Down, km.Home, km.End},
		{km.WordLeft, km.WordRight, km.DocStart, km.DocEnd},
	}
}

// Translate turns a terminal key message into the KeyEvent the dispatcher
// understands. ok is false for keys the editor does not handle.
func (km KeyMap) Translate(msg tea.KeyMsg) (ev KeyEvent, ok bool) {
	switch {
	case key.Matches(msg, km.Submit):
		return KeyEvent{Code: "Enter", Key: "Enter", Shift: true}, true
	case key.Matches(msg, km.Newline):
		return KeyEvent{Code: "Enter", Key: "Enter"}, true
	case key.Matches(msg, km.Outdent):
		return KeyEvent{Code: "Tab", Key: "Tab", Shift: true}, true
	case key.Matches(msg, km.Indent):
		return KeyEvent{Code: "Tab", Key: "Tab"}, true
	case key.Matches(msg, km.Backspace):
		return KeyEvent{Code: "Backspace", Key: "Backspace"}, true
	case key.Matches(msg, km.Delete):
		return KeyEvent{Code: "Delete", Key: "Delete"}, true
	case key.Matches(msg, km.SelectAll):
		return KeyEvent{Code: "KeyA", Key: "a", Ctrl: true}, true
	case key.Matches(msg, km.Copy):
		return KeyEvent{Code: "KeyC", Key: "c", Ctrl: true}, true
	case key.Matches(msg, km.WordLeft):
		return KeyEvent{Code: "ArrowLeft", Key: "ArrowLeft", Ctrl: true}, true
	case key.Matches(msg, km.WordRight):
		return KeyEvent{Code: "ArrowRight", Key: "ArrowRight", Ctrl: true}, true
	case key.Matches(msg, km.DocStart):
		return KeyEvent{Code: "Home", Key: "Home", Ctrl: true}, true
	case key.Matches(msg, km.DocEnd):
		return KeyEvent{Code: "End", Key: "End", Ctrl: true}, true
	case key.Matches(msg, km.Left):
		return KeyEvent{Code: "ArrowLeft", Key: "ArrowLeft"}, true
	case key.Matches(msg, km.Right):
		return KeyEvent{Code: "ArrowRight", Key: "ArrowRight"}, true
	case key.Matches(msg, km.Up):
		return KeyEvent{Code: "ArrowUp", Key: "ArrowUp"}, true
	case key.Matches(msg, km.Down):
		return KeyEvent{Code: "ArrowDown", Key: "ArrowDown"}, true
	case key.Matches(msg, km.Home):
		return KeyEvent{Code: "Home", Key: "Home"}, true
	case key.Matches(msg, km.End):
		return KeyEvent{Code: "End", Key: "End"}, true
	}

	switch msg.Type {
	case tea.KeySpace:
		return KeyEvent{Code: "Space", Key: " ", Alt: msg.Alt}, true
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return KeyEvent{}, false
		}
		s := string(msg.Runes)
		return KeyEvent{Key: s, Shift: hasUpper(msg.Runes), Alt: msg.Alt}, true
	}

	// Remaining ctrl chords reach the dispatcher so it can ignore them
	// uniformly.
	if name := msg.String(); strings.HasPrefix(name, "ctrl+") {
		return KeyEvent{Key: strings.TrimPrefix(name, "ctrl+"), Ctrl: true}, true
	}
	return KeyEvent{}, false
}

func hasUpper(rs []rune) bool {
	for _, r := range rs {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
