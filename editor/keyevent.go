package editor

import (
	"strings"

	graphemeutil "github.com/iw2rmb/codecell/internal/grapheme"
)

// KeyEvent is the key descriptor a host delivers for one keystroke.
//
// Code names the physical key ("Enter", "NumpadEnter", "KeyA", "Space").
// Key is the produced character, or a key name when the key prints nothing.
type KeyEvent struct {
	Code string
	Key  string

	Shift bool
	Ctrl  bool
	Meta  bool
	Alt   bool
}

// KeyName identifies a named key after normalization.
type KeyName int

const (
	KeyUnknown KeyName = iota
	KeyChar            // a single printable character, see Input.Char
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeySpace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
)

var keyNames = map[string]KeyName{
	"enter":       KeyEnter,
	"numpadenter": KeyEnter,
	"return":      KeyEnter,
	"tab":         KeyTab,
	"backspace":   KeyBackspace,
	"delete":      KeyDelete,
	"del":         KeyDelete,
	"space":       KeySpace,
	"spacebar":    KeySpace,
	" ":           KeySpace,
	"arrowleft":   KeyLeft,
	"left":        KeyLeft,
	"arrowright":  KeyRight,
	"right":       KeyRight,
	"arrowup":     KeyUp,
	"up":          KeyUp,
	"arrowdown":   KeyDown,
	"down":        KeyDown,
	"home":        KeyHome,
	"end":         KeyEnd,
}

func (k KeyName) String() string {
	switch k {
	case KeyChar:
		return "char"
	case KeyEnter:
		return "enter"
	case KeyTab:
		return "tab"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeySpace:
		return "space"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Input is a normalized KeyEvent: {physicalKey, printableChar, shift,
// ctrlOrMeta}.
type Input struct {
	Name KeyName
	// Char is the character to insert for KeyChar and KeySpace.
	Char string
	// Letter is the lower-cased letter under a Ctrl/Meta chord, if any.
	Letter string

	Shift      bool
	CtrlOrMeta bool
	Alt        bool
}

// Normalize folds a raw KeyEvent into an Input. The physical code wins over
// the key value for named keys, names compare case-insensitively and Ctrl
// and Meta are treated as one modifier.
func Normalize(ev KeyEvent) Input {
	in := Input{
		Shift:      ev.Shift,
		CtrlOrMeta: ev.Ctrl || ev.Meta,
		Alt:        ev.Alt,
	}

	if name, ok := keyNames[strings.ToLower(ev.Code)]; ok {
		in.Name = name
	} else if name, ok := keyNames[strings.ToLower(ev.Key)]; ok && !isSingleChar(ev.Key) {
		in.Name = name
	} else if ev.Key == " " {
		in.Name = KeySpace
	} else if isSingleChar(ev.Key) {
		in.Name = KeyChar
		in.Char = ev.Key
	}

	if in.Name == KeySpace {
		in.Char = " "
	}
	if in.CtrlOrMeta {
		in.Letter = chordLetter(ev)
	}
	return in
}

// chordLetter picks the letter of a Ctrl/Meta chord. Some layouts report a
// composed character in Key, so a "KeyX" code takes priority.
func chordLetter(ev KeyEvent) string {
	if len(ev.Code) == 4 && strings.HasPrefix(ev.Code, "Key") {
		return strings.ToLower(ev.Code[3:])
	}
	if isSingleChar(ev.Key) {
		return strings.ToLower(ev.Key)
	}
	return ""
}

func isSingleChar(s string) bool {
	return graphemeutil.IsDisplayable(s)
}
