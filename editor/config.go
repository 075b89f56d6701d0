package editor

import "github.com/iw2rmb/codecell/buffer"

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer. Ignored by NewWithBuffer.
	Text string

	// Forwarded to buffer.Options.
	IndentWidth int

	// Rendering options. A zero Style renders plain text.
	ShowLineNums bool
	Style        Style

	// A zero KeyMap is replaced by DefaultKeyMap.
	KeyMap    KeyMap
	Clipboard Clipboard

	// OnChange is called after every effective buffer mutation or cursor move.
	OnChange func(ChangeEvent)

	// Logger receives boundary errors the dispatcher swallows.
	Logger func(cmd Command, ev KeyEvent, err error)
}

// DefaultConfig returns a Config with line numbers, the default style and
// the default key map.
func DefaultConfig() Config {
	return Config{
		IndentWidth:  buffer.DefaultIndentWidth,
		ShowLineNums: true,
		Style:        DefaultStyle(),
		KeyMap:       DefaultKeyMap(),
	}
}

func (c Config) withDefaults() Config {
	if len(c.KeyMap.Newline.Keys()) == 0 {
		c.KeyMap = DefaultKeyMap()
	}
	return c
}
