package editor

// Clipboard provides editor-level clipboard integration.
//
// Errors must not crash the UI; write failures are ignored.
type Clipboard interface {
	WriteText(s string) error
}
