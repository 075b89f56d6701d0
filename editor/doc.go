// Package editor provides a Bubble Tea code-cell editor backed by the buffer
// package.
//
// Every keystroke goes through a Dispatcher: terminal keys are translated to
// KeyEvents by a KeyMap, resolved against a fixed precedence table and
// applied as one buffer operation. The Model then repaints the rows named in
// the buffer's last change and keeps the cursor row inside the viewport.
package editor
