package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	graphemeutil "github.com/iw2rmb/codecell/internal/grapheme"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused || m.buf == nil {
		return m, nil
	}

	// Paste events insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.buf.InsertText(string(msg.Runes))
		m.sync()
		return m, nil
	}

	ev, ok := m.cfg.KeyMap.Translate(msg)
	if !ok {
		return m, nil
	}

	var cmds []tea.Cmd
	for _, ev := range splitTyped(ev) {
		res := m.dispatcher.Dispatch(m.buf, ev)
		cmds = append(cmds, m.resultCmd(res))
	}
	m.sync()
	return m, tea.Batch(cmds...)
}

// splitTyped breaks a burst of typed characters into one event per
// character. Terminals deliver fast input as a single multi-rune key.
func splitTyped(ev KeyEvent) []KeyEvent {
	if ev.Code != "" || ev.Ctrl || ev.Meta || ev.Alt {
		return []KeyEvent{ev}
	}
	clusters := graphemeutil.Split(ev.Key)
	if len(clusters) <= 1 {
		return []KeyEvent{ev}
	}
	out := make([]KeyEvent, 0, len(clusters))
	for _, c := range clusters {
		out = append(out, KeyEvent{Key: c})
	}
	return out
}

func (m Model) resultCmd(res Result) tea.Cmd {
	switch res.Command {
	case CmdSubmit:
		text := res.Submit
		return func() tea.Msg { return SubmitMsg{Text: text} }
	case CmdCopy:
		if res.Copy == "" {
			return nil
		}
		text := res.Copy
		var err error
		if m.cfg.Clipboard != nil {
			err = m.cfg.Clipboard.WriteText(text)
		}
		return func() tea.Msg { return CopyMsg{Text: text, Err: err} }
	}
	return nil
}
