package editor

import tea "github.com/charmbracelet/bubbletea"

// updateMouse scrolls on the wheel and places the cursor on a left click.
// A click drops the select-all flag.
func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if tea.MouseEvent(msg).IsWheel() {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if !m.focused || m.buf == nil {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.inBounds(msg.X, msg.Y) {
		return m, nil
	}

	p := m.cellToPos(msg.X, msg.Y)
	m.buf.ClearSelection()
	m.buf.SetCursor(p)
	m.sync()
	return m, nil
}
