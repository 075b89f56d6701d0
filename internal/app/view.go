package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/iw2rmb/codecell/editor"
	"github.com/iw2rmb/codecell/internal/notebook"
)

const (
	maxEditorHeight = 20
	maxOutputLines  = 12
	labelWidth      = 6 // "[12]: "
)

var (
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(labelWidth)
	focusedLabel = labelStyle.Foreground(lipgloss.Color("39")).Bold(true)

	cellBorder    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238"))
	focusedBorder = cellBorder.BorderForeground(lipgloss.Color("39"))

	outputStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).PaddingLeft(labelWidth + 1)
	errorStyle  = outputStyle.Foreground(lipgloss.Color("203"))

	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	onlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	offlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// editorWidth is the text width left for a cell editor after the label and
// border.
func (m Model) editorWidth() int {
	w := m.width - labelWidth - cellBorder.GetHorizontalFrameSize()
	if w < 10 {
		w = 10
	}
	return w
}

func (m Model) sizeEditor(ed editor.Model) editor.Model {
	h := ed.LineCount()
	if h > maxEditorHeight {
		h = maxEditorHeight
	}
	return ed.SetSize(m.editorWidth(), h)
}

func (m *Model) resizeEditors() {
	for id, ed := range m.editors {
		m.editors[id] = m.sizeEditor(ed)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	footer := m.renderFooter()
	blocks := make([]string, 0, m.nb.Len())
	focusIdx := 0
	for i, c := range m.nb.Cells() {
		if c.ID == m.focus {
			focusIdx = i
		}
		blocks = append(blocks, m.renderCell(c))
	}

	avail := m.height - lipgloss.Height(footer)
	body := visibleBlocks(blocks, focusIdx, avail)
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

// visibleBlocks drops leading cells until the focused one fits in avail
// rows. A non-positive avail shows everything.
func visibleBlocks(blocks []string, focus, avail int) string {
	start := 0
	if avail > 0 {
		used := 0
		for i := 0; i <= focus && i < len(blocks); i++ {
			used += lipgloss.Height(blocks[i])
		}
		for used > avail && start < focus {
			used -= lipgloss.Height(blocks[start])
			start++
		}
	}
	out := strings.Join(blocks[start:], "\n")
	if avail > 0 {
		lines := strings.Split(out, "\n")
		if len(lines) > avail {
			lines = lines[:avail]
		}
		out = strings.Join(lines, "\n")
	}
	return out
}

func (m Model) renderCell(c *notebook.Cell) string {
	focused := c.ID == m.focus

	label := "[ ]:"
	switch {
	case c.Running:
		label = "[*]:"
	case c.ExecCount > 0:
		label = fmt.Sprintf("[%d]:", c.ExecCount)
	}
	ls, border := labelStyle, cellBorder
	if focused {
		ls, border = focusedLabel, focusedBorder
	}

	view := m.editors[c.ID].View()
	row := lipgloss.JoinHorizontal(lipgloss.Top, ls.Render(label), border.Render(view))
	if c.Output == "" {
		return row
	}
	return row + "\n" + m.renderOutput(c.Output)
}

func (m Model) renderOutput(out string) string {
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) > maxOutputLines {
		more := len(lines) - maxOutputLines
		lines = append(lines[:maxOutputLines], fmt.Sprintf("… %d more lines", more))
	}
	width := m.width - labelWidth - 1
	for i, l := range lines {
		l = strings.ReplaceAll(l, "\t", "    ")
		if width > 0 {
			l = ansi.Truncate(l, width, "…")
		}
		lines[i] = l
	}
	st := outputStyle
	if strings.HasPrefix(out, "error: ") {
		st = errorStyle
	}
	return st.Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter() string {
	var conn string
	if m.connected {
		conn = onlineStyle.Render("● online")
	} else {
		conn = offlineStyle.Render("○ offline")
	}

	parts := []string{conn}
	if m.env != nil {
		parts = append(parts, statusStyle.Render(fmt.Sprintf("%s@%s %s", m.env.Username, m.env.Hostname, m.env.PythonPath)))
	}
	if n := m.nb.Pending(); n > 0 {
		parts = append(parts, statusStyle.Render(fmt.Sprintf("%d running", n)))
	}
	if m.status != "" {
		parts = append(parts, statusStyle.Render(m.status))
	}

	status := strings.Join(parts, statusStyle.Render(" · "))
	if m.width > 0 && ansi.StringWidth(status) > m.width {
		status = ansi.Truncate(status, m.width, "…")
	}
	return status + "\n" + m.help.View(m.keys)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
