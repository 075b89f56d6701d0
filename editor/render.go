package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/codecell/buffer"
	graphemeutil "github.com/iw2rmb/codecell/internal/grapheme"
)

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}

	n := m.buf.LineCount()
	digits := gutterDigits(n)
	cursor := m.buf.Cursor()

	out := make([]string, 0, n)
	for row := 0; row < n; row++ {
		line, _ := m.buf.Line(row)

		var sb strings.Builder
		if m.cfg.ShowLineNums {
			sb.WriteString(m.renderGutter(row, digits))
		}
		sb.WriteString(m.renderLine(line, row, cursor))
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderLine(line buffer.Line, row int, cursor buffer.Pos) string {
	st := m.cfg.Style
	text := st.Code
	if m.buf.SelectAll() {
		text = st.SelectAll.Inherit(st.Code)
	}

	if !m.focused || row != cursor.Row {
		return renderSpan(text, line.String())
	}

	col := clampInt(cursor.Col, 0, line.Len())
	var sb strings.Builder
	sb.WriteString(renderSpan(text, graphemeutil.Join(line[:col])))
	if col == line.Len() {
		// Cursor at EOL is rendered as a 1-cell placeholder space.
		sb.WriteString(st.Cursor.Render(" "))
		return sb.String()
	}

	cell := line[col]
	if cell == " " && trailingSpaces(line, col) {
		// Terminals may elide trailing spaces; NBSP keeps the cursor visible.
		cell = "\u00a0"
	}
	sb.WriteString(st.Cursor.Render(cell))
	sb.WriteString(renderSpan(text, graphemeutil.Join(line[col+1:])))
	return sb.String()
}

func renderSpan(st lipgloss.Style, s string) string {
	if s == "" {
		return ""
	}
	return st.Render(s)
}

func trailingSpaces(line buffer.Line, from int) bool {
	for _, c := range line[from:] {
		if c != " " {
			return false
		}
	}
	return true
}
