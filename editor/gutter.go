package editor

import (
	"fmt"
	"strconv"
)

// LineNumberWidth returns the line-number gutter width for lineCount,
// including the separator cell.
func LineNumberWidth(lineCount int) int {
	return gutterDigits(lineCount) + 1
}

func gutterDigits(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	return len(strconv.Itoa(lineCount))
}

func (m Model) gutterWidth() int {
	if !m.cfg.ShowLineNums || m.buf == nil {
		return 0
	}
	return LineNumberWidth(m.buf.LineCount())
}

func (m Model) renderGutter(row, digits int) string {
	st := m.cfg.Style.LineNum
	if m.focused && m.buf != nil && row == m.buf.Cursor().Row {
		st = m.cfg.Style.LineNumCurrent
	}
	return st.Render(fmt.Sprintf("%*d", digits, row+1)) + m.cfg.Style.GutterSep.Render(gutterSep)
}
