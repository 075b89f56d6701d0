package editor

import "github.com/iw2rmb/codecell/buffer"

// cellToPos maps view-local terminal cell coordinates to a buffer position.
//
// (0,0) is the top-left of the view, gutter included. Gutter clicks land on
// column 0, clicks past the end of a row land at its end and a wide cluster
// is hit on any of its cells.
func (m Model) cellToPos(x, y int) buffer.Pos {
	if m.buf == nil {
		return buffer.Pos{}
	}
	row := clampInt(m.viewport.YOffset+y, 0, m.buf.LineCount()-1)
	line, _ := m.buf.Line(row)

	x -= m.gutterWidth()
	col, cells := 0, 0
	for col < len(line) {
		w := cellWidth(line[col])
		if x < cells+w {
			break
		}
		cells += w
		col++
	}
	return buffer.Pos{Row: row, Col: col}
}

func (m Model) inBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}
