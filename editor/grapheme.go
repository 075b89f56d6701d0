package editor

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/iw2rmb/codecell/buffer"
)

// cellWidth is the terminal width of one grapheme cluster.
func cellWidth(cluster string) int {
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = uniseg.StringWidth(cluster)
	}
	if w < 0 {
		w = 0
	}
	return w
}

// prefixCells is the terminal width of the first col clusters of line.
func prefixCells(line buffer.Line, col int) int {
	col = clampInt(col, 0, len(line))
	n := 0
	for _, c := range line[:col] {
		n += cellWidth(c)
	}
	return n
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
