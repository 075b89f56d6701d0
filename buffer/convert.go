package buffer

import (
	"unicode/utf16"
	"unicode/utf8"
)

// OffsetUnit selects how a cluster column is measured when it is handed to
// a view layer. Browser selection ranges count UTF-16 code units; terminals
// and Go strings count bytes or runes.
type OffsetUnit uint8

const (
	UnitByte OffsetUnit = iota
	UnitRune
	UnitUTF16
)

type OffsetClampMode uint8

const (
	OffsetError OffsetClampMode = iota
	OffsetClamp
)

func clusterWidth(cluster string, unit OffsetUnit) int {
	switch unit {
	case UnitRune:
		return utf8.RuneCountInString(cluster)
	case UnitUTF16:
		n := 0
		for _, r := range cluster {
			n += utf16.RuneLen(r)
		}
		return n
	default:
		return len(cluster)
	}
}

// Offset measures the text before col in unit. col is clamped into the line.
func (l Line) Offset(col int, unit OffsetUnit) int {
	col = ClampCol(col, len(l))
	off := 0
	for _, cluster := range l[:col] {
		off += clusterWidth(cluster, unit)
	}
	return off
}

// CursorOffset is the cursor column of its row measured in unit. This is the
// value a view collapses its native selection to.
func (b *Buffer) CursorOffset(unit OffsetUnit) int {
	return b.lines[b.cursor.Row].Offset(b.cursor.Col, unit)
}

// OffsetFromPos measures pos from the start of the exported text, with each
// line break counted as one unit.
func (b *Buffer) OffsetFromPos(pos Pos, unit OffsetUnit, mode OffsetClampMode) (int, bool) {
	pos, ok := b.normalizePosForMode(pos, mode)
	if !ok {
		return 0, false
	}

	off := 0
	for row := 0; row < pos.Row; row++ {
		off += b.lines[row].Offset(len(b.lines[row]), unit) + 1
	}
	return off + b.lines[pos.Row].Offset(pos.Col, unit), true
}

func (b *Buffer) normalizePosForMode(pos Pos, mode OffsetClampMode) (Pos, bool) {
	switch mode {
	case OffsetError:
		clamped := b.clampPos(pos)
		if clamped != pos {
			return Pos{}, false
		}
		return pos, true
	case OffsetClamp:
		return b.clampPos(pos), true
	default:
		return Pos{}, false
	}
}
