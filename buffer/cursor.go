package buffer

// Cursor policy: pure functions that pick the landing cursor for an edit.
// None of them look at buffer internals; callers pass the shape they need.

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

// ClampPos clamps p into document bounds described by rowCount and lineLen.
//
// - rowCount is the number of logical lines (rows).
// - lineLen(row) returns the cluster length of the given row.
//
// The returned Pos always satisfies:
// - 0 <= Row < rowCount (with rowCount treated as at least 1)
// - 0 <= Col <= lineLen(Row)
func ClampPos(p Pos, rowCount int, lineLen func(row int) int) Pos {
	if rowCount <= 0 {
		rowCount = 1
	}

	row := clampInt(p.Row, 0, rowCount-1)

	maxCol := 0
	if lineLen != nil {
		maxCol = lineLen(row)
		if maxCol < 0 {
			maxCol = 0
		}
	}
	col := clampInt(p.Col, 0, maxCol)

	return Pos{Row: row, Col: col}
}

// ClampCol clamps col into [0, lineLen].
func ClampCol(col, lineLen int) int {
	return clampInt(col, 0, lineLen)
}

// CursorAfterMerge is where the cursor lands when row is joined onto the
// row above it: at the end of the text that was already on the previous row.
func CursorAfterMerge(row, prevLen int) Pos {
	if row <= 0 {
		return Pos{}
	}
	return Pos{Row: row - 1, Col: prevLen}
}

// CursorAfterSplit is where the cursor lands after a line is inserted
// after row.
func CursorAfterSplit(row int) Pos {
	return Pos{Row: row + 1, Col: 0}
}

// CursorAfterRemove is where the cursor lands after row is removed.
// prevLen is the length of row-1 and is ignored when row is 0.
func CursorAfterRemove(row, prevLen int) Pos {
	if row > 0 {
		return Pos{Row: row - 1, Col: prevLen}
	}
	return Pos{}
}

// IndentStop returns the next width-aligned column strictly after col.
func IndentStop(col, width int) int {
	if width <= 0 {
		return col
	}
	if col < 0 {
		col = 0
	}
	return (col/width + 1) * width
}

// OutdentStop returns the previous width-aligned column strictly before col,
// never below 0.
func OutdentStop(col, width int) int {
	if width <= 0 || col <= 0 {
		return 0
	}
	return ((col - 1) / width) * width
}
